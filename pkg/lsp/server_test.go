package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
)

func pos(line, char int) lsp.Position { return lsp.Position{Line: line, Character: char} }

func rng(from, to lsp.Position) lsp.Range { return lsp.Range{Start: from, End: to} }

func TestDiagnostics(t *testing.T) {
	content := "# comment [\n*.txt\n\nab[cd\r\nx\\\n  \n日[\n"
	want := []lsp.Diagnostic{
		{Range: rng(pos(3, 2), pos(3, 5)), Severity: lsp.Error, Source: "fnmatch",
			Message: "unterminated bracket expression"},
		{Range: rng(pos(4, 1), pos(4, 2)), Severity: lsp.Error, Source: "fnmatch",
			Message: "unterminated escape"},
		{Range: rng(pos(6, 1), pos(6, 2)), Severity: lsp.Error, Source: "fnmatch",
			Message: "unterminated bracket expression"},
	}
	if diff := cmp.Diff(want, diagnostics(content)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
	if got := diagnostics("*.go\n"); got == nil || len(got) != 0 {
		t.Errorf("diagnostics of a good document -> %#v, want empty non-nil slice", got)
	}
}

func TestPatternLines(t *testing.T) {
	got := patternLines("a\r\n#b\n\nc")
	want := []patternLine{{"a", 0}, {"c", 7}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(patternLine{})); diff != "" {
		t.Errorf("patternLines (-want +got):\n%s", diff)
	}
}

func TestPositions(t *testing.T) {
	s := "a\nb日\U0001F600c\r\nd"
	tests := []struct {
		idx int
		pos lsp.Position
	}{
		{0, pos(0, 0)},
		{2, pos(1, 0)},
		{3, pos(1, 1)},
		{6, pos(1, 2)},
		{10, pos(1, 4)},
		{12, pos(2, 0)},
	}
	for _, test := range tests {
		if got := lspPositionFromIdx(s, test.idx); got != test.pos {
			t.Errorf("lspPositionFromIdx(%d) -> %v, want %v", test.idx, got, test.pos)
		}
		if got := lspPositionToIdx(s, test.pos); got != test.idx {
			t.Errorf("lspPositionToIdx(%v) -> %d, want %d", test.pos, got, test.idx)
		}
	}
	// The "\n" of "\r\n" does not start another line.
	if got := lspPositionFromIdx(s, 13); got != pos(2, 0) {
		t.Errorf("lspPositionFromIdx(13) -> %v, want %v", got, pos(2, 0))
	}
}

func TestHover(t *testing.T) {
	s := newServer()
	uri := lsp.DocumentURI("file:///patterns")
	s.content[uri] = "# header\na*\n[x\n"

	hover := func(p lsp.Position) lsp.Hover {
		t.Helper()
		params, _ := json.Marshal(lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: uri}, Position: p})
		result, err := s.hover(context.Background(), nil, params)
		if err != nil {
			t.Fatal(err)
		}
		return result.(lsp.Hover)
	}

	h := hover(pos(1, 1))
	if len(h.Contents) != 1 || h.Contents[0].Value != "NFA: 3 states, DFA: 3 states" {
		t.Errorf("hover on a* -> %#v", h.Contents)
	}
	if h.Range == nil || *h.Range != rng(pos(1, 0), pos(1, 2)) {
		t.Errorf("hover range -> %v", h.Range)
	}
	if h := hover(pos(0, 3)); len(h.Contents) != 0 {
		t.Errorf("hover on comment -> %#v", h.Contents)
	}
	if h := hover(pos(2, 1)); len(h.Contents) != 0 {
		t.Errorf("hover on bad pattern -> %#v", h.Contents)
	}
}

func TestServe(t *testing.T) {
	serverEnd, clientEnd := net.Pipe()
	done := make(chan struct{})
	go func() {
		serve(context.Background(), serverEnd)
		close(done)
	}()

	published := make(chan lsp.PublishDiagnosticsParams, 10)
	ctx := context.Background()
	client := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientEnd, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
				var params lsp.PublishDiagnosticsParams
				if json.Unmarshal(*req.Params, &params) == nil {
					published <- params
				}
			}
			return nil, nil
		}))

	var init lsp.InitializeResult
	if err := client.Call(ctx, "initialize", lsp.InitializeParams{}, &init); err != nil {
		t.Fatal(err)
	}
	if !init.Capabilities.HoverProvider {
		t.Errorf("hover not advertised")
	}

	uri := lsp.DocumentURI("file:///patterns")
	client.Notify(ctx, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Text: "*.txt\n[a\n"}})
	if p := receive(t, published); p.URI != uri || len(p.Diagnostics) != 1 {
		t.Errorf("after didOpen got %#v", p)
	}

	client.Notify(ctx, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "*.txt\n[a]\n"}}})
	if p := receive(t, published); len(p.Diagnostics) != 0 {
		t.Errorf("after didChange got %#v", p)
	}

	err := client.Call(ctx, "no/such/method", nil, nil)
	if rpcErr, ok := err.(*jsonrpc2.Error); !ok || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("unknown method -> %v", err)
	}

	client.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Errorf("server did not exit after the client disconnected")
	}
}

func receive(t *testing.T, ch <-chan lsp.PublishDiagnosticsParams) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}
