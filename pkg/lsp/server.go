package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/ianloic/llvm-fnmatch/pkg/diag"
	"github.com/ianloic/llvm-fnmatch/pkg/dfa"
	"github.com/ianloic/llvm-fnmatch/pkg/nfa"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/didClose":  s.didClose,
		"textDocument/hover":     s.hover,

		"initialized": noop,
		// Sent by some clients even if the server doesn't support it.
		"workspace/didChangeWatchedFiles": noop,
		"shutdown":                        noop,
		"exit":                            noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("request:", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// Only full syncs are advertised in initialize, so the last change holds
	// the whole text.
	uri := params.TextDocument.URI
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content, ok := s.content[params.TextDocument.URI]
	if !ok {
		return lsp.Hover{}, nil
	}
	idx := lspPositionToIdx(content, params.Position)
	for _, l := range patternLines(content) {
		if idx < l.from || idx > l.from+len(l.pattern) {
			continue
		}
		n, err := nfa.Compile(l.pattern)
		if err != nil {
			return lsp.Hover{}, nil
		}
		d := dfa.FromNFA(n)
		rng := lspRangeFromRange(content, diag.Ranging{From: l.from, To: l.from + len(l.pattern)})
		return lsp.Hover{
			Contents: []lsp.MarkedString{lsp.RawMarkedString(
				fmt.Sprintf("NFA: %d states, DFA: %d states", n.Len(), d.Len()))},
			Range: &rng,
		}, nil
	}
	return lsp.Hover{}, nil
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(content)})
}

func diagnostics(content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	for _, l := range patternLines(content) {
		_, err := nfa.Compile(l.pattern)
		if err == nil {
			continue
		}
		r := diag.Ranging{From: l.from, To: l.from + len(l.pattern)}
		if diagErr, ok := err.(*diag.Error); ok {
			rg := diagErr.Range()
			r = diag.Ranging{From: l.from + rg.From, To: l.from + rg.To}
			err = diagErr.Cause
		}
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRangeFromRange(content, r),
			Severity: lsp.Error,
			Source:   "fnmatch",
			Message:  err.Error(),
		})
	}
	return diags
}

// A line of a document holding a pattern.
type patternLine struct {
	pattern string
	// Byte offset of the line in the document.
	from int
}

// Returns the lines of s that hold patterns, skipping blank lines and lines
// starting with "#". Line terminators, including a "\r" before "\n", are not
// part of the patterns.
func patternLines(s string) []patternLine {
	var lines []patternLine
	from := 0
	for from <= len(s) {
		end := strings.IndexByte(s[from:], '\n')
		if end == -1 {
			end = len(s)
		} else {
			end += from
		}
		line := strings.TrimSuffix(s[from:end], "\r")
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, patternLine{line, from})
		}
		from = end + 1
	}
	return lines
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
// Characters are counted in UTF-16 code units.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			p.Character++
		default:
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
