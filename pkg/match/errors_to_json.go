package match

import (
	"encoding/json"

	"github.com/ianloic/llvm-fnmatch/pkg/diag"
)

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	Name    string `json:"name"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message"`
}

// An auxiliary struct for converting errors with only a message to JSON.
type simpleErrorInJSON struct {
	Message string `json:"message"`
}

// Converts the error into a JSON array with one element.
func errorToJSON(err error) []byte {
	var e any
	switch err := err.(type) {
	case *diag.Error:
		e = []errorInJSON{{err.Context.Name, err.Context.From, err.Context.To, err.Message}}
	default:
		e = []simpleErrorInJSON{{err.Error()}}
	}
	jsonError, errMarshal := json.Marshal(e)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
