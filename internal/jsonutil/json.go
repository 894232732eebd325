// internal/jsonutil/json.go
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

// EncodePretty writes v as indented JSON to w, newline-terminated.
func EncodePretty(w io.Writer, v any) error {
	b, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
