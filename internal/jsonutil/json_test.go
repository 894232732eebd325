package jsonutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	in := map[string]any{"total_fragments": 25, "files": []string{"a", "b"}}
	require.NoError(t, EncodePretty(&buf, in))

	out := buf.String()
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
	assert.Contains(t, out, "\n  \"")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(25), got["total_fragments"])
}

func TestEncodePrettyUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EncodePretty(&buf, make(chan int)))
	assert.Zero(t, buf.Len())
}
