package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(Config{Level: "info", OutputPaths: []string{fn}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("created fifo")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"created fifo"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	assert.NotNil(t, NewOrNop(Config{Level: "loud"}))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := NewOrNop(DefaultConfig())
	assert.Same(t, l, OrNop(l))
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(Config{Level: "warn"}, &buf)
	require.NoError(t, err)
	logger.Info("quiet")
	logger.Warn("mate files have different record counts")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.NotContains(t, buf.String(), "quiet")

	buf.Reset()
	dev, err := NewWriter(Config{Level: "debug", Development: true}, &buf)
	require.NoError(t, err)
	dev.Debug("transforming file pair")
	assert.Contains(t, buf.String(), "transforming file pair")
	assert.NotContains(t, buf.String(), `"message"`)

	_, err = NewWriter(Config{Level: "loud"}, &buf)
	assert.Error(t, err)
}
