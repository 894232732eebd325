package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExec(t *testing.T) {
	var seen []string
	fn := func(_ context.Context, argv []string, _, _ io.Writer) int {
		seen = argv
		return 0
	}

	assert.Equal(t, 0, Exec(context.Background(), fn, nil, io.Discard, io.Discard))
	assert.Equal(t, []string{"-h"}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, 130, Exec(ctx, fn, []string{"--version"}, io.Discard, io.Discard))

	failing := func(context.Context, []string, io.Writer, io.Writer) int { return 3 }
	assert.Equal(t, 3, Exec(ctx, failing, []string{"x"}, io.Discard, io.Discard))
}
