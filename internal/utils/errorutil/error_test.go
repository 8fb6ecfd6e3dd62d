package errorutil

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	err := WrapError(errBoom, "failed to load %s", "BrandedToken")
	assert.EqualError(t, err, "failed to load BrandedToken: boom")
	assert.ErrorIs(t, err, errBoom)
}

func TestHandleContextError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	assert.NoError(t, HandleContextError(log, context.Background(), nil, "timeout", "failed"))
	assert.Empty(t, buf.String())

	err := HandleContextError(log, context.Background(), errBoom, "timeout", "failed")
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, buf.String(), `"message":"failed"`)

	buf.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = HandleContextError(log, ctx, WrapError(context.Canceled, "wait"), "timeout", "failed")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), `"message":"timeout"`)
}
