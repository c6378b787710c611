package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	ctx, logger := With(ctx, "shader", "glow")
	assert.Same(t, logger, FromContext(ctx))

	FromContext(ctx).Info("committed")
	assert.Contains(t, buf.String(), "shader=glow")
	assert.Contains(t, buf.String(), "msg=committed")
}
