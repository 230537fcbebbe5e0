package contextutil_test

import (
	"context"
	"testing"

	"go-teamhub/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithJob(ctx, "auto_absent")

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "rid-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "auto_absent", md.Job)
	assert.Len(t, contextutil.Fields(ctx), 3)
}

func TestFields_SkipsEmpty(t *testing.T) {
	ctx := contextutil.WithJob(context.Background(), "weekend_marking")
	assert.Len(t, contextutil.Fields(ctx), 1)
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	l := zap.NewNop()
	ctx := contextutil.WithLogger(context.Background(), l)
	assert.Same(t, l, contextutil.GetLogger(ctx, nil))
}
