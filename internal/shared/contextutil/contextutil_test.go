package contextutil_test

import (
	"context"
	"testing"

	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUser(ctx, "7", "hr")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", UserID: "7", Role: "hr"}, md)
	assert.Len(t, md.Fields(), 3)
}

func TestMetadataFieldsSkipEmpty(t *testing.T) {
	md := contextutil.ExtractMetadata(contextutil.WithRequestID(context.Background(), "rid-2"))

	fields := md.Fields()
	assert.Len(t, fields, 1)
	assert.Equal(t, "request_id", fields[0].Key)
	assert.Equal(t, "", contextutil.GetRole(context.Background()))
}

func TestGetLoggerFallbacks(t *testing.T) {
	def := zap.NewNop().Named("default")
	scoped := zap.NewNop().Named("scoped")

	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	assert.Same(t, scoped, contextutil.GetLogger(contextutil.WithLogger(context.Background(), scoped), def))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}
