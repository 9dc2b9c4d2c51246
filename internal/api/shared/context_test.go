package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
}

func TestUserID(t *testing.T) {
	t.Parallel()

	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(SetUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := GetUserID(SetUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
