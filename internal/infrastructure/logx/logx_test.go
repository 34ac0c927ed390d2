package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContextWithFields_Accumulates(t *testing.T) {
	ctx := ContextWithFields(context.Background(), zap.String("request_id", "r-1"))
	ctx = ContextWithFields(ctx, zap.String("trace_id", "t-1"))

	fields, ok := ctx.Value(fieldsKey{}).([]zap.Field)
	require.True(t, ok)
	require.Len(t, fields, 2)
	require.Equal(t, "request_id", fields[0].Key)
	require.Equal(t, "trace_id", fields[1].Key)
}

func TestContextWithFields_DoesNotAliasParent(t *testing.T) {
	parent := ContextWithFields(context.Background(), zap.String("a", "1"))
	left := ContextWithFields(parent, zap.String("b", "2"))
	right := ContextWithFields(parent, zap.String("c", "3"))

	lf := left.Value(fieldsKey{}).([]zap.Field)
	rf := right.Value(fieldsKey{}).([]zap.Field)
	require.Equal(t, "b", lf[1].Key)
	require.Equal(t, "c", rf[1].Key)
}

func TestWithFields_FallsBackToRoot(t *testing.T) {
	require.Same(t, L(), WithFields(context.Background()))
	require.NotSame(t, L(), WithFields(ContextWithFields(context.Background(), zap.Int("n", 1))))
}
