package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithContext кладёт логгер запроса в контекст
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext достаёт логгер из контекста, либо возвращает fallback.
// Если fallback не задан - zap.NewNop().
func FromContext(ctx context.Context, fallback ...*zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return zap.NewNop()
}
