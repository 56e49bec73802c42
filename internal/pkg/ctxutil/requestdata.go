package ctxutil

import (
	"context"

	"github.com/medtrace/medtrace-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData is the authenticated identity attached to a request context by
// the auth middleware.
type RequestData struct {
	AccountID uint
	Role      domain.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
