package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// TokenResolver maps an opaque bearer token to the owning user id.
type TokenResolver interface {
	ResolveToken(ctx context.Context, value string) (string, error)
}

func TokenAuth(resolver TokenResolver, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := extractToken(ctx)
			if token == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			userID, err := resolver.ResolveToken(ctx, token)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set("X-User-ID", userID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
