package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// userID reads the caller identity resolved by the auth middleware. An empty
// result means the middleware did not run for this route; the 401 is written
// here so handlers can bail with a bare return.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		ctx.SetStatusCode(http.StatusUnauthorized)
	}
	return userID
}

// bearerToken extracts the raw presented token so logout can revoke exactly
// that credential.
func bearerToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

// respondTaskError maps resolution and policy errors for the task endpoints:
// ownership failures get 403, unknown ids 404, anything else the endpoint's
// generic failure envelope.
func (h baseHandler) respondTaskError(ctx *fasthttp.RequestCtx, err error, fallback string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		h.respondJSON(ctx, http.StatusForbidden, transport.NewStatusError(domain.ErrForbidden.Message))
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.respondJSON(ctx, http.StatusNotFound, transport.NewStatusError(domain.ErrTaskNotFound.Message))
	default:
		h.logger.Error("task operation failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewFailure(fallback, err))
	}
}
