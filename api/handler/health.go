package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/internal/infrastructure/monitor"
	"github.com/taskhive/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
			"storage":    status.Storage,
		},
	}

	if status.PostgreSQL && status.Redis && status.Storage {
		h.respondJSON(ctx, http.StatusOK, map[string]interface{}{
			"status":  "OK",
			"details": payload,
		})
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, map[string]interface{}{
		"status":  "DEGRADED",
		"details": payload,
	})
}
