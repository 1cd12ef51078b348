package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/landgov/backend/internal/infrastructure/monitor"
	"github.com/landgov/backend/pkg/httpcontext"
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

// @Summary Service health
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	}

	status := http.StatusOK
	if h.monitor != nil {
		snapshot := h.monitor.GetStatus()
		payload["components"] = snapshot
		if !h.monitor.IsOnline() {
			payload["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	h.respondSuccess(ctx, status, payload)
}
