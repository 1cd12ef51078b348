package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/landgov/backend/api/transport"
	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/pkg/httpcontext"
	"github.com/landgov/backend/repository"
	registryUC "github.com/landgov/backend/usecase/registry"
)

type PlotHandler struct {
	baseHandler
	uc *registryUC.UseCase
}

func NewPlotHandler(uc *registryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PlotHandler {
	return &PlotHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List plots
// @Tags plots
// @Router /api/v1/plots [get]
func (h *PlotHandler) List(ctx *fasthttp.RequestCtx) {
	if _, ok := h.caller(ctx); !ok {
		return
	}

	filter := repository.PlotFilter{
		PlotID:     string(ctx.QueryArgs().Peek("plot_id")),
		OwnerEmail: string(ctx.QueryArgs().Peek("owner_email")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	plots, err := h.uc.ListPlots(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, plots)
}

// @Summary Get one plot
// @Tags plots
// @Router /api/v1/plots/{id} [get]
func (h *PlotHandler) Get(ctx *fasthttp.RequestCtx) {
	if _, ok := h.caller(ctx); !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing plot id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	plot, err := h.uc.GetPlot(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, plot)
}
