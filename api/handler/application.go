package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/landgov/backend/api/transport"
	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/pkg/httpcontext"
	"github.com/landgov/backend/usecase/workflow"
)

type ApplicationHandler struct {
	baseHandler
	engine *workflow.Engine
}

func NewApplicationHandler(engine *workflow.Engine, adapter *httpcontext.Adapter, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
	}
}

// @Summary Submit an application
// @Tags applications
// @Router /api/v1/applications [post]
func (h *ApplicationHandler) Submit(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	var req transport.SubmitApplicationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.engine.Submit(stdCtx, caller, workflow.SubmitRequest{
		Type:      domain.ApplicationType(req.ApplicationType),
		PlotID:    req.PlotID,
		Documents: req.Documents,
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, app)
}

// @Summary List applications visible to the caller
// @Tags applications
// @Router /api/v1/applications [get]
func (h *ApplicationHandler) List(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	apps, err := h.engine.ListApplications(stdCtx, caller)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, apps)
}

// @Summary Get one application
// @Tags applications
// @Router /api/v1/applications/{id} [get]
func (h *ApplicationHandler) Get(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.engine.GetApplication(stdCtx, caller, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, app)
}

// @Summary Update an application's review status
// @Tags applications
// @Router /api/v1/applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id"))
		return
	}

	var req transport.UpdateStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.engine.UpdateStatus(stdCtx, caller, id, req.Status, req.Remarks)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, app)
}

// @Summary Pay the filing fee
// @Tags applications
// @Router /api/v1/applications/{id}/payment [post]
func (h *ApplicationHandler) CompletePayment(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing application id"))
		return
	}

	var req transport.PaymentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payment, err := h.engine.CompletePayment(stdCtx, caller, id, req.Amount)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, payment)
}
