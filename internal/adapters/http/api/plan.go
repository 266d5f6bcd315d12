package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/kitcast/internal/app"
	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
)

// PlanDependencies computes single plans.
type PlanDependencies interface {
	WearPlan(ctx context.Context, req model.PlanRequest) (gear.WearPlan, error)
	GearSuggestions(ctx context.Context, req model.PlanRequest) (gear.GearSuggestion, error)
	NormalizeProfile(ctx context.Context, raw any) gear.ComfortProfile
}

// PlanHandler handles /v1/wear-plan and /v1/gear.
type PlanHandler struct {
	deps     PlanDependencies
	validate *validator.Validate
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(deps PlanDependencies) *PlanHandler {
	return &PlanHandler{deps: deps, validate: newValidator()}
}

// HandleWearPlan handles POST /v1/wear-plan requests.
func (h *PlanHandler) HandleWearPlan(w http.ResponseWriter, r *http.Request) {
	const op = "api.wear_plan"
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	plan, err := h.deps.WearPlan(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// HandleGear handles POST /v1/gear requests. Overrides are ignored because
// the pack list is built from the raw forecast.
func (h *PlanHandler) HandleGear(w http.ResponseWriter, r *http.Request) {
	const op = "api.gear"
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	req.Overrides = nil
	sug, err := h.deps.GearSuggestions(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sug)
}

func (h *PlanHandler) decode(w http.ResponseWriter, r *http.Request, op string) (model.PlanRequest, bool) {
	if !requireMethod(w, r, op, http.MethodPost) {
		return model.PlanRequest{}, false
	}
	var body planRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.PlanRequest{}, false
	}
	if err := h.validate.Struct(&body); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", WrapKind(op, ErrValidation, describeValidation(err)))
		return model.PlanRequest{}, false
	}
	return body.toModel(func(raw any) gear.ComfortProfile {
		return h.deps.NormalizeProfile(r.Context(), raw)
	}), true
}

// writeServiceError maps service sentinels onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSport),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "validation_failed", WrapKind(op, ErrValidation, err))
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, service.ErrBatchTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
	}
}
