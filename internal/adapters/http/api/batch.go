package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
	"github.com/okian/kitcast/internal/domain/types"
)

// BatchDependencies plans many scenarios on the worker pool.
type BatchDependencies interface {
	PlanBatch(ctx context.Context, reqs []model.PlanRequest) (types.BatchResponse, error)
	NormalizeProfile(ctx context.Context, raw any) gear.ComfortProfile
	MaxBatchSize() int
}

// BatchHandler handles /v1/batch.
type BatchHandler struct {
	deps     BatchDependencies
	validate *validator.Validate
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps, validate: newValidator()}
}

// HandleBatch handles POST /v1/batch requests.
func (h *BatchHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	var body batchRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if limit := h.deps.MaxBatchSize(); len(body.Scenarios) > limit {
		err := fmt.Errorf("%d scenarios exceeds max_batch_size %d", len(body.Scenarios), limit)
		writeError(w, http.StatusBadRequest, "batch_too_large", WrapKind(op, ErrValidation, err))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", WrapKind(op, ErrValidation, describeValidation(err)))
		return
	}

	normalize := func(raw any) gear.ComfortProfile { return h.deps.NormalizeProfile(r.Context(), raw) }
	reqs := make([]model.PlanRequest, len(body.Scenarios))
	for i := range body.Scenarios {
		reqs[i] = body.Scenarios[i].toModel(normalize)
	}

	resp, err := h.deps.PlanBatch(r.Context(), reqs)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
