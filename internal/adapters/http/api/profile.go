package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/kitcast/internal/domain/gear"
)

// ProfileDependencies normalizes comfort profiles.
type ProfileDependencies interface {
	NormalizeProfile(ctx context.Context, raw any) gear.ComfortProfile
}

// ProfileHandler handles /v1/comfort-profile/normalize.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleNormalize handles POST /v1/comfort-profile/normalize. Any JSON body
// is accepted; only malformed JSON is rejected.
func (h *ProfileHandler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	const op = "api.normalize_profile"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.NormalizeProfile(r.Context(), raw))
}
