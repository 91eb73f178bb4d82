package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wardro8e/api/internal/application/brand"
	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// SettingsHandler handles the brand profile-settings endpoints.
type SettingsHandler struct {
	svc brand.Service
}

func NewSettingsHandler(svc brand.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	settings, err := h.svc.GetSettings(r.Context(), claims.AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update applies a partial settings change. Unknown fields are ignored; an
// update carrying no recognized field is rejected.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateBrandSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings, err := h.svc.UpdateSettings(r.Context(), claims.AccountID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Settings updated",
		"settings": settings,
	})
}
