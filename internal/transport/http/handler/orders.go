package handler

import (
	"net/http"

	"github.com/wardro8e/api/internal/application/order"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// OrderHandler handles the brand order endpoints.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := h.svc.List(r.Context(), claims.AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": items})
}
