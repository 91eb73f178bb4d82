package handler

import (
	"net/http"

	"github.com/wardro8e/api/internal/embedding"
)

// HealthHandler handles liveness and embedding-service health endpoints.
type HealthHandler struct {
	embedder *embedding.Client
}

func NewHealthHandler(embedder *embedding.Client) *HealthHandler {
	return &HealthHandler{embedder: embedder}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}

// EmbeddingHealth proxies the downstream embedding service's health check so
// operators can probe the whole visual-search path through one API.
func (h *HealthHandler) EmbeddingHealth(w http.ResponseWriter, r *http.Request) {
	if h.embedder == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "disabled"})
		return
	}
	if err := h.embedder.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unreachable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
