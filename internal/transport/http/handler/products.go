package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wardro8e/api/internal/application/product"
	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// ProductHandler handles the brand catalog endpoints.
type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	products, err := h.svc.List(r.Context(), claims.AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// Create lists a new product. Only verified brands may list; the embedding
// for visual search is generated asynchronously after the write.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Create(r.Context(), claims.AccountID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created",
		"product": p,
	})
}

// UploadImage stores a single product image and returns its public URL.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer f.Close()

	url, err := h.svc.UploadImage(r.Context(), claims.AccountID, header.Filename, f, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// DeleteImage removes a previously uploaded product image by its storage key.
func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	if err := h.svc.DeleteImage(r.Context(), claims.AccountID, key); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Image deleted"})
}
