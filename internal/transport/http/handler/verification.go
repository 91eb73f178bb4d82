package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/wardro8e/api/internal/application/verification"
	"github.com/wardro8e/api/internal/domain"
	s3infra "github.com/wardro8e/api/internal/infrastructure/s3"
	"github.com/wardro8e/api/internal/transport/http/middleware"
)

// VerificationHandler handles the brand verification endpoints.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Submit accepts the multipart verification form. Text fields map onto the
// typed request; documents arrive under address_proof_documents and
// contract_documents.
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := domain.SubmitVerificationRequest{
		BusinessType:      r.FormValue("business_type"),
		GSTIN:             r.FormValue("gstin"),
		PANNumber:         r.FormValue("pan_number"),
		ContactName:       r.FormValue("contact_name"),
		ContactPhone:      r.FormValue("contact_phone"),
		ContactEmail:      r.FormValue("contact_email"),
		AddressLine1:      r.FormValue("address_line1"),
		AddressLine2:      r.FormValue("address_line2"),
		City:              r.FormValue("city"),
		State:             r.FormValue("state"),
		Pincode:           r.FormValue("pincode"),
		BankName:          r.FormValue("bank_name"),
		AccountHolderName: r.FormValue("account_holder_name"),
		AccountNumber:     r.FormValue("account_number"),
		IFSCCode:          r.FormValue("ifsc_code"),
		WebsiteURL:        r.FormValue("website_url"),
		InstagramHandle:   r.FormValue("instagram_handle"),
		ContractAction:    r.FormValue("contract_document_action"),
		UserIP:            middleware.ClientIdentifier(r),
		UserAgent:         r.UserAgent(),
	}

	addressProofs, err := openFiles(r.MultipartForm.File["address_proof_documents"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable address proof document")
		return
	}
	defer closeFiles(addressProofs)
	if len(addressProofs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one address proof document is required")
		return
	}

	contracts, err := openFiles(r.MultipartForm.File["contract_documents"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable contract document")
		return
	}
	defer closeFiles(contracts)
	if req.ContractAction == domain.ContractActionManualSign && len(contracts) == 0 {
		writeError(w, http.StatusBadRequest, "signed contract document is required for manual signing")
		return
	}

	v, err := h.svc.Submit(r.Context(), claims.AccountID, req, toUploads(addressProofs), toUploads(contracts))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Verification submitted",
		"verification": v,
	})
}

// Status reports the current verification state, or a null status when the
// brand has not submitted yet.
func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	v, err := h.svc.Status(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"status": nil})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           v.Status,
		"rejection_reason": v.RejectionReason,
		"submitted_at":     v.Metadata.SubmittedAt,
	})
}

// Document streams back one of the brand's own submitted documents, looked
// up by its storage key.
func (h *VerificationHandler) Document(w http.ResponseWriter, r *http.Request) {
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
	rc, doc, err := h.svc.Document(r.Context(), claims.AccountID, key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", s3infra.DetectContentType(doc.OriginalName))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("failed to stream verification document", "brand_id", claims.AccountID, "err", err)
	}
}

type openedFile struct {
	file   multipart.File
	header *multipart.FileHeader
}

func openFiles(headers []*multipart.FileHeader) ([]openedFile, error) {
	var out []openedFile
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeFiles(out)
			return nil, err
		}
		out = append(out, openedFile{file: f, header: fh})
	}
	return out, nil
}

func closeFiles(files []openedFile) {
	for _, f := range files {
		_ = f.file.Close()
	}
}

func toUploads(files []openedFile) []verification.FileUpload {
	var out []verification.FileUpload
	for _, f := range files {
		out = append(out, verification.FileUpload{
			Filename:    f.header.Filename,
			ContentType: f.header.Header.Get("Content-Type"),
			Content:     f.file,
		})
	}
	return out
}
