package verification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/pkg/id"
	"github.com/wardro8e/api/internal/pkg/validate"
)

// FileUpload is one document from the multipart submission.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.BrandVerification) error
	Get(ctx context.Context, brandID string) (*domain.BrandVerification, error)
}

type brandStore interface {
	Get(ctx context.Context, brandID string) (*domain.Brand, error)
}

type objectStore interface {
	Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type mailer interface {
	SendVerificationSubmittedEmail(to, contactName, status string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type Service interface {
	Submit(ctx context.Context, brandID string, req domain.SubmitVerificationRequest, addressProofs, contracts []FileUpload) (*domain.BrandVerification, error)
	Status(ctx context.Context, brandID string) (*domain.BrandVerification, error)
	Document(ctx context.Context, brandID, key string) (io.ReadCloser, *domain.UploadedDocument, error)
}

type ServiceDeps struct {
	VerificationRepo    verificationStore
	BrandRepo           brandStore
	ObjectStore         objectStore
	Mailer              mailer
	Events              eventPublisher // may be nil
	AddressProofsBucket string
	ContractsBucket     string
}

type service struct {
	verificationRepo verificationStore
	brandRepo        brandStore
	objects          objectStore
	mailer           mailer
	events           eventPublisher
	addressBucket    string
	contractsBucket  string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verificationRepo: deps.VerificationRepo,
		brandRepo:        deps.BrandRepo,
		objects:          deps.ObjectStore,
		mailer:           deps.Mailer,
		events:           deps.Events,
		addressBucket:    deps.AddressProofsBucket,
		contractsBucket:  deps.ContractsBucket,
	}
}

// Submit validates the typed form, stores the documents and upserts the
// verification record. The record's status derives from the signing method.
// Confirmation email and ops event are best-effort.
func (s *service) Submit(ctx context.Context, brandID string, req domain.SubmitVerificationRequest, addressProofs, contracts []FileUpload) (*domain.BrandVerification, error) {
	if _, err := s.brandRepo.Get(ctx, brandID); err != nil {
		return nil, fmt.Errorf("brand not found: %w", domain.ErrNotFound)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	uploadedProofs, err := s.uploadAll(ctx, s.addressBucket, brandID, "address-proof", "address_proof", addressProofs)
	if err != nil {
		return nil, fmt.Errorf("upload address proof document: %w", err)
	}

	var uploadedContracts []domain.UploadedDocument
	if req.ContractAction == domain.ContractActionManualSign {
		uploadedContracts, err = s.uploadAll(ctx, s.contractsBucket, brandID, "contracts", "contract", contracts)
		if err != nil {
			return nil, fmt.Errorf("upload contract document: %w", err)
		}
	}

	status := domain.VerificationUnderReview
	if req.ContractAction == domain.ContractActionESign {
		status = domain.VerificationAwaitingESign
	}

	now := time.Now().UTC()
	createdAt := now
	if existing, err := s.verificationRepo.Get(ctx, brandID); err == nil {
		createdAt = existing.CreatedAt
	}

	v := &domain.BrandVerification{
		BrandID:               brandID,
		Status:                status,
		BusinessType:          req.BusinessType,
		GSTIN:                 req.GSTIN,
		PANNumber:             req.PANNumber,
		ContactName:           req.ContactName,
		ContactPhone:          req.ContactPhone,
		ContactEmail:          req.ContactEmail,
		AddressLine1:          req.AddressLine1,
		AddressLine2:          req.AddressLine2,
		City:                  req.City,
		State:                 req.State,
		Pincode:               req.Pincode,
		BankName:              req.BankName,
		AccountHolderName:     req.AccountHolderName,
		AccountNumber:         req.AccountNumber,
		IFSCCode:              req.IFSCCode,
		WebsiteURL:            req.WebsiteURL,
		InstagramHandle:       req.InstagramHandle,
		ContractAction:        req.ContractAction,
		AddressProofDocuments: uploadedProofs,
		ContractDocuments:     uploadedContracts,
		UserIP:                req.UserIP,
		Metadata: domain.SubmissionMetadata{
			UserAgent:   req.UserAgent,
			SubmittedAt: now,
		},
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return nil, fmt.Errorf("save verification: %w", err)
	}

	if err := s.mailer.SendVerificationSubmittedEmail(req.ContactEmail, req.ContactName, status); err != nil {
		slog.Warn("failed to send verification confirmation email", "brand_id", brandID, "err", err)
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, "brand.verification.submitted", map[string]string{
			"brand_id": brandID,
			"status":   status,
		}); err != nil {
			slog.Warn("failed to publish verification event", "brand_id", brandID, "err", err)
		}
	}
	return v, nil
}

func (s *service) Status(ctx context.Context, brandID string) (*domain.BrandVerification, error) {
	if _, err := s.brandRepo.Get(ctx, brandID); err != nil {
		return nil, fmt.Errorf("brand not found: %w", domain.ErrNotFound)
	}
	return s.verificationRepo.Get(ctx, brandID)
}

// Document streams back one of the brand's own submitted files. The key must
// appear in the brand's verification record, which both authorizes the read
// and selects the bucket from the document type. The caller closes the stream.
func (s *service) Document(ctx context.Context, brandID, key string) (io.ReadCloser, *domain.UploadedDocument, error) {
	v, err := s.verificationRepo.Get(ctx, brandID)
	if err != nil {
		return nil, nil, fmt.Errorf("verification record not found: %w", domain.ErrNotFound)
	}

	var doc *domain.UploadedDocument
	for i := range v.AddressProofDocuments {
		if v.AddressProofDocuments[i].Key == key {
			doc = &v.AddressProofDocuments[i]
		}
	}
	for i := range v.ContractDocuments {
		if v.ContractDocuments[i].Key == key {
			doc = &v.ContractDocuments[i]
		}
	}
	if doc == nil {
		return nil, nil, fmt.Errorf("document not found: %w", domain.ErrNotFound)
	}

	bucket := s.addressBucket
	if doc.Type == "contract" {
		bucket = s.contractsBucket
	}
	rc, err := s.objects.Download(ctx, bucket, key)
	if err != nil {
		return nil, nil, fmt.Errorf("download document: %w", err)
	}
	return rc, doc, nil
}

func (s *service) uploadAll(ctx context.Context, bucket, brandID, prefix, docType string, files []FileUpload) ([]domain.UploadedDocument, error) {
	var docs []domain.UploadedDocument
	for _, f := range files {
		ext := path.Ext(f.Filename)
		key := fmt.Sprintf("%s/%s/%s%s", brandID, prefix, id.New(), ext)
		if _, err := s.objects.Upload(ctx, bucket, key, f.Content, f.ContentType); err != nil {
			return nil, err
		}
		docs = append(docs, domain.UploadedDocument{
			Type:         docType,
			Key:          key,
			OriginalName: f.Filename,
			UploadedAt:   time.Now().UTC(),
		})
	}
	return docs, nil
}
