package product

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/pkg/id"
	"github.com/wardro8e/api/internal/pkg/validate"
)

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	ListByBrand(ctx context.Context, brandID string) ([]domain.Product, error)
}

type brandStore interface {
	Get(ctx context.Context, brandID string) (*domain.Brand, error)
}

type objectStore interface {
	Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// embeddingEnqueuer hands a product image to the embedding pipeline.
// May be nil when no embedding service is configured.
type embeddingEnqueuer interface {
	Enqueue(productID, imageURL string) bool
}

type Service interface {
	List(ctx context.Context, brandID string) ([]domain.Product, error)
	Create(ctx context.Context, brandID string, req domain.CreateProductRequest) (*domain.Product, error)
	UploadImage(ctx context.Context, brandID, filename string, r io.Reader, contentType string) (string, error)
	DeleteImage(ctx context.Context, brandID, key string) error
}

type ServiceDeps struct {
	ProductRepo  productStore
	BrandRepo    brandStore
	ObjectStore  objectStore
	ImagesBucket string
	Embedder     embeddingEnqueuer
}

type service struct {
	productRepo  productStore
	brandRepo    brandStore
	objects      objectStore
	imagesBucket string
	embedder     embeddingEnqueuer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		productRepo:  deps.ProductRepo,
		brandRepo:    deps.BrandRepo,
		objects:      deps.ObjectStore,
		imagesBucket: deps.ImagesBucket,
		embedder:     deps.Embedder,
	}
}

func (s *service) List(ctx context.Context, brandID string) ([]domain.Product, error) {
	return s.productRepo.ListByBrand(ctx, brandID)
}

// Create inserts a product for a verified brand. Embedding generation is
// queued after the insert and never blocks or fails product creation.
func (s *service) Create(ctx context.Context, brandID string, req domain.CreateProductRequest) (*domain.Product, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	brand, err := s.brandRepo.Get(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("brand not found: %w", domain.ErrNotFound)
	}
	if !brand.Verified {
		return nil, fmt.Errorf("brand verification required before listing products: %w", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:     id.New(),
		BrandID:       brandID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURLs:     req.ImageURLs,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if s.embedder != nil && len(p.ImageURLs) > 0 {
		p.EmbeddingStatus = domain.EmbeddingPending
	}
	if err := s.productRepo.Put(ctx, p); err != nil {
		return nil, err
	}

	if p.EmbeddingStatus == domain.EmbeddingPending {
		s.embedder.Enqueue(p.ProductID, p.ImageURLs[0])
	}
	return p, nil
}

func (s *service) UploadImage(ctx context.Context, brandID, filename string, r io.Reader, contentType string) (string, error) {
	if _, err := s.brandRepo.Get(ctx, brandID); err != nil {
		return "", fmt.Errorf("brand not found: %w", domain.ErrNotFound)
	}
	ext := path.Ext(filename)
	key := fmt.Sprintf("%s/products/%s%s", brandID, id.New(), ext)
	return s.objects.Upload(ctx, s.imagesBucket, key, r, contentType)
}

// DeleteImage removes an uploaded image. Keys are namespaced per brand on
// upload; a key outside the caller's namespace is rejected, so one brand
// cannot delete another's objects.
func (s *service) DeleteImage(ctx context.Context, brandID, key string) error {
	if !strings.HasPrefix(key, brandID+"/products/") {
		return fmt.Errorf("image does not belong to this brand: %w", domain.ErrForbidden)
	}
	if err := s.objects.Delete(ctx, s.imagesBucket, key); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
