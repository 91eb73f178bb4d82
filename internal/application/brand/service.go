package brand

import (
	"context"
	"fmt"
	"strings"

	"github.com/wardro8e/api/internal/domain"
	"github.com/wardro8e/api/internal/pkg/validate"
	"github.com/wardro8e/api/internal/signup"
)

// Brand attribute names used in partial update maps.
const (
	fieldBrandName   = "brand_name"
	fieldDescription = "description"
	fieldEmail       = "email"
)

type brandStore interface {
	Get(ctx context.Context, brandID string) (*domain.Brand, error)
	Update(ctx context.Context, brandID string, updates map[string]interface{}) error
}

// Service exposes the dashboard settings surface.
type Service interface {
	GetSettings(ctx context.Context, brandID string) (*domain.BrandSettings, error)
	UpdateSettings(ctx context.Context, brandID string, req domain.UpdateBrandSettingsRequest) (*domain.BrandSettings, error)
}

type service struct {
	repo brandStore
}

func NewService(repo brandStore) Service {
	return &service{repo: repo}
}

func (s *service) GetSettings(ctx context.Context, brandID string) (*domain.BrandSettings, error) {
	b, err := s.repo.Get(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return toSettings(b), nil
}

// UpdateSettings applies a whitelisted partial update. Unknown fields never
// reach the row; an empty update set is rejected.
func (s *service) UpdateSettings(ctx context.Context, brandID string, req domain.UpdateBrandSettingsRequest) (*domain.BrandSettings, error) {
	if req.Email != nil {
		norm := signup.NormalizeEmail(*req.Email)
		req.Email = &norm
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	if req.BrandName != nil {
		updates[fieldBrandName] = strings.TrimSpace(*req.BrandName)
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no changes: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, brandID, updates); err != nil {
		return nil, err
	}
	b, err := s.repo.Get(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return toSettings(b), nil
}

func toSettings(b *domain.Brand) *domain.BrandSettings {
	return &domain.BrandSettings{
		BrandID:     b.BrandID,
		BrandName:   b.BrandName,
		Slug:        b.Slug,
		Description: b.Description,
		Email:       b.Email,
		Verified:    b.Verified,
	}
}
