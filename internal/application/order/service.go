package order

import (
	"context"
	"fmt"

	"github.com/wardro8e/api/internal/domain"
)

type orderItemStore interface {
	ListByBrand(ctx context.Context, brandID string) ([]domain.OrderItem, error)
}

type brandStore interface {
	Get(ctx context.Context, brandID string) (*domain.Brand, error)
}

type Service interface {
	List(ctx context.Context, brandID string) ([]domain.OrderItem, error)
}

type service struct {
	orderRepo orderItemStore
	brandRepo brandStore
}

func NewService(orderRepo orderItemStore, brandRepo brandStore) Service {
	return &service{orderRepo: orderRepo, brandRepo: brandRepo}
}

func (s *service) List(ctx context.Context, brandID string) ([]domain.OrderItem, error) {
	if _, err := s.brandRepo.Get(ctx, brandID); err != nil {
		return nil, fmt.Errorf("brand not found: %w", domain.ErrNotFound)
	}
	return s.orderRepo.ListByBrand(ctx, brandID)
}
