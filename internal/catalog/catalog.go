// Package catalog serves product reads for the storefront.
package catalog

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"go.uber.org/zap"
)

type Service struct {
	repo port.ProductRepository
}

func NewService(repo port.ProductRepository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is nil")
	}

	return &Service{repo: repo}, nil
}

func (s *Service) Product(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.GetProduct: %w", err)
	}

	return p, nil
}

// Related returns up to limit other active products of the same category.
// It never fails: lookup errors are logged and yield an empty list.
func (s *Service) Related(ctx context.Context, p domain.Product, limit int) []domain.Product {
	if p.CategoryID == nil || limit <= 0 {
		return []domain.Product{}
	}

	// one extra to make up for p itself
	candidates, err := s.repo.ListByCategory(ctx, *p.CategoryID, limit+1)
	if err != nil {
		zap.L().Warn("related products lookup failed", zap.String("product", p.ID.String()), zap.Error(err))
		return []domain.Product{}
	}

	related := make([]domain.Product, 0, limit)
	for _, c := range candidates {
		if c.ID == p.ID {
			continue
		}
		related = append(related, c)
		if len(related) == limit {
			break
		}
	}

	return related
}
