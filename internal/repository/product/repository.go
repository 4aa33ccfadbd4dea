package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns products newest first, narrowed by the non-empty filter fields.
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs returns the products found among ids keyed by id. Missing ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	FindByName(ctx context.Context, subcategoryID, name string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
