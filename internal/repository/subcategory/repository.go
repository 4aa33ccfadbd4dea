package subcategory

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns every subcategory, or only those of categoryID when it is set.
	List(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	GetByID(ctx context.Context, id string) (*domain.Subcategory, error)
	GetByName(ctx context.Context, categoryID, name string) (*domain.Subcategory, error)
	Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
	Update(ctx context.Context, id string, patch domain.SubcategoryPatch) (*domain.Subcategory, error)
	Delete(ctx context.Context, id string) error
}
