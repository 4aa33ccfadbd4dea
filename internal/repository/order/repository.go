package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns orders newest first without their items.
	List(ctx context.Context) ([]domain.Order, error)
	// GetByID returns the order with its items embedded.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Create inserts the order and all items in one transaction.
	Create(ctx context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error)
	Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)

	ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	GetItem(ctx context.Context, orderID, itemID string) (*domain.OrderItem, error)
	CreateItem(ctx context.Context, orderID string, item domain.OrderItem) (*domain.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID string, patch domain.OrderItemPatch) (*domain.OrderItem, error)
}
