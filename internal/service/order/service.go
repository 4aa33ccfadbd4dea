package order

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/validate"
)

type productRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type Service struct {
	repo     orderrepo.Repository
	products productRepo
}

func New(repo orderrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Address returns the trimmed domain address.
func (a AddressInput) Address() domain.Address {
	return domain.Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Country: strings.TrimSpace(a.Country),
	}
}

type ItemInput struct {
	ProductID string        `json:"productId" validate:"required,uuid"`
	Quantity  int           `json:"quantity" validate:"gt=0,lte=10000"`
	Price     *domain.Money `json:"price" validate:"required,gte=0"`
	Size      string        `json:"size"`
	Color     string        `json:"color"`
}

func (in ItemInput) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Price:     *in.Price,
		Size:      strings.TrimSpace(in.Size),
		Color:     strings.TrimSpace(in.Color),
	}
}

// CreateInput is the body of POST /api/orders. TotalAmount is taken as sent;
// checkout is the path that computes it server-side.
type CreateInput struct {
	CustomerEmail    string             `json:"customerEmail" validate:"required,email"`
	CustomerName     string             `json:"customerName" validate:"required,max=200"`
	ShippingAddress  AddressInput       `json:"shippingAddress"`
	TotalAmount      *domain.Money      `json:"totalAmount" validate:"required,gte=0"`
	Status           domain.OrderStatus `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentReference string             `json:"paymentReference"`
	Items            []ItemInput        `json:"items" validate:"dive"`
}

type UpdateInput struct {
	CustomerEmail    *string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerName     *string             `json:"customerName" validate:"omitempty,min=1,max=200"`
	ShippingAddress  *AddressInput       `json:"shippingAddress"`
	TotalAmount      *domain.Money       `json:"totalAmount" validate:"omitempty,gte=0"`
	Status           *domain.OrderStatus `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentReference *string             `json:"paymentReference"`
}

type ItemUpdateInput struct {
	Quantity *int          `json:"quantity" validate:"omitempty,gt=0,lte=10000"`
	Price    *domain.Money `json:"price" validate:"omitempty,gte=0"`
	Size     *string       `json:"size"`
	Color    *string       `json:"color"`
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the order and every item, then stores them atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	validate.Trim(&in.CustomerEmail)
	validate.Trim(&in.CustomerName)

	for i := range in.Items {
		validate.Trim(&in.Items[i].ProductID)
	}
	verr := validate.Struct(in)
	if err := s.checkProducts(ctx, in.Items, verr); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, it.toDomain())
	}

	status := in.Status
	if status == "" {
		status = domain.OrderPending
	}
	return s.repo.Create(ctx, domain.Order{
		CustomerEmail:    in.CustomerEmail,
		CustomerName:     in.CustomerName,
		ShippingAddress:  in.ShippingAddress.Address(),
		TotalAmount:      *in.TotalAmount,
		Status:           status,
		PaymentReference: strings.TrimSpace(in.PaymentReference),
	}, items)
}

// CreateComputed stores an order whose items and total were computed by the
// caller, as checkout does.
func (s *Service) CreateComputed(ctx context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	o.Status = domain.OrderPending
	return s.repo.Create(ctx, o, items)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	if in.CustomerEmail != nil {
		validate.Trim(in.CustomerEmail)
	}
	if in.CustomerName != nil {
		validate.Trim(in.CustomerName)
	}
	verr := validate.Struct(in)
	if in.CustomerName != nil && *in.CustomerName == "" {
		verr.Add("customerName", "must not be empty")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	patch := domain.OrderPatch{
		CustomerEmail:    in.CustomerEmail,
		CustomerName:     in.CustomerName,
		TotalAmount:      in.TotalAmount,
		Status:           in.Status,
		PaymentReference: in.PaymentReference,
	}
	if in.ShippingAddress != nil {
		addr := in.ShippingAddress.Address()
		patch.ShippingAddress = &addr
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	if !validate.ID(orderID) {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListItems(ctx, orderID)
}

func (s *Service) GetItem(ctx context.Context, orderID, itemID string) (*domain.OrderItem, error) {
	if !validate.ID(orderID) || !validate.ID(itemID) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetItem(ctx, orderID, itemID)
}

func (s *Service) CreateItem(ctx context.Context, orderID string, in ItemInput) (*domain.OrderItem, error) {
	if !validate.ID(orderID) {
		return nil, domain.ErrNotFound
	}
	validate.Trim(&in.ProductID)
	verr := validate.Struct(in)
	if !verr.Has("productId") {
		found, err := s.products.GetByIDs(ctx, []string{in.ProductID})
		if err != nil {
			return nil, err
		}
		if _, ok := found[in.ProductID]; !ok {
			verr.Add("productId", "product does not exist")
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return s.repo.CreateItem(ctx, orderID, in.toDomain())
}

func (s *Service) UpdateItem(ctx context.Context, orderID, itemID string, in ItemUpdateInput) (*domain.OrderItem, error) {
	if !validate.ID(orderID) || !validate.ID(itemID) {
		return nil, domain.ErrNotFound
	}
	if err := validate.Struct(in).Err(); err != nil {
		return nil, err
	}
	return s.repo.UpdateItem(ctx, orderID, itemID, domain.OrderItemPatch{
		Quantity: in.Quantity,
		Price:    in.Price,
		Size:     in.Size,
		Color:    in.Color,
	})
}

// checkProducts adds a field error for every item whose product does not exist.
func (s *Service) checkProducts(ctx context.Context, items []ItemInput, verr *domain.ValidationError) error {
	ids := make([]string, 0, len(items))
	for i, it := range items {
		if !verr.Has(fmt.Sprintf("items[%d].productId", i)) {
			ids = append(ids, it.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d].productId", i)
		if verr.Has(field) {
			continue
		}
		if _, ok := found[it.ProductID]; !ok {
			verr.Add(field, "product does not exist")
		}
	}
	return nil
}
