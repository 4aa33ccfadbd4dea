package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
	"storefront/internal/validate"
)

type productRepo interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type orderCreator interface {
	CreateComputed(ctx context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error)
}

// Service prices carts against live product data. Carts themselves are not
// stored; every request rebuilds a ledger from the submitted lines.
type Service struct {
	products productRepo
	orders   orderCreator
	pricing  cart.Pricing
}

func New(products productRepo, orders orderCreator, pricing cart.Pricing) *Service {
	return &Service{products: products, orders: orders, pricing: pricing}
}

type LineInput struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// UpdateAction edits the ledger after the initial lines are added.
type UpdateAction struct {
	Action    string `json:"action"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type QuoteInput struct {
	Items   []LineInput    `json:"items"`
	Actions []UpdateAction `json:"actions"`
}

type CheckoutInput struct {
	CustomerEmail   string                `json:"customerEmail" validate:"required,email"`
	CustomerName    string                `json:"customerName" validate:"required,max=200"`
	ShippingAddress ordersvc.AddressInput `json:"shippingAddress"`
	Items           []LineInput           `json:"items" validate:"-"`
}

type QuoteLine struct {
	cart.Line
	LineTotal domain.Money `json:"lineTotal"`
}

type Quote struct {
	Lines                 []QuoteLine  `json:"lines"`
	ItemCount             int          `json:"itemCount"`
	Subtotal              domain.Money `json:"subtotal"`
	Shipping              domain.Money `json:"shipping"`
	Total                 domain.Money `json:"total"`
	FreeShippingThreshold domain.Money `json:"freeShippingThreshold"`
	FreeShippingRemaining domain.Money `json:"freeShippingRemaining"`
}

func (s *Service) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	ledger, _, err := s.build(ctx, in.Items, in.Actions)
	if err != nil {
		return nil, err
	}
	return quoteFrom(ledger), nil
}

// Checkout prices the submitted lines and stores an order with the computed
// total and per-line price snapshots in one transaction.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	validate.Trim(&in.CustomerEmail)
	validate.Trim(&in.CustomerName)
	verr := validate.Struct(in)
	if len(in.Items) == 0 {
		verr.Add("items", "cart is empty")
	}

	ledger, colors, err := s.build(ctx, in.Items, nil)
	var lineErr *domain.ValidationError
	switch {
	case errors.As(err, &lineErr):
		for field, reason := range lineErr.Fields {
			verr.Add(field, reason)
		}
	case err != nil:
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	lines := ledger.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Size:      line.Size,
			Color:     colors[line.Key()],
		})
	}
	return s.orders.CreateComputed(ctx, domain.Order{
		CustomerEmail:   in.CustomerEmail,
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress.Address(),
		TotalAmount:     ledger.Total(),
	}, items)
}

// build fills a ledger from lines and then applies actions. The returned map
// holds the first colour requested per line key.
func (s *Service) build(ctx context.Context, lines []LineInput, actions []UpdateAction) (*cart.Ledger, map[cart.LineKey]string, error) {
	verr := domain.NewValidationError()
	ids := make([]string, 0, len(lines)+len(actions))
	for i := range lines {
		lines[i].ProductID = strings.TrimSpace(lines[i].ProductID)
		lines[i].Size = strings.TrimSpace(lines[i].Size)
		if validate.ID(lines[i].ProductID) {
			ids = append(ids, lines[i].ProductID)
		}
	}
	for i := range actions {
		actions[i].ProductID = strings.TrimSpace(actions[i].ProductID)
		actions[i].Size = strings.TrimSpace(actions[i].Size)
		if validate.ID(actions[i].ProductID) {
			ids = append(ids, actions[i].ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	ledger := cart.New(s.pricing)
	colors := map[cart.LineKey]string{}
	for i, line := range lines {
		prefix := fmt.Sprintf("items[%d].", i)
		p, ok := lookup(products, line.ProductID, prefix, verr)
		if !ok {
			continue
		}
		if !sizeAvailable(p, line.Size) {
			verr.Add(prefix+"size", "size not available")
			continue
		}
		if err := ledger.AddItem(p, line.Size, line.Quantity); err != nil {
			verr.Add(prefix+"quantity", err.Error())
			continue
		}
		key := cart.LineKey{ProductID: p.ID, Size: line.Size}
		if _, seen := colors[key]; !seen {
			colors[key] = strings.TrimSpace(line.Color)
		}
	}

	for i, a := range actions {
		prefix := fmt.Sprintf("actions[%d].", i)
		key := cart.LineKey{ProductID: a.ProductID, Size: a.Size}
		switch strings.ToLower(strings.TrimSpace(a.Action)) {
		case "addlineitem":
			p, ok := lookup(products, a.ProductID, prefix, verr)
			if !ok {
				continue
			}
			if !sizeAvailable(p, a.Size) {
				verr.Add(prefix+"size", "size not available")
				continue
			}
			if err := ledger.AddItem(p, a.Size, a.Quantity); err != nil {
				verr.Add(prefix+"quantity", err.Error())
			}
		case "changelineitemquantity":
			if err := ledger.SetQuantity(key, a.Quantity); err != nil {
				verr.Add(prefix+"quantity", err.Error())
			}
		case "removelineitem":
			ledger.RemoveItem(key)
		default:
			verr.Add(prefix+"action", "unsupported action")
		}
	}

	if err := verr.Err(); err != nil {
		return nil, nil, err
	}
	return ledger, colors, nil
}

func lookup(products map[string]domain.Product, id, prefix string, verr *domain.ValidationError) (domain.Product, bool) {
	if id == "" {
		verr.Add(prefix+"productId", "is required")
		return domain.Product{}, false
	}
	if !validate.ID(id) {
		verr.Add(prefix+"productId", "must be a valid id")
		return domain.Product{}, false
	}
	p, ok := products[id]
	if !ok {
		verr.Add(prefix+"productId", "product does not exist")
	}
	return p, ok
}

// sizeAvailable reports whether size may be ordered. An empty size is always
// accepted, as is any size of a product that lists none.
func sizeAvailable(p domain.Product, size string) bool {
	if size == "" || len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func quoteFrom(l *cart.Ledger) *Quote {
	lines := l.Lines()
	out := &Quote{
		Lines:                 make([]QuoteLine, 0, len(lines)),
		ItemCount:             l.ItemCount(),
		Subtotal:              l.Subtotal(),
		Shipping:              l.ShippingCost(),
		Total:                 l.Total(),
		FreeShippingThreshold: l.Pricing().FreeShippingThreshold,
		FreeShippingRemaining: l.FreeShippingRemaining(),
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, QuoteLine{Line: line, LineTotal: line.LineTotal()})
	}
	return out
}
