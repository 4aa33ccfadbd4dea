// Package cart holds the in-memory shopping cart and its pricing rules.
package cart

import (
	"errors"

	"storefront/internal/domain"
)

// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = 10000

// ErrInvalidQuantity is returned for quantities outside [1, MaxQuantity],
// including merges that would push a line past MaxQuantity.
var ErrInvalidQuantity = errors.New("quantity must be between 1 and 10000")

// Pricing decides the shipping charge for a subtotal.
type Pricing struct {
	FreeShippingThreshold domain.Money `json:"freeShippingThreshold"`
	FlatShippingRate      domain.Money `json:"flatShippingRate"`
}

// DefaultPricing ships free above 100.00 and charges 10.00 otherwise.
var DefaultPricing = Pricing{
	FreeShippingThreshold: domain.Cents(10000),
	FlatShippingRate:      domain.Cents(1000),
}

// Shipping returns zero when subtotal is strictly above the threshold.
func (p Pricing) Shipping(subtotal domain.Money) domain.Money {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingRate
}

// LineKey identifies a cart line. An empty Size is a distinct key of its own.
type LineKey struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
}

// Line is a product snapshot taken when it was first added.
type Line struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
	Size      string       `json:"size,omitempty"`
}

func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size}
}

// LineTotal is price × quantity.
func (l Line) LineTotal() domain.Money {
	return l.Price.Mul(l.Quantity)
}

// Ledger is a single-writer cart. It is not safe for concurrent use.
type Ledger struct {
	pricing Pricing
	lines   []Line
}

func New(pricing Pricing) *Ledger {
	return &Ledger{pricing: pricing}
}

// AddItem merges into an existing line with the same key or appends a new one.
// The stored price stays the one captured by the first add.
func (l *Ledger) AddItem(p domain.Product, size string, qty int) error {
	if qty <= 0 || qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	key := LineKey{ProductID: p.ID, Size: size}
	if i := l.index(key); i >= 0 {
		if l.lines[i].Quantity+qty > MaxQuantity {
			return ErrInvalidQuantity
		}
		l.lines[i].Quantity += qty
		return nil
	}
	l.lines = append(l.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image(),
		Quantity:  qty,
		Size:      size,
	})
	return nil
}

// SetQuantity replaces the quantity of key. A quantity <= 0 removes the line and
// an unknown key is ignored. Quantities above MaxQuantity leave the line as is.
func (l *Ledger) SetQuantity(key LineKey, qty int) error {
	if qty <= 0 {
		l.RemoveItem(key)
		return nil
	}
	if qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	if i := l.index(key); i >= 0 {
		l.lines[i].Quantity = qty
	}
	return nil
}

func (l *Ledger) RemoveItem(key LineKey) {
	i := l.index(key)
	if i < 0 {
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Clear() {
	l.lines = nil
}

func (l *Ledger) Subtotal() domain.Money {
	var total domain.Money
	for _, line := range l.lines {
		total += line.LineTotal()
	}
	return total
}

func (l *Ledger) ShippingCost() domain.Money {
	return l.pricing.Shipping(l.Subtotal())
}

func (l *Ledger) Total() domain.Money {
	return l.Subtotal() + l.ShippingCost()
}

// ItemCount sums quantities across lines.
func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// FreeShippingRemaining is how much more must be spent before shipping is free.
// The subtotal must exceed the threshold, so one extra cent is included.
func (l *Ledger) FreeShippingRemaining() domain.Money {
	sub := l.Subtotal()
	if sub > l.pricing.FreeShippingThreshold {
		return 0
	}
	return l.pricing.FreeShippingThreshold - sub + 1
}

func (l *Ledger) Pricing() Pricing {
	return l.pricing
}

func (l *Ledger) index(key LineKey) int {
	for i, line := range l.lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}
