package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every accepted status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Order struct {
	ID               string      `json:"id"`
	CustomerEmail    string      `json:"customerEmail"`
	CustomerName     string      `json:"customerName"`
	ShippingAddress  Address     `json:"shippingAddress"`
	TotalAmount      Money       `json:"totalAmount"`
	Status           OrderStatus `json:"status"`
	PaymentReference string      `json:"paymentReference,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	Items            []OrderItem `json:"items,omitempty"`
}

// OrderItem stores the price at the time of ordering, independent of the live product price.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     Money  `json:"price"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// ItemsTotal sums price × quantity over the items.
func ItemsTotal(items []OrderItem) Money {
	var total Money
	for _, it := range items {
		total += it.Price.Mul(it.Quantity)
	}
	return total
}

type OrderPatch struct {
	CustomerEmail    *string
	CustomerName     *string
	ShippingAddress  *Address
	TotalAmount      *Money
	Status           *OrderStatus
	PaymentReference *string
}

type OrderItemPatch struct {
	Quantity *int
	Price    *Money
	Size     *string
	Color    *string
}
