package domain

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         Money     `json:"price"`
	OriginalPrice *Money    `json:"originalPrice,omitempty"`
	CategoryID    string    `json:"categoryId"`
	SubcategoryID string    `json:"subcategoryId"`
	Images        ImageList `json:"images"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	IsNew         bool      `json:"isNew"`
	OnSale        bool      `json:"onSale"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Image is the primary image URI.
func (p Product) Image() string {
	return p.Images.Primary()
}

// Discounted reports whether OriginalPrice should be shown as a strike-through price.
func (p Product) Discounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Image string `json:"image"`
	}{plain: plain(p), Image: p.Image()})
}

// ProductFilter narrows List results; empty fields match everything.
type ProductFilter struct {
	CategoryID    string
	SubcategoryID string
}

// ProductPatch carries merge-patch fields; nil means "leave unchanged".
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *Money
	OriginalPrice *Money
	CategoryID    *string
	SubcategoryID *string
	Images        *ImageList
	Sizes         *[]string
	Colors        *[]string
	Rating        *float64
	ReviewCount   *int
	IsNew         *bool
	OnSale        *bool
	Stock         *int
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p == ProductPatch{}
}
