// Package seed loads the demo clothing catalog used for manual testing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
)

type categoryStore interface {
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type subcategoryStore interface {
	GetByName(ctx context.Context, categoryID, name string) (*domain.Subcategory, error)
	Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
}

type productStore interface {
	FindByName(ctx context.Context, subcategoryID, name string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Stores groups the repositories the seed writes through.
type Stores struct {
	Categories    categoryStore
	Subcategories subcategoryStore
	Products      productStore
}

// Stats counts rows created by a run. Rows that already existed are not counted.
type Stats struct {
	Categories    int
	Subcategories int
	Products      int
}

type categorySeed struct {
	Name          string
	Description   string
	Subcategories []subcategorySeed
}

type subcategorySeed struct {
	Name        string
	Description string
	Products    []productSeed
}

type productSeed struct {
	Name          string
	Description   string
	PriceCents    int64
	OriginalCents int64
	Image         string
	Sizes         []string
	Colors        []string
	Rating        float64
	ReviewCount   int
	IsNew         bool
	OnSale        bool
	Stock         int
}

const (
	imgTee      = "/attached_assets/generated_images/White_cotton_t-shirt_ecommerce_style_cc6e53a8.png"
	imgJeans    = "/attached_assets/generated_images/Dark_blue_denim_jeans_50e62285.png"
	imgJacket   = "/attached_assets/generated_images/Black_leather_jacket_product_4db547f1.png"
	imgSneakers = "/attached_assets/generated_images/White_athletic_sneakers_ac51adc5.png"
)

var catalogSeed = []categorySeed{
	{
		Name:        "Men",
		Description: "Men's clothing and accessories",
		Subcategories: []subcategorySeed{
			{Name: "T-Shirts", Description: "Men's t-shirts and tops", Products: []productSeed{{
				Name:          "Premium Cotton T-Shirt",
				Description:   "Made from 100% organic cotton, this premium t-shirt offers unmatched comfort and style.",
				PriceCents:    4999,
				OriginalCents: 6999,
				Image:         imgTee,
				Sizes:         []string{"XS", "S", "M", "L", "XL", "XXL"},
				Colors:        []string{"white", "black", "navy", "gray"},
				Rating:        4.5,
				ReviewCount:   127,
				IsNew:         true,
				OnSale:        true,
				Stock:         50,
			}}},
			{Name: "Jeans", Description: "Men's jeans and denim", Products: []productSeed{{
				Name:        "Slim Fit Denim Jeans",
				Description: "Classic slim-fit jeans crafted from premium denim with a comfortable stretch.",
				PriceCents:  8999,
				Image:       imgJeans,
				Sizes:       []string{"28", "30", "32", "34", "36", "38"},
				Colors:      []string{"blue", "black", "gray"},
				Rating:      4.7,
				ReviewCount: 89,
				Stock:       30,
			}}},
			{Name: "Jackets", Description: "Men's jackets and outerwear", Products: []productSeed{{
				Name:          "Leather Biker Jacket",
				Description:   "Genuine leather biker jacket with asymmetrical zip closure and multiple pockets.",
				PriceCents:    24999,
				OriginalCents: 29999,
				Image:         imgJacket,
				Sizes:         []string{"S", "M", "L", "XL"},
				Colors:        []string{"black", "brown"},
				Rating:        4.8,
				ReviewCount:   65,
				IsNew:         true,
				OnSale:        true,
				Stock:         15,
			}}},
			{Name: "Shoes", Description: "Men's shoes and sneakers", Products: []productSeed{{
				Name:        "Athletic Sneakers",
				Description: "High-performance sneakers with a breathable mesh upper and cushioned midsole.",
				PriceCents:  12999,
				Image:       imgSneakers,
				Sizes:       []string{"7", "8", "9", "10", "11", "12"},
				Colors:      []string{"white", "black", "gray"},
				Rating:      4.6,
				ReviewCount: 134,
				Stock:       25,
			}}},
		},
	},
	{
		Name:        "Women",
		Description: "Women's clothing and accessories",
		Subcategories: []subcategorySeed{
			{Name: "Tops", Description: "Women's tops and blouses", Products: []productSeed{{
				Name:        "Classic White Tee",
				Description: "Essential white t-shirt made from a soft cotton blend.",
				PriceCents:  3999,
				Image:       imgTee,
				Sizes:       []string{"XS", "S", "M", "L", "XL"},
				Colors:      []string{"white"},
				Rating:      4.3,
				ReviewCount: 201,
				Stock:       40,
			}}},
			{Name: "Jeans", Description: "Women's jeans and denim", Products: []productSeed{{
				Name:        "Dark Wash Jeans",
				Description: "Regular fit jeans in durable denim with subtle fading.",
				PriceCents:  7999,
				Image:       imgJeans,
				Sizes:       []string{"28", "30", "32", "34", "36"},
				Colors:      []string{"blue"},
				Rating:      4.4,
				ReviewCount: 97,
				IsNew:       true,
				Stock:       35,
			}}},
			{Name: "Jackets", Description: "Women's jackets and coats", Products: []productSeed{{
				Name:        "Sports Jacket",
				Description: "Versatile sports jacket with modern tailoring.",
				PriceCents:  18999,
				Image:       imgJacket,
				Sizes:       []string{"S", "M", "L", "XL", "XXL"},
				Colors:      []string{"black", "navy"},
				Rating:      4.5,
				ReviewCount: 78,
				Stock:       20,
			}}},
		},
	},
	{
		Name:        "Accessories",
		Description: "Bags, accessories and more",
		Subcategories: []subcategorySeed{
			{Name: "Bags", Description: "Handbags, backpacks and more", Products: []productSeed{{
				Name:          "Designer Handbag",
				Description:   "Lightweight designer handbag with roomy compartments.",
				PriceCents:    14999,
				OriginalCents: 17999,
				Image:         imgSneakers,
				Sizes:         []string{"One Size"},
				Colors:        []string{"black", "brown", "navy"},
				Rating:        4.7,
				ReviewCount:   156,
				IsNew:         true,
				OnSale:        true,
				Stock:         12,
			}}},
		},
	},
}

// Apply inserts the demo catalog. Rows are matched by name so repeated runs
// leave existing data untouched.
func Apply(ctx context.Context, stores Stores, logger *log.Logger) (Stats, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var stats Stats
	for _, cs := range catalogSeed {
		cat, created, err := ensureCategory(ctx, stores.Categories, cs)
		if err != nil {
			return stats, fmt.Errorf("ensure category %q: %w", cs.Name, err)
		}
		if created {
			stats.Categories++
			logger.Printf("seed: created category %q", cat.Name)
		}
		for _, ss := range cs.Subcategories {
			sub, created, err := ensureSubcategory(ctx, stores.Subcategories, cat.ID, ss)
			if err != nil {
				return stats, fmt.Errorf("ensure subcategory %q/%q: %w", cs.Name, ss.Name, err)
			}
			if created {
				stats.Subcategories++
			}
			for _, ps := range ss.Products {
				created, err := ensureProduct(ctx, stores.Products, cat.ID, sub.ID, ps)
				if err != nil {
					return stats, fmt.Errorf("ensure product %q: %w", ps.Name, err)
				}
				if created {
					stats.Products++
				}
			}
		}
	}
	return stats, nil
}

func ensureCategory(ctx context.Context, store categoryStore, cs categorySeed) (*domain.Category, bool, error) {
	existing, err := store.GetByName(ctx, cs.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	created, err := store.Create(ctx, domain.Category{Name: cs.Name, Description: cs.Description})
	return created, err == nil, err
}

func ensureSubcategory(ctx context.Context, store subcategoryStore, categoryID string, ss subcategorySeed) (*domain.Subcategory, bool, error) {
	existing, err := store.GetByName(ctx, categoryID, ss.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	created, err := store.Create(ctx, domain.Subcategory{Name: ss.Name, CategoryID: categoryID, Description: ss.Description})
	return created, err == nil, err
}

func ensureProduct(ctx context.Context, store productStore, categoryID, subcategoryID string, ps productSeed) (bool, error) {
	_, err := store.FindByName(ctx, subcategoryID, ps.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	p := domain.Product{
		Name:          ps.Name,
		Description:   ps.Description,
		Price:         domain.Cents(ps.PriceCents),
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Images:        domain.ImageList{ps.Image},
		Sizes:         ps.Sizes,
		Colors:        ps.Colors,
		Rating:        ps.Rating,
		ReviewCount:   ps.ReviewCount,
		IsNew:         ps.IsNew,
		OnSale:        ps.OnSale,
		Stock:         ps.Stock,
	}
	if ps.OriginalCents > 0 {
		orig := domain.Cents(ps.OriginalCents)
		p.OriginalPrice = &orig
	}
	if _, err := store.Create(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}
