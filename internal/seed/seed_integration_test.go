//go:build integration

package seed

import (
	"context"
	"testing"

	"storefront/internal/dbtest"
	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	subcategoryrepo "storefront/internal/repository/subcategory"
)

func TestApply_IntegrationRerunIsNoop(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	products := productrepo.NewPostgres(pool, nil)
	stores := Stores{
		Categories:    categoryrepo.NewPostgres(pool, nil),
		Subcategories: subcategoryrepo.NewPostgres(pool, nil),
		Products:      products,
	}

	first, err := Apply(ctx, stores, nil)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if first.Products != 8 {
		t.Fatalf("expected 8 products, got %+v", first)
	}
	second, err := Apply(ctx, stores, nil)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if second != (Stats{}) {
		t.Fatalf("expected no rows on rerun, got %+v", second)
	}

	list, err := products.List(ctx, domain.ProductFilter{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 8 {
		t.Fatalf("expected 8 stored products, got %d", len(list))
	}
}
