//go:build integration

package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/dbtest"
	"storefront/internal/domain"
)

type fixture struct {
	men, women  string
	jeans, tops string
}

func newFixture(t *testing.T) (Repository, fixture, func(string, ...any)) {
	t.Helper()
	ctx := context.Background()
	pool := dbtest.Pool(t)

	var f fixture
	insert := func(dst *string, sql string, args ...any) {
		if err := pool.QueryRow(ctx, sql, args...).Scan(dst); err != nil {
			t.Fatalf("fixture %q: %v", sql, err)
		}
	}
	insert(&f.men, `INSERT INTO categories (name) VALUES ('Men') RETURNING id::text`)
	insert(&f.women, `INSERT INTO categories (name) VALUES ('Women') RETURNING id::text`)
	insert(&f.jeans, `INSERT INTO subcategories (name, category_id) VALUES ('Jeans', $1) RETURNING id::text`, f.men)
	insert(&f.tops, `INSERT INTO subcategories (name, category_id) VALUES ('Tops', $1) RETURNING id::text`, f.women)

	exec := func(sql string, args ...any) {
		if _, err := pool.Exec(ctx, sql, args...); err != nil {
			t.Fatalf("exec %q: %v", sql, err)
		}
	}
	return NewPostgres(pool, nil), f, exec
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo, f, _ := newFixture(t)

	original := domain.Cents(7999)
	created, err := repo.Create(ctx, domain.Product{
		Name:          "Slim Fit Denim Jeans",
		Description:   "Modern slim fit jeans",
		Price:         domain.Cents(5999),
		OriginalPrice: &original,
		CategoryID:    f.men,
		SubcategoryID: f.jeans,
		Images:        domain.ImageList{"a.jpg", "b.jpg"},
		Sizes:         []string{"30", "32"},
		Rating:        4.5,
		ReviewCount:   12,
		OnSale:        true,
		Stock:         40,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected product %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != domain.Cents(5999) || got.OriginalPrice == nil || *got.OriginalPrice != original {
		t.Fatalf("unexpected prices %+v", got)
	}
	if len(got.Images) != 2 || got.Image() != "a.jpg" || got.Colors == nil || len(got.Colors) != 0 {
		t.Fatalf("unexpected arrays %+v", got)
	}
	if got.Rating != 4.5 || !got.OnSale || got.IsNew {
		t.Fatalf("unexpected flags %+v", got)
	}

	found, err := repo.FindByName(ctx, f.jeans, "Slim Fit Denim Jeans")
	if err != nil || found.ID != created.ID {
		t.Fatalf("find by name: %+v %v", found, err)
	}

	many, err := repo.GetByIDs(ctx, []string{created.ID, "00000000-0000-0000-0000-000000000000"})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(many) != 1 {
		t.Fatalf("expected 1 product, got %d", len(many))
	}
}

func TestPostgres_ListFiltersAndOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, f, exec := newFixture(t)

	exec(`INSERT INTO products (name, description, price_cents, category_id, subcategory_id, created_at)
	      VALUES ('Old Jeans', 'd', 100, $1, $2, now() - interval '2 days'),
	             ('New Jeans', 'd', 200, $1, $2, now()),
	             ('Blouse', 'd', 300, $3, $4, now() - interval '1 day')`, f.men, f.jeans, f.women, f.tops)

	all, err := repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Name != "New Jeans" || all[1].Name != "Blouse" || all[2].Name != "Old Jeans" {
		t.Fatalf("unexpected order %+v", all)
	}

	men, err := repo.List(ctx, domain.ProductFilter{CategoryID: f.men})
	if err != nil || len(men) != 2 {
		t.Fatalf("list men: %d %v", len(men), err)
	}

	mismatch, err := repo.List(ctx, domain.ProductFilter{CategoryID: f.men, SubcategoryID: f.tops})
	if err != nil || len(mismatch) != 0 {
		t.Fatalf("expected empty list, got %d %v", len(mismatch), err)
	}
}

func TestPostgres_UpdateChangesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	repo, f, _ := newFixture(t)

	created, err := repo.Create(ctx, domain.Product{
		Name:          "Premium Cotton T-Shirt",
		Description:   "Soft cotton",
		Price:         domain.Cents(4999),
		CategoryID:    f.men,
		SubcategoryID: f.jeans,
		Sizes:         []string{"S", "M"},
		Stock:         10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	price := domain.Cents(5999)
	updated, err := repo.Update(ctx, created.ID, domain.ProductPatch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != price {
		t.Fatalf("expected price %v, got %v", price, updated.Price)
	}
	if updated.Name != created.Name || updated.Stock != 10 || len(updated.Sizes) != 2 {
		t.Fatalf("unpatched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	missing := "00000000-0000-0000-0000-000000000000"
	if _, err := repo.Update(ctx, missing, domain.ProductPatch{Price: &price}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_DeleteRestrictedByOrderItems(t *testing.T) {
	ctx := context.Background()
	repo, f, exec := newFixture(t)

	p, err := repo.Create(ctx, domain.Product{Name: "Tote", Description: "d", Price: 100, CategoryID: f.women, SubcategoryID: f.tops})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	exec(`WITH o AS (
	          INSERT INTO orders (customer_email, customer_name, shipping_address, total_cents)
	          VALUES ('a@example.com', 'A', '{}'::jsonb, 100) RETURNING id)
	      INSERT INTO order_items (order_id, product_id, quantity, price_cents) SELECT id, $1, 1, 100 FROM o`, p.ID)

	if err := repo.Delete(ctx, p.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	exec(`DELETE FROM orders`)
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
