package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/db"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `
id::text, name, description, price_cents, original_price_cents,
category_id::text, subcategory_id::text, images, sizes, colors,
rating::float8, review_count, is_new, on_sale, stock, created_at, updated_at`

func scan(row pgx.Row) (*domain.Product, error) {
	var (
		p             domain.Product
		price         int64
		originalPrice *int64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &originalPrice,
		&p.CategoryID, &p.SubcategoryID, (*[]string)(&p.Images), &p.Sizes, &p.Colors,
		&p.Rating, &p.ReviewCount, &p.IsNew, &p.OnSale, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Price = domain.Cents(price)
	if originalPrice != nil {
		op := domain.Cents(*originalPrice)
		p.OriginalPrice = &op
	}
	return &p, nil
}

func collect(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	result := []domain.Product{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := `
SELECT ` + selectColumns + `
FROM products
WHERE ($1 = '' OR category_id::text = $1)
  AND ($2 = '' OR subcategory_id::text = $2)
ORDER BY created_at DESC, id
`
	rows, err := r.pool.Query(ctx, q, filter.CategoryID, filter.SubcategoryID)
	if err != nil {
		r.logger.Printf("product repo: list category_id=%s subcategory_id=%s error=%v", filter.CategoryID, filter.SubcategoryID, err)
		return nil, err
	}
	result, err := collect(rows)
	if err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list category_id=%s subcategory_id=%s count=%d", filter.CategoryID, filter.SubcategoryID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
	p, err := scan(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := `SELECT ` + selectColumns + ` FROM products WHERE id::text = ANY($1)`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: get many count=%d error=%v", len(ids), err)
		return nil, err
	}
	list, err := collect(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *postgresRepo) FindByName(ctx context.Context, subcategoryID, name string) (*domain.Product, error) {
	q := `
SELECT ` + selectColumns + `
FROM products
WHERE subcategory_id = $1 AND name = $2
ORDER BY created_at ASC
LIMIT 1
`
	p, err := scan(r.pool.QueryRow(ctx, q, subcategoryID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: find subcategory_id=%s name=%s error=%v", subcategoryID, name, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (
    name, description, price_cents, original_price_cents, category_id, subcategory_id,
    images, sizes, colors, rating, review_count, is_new, on_sale, stock
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + selectColumns
	p, err := scan(r.pool.QueryRow(ctx, q,
		in.Name,
		in.Description,
		in.Price.Cents(),
		centsPtr(in.OriginalPrice),
		in.CategoryID,
		in.SubcategoryID,
		nonNil([]string(in.Images)),
		nonNil(in.Sizes),
		nonNil(in.Colors),
		in.Rating,
		in.ReviewCount,
		in.IsNew,
		in.OnSale,
		in.Stock,
	))
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", in.Name, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("product repo: created id=%s name=%s", p.ID, p.Name)
	return p, nil
}

// Update applies a merge patch; nil fields keep their stored value.
func (r *postgresRepo) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	q := `
UPDATE products
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    original_price_cents = COALESCE($5, original_price_cents),
    category_id = COALESCE($6::uuid, category_id),
    subcategory_id = COALESCE($7::uuid, subcategory_id),
    images = COALESCE($8::text[], images),
    sizes = COALESCE($9::text[], sizes),
    colors = COALESCE($10::text[], colors),
    rating = COALESCE($11::numeric, rating),
    review_count = COALESCE($12, review_count),
    is_new = COALESCE($13, is_new),
    on_sale = COALESCE($14, on_sale),
    stock = COALESCE($15, stock),
    updated_at = now()
WHERE id = $1
RETURNING ` + selectColumns

	var images *[]string
	if patch.Images != nil {
		v := nonNil([]string(*patch.Images))
		images = &v
	}
	p, err := scan(r.pool.QueryRow(ctx, q,
		id,
		patch.Name,
		patch.Description,
		centsPtr(patch.Price),
		centsPtr(patch.OriginalPrice),
		patch.CategoryID,
		patch.SubcategoryID,
		images,
		patch.Sizes,
		patch.Colors,
		patch.Rating,
		patch.ReviewCount,
		patch.IsNew,
		patch.OnSale,
		patch.Stock,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("product repo: updated id=%s", id)
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func centsPtr(m *domain.Money) *int64 {
	if m == nil {
		return nil
	}
	v := m.Cents()
	return &v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func mapWriteError(err error) error {
	switch db.PgCode(err) {
	case db.CodeForeignKeyViolation:
		return domain.ErrConflict
	case db.CodeCheckViolation:
		return domain.Invalid("product", "violates "+db.ConstraintName(err))
	}
	return err
}
