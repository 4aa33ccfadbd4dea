package subcategory

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

const selectColumns = `id::text, name, category_id::text, COALESCE(description, '')`

func scan(row pgx.Row) (*domain.Subcategory, error) {
	var s domain.Subcategory
	if err := row.Scan(&s.ID, &s.Name, &s.CategoryID, &s.Description); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) List(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	q := `
SELECT ` + selectColumns + `
FROM subcategories
WHERE ($1 = '' OR category_id::text = $1)
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		r.logger.Printf("subcategory repo: list category_id=%s error=%v", categoryID, err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Subcategory{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("subcategory repo: list rows category_id=%s error=%v", categoryID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Subcategory, error) {
	q := `SELECT ` + selectColumns + ` FROM subcategories WHERE id = $1`
	s, err := scan(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("subcategory repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, categoryID, name string) (*domain.Subcategory, error) {
	q := `SELECT ` + selectColumns + ` FROM subcategories WHERE category_id = $1 AND name = $2`
	s, err := scan(r.pool.QueryRow(ctx, q, categoryID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("subcategory repo: get category_id=%s name=%s error=%v", categoryID, name, err)
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Subcategory) (*domain.Subcategory, error) {
	q := `
INSERT INTO subcategories (name, category_id, description)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING ` + selectColumns
	s, err := scan(r.pool.QueryRow(ctx, q, in.Name, in.CategoryID, in.Description))
	if err != nil {
		r.logger.Printf("subcategory repo: create name=%s category_id=%s error=%v", in.Name, in.CategoryID, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("subcategory repo: created id=%s name=%s", s.ID, s.Name)
	return s, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, patch domain.SubcategoryPatch) (*domain.Subcategory, error) {
	q := `
UPDATE subcategories
SET name = COALESCE($2, name),
    category_id = COALESCE($3::uuid, category_id),
    description = COALESCE($4, description)
WHERE id = $1
RETURNING ` + selectColumns
	s, err := scan(r.pool.QueryRow(ctx, q, id, patch.Name, patch.CategoryID, patch.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("subcategory repo: update id=%s error=%v", id, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("subcategory repo: updated id=%s", id)
	return s, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("subcategory repo: delete id=%s error=%v", id, err)
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("subcategory repo: deleted id=%s", id)
	return nil
}

// mapWriteError turns constraint violations into domain errors. A foreign key
// failure on insert/update means the category vanished; on delete it means
// products still reference the row. Both surface as a conflict.
func mapWriteError(err error) error {
	switch db.PgCode(err) {
	case db.CodeUniqueViolation:
		return domain.ErrAlreadyExists
	case db.CodeForeignKeyViolation:
		return domain.ErrConflict
	}
	return err
}
