package category

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

const selectColumns = `id::text, name, COALESCE(description, '')`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	q := `SELECT ` + selectColumns + ` FROM categories ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("category repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("category repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	q := `SELECT ` + selectColumns + ` FROM categories WHERE id = $1`
	return r.getOne(ctx, "get id="+id, q, id)
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	q := `SELECT ` + selectColumns + ` FROM categories WHERE name = $1`
	return r.getOne(ctx, "get name="+name, q, name)
}

func (r *postgresRepo) getOne(ctx context.Context, op, q string, arg any) (*domain.Category, error) {
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, arg).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: %s error=%v", op, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	q := `
INSERT INTO categories (name, description)
VALUES ($1, NULLIF($2, ''))
RETURNING ` + selectColumns
	var out domain.Category
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Description).Scan(&out.ID, &out.Name, &out.Description); err != nil {
		r.logger.Printf("category repo: create name=%s error=%v", c.Name, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("category repo: created id=%s name=%s", out.ID, out.Name)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	q := `
UPDATE categories
SET name = COALESCE($2, name),
    description = COALESCE($3, description)
WHERE id = $1
RETURNING ` + selectColumns
	var out domain.Category
	err := r.pool.QueryRow(ctx, q, id, patch.Name, patch.Description).Scan(&out.ID, &out.Name, &out.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: update id=%s error=%v", id, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("category repo: updated id=%s", id)
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("category repo: delete id=%s error=%v", id, err)
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("category repo: deleted id=%s", id)
	return nil
}

func mapWriteError(err error) error {
	switch db.PgCode(err) {
	case db.CodeUniqueViolation:
		return domain.ErrAlreadyExists
	case db.CodeForeignKeyViolation:
		return domain.ErrConflict
	}
	return err
}
