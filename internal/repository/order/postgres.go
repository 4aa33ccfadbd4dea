package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/db"
	"storefront/internal/domain"
)

const (
	orderFK   = "order_items_order_id_fkey"
	productFK = "order_items_product_id_fkey"
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

const orderColumns = `
id::text, customer_email, customer_name, shipping_address, total_cents,
status, COALESCE(payment_reference, ''), created_at, updated_at`

const itemColumns = `
id::text, order_id::text, product_id::text, quantity, price_cents,
COALESCE(size, ''), COALESCE(color, '')`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		total  int64
		status string
	)
	err := row.Scan(&o.ID, &o.CustomerEmail, &o.CustomerName, &o.ShippingAddress, &total,
		&status, &o.PaymentReference, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.TotalAmount = domain.Cents(total)
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

func scanItem(row pgx.Row) (*domain.OrderItem, error) {
	var (
		it    domain.OrderItem
		price int64
	)
	if err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &price, &it.Size, &it.Color); err != nil {
		return nil, err
	}
	it.Price = domain.Cents(price)
	return &it, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	items, err := listItems(ctx, r.pool, id)
	if err != nil {
		r.logger.Printf("order repo: get items order_id=%s error=%v", id, err)
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	var out *domain.Order
	err := db.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		o, err := insertOrder(ctx, tx, in)
		if err != nil {
			return err
		}
		o.Items = make([]domain.OrderItem, 0, len(items))
		for i, item := range items {
			created, err := insertItem(ctx, tx, o.ID, item)
			if err != nil {
				if db.ConstraintName(err) == productFK {
					return domain.Invalid(fmt.Sprintf("items[%d].productId", i), "product does not exist")
				}
				return fmt.Errorf("insert item %d: %w", i, err)
			}
			o.Items = append(o.Items, *created)
		}
		out = o
		return nil
	})
	if err != nil {
		r.logger.Printf("order repo: create email=%s items=%d error=%v", in.CustomerEmail, len(items), err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("order repo: created id=%s items=%d total=%s", out.ID, len(out.Items), out.TotalAmount)
	return out, nil
}

func insertOrder(ctx context.Context, q db.Querier, in domain.Order) (*domain.Order, error) {
	status := in.Status
	if status == "" {
		status = domain.OrderPending
	}
	sql := `
INSERT INTO orders (customer_email, customer_name, shipping_address, total_cents, status, payment_reference)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING ` + orderColumns
	return scanOrder(q.QueryRow(ctx, sql,
		in.CustomerEmail,
		in.CustomerName,
		in.ShippingAddress,
		in.TotalAmount.Cents(),
		string(status),
		in.PaymentReference,
	))
}

func insertItem(ctx context.Context, q db.Querier, orderID string, in domain.OrderItem) (*domain.OrderItem, error) {
	sql := `
INSERT INTO order_items (order_id, product_id, quantity, price_cents, size, color)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
RETURNING ` + itemColumns
	return scanItem(q.QueryRow(ctx, sql, orderID, in.ProductID, in.Quantity, in.Price.Cents(), in.Size, in.Color))
}

func (r *postgresRepo) Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	q := `
UPDATE orders
SET customer_email = COALESCE($2, customer_email),
    customer_name = COALESCE($3, customer_name),
    shipping_address = COALESCE($4::jsonb, shipping_address),
    total_cents = COALESCE($5, total_cents),
    status = COALESCE($6, status),
    payment_reference = COALESCE($7, payment_reference),
    updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns

	var total *int64
	if patch.TotalAmount != nil {
		v := patch.TotalAmount.Cents()
		total = &v
	}
	var status *string
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id,
		patch.CustomerEmail,
		patch.CustomerName,
		patch.ShippingAddress,
		total,
		status,
		patch.PaymentReference,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update id=%s error=%v", id, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("order repo: updated id=%s status=%s", id, o.Status)
	return o, nil
}

func (r *postgresRepo) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	if err := r.orderExists(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := listItems(ctx, r.pool, orderID)
	if err != nil {
		r.logger.Printf("order repo: list items order_id=%s error=%v", orderID, err)
		return nil, err
	}
	return items, nil
}

func listItems(ctx context.Context, q db.Querier, orderID string) ([]domain.OrderItem, error) {
	sql := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at ASC, id`
	rows, err := q.Query(ctx, sql, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) orderExists(ctx context.Context, orderID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		r.logger.Printf("order repo: exists id=%s error=%v", orderID, err)
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetItem(ctx context.Context, orderID, itemID string) (*domain.OrderItem, error) {
	q := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = $1 AND id = $2`
	it, err := scanItem(r.pool.QueryRow(ctx, q, orderID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get item order_id=%s id=%s error=%v", orderID, itemID, err)
		return nil, err
	}
	return it, nil
}

func (r *postgresRepo) CreateItem(ctx context.Context, orderID string, item domain.OrderItem) (*domain.OrderItem, error) {
	it, err := insertItem(ctx, r.pool, orderID, item)
	if err != nil {
		r.logger.Printf("order repo: create item order_id=%s product_id=%s error=%v", orderID, item.ProductID, err)
		switch db.ConstraintName(err) {
		case orderFK:
			return nil, domain.ErrNotFound
		case productFK:
			return nil, domain.Invalid("productId", "product does not exist")
		}
		return nil, mapWriteError(err)
	}
	r.logger.Printf("order repo: created item id=%s order_id=%s", it.ID, orderID)
	return it, nil
}

func (r *postgresRepo) UpdateItem(ctx context.Context, orderID, itemID string, patch domain.OrderItemPatch) (*domain.OrderItem, error) {
	q := `
UPDATE order_items
SET quantity = COALESCE($3, quantity),
    price_cents = COALESCE($4, price_cents),
    size = COALESCE($5, size),
    color = COALESCE($6, color)
WHERE order_id = $1 AND id = $2
RETURNING ` + itemColumns

	var price *int64
	if patch.Price != nil {
		v := patch.Price.Cents()
		price = &v
	}
	it, err := scanItem(r.pool.QueryRow(ctx, q, orderID, itemID, patch.Quantity, price, patch.Size, patch.Color))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update item order_id=%s id=%s error=%v", orderID, itemID, err)
		return nil, mapWriteError(err)
	}
	r.logger.Printf("order repo: updated item id=%s order_id=%s", itemID, orderID)
	return it, nil
}

func mapWriteError(err error) error {
	if domain.IsValidation(err) {
		return err
	}
	switch db.PgCode(err) {
	case db.CodeForeignKeyViolation:
		return domain.ErrConflict
	case db.CodeCheckViolation:
		return domain.Invalid("order", "violates "+db.ConstraintName(err))
	}
	return err
}
