package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/logger"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{
		pool: pool,
	}
}

const orderColumns = `
	id, customer_name, customer_phone, customer_email, customer_address,
	comment, total_price, status, created_at, updated_at
`

// =====================================================
// CREATE ORDER
// =====================================================

func (r *postgresOrderRepository) Create(ctx context.Context, order *model.Order) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// 1. Order row
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (
				id, customer_name, customer_phone, customer_email, customer_address,
				comment, total_price, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			order.ID, order.CustomerName, order.CustomerPhone, order.CustomerEmail, order.CustomerAddress,
			order.Comment, order.TotalPrice, string(order.Status), order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		// 2. Item rows
		batch := &pgx.Batch{}
		for i, it := range order.Items {
			batch.Queue(`
				INSERT INTO order_items (
					id, order_id, position, product_id, name, price, image_url,
					quantity, memory, color, subtotal
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				it.ID, it.OrderID, i, it.ProductID, it.Name, it.Price, it.ImageURL,
				it.Quantity, it.Memory, it.Color, it.Subtotal,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}

		// 3. Initial history row
		if err := insertHistory(ctx, tx, order.ID, nil, order.Status, order.CreatedAt); err != nil {
			return err
		}

		logger.Info("Order persisted", map[string]interface{}{
			"order_id": order.ID,
			"items":    len(order.Items),
		})
		return nil
	})
}

// =====================================================
// READS
// =====================================================

func (r *postgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	return order, nil
}

// listOrdering is the ORDER BY of List; id breaks created_at ties so pages are stable.
func listOrdering(oldestFirst bool) string {
	if oldestFirst {
		return "created_at ASC, id ASC"
	}
	return "created_at DESC, id DESC"
}

func (r *postgresOrderRepository) List(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	status, limit := req.Status, req.Limit
	offset := (req.Page - 1) * limit

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM orders WHERE 1=1`
	args := []interface{}{}
	countArgs := []interface{}{}

	if status != nil {
		query += ` AND status = $1`
		countQuery += ` AND status = $1`
		args = append(args, string(*status))
		countArgs = append(countArgs, string(*status))
	}

	query += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, listOrdering(req.OldestFirst), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}

	return orders, total, nil
}

func (r *postgresOrderRepository) ListHistory(ctx context.Context, id uuid.UUID) ([]model.OrderStatusHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, from_status, to_status, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	history := make([]model.OrderStatusHistory, 0)
	for rows.Next() {
		var (
			h    model.OrderStatusHistory
			from *string
			to   string
		)
		if err := rows.Scan(&h.ID, &h.OrderID, &from, &to, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		if from != nil {
			s := model.Status(*from)
			h.FromStatus = &s
		}
		h.ToStatus = model.Status(to)
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status history: %w", err)
	}
	return history, nil
}

// =====================================================
// STATUS UPDATE
// =====================================================

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status) (*model.Order, error) {
	now := time.Now().UTC()

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE orders
			SET status = $1, updated_at = $2
			WHERE id = $3 AND status = $4`,
			string(to), now, id, string(from),
		)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrStatusChanged
		}
		return insertHistory(ctx, tx, id, &from, to, now)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// =====================================================
// HELPERS
// =====================================================

func insertHistory(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, from *model.Status, to model.Status, at time.Time) error {
	var fromValue *string
	if from != nil {
		s := string(*from)
		fromValue = &s
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), orderID, fromValue, string(to), at,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	result := make(map[uuid.UUID][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, price, COALESCE(image_url, ''),
		       quantity, COALESCE(memory, ''), COALESCE(color, ''), subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Price, &it.ImageURL,
			&it.Quantity, &it.Memory, &it.Color, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order  model.Order
		status string
	)
	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.CustomerEmail,
		&order.CustomerAddress,
		&order.Comment,
		&order.TotalPrice,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	order.Status = model.Status(status)
	return &order, nil
}
