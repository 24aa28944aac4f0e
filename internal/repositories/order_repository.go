package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/models"
	"github.com/shopnow/shopnow-backend/internal/utils"
)

// ErrEmptyCart is returned by PlaceOrder when the user's cart holds no items.
var ErrEmptyCart = errors.New("cart has no items")

type OrderRepository interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// PlaceOrder converts the user's cart into an order inside a single
// transaction: the cart rows are read with row locks (serializing
// concurrent placements for the same user), unit prices are snapshotted
// from the catalog, the order and its items are inserted and the cart is
// cleared. Either all of it happens or none of it does. A concurrent call
// serialized behind the first sees an already-emptied cart and gets
// ErrEmptyCart.
func (r *orderRepository) PlaceOrder(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	selectQuery := `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
		FOR UPDATE OF ci`

	rows, err := tx.QueryContext(dbCtx, selectQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart for order: %w", err)
	}

	var items []models.OrderItem

	var total float64

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}

		total += float64(item.Quantity) * item.UnitPrice
		items = append(items, item)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
	}

	insertOrder := `
		INSERT INTO orders (id, user_id, status, total_amount, shipping_address, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(dbCtx, insertOrder, order.ID, order.UserID, order.Status, order.TotalAmount, order.ShippingAddress, order.PaymentMethod).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
		items[i].CreatedAt = order.CreatedAt

		_, err := tx.ExecContext(dbCtx, insertItem, items[i].ID, order.ID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	clearCart := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := tx.ExecContext(dbCtx, clearCart, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT user_id, status, total_amount, shipping_address, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&order.UserID, &order.Status, &order.TotalAmount, &order.ShippingAddress, &order.PaymentMethod, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.orderItems(dbCtx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, status, total_amount, shipping_address, payment_method, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order := models.Order{UserID: userID}

		err := rows.Scan(&order.ID, &order.Status, &order.TotalAmount, &order.ShippingAddress, &order.PaymentMethod, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		items, err := r.orderItems(dbCtx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) orderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, product_id, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
