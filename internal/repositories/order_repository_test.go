package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/models"
	repository "github.com/shopnow/shopnow-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepo(db)
	require.NotNil(t, repo, "NewOrderRepo should return a non-nil repository")

	return repo, mock
}

func TestOrderRepositoryPlaceOrder(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()
	now := time.Now()

	cartColumns := []string{"product_id", "quantity", "price"}

	t.Run("Success - Snapshot, Insert And Clear In One Transaction", func(t *testing.T) {
		// Arrange
		productA := uuid.New()
		productB := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ci\.product_id, ci\.quantity, p\.price`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cartColumns).
				AddRow(productA, 2, 10.50).
				AddRow(productB, 1, 99.00))
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(sqlmock.AnyArg(), userID, models.OrderStatusPending, 120.00, "1 Main St", "card").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), productA, 2, 10.50).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), productB, 1, 99.00).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		// Act
		order, err := repo.PlaceOrder(ctx, userID, "1 Main St", "card")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.InDelta(t, 120.00, order.TotalAmount, 0.001)
		require.Len(t, order.Items, 2)
		assert.Equal(t, productA, order.Items[0].ProductID)
		assert.InDelta(t, 10.50, order.Items[0].UnitPrice, 0.001)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Empty Cart Rolls Back", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ci\.product_id, ci\.quantity, p\.price`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cartColumns))
		mock.ExpectRollback()

		// Act
		order, err := repo.PlaceOrder(ctx, userID, "1 Main St", "card")

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, repository.ErrEmptyCart)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order Insert Error Rolls Back", func(t *testing.T) {
		// Arrange
		dbError := errors.New("insert failed")
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ci\.product_id, ci\.quantity, p\.price`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cartColumns).AddRow(uuid.New(), 1, 5.00))
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(dbError)
		mock.ExpectRollback()

		// Act
		order, err := repo.PlaceOrder(ctx, userID, "1 Main St", "card")

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin Error", func(t *testing.T) {
		// Arrange
		dbError := errors.New("no connection")
		mock.ExpectBegin().WillReturnError(dbError)

		// Act
		order, err := repo.PlaceOrder(ctx, userID, "1 Main St", "card")

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryGetOrderByID(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	orderID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	orderColumns := []string{"user_id", "status", "total_amount", "shipping_address", "payment_method", "created_at", "updated_at"}
	itemColumns := []string{"id", "product_id", "quantity", "unit_price", "created_at"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productID := uuid.New()
		mock.ExpectQuery(`SELECT user_id, status, total_amount`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(userID, "pending", 42.00, "1 Main St", "card", now, now))
		mock.ExpectQuery(`SELECT id, product_id, quantity, unit_price`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(uuid.New(), productID, 2, 21.00, now))

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, userID, order.UserID)
		require.Len(t, order.Items, 1)
		assert.Equal(t, orderID, order.Items[0].OrderID)
		assert.Equal(t, productID, order.Items[0].ProductID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT user_id, status, total_amount`).
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryListOrdersByUser(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()
	now := time.Now()

	orderColumns := []string{"id", "status", "total_amount", "shipping_address", "payment_method", "created_at", "updated_at"}
	itemColumns := []string{"id", "product_id", "quantity", "unit_price", "created_at"}

	t.Run("Success - Newest First With Items", func(t *testing.T) {
		// Arrange
		newer := uuid.New()
		older := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY created_at DESC`).
			WithArgs(userID, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(newer, "pending", 10.00, "1 Main St", "card", now, now).
				AddRow(older, "delivered", 20.00, "1 Main St", "card", now.Add(-time.Hour), now.Add(-time.Hour)))
		mock.ExpectQuery(`SELECT id, product_id, quantity, unit_price`).
			WithArgs(newer).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(uuid.New(), uuid.New(), 1, 10.00, now))
		mock.ExpectQuery(`SELECT id, product_id, quantity, unit_price`).
			WithArgs(older).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(uuid.New(), uuid.New(), 2, 10.00, now))

		// Act
		orders, total, err := repo.ListOrdersByUser(ctx, userID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, orders, 2)
		assert.Equal(t, newer, orders[0].ID)
		assert.Equal(t, older, orders[1].ID)
		assert.Equal(t, userID, orders[0].UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Orders", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`ORDER BY created_at DESC`).
			WithArgs(userID, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		// Act
		orders, total, err := repo.ListOrdersByUser(ctx, userID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryUpdateOrderStatus(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	orderID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(models.OrderStatusShipping, orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipping)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order Missing", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(models.OrderStatusShipping, orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipping)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
