package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/shopnow/shopnow-backend/internal/errors"
	"github.com/shopnow/shopnow-backend/internal/models"
	repository "github.com/shopnow/shopnow-backend/internal/repositories"
	"github.com/shopnow/shopnow-backend/internal/repositories/mocks"
	service "github.com/shopnow/shopnow-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest(t *testing.T) (service.OrderService, *mocks.OrderRepository, *mocks.UserRepository) {
	t.Helper()

	orderRepo := mocks.NewOrderRepository(t)
	userRepo := mocks.NewUserRepository(t)

	return service.NewOrderService(orderRepo, userRepo), orderRepo, userRepo
}

func TestOrderServicePlaceOrder(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	req := &models.PlaceOrderRequest{ShippingAddress: "1 Main St", PaymentMethod: "card"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, userRepo := setupOrderServiceTest(t)
		placed := &models.Order{
			ID:          uuid.New(),
			UserID:      userID,
			Status:      models.OrderStatusPending,
			TotalAmount: 120.00,
			Items: []models.OrderItem{
				{ProductID: uuid.New(), Quantity: 2, UnitPrice: 10.50},
				{ProductID: uuid.New(), Quantity: 1, UnitPrice: 99.00},
			},
		}

		userRepo.On("ExistsByID", ctx, userID).Return(true, nil).Once()
		orderRepo.On("PlaceOrder", ctx, userID, req.ShippingAddress, req.PaymentMethod).Return(placed, nil).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.InDelta(t, 120.00, order.TotalAmount, 0.001)
		assert.Len(t, order.Items, 2)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, userRepo := setupOrderServiceTest(t)
		userRepo.On("ExistsByID", ctx, userID).Return(true, nil).Once()
		orderRepo.On("PlaceOrder", ctx, userID, req.ShippingAddress, req.PaymentMethod).
			Return(nil, repository.ErrEmptyCart).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		orderService, _, userRepo := setupOrderServiceTest(t)
		userRepo.On("ExistsByID", ctx, userID).Return(false, nil).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "User not found", appErr.Message)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, userRepo := setupOrderServiceTest(t)
		dbError := errors.New("transaction failed")
		userRepo.On("ExistsByID", ctx, userID).Return(true, nil).Once()
		orderRepo.On("PlaceOrder", ctx, userID, req.ShippingAddress, req.PaymentMethod).
			Return(nil, dbError).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbError)
	})
}

func TestOrderServiceGetOrderByID(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		existing := &models.Order{ID: orderID, UserID: uuid.New(), Status: models.OrderStatusPending}
		orderRepo.On("GetOrderByID", ctx, orderID).Return(existing, nil).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		orderRepo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Order not found", appErr.Message)
	})
}

func TestOrderServiceListOrdersByUser(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Newest First", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		now := time.Now()
		orders := []models.Order{
			{ID: uuid.New(), UserID: userID, CreatedAt: now},
			{ID: uuid.New(), UserID: userID, CreatedAt: now.Add(-time.Hour)},
		}
		orderRepo.On("ListOrdersByUser", ctx, userID, 1, 10).Return(orders, 2, nil).Once()

		// Act
		result, total, err := orderService.ListOrdersByUser(ctx, userID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, result, 2)
		assert.True(t, result[0].CreatedAt.After(result[1].CreatedAt))
	})

	t.Run("Success - Page Defaults Applied", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		orderRepo.On("ListOrdersByUser", ctx, userID, 1, 10).Return(nil, 0, nil).Once()

		// Act
		result, total, err := orderService.ListOrdersByUser(ctx, userID, 0, -5)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("Success - Oversized Page Clamped", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		orderRepo.On("ListOrdersByUser", ctx, userID, 1, 100).Return(nil, 0, nil).Once()

		// Act
		_, _, err := orderService.ListOrdersByUser(ctx, userID, 1, 5000)

		// Assert
		require.NoError(t, err)
	})
}

func TestOrderServiceUpdateOrderStatus(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		updated := &models.Order{ID: orderID, Status: models.OrderStatusShipping}

		orderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusShipping).Return(nil).Once()
		orderRepo.On("GetOrderByID", ctx, orderID).Return(updated, nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipping)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipping, order.Status)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _ := setupOrderServiceTest(t)
		orderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusShipping).Return(sql.ErrNoRows).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusShipping)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
