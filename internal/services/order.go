package service

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/errors"
	"github.com/shopnow/shopnow-backend/internal/models"
	repository "github.com/shopnow/shopnow-backend/internal/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	userRepo repository.UserRepository
}

func NewOrderService(repo repository.OrderRepository, userRepo repository.UserRepository) OrderService {
	return &orderService{repo: repo, userRepo: userRepo}
}

// PlaceOrder turns the user's current cart into an order with prices
// captured at placement time. The cart is emptied as part of the same
// transaction, so of two concurrent placements only one produces an order.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.Order, error) {

	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to verify user").WithError(err)
	}

	if !exists {
		return nil, errors.NotFoundError("User not found")
	}

	order, err := s.repo.PlaceOrder(ctx, userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		if stderrors.Is(err, repository.ErrEmptyCart) {
			return nil, errors.EmptyCartError()
		}

		return nil, errors.DatabaseError("Failed to place order").WithError(err)
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found")
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found")
		}

		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrderByID(ctx, id)
}
