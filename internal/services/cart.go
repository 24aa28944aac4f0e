package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/errors"
	"github.com/shopnow/shopnow-backend/internal/models"
	repository "github.com/shopnow/shopnow-backend/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	UpsertItem(ctx context.Context, userID uuid.UUID, req *models.UpsertItemRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo        repository.CartRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, userRepo: userRepo, productRepo: productRepo}
}

// GetCart returns the user's cart. An empty cart is a normal state, not an
// error; a missing user is.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	return &models.CartResponse{Items: items}, nil
}

// UpsertItem sets the quantity for the product in the user's cart. Adding a
// product that is already present replaces the stored quantity; quantities
// never accumulate across calls.
func (s *cartService) UpsertItem(ctx context.Context, userID uuid.UUID, req *models.UpsertItemRequest) (*models.CartItem, error) {

	if req.Quantity < 1 {
		return nil, errors.InvalidQuantityError("Quantity must be at least 1")
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to verify product").WithError(err)
	}

	if !exists {
		return nil, errors.NotFoundError("Product not found")
	}

	item, err := s.repo.UpsertItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return item, nil
}

// RemoveItem deletes the product from the cart. Removing a product that is
// not in the cart succeeds.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {

	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Clear(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) requireUser(ctx context.Context, userID uuid.UUID) error {

	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return errors.DatabaseError("Failed to verify user").WithError(err)
	}

	if !exists {
		return errors.NotFoundError("User not found")
	}

	return nil
}
