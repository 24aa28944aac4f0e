package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopnow/shopnow-backend/internal/api/middleware"
	"github.com/shopnow/shopnow-backend/internal/errors"
	"github.com/shopnow/shopnow-backend/internal/models"
	service "github.com/shopnow/shopnow-backend/internal/services"
	"github.com/shopnow/shopnow-backend/internal/utils"
	"github.com/shopnow/shopnow-backend/internal/utils/response"
)

// CartHandler serves the authenticated user's cart. The cart is always
// addressed through the token's identity, never through a path parameter,
// so one user cannot touch another user's cart.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current user's cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse		"Cart contents"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpsertItem godoc
//	@Summary		Add or update a cart item
//	@Description	Sets the quantity for a product in the cart. Re-adding a product replaces its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpsertItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.CartItem				"Stored cart item"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or invalid quantity"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Security		BearerAuth
//	@Router			/cart/items [put]
func (h *CartHandler) UpsertItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpsertItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.cartService.UpsertItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Cart item stored", slog.String("productId", item.ProductID.String()), slog.Int("quantity", item.Quantity))
		response.Success(w, http.StatusOK, item)
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Description	Removing a product that is not in the cart still succeeds.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		204			"Removed"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID); err != nil {
			logger.Error("Failed to remove cart item", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearCart godoc
//	@Summary		Empty the current user's cart
//	@Tags			Cart
//	@Produce		json
//	@Success		204	"Cleared"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
