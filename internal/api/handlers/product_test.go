package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/api/handlers"
	appErrors "github.com/shopnow/shopnow-backend/internal/errors"
	"github.com/shopnow/shopnow-backend/internal/models"
	"github.com/shopnow/shopnow-backend/internal/services/mocks"
	"github.com/shopnow/shopnow-backend/internal/testutils"
	"github.com/shopnow/shopnow-backend/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProductHandlerTest(t *testing.T) (*handlers.ProductHandler, *mocks.ProductService) {
	t.Helper()

	productService := mocks.NewProductService(t)

	return handlers.NewProductHandler(productService), productService
}

func TestProductHandlerCreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		created := &models.Product{ID: uuid.New(), Name: "Espresso Machine", Price: 349.99, Category: "kitchen"}
		productService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.CreateProductRequest")).
			Return(created, nil).Once()

		body, _ := json.Marshal(models.CreateProductRequest{
			Name:     "Espresso Machine",
			Price:    349.99,
			Category: "kitchen",
		})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", bytes.NewReader(body), uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Failure - Missing Name Fails Validation", func(t *testing.T) {
		// Arrange
		handler, _ := setupProductHandlerTest(t)
		body, _ := json.Marshal(map[string]any{"price": 10.0, "category": "kitchen"})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", bytes.NewReader(body), uuid.New(), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})
}

func TestProductHandlerGetProduct(t *testing.T) {
	productID := uuid.New()
	target := fmt.Sprintf("/api/v1/products/%s", productID)
	pathParams := map[string]string{"id": productID.String()}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		product := &models.Product{ID: productID, Name: "Espresso Machine"}
		productService.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, target, nil, pathParams)
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		productService.On("GetProductByID", mock.Anything, productID).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, target, nil, pathParams)
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Failure - Invalid Product ID", func(t *testing.T) {
		// Arrange
		handler, _ := setupProductHandlerTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/nope", nil,
			map[string]string{"id": "nope"})
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandlerUpdateProduct(t *testing.T) {
	productID := uuid.New()
	target := fmt.Sprintf("/api/v1/products/%s", productID)
	pathParams := map[string]string{"id": productID.String()}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		updated := &models.Product{ID: productID, Name: "New Name", Price: 12.50}
		productService.On("UpdateProduct", mock.Anything, productID, mock.AnythingOfType("*models.UpdateProductRequest")).
			Return(updated, nil).Once()

		newName := "New Name"
		body, _ := json.Marshal(models.UpdateProductRequest{Name: &newName})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, target, bytes.NewReader(body), uuid.New(), pathParams)
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProductHandlerListProducts(t *testing.T) {
	t.Run("Success - Defaults", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		products := []*models.Product{{ID: uuid.New(), Name: "A"}}
		productService.On("ListProducts", mock.Anything, 1, 10).Return(products, 1, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		data := resp.Data.(map[string]any)
		assert.InDelta(t, 1, data["total"], 0.001)
	})

	t.Run("Success - Oversized Page Size Falls Back", func(t *testing.T) {
		// Arrange
		handler, productService := setupProductHandlerTest(t)
		productService.On("ListProducts", mock.Anything, 1, 10).Return(nil, 0, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?size=5000", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
