package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auroramart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, sku string, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, sku, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, sku string) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func testProductModel() *model.Product {
	return &model.Product{
		SKU:              "KB-2042",
		Name:             "Mechanical Keyboard",
		Category:         "electronics",
		Price:            decimal.RequireFromString("89.90"),
		Rating:           decimal.RequireFromString("4.50"),
		Stock:            12,
		ReorderThreshold: 5,
	}
}

func TestProductHandler_GetBySKU(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("GetBySKU", mock.Anything, "KB-2042").Return(testProductModel(), nil)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products/KB-2042", nil)
		req.SetPathValue("sku", "KB-2042")
		w := httptest.NewRecorder()

		h.GetBySKU(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, "KB-2042", product.SKU)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("89.90")))
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("GetBySKU", mock.Anything, "NOPE").Return(nil, nil)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products/NOPE", nil)
		req.SetPathValue("sku", "NOPE")
		w := httptest.NewRecorder()

		h.GetBySKU(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, model.ErrCodeProductNotFound, errResp.Error)
	})
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("Create", mock.Anything, mock.Anything).Return(testProductModel(), nil)

		h := NewProductHandler(mockService, logger)

		body := `{"sku": "KB-2042", "name": "Mechanical Keyboard", "category": "electronics", "price": "89.90"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Duplicate SKU", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrDuplicateSKU)

		h := NewProductHandler(mockService, logger)

		body := `{"sku": "KB-2042", "name": "Mechanical Keyboard", "price": "89.90"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		mockService := new(MockProductService)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Filters are passed through", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("List", mock.Anything, mock.MatchedBy(func(f model.ProductFilter) bool {
			return f.Category == "electronics" &&
				f.LowStock &&
				f.MinPrice != nil && f.MinPrice.Equal(decimal.RequireFromString("10")) &&
				f.Sort == "price" && f.Desc
		})).Return([]model.Product{*testProductModel()}, nil)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet,
			"/api/products?category=electronics&lowStock=true&minPrice=10&sort=price&order=desc", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Garbage price filter rejected", func(t *testing.T) {
		mockService := new(MockProductService)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products?minPrice=cheap", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "List")
	})

	t.Run("Empty result is an empty array", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("List", mock.Anything, mock.Anything).Return([]model.Product{}, nil)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("Delete", mock.Anything, "KB-2042").Return(nil)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/products/KB-2042", nil)
		req.SetPathValue("sku", "KB-2042")
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("Delete", mock.Anything, "NOPE").Return(model.ErrProductNotFound)

		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/products/NOPE", nil)
		req.SetPathValue("sku", "NOPE")
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
