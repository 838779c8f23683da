package service

import (
	"context"
	"testing"
	"time"

	"auroramart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart(customerID *uuid.UUID) *model.Cart {
	return &model.Cart{
		ID:         uuid.New(),
		CustomerID: customerID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	cart := testCart(&customerID)

	mockProductRepo.On("GetBySKU", ctx, "P001").Return(testProduct("P001", "10.00"), nil)
	mockCartRepo.On("GetOrCreateCart", ctx, &customerID, (*string)(nil)).Return(cart, nil)
	mockCartRepo.On("UpsertCartItem", ctx, cart.ID, "P001", 1).Return(nil)
	mockCartRepo.On("GetCartItems", ctx, cart.ID).Return([]model.CartItemView{
		{
			ID:        uuid.New(),
			SKU:       "P001",
			Name:      "Product P001",
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("10.00"),
			LineTotal: decimal.RequireFromString("10.00"),
		},
	}, nil)

	resp, err := svc.AddItem(ctx, &customerID, nil, &model.CartAddRequest{SKU: "P001"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.TotalItems)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("10.00")))

	mockCartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	mockProductRepo.On("GetBySKU", ctx, "GHOST").Return(nil, nil)

	resp, err := svc.AddItem(ctx, &customerID, nil, &model.CartAddRequest{SKU: "GHOST"})

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, resp)

	mockCartRepo.AssertNotCalled(t, "UpsertCartItem")
}

func TestCartService_AddItem_NegativeQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	resp, err := svc.AddItem(ctx, &customerID, nil, &model.CartAddRequest{SKU: "P001", Quantity: -2})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidQuantity, err)
	assert.Nil(t, resp)
}

func TestCartService_GetCart_RequiresIdentity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	resp, err := svc.GetCart(ctx, nil, nil)

	require.Error(t, err)
	assert.Nil(t, resp)

	mockCartRepo.AssertNotCalled(t, "GetOrCreateCart")
}

func TestCartService_UpdateItem_ZeroQuantityRemovesLine(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	cart := testCart(&customerID)
	item := &model.CartItem{ID: uuid.New(), CartID: cart.ID, SKU: "P001", Quantity: 2}

	mockCartRepo.On("GetOrCreateCart", ctx, &customerID, (*string)(nil)).Return(cart, nil)
	mockCartRepo.On("GetCartItem", ctx, item.ID).Return(item, nil)
	mockCartRepo.On("DeleteCartItem", ctx, item.ID).Return(nil)
	mockCartRepo.On("GetCartItems", ctx, cart.ID).Return([]model.CartItemView{}, nil)

	resp, err := svc.UpdateItem(ctx, &customerID, nil, item.ID, &model.CartUpdateRequest{Quantity: 0})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 0, resp.TotalItems)

	mockCartRepo.AssertNotCalled(t, "SetCartItemQuantity")
	mockCartRepo.AssertExpectations(t)
}

func TestCartService_UpdateItem_ForeignCartLineRejected(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	cart := testCart(&customerID)
	// The line exists but hangs off a different cart.
	foreign := &model.CartItem{ID: uuid.New(), CartID: uuid.New(), SKU: "P001", Quantity: 2}

	mockCartRepo.On("GetOrCreateCart", ctx, &customerID, (*string)(nil)).Return(cart, nil)
	mockCartRepo.On("GetCartItem", ctx, foreign.ID).Return(foreign, nil)

	resp, err := svc.UpdateItem(ctx, &customerID, nil, foreign.ID, &model.CartUpdateRequest{Quantity: 5})

	require.Error(t, err)
	assert.Equal(t, model.ErrCartItemNotFound, err)
	assert.Nil(t, resp)

	mockCartRepo.AssertNotCalled(t, "SetCartItemQuantity")
	mockCartRepo.AssertNotCalled(t, "DeleteCartItem")
}

func TestCartService_AddToWishlist_Duplicate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	customerID := uuid.New()

	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewCartService(mockCartRepo, mockProductRepo, logger)

	wishlist := &model.Wishlist{ID: uuid.New(), CustomerID: customerID, CreatedAt: time.Now()}

	mockProductRepo.On("GetBySKU", ctx, "P001").Return(testProduct("P001", "10.00"), nil)
	mockCartRepo.On("GetOrCreateWishlist", ctx, customerID).Return(wishlist, nil)
	mockCartRepo.On("AddWishlistItem", ctx, wishlist.ID, "P001").Return(false, nil)

	err := svc.AddToWishlist(ctx, customerID, "P001")

	require.Error(t, err)
	assert.Equal(t, model.ErrAlreadyInWishlist, err)

	mockCartRepo.AssertExpectations(t)
}
