package service

import (
	"context"

	"auroramart/internal/model"
	"auroramart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves the cart with live pricing, creating it on first use.
func (s *cartService) GetCart(ctx context.Context, customerID *uuid.UUID, sessionKey *string) (*model.CartResponse, error) {
	cart, err := s.resolveCart(ctx, customerID, sessionKey)
	if err != nil {
		return nil, err
	}

	return s.cartResponse(ctx, cart.ID)
}

// AddItem adds quantity of a product to the cart. Quantity defaults to 1
// when omitted.
func (s *cartService) AddItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, req *model.CartAddRequest) (*model.CartResponse, error) {
	if req == nil || req.SKU == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "SKU is required")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.resolveCart(ctx, customerID, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpsertCartItem(ctx, cart.ID, product.SKU, quantity); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Str("sku", product.SKU).
		Int("quantity", quantity).
		Msg("cart item added")

	return s.cartResponse(ctx, cart.ID)
}

// UpdateItem sets the absolute quantity of a cart line. A quantity of zero
// or less removes the line.
func (s *cartService) UpdateItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, itemID uuid.UUID, req *model.CartUpdateRequest) (*model.CartResponse, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Cart request is required")
	}

	cart, item, err := s.resolveCartItem(ctx, customerID, sessionKey, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		err = s.cartRepo.DeleteCartItem(ctx, item.ID)
	} else {
		err = s.cartRepo.SetCartItemQuantity(ctx, item.ID, req.Quantity)
	}
	if err != nil {
		return nil, err
	}

	return s.cartResponse(ctx, cart.ID)
}

// RemoveItem removes one cart line.
func (s *cartService) RemoveItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, itemID uuid.UUID) (*model.CartResponse, error) {
	cart, item, err := s.resolveCartItem(ctx, customerID, sessionKey, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteCartItem(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.cartResponse(ctx, cart.ID)
}

// GetWishlist retrieves the customer's wishlist entries.
func (s *cartService) GetWishlist(ctx context.Context, customerID uuid.UUID) ([]model.WishlistItemView, error) {
	wishlist, err := s.cartRepo.GetOrCreateWishlist(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetWishlistItems(ctx, wishlist.ID)
}

// AddToWishlist adds a product to the customer's wishlist.
func (s *cartService) AddToWishlist(ctx context.Context, customerID uuid.UUID, sku string) error {
	if sku == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "SKU is required")
	}

	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	wishlist, err := s.cartRepo.GetOrCreateWishlist(ctx, customerID)
	if err != nil {
		return err
	}

	created, err := s.cartRepo.AddWishlistItem(ctx, wishlist.ID, product.SKU)
	if err != nil {
		return err
	}
	if !created {
		return model.ErrAlreadyInWishlist
	}

	s.logger.Debug().
		Str("customer_id", customerID.String()).
		Str("sku", sku).
		Msg("wishlist item added")

	return nil
}

// RemoveFromWishlist removes a product from the customer's wishlist.
func (s *cartService) RemoveFromWishlist(ctx context.Context, customerID uuid.UUID, sku string) error {
	wishlist, err := s.cartRepo.GetOrCreateWishlist(ctx, customerID)
	if err != nil {
		return err
	}

	return s.cartRepo.RemoveWishlistItem(ctx, wishlist.ID, sku)
}

// resolveCart locates the caller's cart. One of customerID or sessionKey is
// required.
func (s *cartService) resolveCart(ctx context.Context, customerID *uuid.UUID, sessionKey *string) (*model.Cart, error) {
	if customerID == nil && (sessionKey == nil || *sessionKey == "") {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Customer ID or session key is required")
	}

	return s.cartRepo.GetOrCreateCart(ctx, customerID, sessionKey)
}

// resolveCartItem locates the caller's cart and verifies the item belongs to
// it, so one shopper can never mutate another's lines.
func (s *cartService) resolveCartItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, itemID uuid.UUID) (*model.Cart, *model.CartItem, error) {
	cart, err := s.resolveCart(ctx, customerID, sessionKey)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.cartRepo.GetCartItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, nil, model.ErrCartItemNotFound
	}

	return cart, item, nil
}

// cartResponse builds the full cart view with totals computed from live
// catalog prices.
func (s *cartService) cartResponse(ctx context.Context, cartID uuid.UUID) (*model.CartResponse, error) {
	items, err := s.cartRepo.GetCartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	totalItems := 0
	totalPrice := decimal.Zero
	for i := range items {
		totalItems += items[i].Quantity
		totalPrice = totalPrice.Add(items[i].LineTotal)
	}

	return &model.CartResponse{
		ID:         cartID,
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}, nil
}
