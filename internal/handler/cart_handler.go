package handler

import (
	"net/http"

	"auroramart/internal/model"
	"auroramart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sessionKeyHeader identifies an anonymous shopper's cart.
const sessionKeyHeader = "X-Session-Key"

// CartHandler handles cart and wishlist HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// GetCart handles GET /api/cart requests.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, sessionKey, ok := h.cartIdentity(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), customerID, sessionKey)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, sessionKey, ok := h.cartIdentity(w, r)
	if !ok {
		return
	}

	var req model.CartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), customerID, sessionKey, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cart)
}

// UpdateItem handles PATCH /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID, sessionKey, ok := h.cartIdentity(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid cart item ID format", h.logger)
		return
	}

	var req model.CartUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.UpdateItem(r.Context(), customerID, sessionKey, itemID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, sessionKey, ok := h.cartIdentity(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid cart item ID format", h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), customerID, sessionKey, itemID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// GetWishlist handles GET /api/customers/{id}/wishlist requests.
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.wishlistCustomer(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetWishlist(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.WishlistItemView{}
	}
	writeJSON(w, http.StatusOK, items)
}

// AddToWishlist handles POST /api/customers/{id}/wishlist requests.
func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.wishlistCustomer(w, r)
	if !ok {
		return
	}

	var req model.WishlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.AddToWishlist(r.Context(), customerID, req.SKU); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveFromWishlist handles DELETE /api/customers/{id}/wishlist/{sku}
// requests.
func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.wishlistCustomer(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveFromWishlist(r.Context(), customerID, r.PathValue("sku")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cartIdentity resolves the caller's cart identity: a customerId query
// parameter or, for anonymous shoppers, the X-Session-Key header.
func (h *CartHandler) cartIdentity(w http.ResponseWriter, r *http.Request) (*uuid.UUID, *string, bool) {
	if v := r.URL.Query().Get("customerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid customer ID format", h.logger)
			return nil, nil, false
		}
		return &id, nil, true
	}

	if key := r.Header.Get(sessionKeyHeader); key != "" {
		return nil, &key, true
	}

	writeError(w, http.StatusBadRequest, model.ErrCodeMissingField,
		"customerId parameter or X-Session-Key header is required", h.logger)
	return nil, nil, false
}

// wishlistCustomer parses the customer {id} path segment.
func (h *CartHandler) wishlistCustomer(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid customer ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
