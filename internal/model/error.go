package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeCustomerNotFound    = "CUSTOMER_NOT_FOUND"
	ErrCodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	ErrCodeDuplicateSKU        = "DUPLICATE_SKU"
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeDuplicateWishlist   = "ALREADY_IN_WISHLIST"
	ErrCodeTransactionConflict = "TRANSACTION_CONFLICT"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-logic error with a stable code that handlers map
// to HTTP statuses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStatus       = NewDomainError(ErrCodeInvalidStatus, "Unknown fulfillment status")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCustomerNotFound    = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrCartItemNotFound    = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrDuplicateSKU        = NewDomainError(ErrCodeDuplicateSKU, "A product with that SKU already exists")
	ErrDuplicateEmail      = NewDomainError(ErrCodeDuplicateEmail, "A customer with that email already exists")
	ErrAlreadyInWishlist   = NewDomainError(ErrCodeDuplicateWishlist, "Product is already in the wishlist")
	ErrTransactionConflict = NewDomainError(ErrCodeTransactionConflict, "Concurrent write detected, retry the batch")
)
