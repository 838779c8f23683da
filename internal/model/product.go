package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry, identified by its SKU.
type Product struct {
	SKU              string          `json:"sku" db:"sku"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description" db:"description"`
	Category         string          `json:"category" db:"category"`
	Subcategory      string          `json:"subcategory" db:"subcategory"`
	Price            decimal.Decimal `json:"price" db:"price"`
	Rating           decimal.Decimal `json:"rating" db:"rating"`
	Stock            int             `json:"stock" db:"stock"`
	ReorderThreshold int             `json:"reorderThreshold" db:"reorder_threshold"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
}

// NeedsReorder reports whether stock has fallen to the reorder threshold.
func (p *Product) NeedsReorder() bool {
	return p.Stock <= p.ReorderThreshold
}

// Valid sort keys for product listings. SKU is always the tiebreak so
// listings stay deterministic.
const (
	ProductSortName   = "name"
	ProductSortPrice  = "price"
	ProductSortRating = "rating"
)

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// LowStock restricts results to products at or below their reorder threshold.
	LowStock bool
	Sort     string
	Desc     bool
	Limit    int
	Offset   int
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Subcategory      string          `json:"subcategory"`
	Price            decimal.Decimal `json:"price"`
	Rating           decimal.Decimal `json:"rating"`
	Stock            int             `json:"stock"`
	ReorderThreshold int             `json:"reorderThreshold"`
}
