package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name    string `form:"name"`
	Barcode string `form:"barcode"`
	Active  string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"      validate:"required,min=2"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
	Stock    int             `json:"stock"     validate:"min=0"`
	MinStock *int            `json:"min_stock" validate:"omitempty,min=0"`
	Barcode  *string         `json:"barcode"   validate:"omitempty,min=4"`
	ImageURL *string         `json:"image_url" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name     string           `json:"name"      validate:"omitempty,min=2"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"     validate:"omitempty,min=0"`
	MinStock *int             `json:"min_stock" validate:"omitempty,min=0"`
	Barcode  *string          `json:"barcode"   validate:"omitempty,min=4"`
	ImageURL *string          `json:"image_url" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
	Barcode  *string         `json:"barcode"`
	ImageURL *string         `json:"image_url"`
	Active   bool            `json:"active"`
}

// PriceCheckResponse is served by the public barcode price endpoint.
type PriceCheckResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}
