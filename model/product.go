package model

import "time"

type Product struct {
	ID          uint64     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Category    string     `db:"category" json:"category"`
	Unit        string     `db:"unit" json:"unit"`
	Stock       float64    `db:"stock" json:"stock"`
	MinStock    float64    `db:"min_stock" json:"min_stock"`
	WarehouseID uint64     `db:"warehouse_id" json:"warehouse_id"`
	FieldName   string     `db:"field_name" json:"field_name,omitempty"`
	LotCode     string     `db:"lot_code" json:"lot_code,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type ProductFilter struct {
	WarehouseID uint64
	Category    string
	Page        int
	PerPage     int
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Unit        string  `json:"unit" validate:"required"`
	Stock       float64 `json:"stock" validate:"gte=0"`
	MinStock    float64 `json:"min_stock" validate:"gte=0"`
	WarehouseID uint64  `json:"warehouse_id" validate:"required"`
	FieldName   string  `json:"field_name"`
}

type ProductListResponse struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
}

// ConsumeItem is one stock decrement inside a transactional workflow.
type ConsumeItem struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      string  `json:"unit"`
}

// ProduceItem describes a brand-new inventory record created by a completion
// (harvested lot or purchase delivery). It never merges into an existing row.
type ProduceItem struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Unit     string  `json:"unit" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}
