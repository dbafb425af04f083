package model

import (
	"time"

	"github.com/rsetiawan/agrostock/constant"
)

type Harvest struct {
	ID                uint64              `db:"id" json:"id"`
	Status            constant.WorkStatus `db:"status" json:"status"`
	Crop              string              `db:"crop" json:"crop"`
	FieldName         string              `db:"field_name" json:"field_name"`
	TargetWarehouseID uint64              `db:"target_warehouse_id" json:"target_warehouse_id"`
	PlannedBy         uint64              `db:"planned_by" json:"planned_by"`
	PlannedAt         *time.Time          `db:"planned_at" json:"planned_at,omitempty"`
	FinishedAt        *time.Time          `db:"finished_at" json:"finished_at,omitempty"`
	Notes             string              `db:"notes" json:"notes,omitempty"`
	ActualYield       *float64            `db:"actual_yield" json:"actual_yield,omitempty"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	ConsumedItems     []HarvestItem       `db:"-" json:"consumed_items,omitempty"`
	HarvestedItems    []HarvestedItem     `db:"-" json:"harvested_items,omitempty"`
}

// HarvestItem is an input consumed at planning time (seed, fertilizer).
type HarvestItem struct {
	ID        uint64  `db:"id" json:"id"`
	HarvestID uint64  `db:"harvest_id" json:"-"`
	ProductID uint64  `db:"product_id" json:"product_id"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	Unit      string  `db:"unit" json:"unit"`
}

// HarvestedItem is a lot produced at completion, persisted as a new product.
type HarvestedItem struct {
	ID        uint64  `db:"id" json:"id"`
	HarvestID uint64  `db:"harvest_id" json:"-"`
	ProductID uint64  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	Unit      string  `db:"unit" json:"unit"`
}

type HarvestRequest struct {
	Crop              string        `json:"crop" validate:"required"`
	FieldName         string        `json:"field_name" validate:"required"`
	TargetWarehouseID uint64        `json:"target_warehouse_id" validate:"required"`
	PlannedAt         *time.Time    `json:"planned_at"`
	Items             []ConsumeItem `json:"items" validate:"required,min=1,dive"`
}

type CompleteHarvestRequest struct {
	FinishedAt *time.Time    `json:"finished_at"`
	Notes      string        `json:"notes"`
	Items      []ProduceItem `json:"items" validate:"required,min=1,dive"`
}

type HarvestCompletion struct {
	FinishedAt  time.Time
	Notes       string
	ActualYield float64
}

type HarvestListResponse struct {
	Items      []Harvest `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
}
