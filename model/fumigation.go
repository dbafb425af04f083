package model

import (
	"time"

	"github.com/rsetiawan/agrostock/constant"
)

type Fumigation struct {
	ID          uint64              `db:"id" json:"id"`
	Status      constant.WorkStatus `db:"status" json:"status"`
	Crop        string              `db:"crop" json:"crop"`
	FieldName   string              `db:"field_name" json:"field_name"`
	AppliedBy   uint64              `db:"applied_by" json:"applied_by"`
	ScheduledAt *time.Time          `db:"scheduled_at" json:"scheduled_at,omitempty"`
	FinishedAt  *time.Time          `db:"finished_at" json:"finished_at,omitempty"`
	Notes       string              `db:"notes" json:"notes,omitempty"`
	Temperature *float64            `db:"temperature" json:"temperature,omitempty"`
	Humidity    *float64            `db:"humidity" json:"humidity,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	Items       []FumigationItem    `db:"-" json:"items,omitempty"`
}

type FumigationItem struct {
	ID           uint64  `db:"id" json:"id"`
	FumigationID uint64  `db:"fumigation_id" json:"-"`
	ProductID    uint64  `db:"product_id" json:"product_id"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	Unit         string  `db:"unit" json:"unit"`
}

type FumigationRequest struct {
	Crop        string        `json:"crop" validate:"required"`
	FieldName   string        `json:"field_name" validate:"required"`
	ScheduledAt *time.Time    `json:"scheduled_at"`
	Items       []ConsumeItem `json:"items" validate:"required,min=1,dive"`
}

// CompleteFumigationRequest carries the measured conditions merged into the
// record at completion. AllowNegativeStock is the user-confirmed override
// that lets the decrement proceed past zero.
type CompleteFumigationRequest struct {
	FinishedAt         *time.Time `json:"finished_at"`
	Notes              string     `json:"notes"`
	Temperature        *float64   `json:"temperature"`
	Humidity           *float64   `json:"humidity"`
	AllowNegativeStock bool       `json:"allow_negative_stock"`
}

// FumigationCompletion is the tx-level write merged into the header row.
type FumigationCompletion struct {
	FinishedAt  time.Time
	Notes       string
	Temperature *float64
	Humidity    *float64
}

type WorkFilter struct {
	Status  constant.WorkStatus
	Page    int
	PerPage int
}

type FumigationListResponse struct {
	Items      []Fumigation `json:"items"`
	TotalCount int64        `json:"total_count"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
}
