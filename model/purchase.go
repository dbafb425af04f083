package model

import (
	"time"

	"github.com/rsetiawan/agrostock/constant"
)

type Purchase struct {
	ID          uint64                  `db:"id" json:"id"`
	Status      constant.PurchaseStatus `db:"status" json:"status"`
	Supplier    string                  `db:"supplier" json:"supplier"`
	RequestedBy uint64                  `db:"requested_by" json:"requested_by"`
	ApprovedBy  *uint64                 `db:"approved_by" json:"approved_by,omitempty"`
	CreatedAt   time.Time               `db:"created_at" json:"created_at"`
	Items       []PurchaseItem          `db:"-" json:"items,omitempty"`
	Deliveries  []PurchaseDelivery      `db:"-" json:"deliveries,omitempty"`
}

type PurchaseItem struct {
	ID         uint64  `db:"id" json:"id"`
	PurchaseID uint64  `db:"purchase_id" json:"-"`
	Name       string  `db:"name" json:"name"`
	Category   string  `db:"category" json:"category"`
	Unit       string  `db:"unit" json:"unit"`
	Quantity   float64 `db:"quantity" json:"quantity"`
	UnitCost   float64 `db:"unit_cost" json:"unit_cost"`
}

type PurchaseDelivery struct {
	ID          uint64                  `db:"id" json:"id"`
	PurchaseID  uint64                  `db:"purchase_id" json:"-"`
	Status      constant.DeliveryStatus `db:"status" json:"status"`
	WarehouseID uint64                  `db:"warehouse_id" json:"warehouse_id"`
	Notes       string                  `db:"notes" json:"notes,omitempty"`
	ReceivedAt  *time.Time              `db:"received_at" json:"received_at,omitempty"`
	CreatedAt   time.Time               `db:"created_at" json:"created_at"`
	Items       []DeliveryItem          `db:"-" json:"items,omitempty"`
}

type DeliveryItem struct {
	ID             uint64  `db:"id" json:"id"`
	DeliveryID     uint64  `db:"delivery_id" json:"-"`
	PurchaseItemID uint64  `db:"purchase_item_id" json:"purchase_item_id"`
	Quantity       float64 `db:"quantity" json:"quantity"`
}

// DeliverySummary is the per-delivery aggregate used to derive the purchase
// status: its lifecycle state and the total quantity it carries.
type DeliverySummary struct {
	ID            uint64                  `db:"id"`
	Status        constant.DeliveryStatus `db:"status"`
	TotalQuantity float64                 `db:"total_quantity"`
}

type PurchaseRequest struct {
	Supplier string                `json:"supplier" validate:"required"`
	Items    []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Unit     string  `json:"unit" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	UnitCost float64 `json:"unit_cost" validate:"gte=0"`
}

type DeliveryRequest struct {
	WarehouseID uint64                `json:"warehouse_id" validate:"required"`
	Notes       string                `json:"notes"`
	Items       []DeliveryItemRequest `json:"items" validate:"required,min=1,dive"`
}

type DeliveryItemRequest struct {
	PurchaseItemID uint64  `json:"purchase_item_id" validate:"required"`
	Quantity       float64 `json:"quantity" validate:"required,gt=0"`
}

type PurchaseFilter struct {
	Status  constant.PurchaseStatus
	Page    int
	PerPage int
}

type PurchaseListResponse struct {
	Items      []Purchase `json:"items"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}
