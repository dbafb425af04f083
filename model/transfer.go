package model

import (
	"time"

	"github.com/rsetiawan/agrostock/constant"
)

type Transfer struct {
	ID                uint64                  `db:"id" json:"id"`
	Status            constant.TransferStatus `db:"status" json:"status"`
	SourceWarehouseID uint64                  `db:"source_warehouse_id" json:"source_warehouse_id"`
	TargetWarehouseID uint64                  `db:"target_warehouse_id" json:"target_warehouse_id"`
	RequestedBy       uint64                  `db:"requested_by" json:"requested_by"`
	ApprovedBy        *uint64                 `db:"approved_by" json:"approved_by,omitempty"`
	ShippedBy         *uint64                 `db:"shipped_by" json:"shipped_by,omitempty"`
	ReceivedBy        *uint64                 `db:"received_by" json:"received_by,omitempty"`
	ApprovedAt        *time.Time              `db:"approved_at" json:"approved_at,omitempty"`
	ShippedAt         *time.Time              `db:"shipped_at" json:"shipped_at,omitempty"`
	ReceivedAt        *time.Time              `db:"received_at" json:"received_at,omitempty"`
	CreatedAt         time.Time               `db:"created_at" json:"created_at"`
	Items             []TransferItem          `db:"-" json:"items,omitempty"`
}

type TransferItem struct {
	ID               uint64   `db:"id" json:"id"`
	TransferID       uint64   `db:"transfer_id" json:"-"`
	ProductID        uint64   `db:"product_id" json:"product_id"`
	Quantity         float64  `db:"quantity" json:"quantity"`
	ReceivedQuantity *float64 `db:"received_quantity" json:"received_quantity,omitempty"`
}

type TransferRequest struct {
	SourceWarehouseID uint64        `json:"source_warehouse_id" validate:"required"`
	TargetWarehouseID uint64        `json:"target_warehouse_id" validate:"required,nefield=SourceWarehouseID"`
	Items             []ConsumeItem `json:"items" validate:"required,min=1,dive"`
}

// ReceiveTransferRequest confirms per-product received quantities. Products
// not listed default to the shipped quantity. Under- or over-delivery is
// accepted here; flagging the gap is a client concern.
type ReceiveTransferRequest struct {
	Items []ReceivedItem `json:"items" validate:"dive"`
}

type ReceivedItem struct {
	ProductID        uint64  `json:"product_id" validate:"required"`
	ReceivedQuantity float64 `json:"received_quantity" validate:"gte=0"`
}

type TransferFilter struct {
	Status  constant.TransferStatus
	Page    int
	PerPage int
}

type TransferListResponse struct {
	Items      []Transfer `json:"items"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}
