package model

import (
	"time"

	"github.com/rsetiawan/agrostock/constant"
)

type Warehouse struct {
	ID        uint64                   `db:"id" json:"id"`
	Name      string                   `db:"name" json:"name"`
	Location  string                   `db:"location" json:"location,omitempty"`
	Status    constant.WarehouseStatus `db:"status" json:"status"`
	CreatedAt time.Time                `db:"created_at" json:"created_at"`
}

type WarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}
