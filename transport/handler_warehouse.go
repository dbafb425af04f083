package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	"github.com/rsetiawan/agrostock/utils/errors"
	validatorx "github.com/rsetiawan/agrostock/utils/validator"
)

// ListWarehouses handler
// @Summary List warehouses
// @Tags Warehouses
// @Produce json
// @Success 200 {array} model.Warehouse
// @Security BearerAuth
// @Router /v1/warehouses [get]
func (s *RestHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	res, err := s.WarehouseApp.ListWarehouses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetWarehouse handler
// @Summary Get warehouse
// @Tags Warehouses
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} model.Warehouse
// @Security BearerAuth
// @Router /v1/warehouses/{id} [get]
func (s *RestHandler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.WarehouseApp.GetWarehouse(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateWarehouse handler
// @Summary Create a warehouse
// @Tags Warehouses
// @Accept json
// @Produce json
// @Param request body model.WarehouseRequest true "Warehouse"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/warehouses [post]
func (s *RestHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req model.WarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.WarehouseApp.CreateWarehouse(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// DeactivateWarehouse handler
// @Summary Deactivate a warehouse
// @Description Inactive warehouses stop accepting new products, harvests and transfers.
// @Tags Warehouses
// @Param id path int true "Warehouse ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/warehouses/{id}/deactivate [post]
func (s *RestHandler) DeactivateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.WarehouseApp.DeactivateWarehouse(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
