package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	"github.com/rsetiawan/agrostock/utils/errors"
	validatorx "github.com/rsetiawan/agrostock/utils/validator"
)

// ListProducts handler
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Param warehouse_id query int false "Warehouse filter"
// @Param category query string false "Category filter"
// @Success 200 {object} model.ProductListResponse
// @Security BearerAuth
// @Router /v1/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := &model.ProductFilter{
		WarehouseID: uint64(queryInt(r, "warehouse_id")),
		Category:    r.URL.Query().Get("category"),
		Page:        queryInt(r, "page"),
		PerPage:     queryInt(r, "per_page"),
	}

	res, err := s.ProductApp.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product detail
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Security BearerAuth
// @Router /v1/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.ProductApp.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// UpdateProduct handler
// @Summary Update product attributes (not stock)
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ProductApp.UpdateProduct(r.Context(), id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Products
// @Param id path int true "Product ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ListLowStock handler
// @Summary List products below their minimum stock
// @Tags Products
// @Produce json
// @Success 200 {array} model.Product
// @Security BearerAuth
// @Router /v1/products/low-stock [get]
func (s *RestHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListLowStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
