package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	utilsContext "github.com/rsetiawan/agrostock/utils/context"
	"github.com/rsetiawan/agrostock/utils/errors"
	validatorx "github.com/rsetiawan/agrostock/utils/validator"
)

// ListPurchases handler
// @Summary List purchase orders
// @Tags Purchases
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.PurchaseListResponse
// @Security BearerAuth
// @Router /v1/purchases [get]
func (s *RestHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	filter := &model.PurchaseFilter{
		Status:  constant.PurchaseStatus(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}

	res, err := s.PurchaseApp.ListPurchases(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetPurchase handler
// @Summary Get purchase order detail with items and deliveries
// @Tags Purchases
// @Produce json
// @Param id path int true "Purchase ID"
// @Success 200 {object} model.Purchase
// @Security BearerAuth
// @Router /v1/purchases/{id} [get]
func (s *RestHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PurchaseApp.GetPurchase(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreatePurchase handler
// @Summary Create a purchase order
// @Tags Purchases
// @Accept json
// @Produce json
// @Param request body model.PurchaseRequest true "Purchase order"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/purchases [post]
func (s *RestHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.PurchaseApp.CreatePurchase(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// ApprovePurchase handler
// @Summary Approve a pending purchase order
// @Tags Purchases
// @Param id path int true "Purchase ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/purchases/{id}/approve [post]
func (s *RestHandler) ApprovePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PurchaseApp.ApprovePurchase(ctx, userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CancelPurchase handler
// @Summary Cancel a purchase order before any delivery arrives
// @Tags Purchases
// @Param id path int true "Purchase ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/purchases/{id}/cancel [post]
func (s *RestHandler) CancelPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PurchaseApp.CancelPurchase(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// AddDelivery handler
// @Summary Record an in-transit delivery against a purchase order
// @Description Delivered plus in-transit quantities may not exceed the ordered quantity per item.
// @Tags Purchases
// @Accept json
// @Produce json
// @Param id path int true "Purchase ID"
// @Param request body model.DeliveryRequest true "Delivery"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/purchases/{id}/deliveries [post]
func (s *RestHandler) AddDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.DeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	deliveryID, err := s.PurchaseApp.AddDelivery(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": deliveryID})
}

// CompleteDelivery handler
// @Summary Mark a delivery as arrived
// @Description Creates a product row per delivered item and recomputes the purchase status.
// @Tags Purchases
// @Param id path int true "Purchase ID"
// @Param deliveryId path int true "Delivery ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/purchases/{id}/deliveries/{deliveryId}/complete [post]
func (s *RestHandler) CompleteDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	deliveryID, ok := pathID(r, "deliveryId")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PurchaseApp.CompleteDelivery(r.Context(), id, deliveryID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CancelDelivery handler
// @Summary Cancel an in-transit delivery
// @Tags Purchases
// @Param id path int true "Purchase ID"
// @Param deliveryId path int true "Delivery ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/purchases/{id}/deliveries/{deliveryId}/cancel [post]
func (s *RestHandler) CancelDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	deliveryID, ok := pathID(r, "deliveryId")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PurchaseApp.CancelDelivery(r.Context(), id, deliveryID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
