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

// ListTransfers handler
// @Summary List transfers
// @Tags Transfers
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.TransferListResponse
// @Security BearerAuth
// @Router /v1/transfers [get]
func (s *RestHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	filter := &model.TransferFilter{
		Status:  constant.TransferStatus(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}

	res, err := s.TransferApp.ListTransfers(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetTransfer handler
// @Summary Get transfer detail with line items
// @Tags Transfers
// @Produce json
// @Param id path int true "Transfer ID"
// @Success 200 {object} model.Transfer
// @Security BearerAuth
// @Router /v1/transfers/{id} [get]
func (s *RestHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.TransferApp.GetTransfer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateTransfer handler
// @Summary Request a warehouse transfer
// @Description Stock moves only at ship and receive; creation records the request as pending.
// @Tags Transfers
// @Accept json
// @Produce json
// @Param request body model.TransferRequest true "Transfer"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/transfers [post]
func (s *RestHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.TransferApp.CreateTransfer(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// ApproveTransfer handler
// @Summary Approve a pending transfer
// @Tags Transfers
// @Param id path int true "Transfer ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/transfers/{id}/approve [post]
func (s *RestHandler) ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.ApproveTransfer(ctx, userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RejectTransfer handler
// @Summary Reject a pending transfer
// @Tags Transfers
// @Param id path int true "Transfer ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/transfers/{id}/reject [post]
func (s *RestHandler) RejectTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.RejectTransfer(ctx, userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ShipTransfer handler
// @Summary Ship an approved transfer
// @Description Decrements source warehouse stock for all items, or fails without touching any.
// @Tags Transfers
// @Param id path int true "Transfer ID"
// @Success 200 {object} response
// @Failure 409 {object} errors.InsufficientStockError
// @Security BearerAuth
// @Router /v1/transfers/{id}/ship [post]
func (s *RestHandler) ShipTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.ShipTransfer(ctx, userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ReceiveTransfer handler
// @Summary Receive a shipped transfer
// @Description Increments stock at the target warehouse using the caller-confirmed quantities.
// @Tags Transfers
// @Accept json
// @Produce json
// @Param id path int true "Transfer ID"
// @Param request body model.ReceiveTransferRequest true "Received quantities"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/transfers/{id}/receive [post]
func (s *RestHandler) ReceiveTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.ReceiveTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.ReceiveTransfer(ctx, userID, id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CancelTransfer handler
// @Summary Cancel a pending or approved transfer
// @Tags Transfers
// @Param id path int true "Transfer ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/transfers/{id}/cancel [post]
func (s *RestHandler) CancelTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.CancelTransfer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ExpireTransfer is called by the expiration consumer when the approval window
// for a pending transfer has elapsed. It is a no-op for transfers that already
// left the pending state.
func (s *RestHandler) ExpireTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.TransferApp.ExpireTransfer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
