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

// ListFumigations handler
// @Summary List fumigations
// @Tags Fumigations
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.FumigationListResponse
// @Security BearerAuth
// @Router /v1/fumigations [get]
func (s *RestHandler) ListFumigations(w http.ResponseWriter, r *http.Request) {
	filter := &model.WorkFilter{
		Status:  constant.WorkStatus(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}

	res, err := s.FumigationApp.ListFumigations(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetFumigation handler
// @Summary Get fumigation detail with line items
// @Tags Fumigations
// @Produce json
// @Param id path int true "Fumigation ID"
// @Success 200 {object} model.Fumigation
// @Security BearerAuth
// @Router /v1/fumigations/{id} [get]
func (s *RestHandler) GetFumigation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.FumigationApp.GetFumigation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateFumigation handler
// @Summary Plan a fumigation
// @Description Records the plan; product stock is consumed at completion.
// @Tags Fumigations
// @Accept json
// @Produce json
// @Param request body model.FumigationRequest true "Fumigation"
// @Success 200 {object} map[string]uint64
// @Security BearerAuth
// @Router /v1/fumigations [post]
func (s *RestHandler) CreateFumigation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.FumigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.FumigationApp.CreateFumigation(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// CompleteFumigation handler
// @Summary Complete a fumigation
// @Description Decrements stock for every planned item in one transaction. Set allow_negative_stock to override an insufficient-stock failure.
// @Tags Fumigations
// @Accept json
// @Produce json
// @Param id path int true "Fumigation ID"
// @Param request body model.CompleteFumigationRequest true "Completion fields"
// @Success 200 {object} response
// @Failure 409 {object} errors.InsufficientStockError
// @Security BearerAuth
// @Router /v1/fumigations/{id}/complete [post]
func (s *RestHandler) CompleteFumigation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.CompleteFumigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.FumigationApp.CompleteFumigation(r.Context(), id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CancelFumigation handler
// @Summary Cancel a fumigation
// @Tags Fumigations
// @Param id path int true "Fumigation ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/fumigations/{id}/cancel [post]
func (s *RestHandler) CancelFumigation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.FumigationApp.CancelFumigation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
