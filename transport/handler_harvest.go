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

// ListHarvests handler
// @Summary List harvests
// @Tags Harvests
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.HarvestListResponse
// @Security BearerAuth
// @Router /v1/harvests [get]
func (s *RestHandler) ListHarvests(w http.ResponseWriter, r *http.Request) {
	filter := &model.WorkFilter{
		Status:  constant.WorkStatus(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}

	res, err := s.HarvestApp.ListHarvests(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetHarvest handler
// @Summary Get harvest detail with consumed and harvested items
// @Tags Harvests
// @Produce json
// @Param id path int true "Harvest ID"
// @Success 200 {object} model.Harvest
// @Security BearerAuth
// @Router /v1/harvests/{id} [get]
func (s *RestHandler) GetHarvest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.HarvestApp.GetHarvest(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateHarvest handler
// @Summary Register a harvest
// @Description Consumes input stock immediately; fails with 409 when any input lacks stock.
// @Tags Harvests
// @Accept json
// @Produce json
// @Param request body model.HarvestRequest true "Harvest"
// @Success 200 {object} map[string]uint64
// @Failure 409 {object} errors.InsufficientStockError
// @Security BearerAuth
// @Router /v1/harvests [post]
func (s *RestHandler) CreateHarvest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.HarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.HarvestApp.CreateHarvest(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

// CompleteHarvest handler
// @Summary Complete a harvest
// @Description Creates a product row per harvested item in the target warehouse.
// @Tags Harvests
// @Accept json
// @Produce json
// @Param id path int true "Harvest ID"
// @Param request body model.CompleteHarvestRequest true "Harvested yield"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/harvests/{id}/complete [post]
func (s *RestHandler) CompleteHarvest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.CompleteHarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.HarvestApp.CompleteHarvest(r.Context(), id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// CancelHarvest handler
// @Summary Cancel a harvest
// @Description Restores the stock the harvest consumed at creation.
// @Tags Harvests
// @Param id path int true "Harvest ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /v1/harvests/{id}/cancel [post]
func (s *RestHandler) CancelHarvest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.HarvestApp.CancelHarvest(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
