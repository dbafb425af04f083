package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	harvestrepo "github.com/rsetiawan/agrostock/repository/harvest"
	productrepo "github.com/rsetiawan/agrostock/repository/product"
	txrepo "github.com/rsetiawan/agrostock/repository/tx"
	warehouserepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/thirdparty/rabbitmq"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type HarvestApp interface {
	CreateHarvest(ctx context.Context, userID uint64, req *model.HarvestRequest) (uint64, error)
	CompleteHarvest(ctx context.Context, harvestID uint64, req *model.CompleteHarvestRequest) error
	CancelHarvest(ctx context.Context, harvestID uint64) error
	GetHarvest(ctx context.Context, harvestID uint64) (*model.Harvest, error)
	ListHarvests(ctx context.Context, filter *model.WorkFilter) (*model.HarvestListResponse, error)
}

type harvestAppImpl struct {
	txRepo        txrepo.TxRepository
	harvestRepo   harvestrepo.HarvestRepository
	productRepo   productrepo.ProductRepository
	warehouseRepo warehouserepo.WarehouseRepository
	publisher     *rabbitmq.Publisher
}

func NewHarvestApp(txRepo txrepo.TxRepository, harvestRepo harvestrepo.HarvestRepository, productRepo productrepo.ProductRepository, warehouseRepo warehouserepo.WarehouseRepository, publisher *rabbitmq.Publisher) HarvestApp {
	return &harvestAppImpl{
		txRepo:        txRepo,
		harvestRepo:   harvestRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
	}
}

// CreateHarvest consumes its input products at planning time, unlike
// fumigations which consume at completion. Insufficient stock is a hard
// failure here; the whole transaction rolls back on the first short item.
func (s *harvestAppImpl) CreateHarvest(ctx context.Context, userID uint64, req *model.HarvestRequest) (uint64, error) {
	if len(req.Items) == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	wh, err := s.warehouseRepo.GetByID(ctx, req.TargetWarehouseID)
	if err != nil {
		logger.Error("[CreateHarvest] get warehouse", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if wh == nil || wh.Status != constant.WarehouseStatusActive {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateHarvest] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	alerts := make([]rabbitmq.LowStockMessage, 0)
	for _, item := range req.Items {
		p, err := s.productRepo.GetForUpdateTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("[CreateHarvest] lock product", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return 0, errors.SetCustomError(constant.ErrNotFound)
		}
		if item.Quantity > p.Stock {
			logger.Info("[CreateHarvest] insufficient stock",
				zap.Uint64("product_id", p.ID),
				zap.Float64("required", item.Quantity),
				zap.Float64("available", p.Stock))
			return 0, errors.NewInsufficientStock(p.ID, item.Quantity, p.Stock)
		}

		if err := s.productRepo.AddStockTx(ctx, tx, p.ID, -item.Quantity); err != nil {
			logger.Error("[CreateHarvest] decrement stock", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}

		if remaining := p.Stock - item.Quantity; remaining < p.MinStock {
			alerts = append(alerts, rabbitmq.LowStockMessage{
				ProductID:   p.ID,
				Name:        p.Name,
				Stock:       remaining,
				MinStock:    p.MinStock,
				WarehouseID: p.WarehouseID,
			})
		}
	}

	status := constant.WorkStatusPending
	if req.PlannedAt != nil {
		status = constant.WorkStatusScheduled
	}

	harvestID, err := s.harvestRepo.InsertTx(ctx, tx, &model.Harvest{
		Status:            status,
		Crop:              req.Crop,
		FieldName:         req.FieldName,
		TargetWarehouseID: req.TargetWarehouseID,
		PlannedBy:         userID,
		PlannedAt:         req.PlannedAt,
	})
	if err != nil {
		logger.Error("[CreateHarvest] insert harvest", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.harvestRepo.InsertConsumedItemsTx(ctx, tx, harvestID, req.Items); err != nil {
		logger.Error("[CreateHarvest] insert items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateHarvest] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishAlerts(alerts)
	return harvestID, nil
}

// CompleteHarvest creates one new product row per harvested lot in the target
// warehouse. Lots are never merged into existing products; each row carries a
// lot code tracing it back to this harvest.
func (s *harvestAppImpl) CompleteHarvest(ctx context.Context, harvestID uint64, req *model.CompleteHarvestRequest) error {
	if len(req.Items) == 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CompleteHarvest] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	h, err := s.harvestRepo.GetDetailTx(ctx, tx, harvestID)
	if err != nil {
		logger.Error("[CompleteHarvest] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if h == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if h.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	harvested := make([]model.HarvestedItem, 0, len(req.Items))
	var totalYield float64
	for _, item := range req.Items {
		lotCode := fmt.Sprintf("HRV-%d-%s", harvestID, uuid.NewString()[:8])
		productID, err := s.productRepo.InsertTx(ctx, tx, &model.Product{
			Name:        item.Name,
			Category:    item.Category,
			Unit:        item.Unit,
			Stock:       item.Quantity,
			WarehouseID: h.TargetWarehouseID,
			FieldName:   h.FieldName,
			LotCode:     lotCode,
		})
		if err != nil {
			logger.Error("[CompleteHarvest] insert product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		harvested = append(harvested, model.HarvestedItem{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
		})
		totalYield += item.Quantity
	}

	if err := s.harvestRepo.InsertHarvestedItemsTx(ctx, tx, harvestID, harvested); err != nil {
		logger.Error("[CompleteHarvest] insert harvested items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	finishedAt := time.Now()
	if req.FinishedAt != nil {
		finishedAt = *req.FinishedAt
	}
	if err := s.harvestRepo.CompleteTx(ctx, tx, harvestID, &model.HarvestCompletion{
		FinishedAt:  finishedAt,
		Notes:       req.Notes,
		ActualYield: totalYield,
	}); err != nil {
		logger.Error("[CompleteHarvest] complete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CompleteHarvest] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// CancelHarvest restores the stock consumed at creation. Without this
// compensation the planned inputs would stay consumed with no harvest to
// account for them.
func (s *harvestAppImpl) CancelHarvest(ctx context.Context, harvestID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelHarvest] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	h, err := s.harvestRepo.GetDetailTx(ctx, tx, harvestID)
	if err != nil {
		logger.Error("[CancelHarvest] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if h == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if h.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.harvestRepo.GetConsumedItemsTx(ctx, tx, harvestID)
	if err != nil {
		logger.Error("[CancelHarvest] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	for _, item := range items {
		if err := s.productRepo.AddStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			logger.Error("[CancelHarvest] restore stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.harvestRepo.UpdateStatusTx(ctx, tx, harvestID, constant.WorkStatusCancelled); err != nil {
		logger.Error("[CancelHarvest] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelHarvest] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *harvestAppImpl) GetHarvest(ctx context.Context, harvestID uint64) (*model.Harvest, error) {
	h, err := s.harvestRepo.GetByID(ctx, harvestID)
	if err != nil {
		logger.Error("[GetHarvest] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if h == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return h, nil
}

func (s *harvestAppImpl) ListHarvests(ctx context.Context, filter *model.WorkFilter) (*model.HarvestListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.harvestRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListHarvests] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.HarvestListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *harvestAppImpl) publishAlerts(alerts []rabbitmq.LowStockMessage) {
	if s.publisher == nil {
		return
	}
	for _, alert := range alerts {
		if err := s.publisher.PublishLowStockAlert(alert); err != nil {
			logger.Error("[Harvest] publish low stock alert", zap.String("error", err.Error()))
		}
	}
}
