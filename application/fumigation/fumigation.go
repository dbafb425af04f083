package fumigation

import (
	"context"
	"time"

	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	fumigationrepo "github.com/rsetiawan/agrostock/repository/fumigation"
	productrepo "github.com/rsetiawan/agrostock/repository/product"
	txrepo "github.com/rsetiawan/agrostock/repository/tx"
	"github.com/rsetiawan/agrostock/thirdparty/rabbitmq"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type FumigationApp interface {
	CreateFumigation(ctx context.Context, userID uint64, req *model.FumigationRequest) (uint64, error)
	CompleteFumigation(ctx context.Context, fumigationID uint64, req *model.CompleteFumigationRequest) error
	CancelFumigation(ctx context.Context, fumigationID uint64) error
	GetFumigation(ctx context.Context, fumigationID uint64) (*model.Fumigation, error)
	ListFumigations(ctx context.Context, filter *model.WorkFilter) (*model.FumigationListResponse, error)
}

type fumigationAppImpl struct {
	txRepo         txrepo.TxRepository
	fumigationRepo fumigationrepo.FumigationRepository
	productRepo    productrepo.ProductRepository
	publisher      *rabbitmq.Publisher
}

func NewFumigationApp(txRepo txrepo.TxRepository, fumigationRepo fumigationrepo.FumigationRepository, productRepo productrepo.ProductRepository, publisher *rabbitmq.Publisher) FumigationApp {
	return &fumigationAppImpl{
		txRepo:         txRepo,
		fumigationRepo: fumigationRepo,
		productRepo:    productRepo,
		publisher:      publisher,
	}
}

// CreateFumigation records the plan only. Stock is consumed when the
// fumigation completes, not here; harvests are the opposite.
func (s *fumigationAppImpl) CreateFumigation(ctx context.Context, userID uint64, req *model.FumigationRequest) (uint64, error) {
	if len(req.Items) == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	// Referenced products must exist; no quantity check this early.
	for _, item := range req.Items {
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[CreateFumigation] get product", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return 0, errors.SetCustomError(constant.ErrNotFound)
		}
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateFumigation] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	status := constant.WorkStatusPending
	if req.ScheduledAt != nil {
		status = constant.WorkStatusScheduled
	}

	fumigationID, err := s.fumigationRepo.InsertTx(ctx, tx, &model.Fumigation{
		Status:      status,
		Crop:        req.Crop,
		FieldName:   req.FieldName,
		AppliedBy:   userID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		logger.Error("[CreateFumigation] insert fumigation", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.fumigationRepo.InsertItemsTx(ctx, tx, fumigationID, req.Items); err != nil {
		logger.Error("[CreateFumigation] insert items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateFumigation] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return fumigationID, nil
}

// CompleteFumigation decrements stock for every planned item and merges the
// measured conditions into the record, all in one transaction. Insufficient
// stock blocks completion unless the caller set AllowNegativeStock, the
// user-confirmed override that lets stock go below zero.
func (s *fumigationAppImpl) CompleteFumigation(ctx context.Context, fumigationID uint64, req *model.CompleteFumigationRequest) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CompleteFumigation] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	fum, err := s.fumigationRepo.GetDetailTx(ctx, tx, fumigationID)
	if err != nil {
		logger.Error("[CompleteFumigation] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if fum == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if fum.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.fumigationRepo.GetItemsTx(ctx, tx, fumigationID)
	if err != nil {
		logger.Error("[CompleteFumigation] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	alerts := make([]rabbitmq.LowStockMessage, 0)
	for _, item := range items {
		p, err := s.productRepo.GetForUpdateTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("[CompleteFumigation] lock product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		if item.Quantity > p.Stock && !req.AllowNegativeStock {
			logger.Info("[CompleteFumigation] insufficient stock",
				zap.Uint64("product_id", p.ID),
				zap.Float64("required", item.Quantity),
				zap.Float64("available", p.Stock))
			return errors.NewInsufficientStock(p.ID, item.Quantity, p.Stock)
		}

		if err := s.productRepo.AddStockTx(ctx, tx, p.ID, -item.Quantity); err != nil {
			logger.Error("[CompleteFumigation] decrement stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
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

	finishedAt := time.Now()
	if req.FinishedAt != nil {
		finishedAt = *req.FinishedAt
	}
	completion := &model.FumigationCompletion{
		FinishedAt:  finishedAt,
		Notes:       req.Notes,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
	}
	if err := s.fumigationRepo.CompleteTx(ctx, tx, fumigationID, completion); err != nil {
		logger.Error("[CompleteFumigation] complete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CompleteFumigation] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishAlerts(alerts)
	return nil
}

func (s *fumigationAppImpl) CancelFumigation(ctx context.Context, fumigationID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelFumigation] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	fum, err := s.fumigationRepo.GetDetailTx(ctx, tx, fumigationID)
	if err != nil {
		logger.Error("[CancelFumigation] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if fum == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if fum.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	// No stock was consumed yet, so cancellation is a status flip only.
	if err := s.fumigationRepo.UpdateStatusTx(ctx, tx, fumigationID, constant.WorkStatusCancelled); err != nil {
		logger.Error("[CancelFumigation] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelFumigation] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *fumigationAppImpl) GetFumigation(ctx context.Context, fumigationID uint64) (*model.Fumigation, error) {
	fum, err := s.fumigationRepo.GetByID(ctx, fumigationID)
	if err != nil {
		logger.Error("[GetFumigation] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if fum == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return fum, nil
}

func (s *fumigationAppImpl) ListFumigations(ctx context.Context, filter *model.WorkFilter) (*model.FumigationListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.fumigationRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListFumigations] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.FumigationListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *fumigationAppImpl) publishAlerts(alerts []rabbitmq.LowStockMessage) {
	if s.publisher == nil {
		return
	}
	for _, alert := range alerts {
		if err := s.publisher.PublishLowStockAlert(alert); err != nil {
			logger.Error("[Fumigation] publish low stock alert", zap.String("error", err.Error()))
		}
	}
}
