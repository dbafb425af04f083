package transfer

import (
	"context"
	"time"

	"github.com/rsetiawan/agrostock/cmd/config"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	productrepo "github.com/rsetiawan/agrostock/repository/product"
	transferrepo "github.com/rsetiawan/agrostock/repository/transfer"
	txrepo "github.com/rsetiawan/agrostock/repository/tx"
	warehouserepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/thirdparty/rabbitmq"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type TransferApp interface {
	CreateTransfer(ctx context.Context, userID uint64, req *model.TransferRequest) (uint64, error)
	ApproveTransfer(ctx context.Context, userID, transferID uint64) error
	RejectTransfer(ctx context.Context, userID, transferID uint64) error
	ShipTransfer(ctx context.Context, userID, transferID uint64) error
	ReceiveTransfer(ctx context.Context, userID, transferID uint64, req *model.ReceiveTransferRequest) error
	CancelTransfer(ctx context.Context, transferID uint64) error
	// ExpireTransfer cancels a transfer that is still pending past its
	// approval window. Called by the expiration consumer; a no-op when the
	// transfer has moved on, so redeliveries are safe.
	ExpireTransfer(ctx context.Context, transferID uint64) error
	GetTransfer(ctx context.Context, transferID uint64) (*model.Transfer, error)
	ListTransfers(ctx context.Context, filter *model.TransferFilter) (*model.TransferListResponse, error)
}

type transferAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	transferRepo  transferrepo.TransferRepository
	productRepo   productrepo.ProductRepository
	warehouseRepo warehouserepo.WarehouseRepository
	publisher     *rabbitmq.Publisher
}

func NewTransferApp(config *config.Config, txRepo txrepo.TxRepository, transferRepo transferrepo.TransferRepository, productRepo productrepo.ProductRepository, warehouseRepo warehouserepo.WarehouseRepository, publisher *rabbitmq.Publisher) TransferApp {
	return &transferAppImpl{
		config:        config,
		txRepo:        txRepo,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
	}
}

// CreateTransfer validates warehouses and stock sufficiency up front, then
// records the request as pending. Stock moves only at ship and receive time.
func (s *transferAppImpl) CreateTransfer(ctx context.Context, userID uint64, req *model.TransferRequest) (uint64, error) {
	if len(req.Items) == 0 || req.SourceWarehouseID == req.TargetWarehouseID {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	for _, whID := range []uint64{req.SourceWarehouseID, req.TargetWarehouseID} {
		wh, err := s.warehouseRepo.GetByID(ctx, whID)
		if err != nil {
			logger.Error("[CreateTransfer] get warehouse", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if wh == nil || wh.Status != constant.WarehouseStatusActive {
			return 0, errors.SetCustomError(constant.ErrInvalidRequest)
		}
	}

	// Creation hard-fails on insufficiency even though nothing is decremented
	// yet; shipping re-checks under row locks.
	for _, item := range req.Items {
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[CreateTransfer] get product", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return 0, errors.SetCustomError(constant.ErrNotFound)
		}
		if p.WarehouseID != req.SourceWarehouseID {
			return 0, errors.SetCustomError(constant.ErrInvalidRequest)
		}
		if item.Quantity > p.Stock {
			return 0, errors.NewInsufficientStock(p.ID, item.Quantity, p.Stock)
		}
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateTransfer] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	transferID, err := s.transferRepo.InsertTx(ctx, tx, &model.Transfer{
		Status:            constant.TransferStatusPending,
		SourceWarehouseID: req.SourceWarehouseID,
		TargetWarehouseID: req.TargetWarehouseID,
		RequestedBy:       userID,
	})
	if err != nil {
		logger.Error("[CreateTransfer] insert transfer", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.transferRepo.InsertItemsTx(ctx, tx, transferID, req.Items); err != nil {
		logger.Error("[CreateTransfer] insert items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateTransfer] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.publisher != nil {
		msg := rabbitmq.TransferExpirationMessage{
			TransferID: transferID,
			ExpiresAt:  time.Now().Add(s.config.Transfer.ApprovalExpiration),
		}
		if err := s.publisher.PublishTransferExpiration(msg); err != nil {
			logger.Error("[CreateTransfer] publish transfer expiration", zap.String("error", err.Error()))
		}
	}

	return transferID, nil
}

func (s *transferAppImpl) ApproveTransfer(ctx context.Context, userID, transferID uint64) error {
	return s.decide(ctx, userID, transferID, constant.TransferStatusApproved, "[ApproveTransfer]")
}

func (s *transferAppImpl) RejectTransfer(ctx context.Context, userID, transferID uint64) error {
	return s.decide(ctx, userID, transferID, constant.TransferStatusRejected, "[RejectTransfer]")
}

// decide moves a pending transfer to approved or rejected.
func (s *transferAppImpl) decide(ctx context.Context, userID, transferID uint64, target constant.TransferStatus, op string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error(op+" begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	t, err := s.transferRepo.GetDetailTx(ctx, tx, transferID)
	if err != nil {
		logger.Error(op+" get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if t.Status != constant.TransferStatusPending {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	if err := s.transferRepo.UpdateStatusTx(ctx, tx, transferID, target); err != nil {
		logger.Error(op+" update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.transferRepo.SetActorTx(ctx, tx, transferID, target, userID, time.Now()); err != nil {
		logger.Error(op+" set actor", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error(op+" commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// ShipTransfer decrements source stock for every line item in one
// transaction. One short item aborts the whole shipment; items already
// decremented in the loop are rolled back with it.
func (s *transferAppImpl) ShipTransfer(ctx context.Context, userID, transferID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ShipTransfer] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	t, err := s.transferRepo.GetDetailTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[ShipTransfer] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if t.Status != constant.TransferStatusApproved {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.transferRepo.GetItemsTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[ShipTransfer] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	alerts := make([]rabbitmq.LowStockMessage, 0)
	for _, item := range items {
		p, err := s.productRepo.GetForUpdateTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("[ShipTransfer] lock product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		if item.Quantity > p.Stock {
			logger.Info("[ShipTransfer] insufficient stock",
				zap.Uint64("product_id", p.ID),
				zap.Float64("required", item.Quantity),
				zap.Float64("available", p.Stock))
			return errors.NewInsufficientStock(p.ID, item.Quantity, p.Stock)
		}

		if err := s.productRepo.AddStockTx(ctx, tx, p.ID, -item.Quantity); err != nil {
			logger.Error("[ShipTransfer] decrement stock", zap.String("error", err.Error()))
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

	if err := s.transferRepo.UpdateStatusTx(ctx, tx, transferID, constant.TransferStatusShipped); err != nil {
		logger.Error("[ShipTransfer] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.transferRepo.SetActorTx(ctx, tx, transferID, constant.TransferStatusShipped, userID, time.Now()); err != nil {
		logger.Error("[ShipTransfer] set actor", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ShipTransfer] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishAlerts(alerts)
	return nil
}

// ReceiveTransfer credits each shipped product with the confirmed received
// quantity and moves the product row to the target warehouse. The existing
// product record is updated in place; no new rows are created (purchase
// deliveries do the opposite).
func (s *transferAppImpl) ReceiveTransfer(ctx context.Context, userID, transferID uint64, req *model.ReceiveTransferRequest) error {
	received := make(map[uint64]float64, len(req.Items))
	for _, it := range req.Items {
		received[it.ProductID] = it.ReceivedQuantity
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReceiveTransfer] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	t, err := s.transferRepo.GetDetailTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[ReceiveTransfer] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if t.Status != constant.TransferStatusShipped {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.transferRepo.GetItemsTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[ReceiveTransfer] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	for _, item := range items {
		qty := item.Quantity
		if confirmed, ok := received[item.ProductID]; ok {
			qty = confirmed
		}

		p, err := s.productRepo.GetForUpdateTx(ctx, tx, item.ProductID)
		if err != nil {
			logger.Error("[ReceiveTransfer] lock product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		if err := s.productRepo.AddStockTx(ctx, tx, p.ID, qty); err != nil {
			logger.Error("[ReceiveTransfer] increment stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.productRepo.ReassignWarehouseTx(ctx, tx, p.ID, t.TargetWarehouseID); err != nil {
			logger.Error("[ReceiveTransfer] reassign warehouse", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.transferRepo.SetReceivedQuantityTx(ctx, tx, transferID, item.ProductID, qty); err != nil {
			logger.Error("[ReceiveTransfer] set received quantity", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.transferRepo.UpdateStatusTx(ctx, tx, transferID, constant.TransferStatusCompleted); err != nil {
		logger.Error("[ReceiveTransfer] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.transferRepo.SetActorTx(ctx, tx, transferID, constant.TransferStatusCompleted, userID, time.Now()); err != nil {
		logger.Error("[ReceiveTransfer] set actor", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReceiveTransfer] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *transferAppImpl) CancelTransfer(ctx context.Context, transferID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelTransfer] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	t, err := s.transferRepo.GetDetailTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[CancelTransfer] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	// A shipped transfer has already moved stock; it may only be received.
	if t.Status != constant.TransferStatusPending && t.Status != constant.TransferStatusApproved {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	if err := s.transferRepo.UpdateStatusTx(ctx, tx, transferID, constant.TransferStatusCancelled); err != nil {
		logger.Error("[CancelTransfer] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelTransfer] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *transferAppImpl) ExpireTransfer(ctx context.Context, transferID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ExpireTransfer] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	t, err := s.transferRepo.GetDetailTx(ctx, tx, transferID)
	if err != nil {
		logger.Error("[ExpireTransfer] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if t.Status != constant.TransferStatusPending {
		// Already decided; expiration is a no-op.
		return nil
	}

	if err := s.transferRepo.UpdateStatusTx(ctx, tx, transferID, constant.TransferStatusCancelled); err != nil {
		logger.Error("[ExpireTransfer] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ExpireTransfer] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[ExpireTransfer] transfer cancelled after approval window", zap.Uint64("transfer_id", transferID))
	return nil
}

func (s *transferAppImpl) GetTransfer(ctx context.Context, transferID uint64) (*model.Transfer, error) {
	t, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		logger.Error("[GetTransfer] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if t == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return t, nil
}

func (s *transferAppImpl) ListTransfers(ctx context.Context, filter *model.TransferFilter) (*model.TransferListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.transferRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListTransfers] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.TransferListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *transferAppImpl) publishAlerts(alerts []rabbitmq.LowStockMessage) {
	if s.publisher == nil {
		return
	}
	for _, alert := range alerts {
		if err := s.publisher.PublishLowStockAlert(alert); err != nil {
			logger.Error("[Transfer] publish low stock alert", zap.String("error", err.Error()))
		}
	}
}
