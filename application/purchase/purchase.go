package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	productrepo "github.com/rsetiawan/agrostock/repository/product"
	purchaserepo "github.com/rsetiawan/agrostock/repository/purchase"
	txrepo "github.com/rsetiawan/agrostock/repository/tx"
	warehouserepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type PurchaseApp interface {
	CreatePurchase(ctx context.Context, userID uint64, req *model.PurchaseRequest) (uint64, error)
	ApprovePurchase(ctx context.Context, userID, purchaseID uint64) error
	CancelPurchase(ctx context.Context, purchaseID uint64) error
	AddDelivery(ctx context.Context, purchaseID uint64, req *model.DeliveryRequest) (uint64, error)
	CompleteDelivery(ctx context.Context, purchaseID, deliveryID uint64) error
	CancelDelivery(ctx context.Context, purchaseID, deliveryID uint64) error
	GetPurchase(ctx context.Context, purchaseID uint64) (*model.Purchase, error)
	ListPurchases(ctx context.Context, filter *model.PurchaseFilter) (*model.PurchaseListResponse, error)
}

type purchaseAppImpl struct {
	txRepo        txrepo.TxRepository
	purchaseRepo  purchaserepo.PurchaseRepository
	productRepo   productrepo.ProductRepository
	warehouseRepo warehouserepo.WarehouseRepository
}

func NewPurchaseApp(txRepo txrepo.TxRepository, purchaseRepo purchaserepo.PurchaseRepository, productRepo productrepo.ProductRepository, warehouseRepo warehouserepo.WarehouseRepository) PurchaseApp {
	return &purchaseAppImpl{
		txRepo:        txRepo,
		purchaseRepo:  purchaseRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *purchaseAppImpl) CreatePurchase(ctx context.Context, userID uint64, req *model.PurchaseRequest) (uint64, error) {
	if len(req.Items) == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreatePurchase] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	purchaseID, err := s.purchaseRepo.InsertTx(ctx, tx, &model.Purchase{
		Status:      constant.PurchaseStatusPending,
		Supplier:    req.Supplier,
		RequestedBy: userID,
	})
	if err != nil {
		logger.Error("[CreatePurchase] insert purchase", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.purchaseRepo.InsertItemsTx(ctx, tx, purchaseID, req.Items); err != nil {
		logger.Error("[CreatePurchase] insert items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreatePurchase] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return purchaseID, nil
}

func (s *purchaseAppImpl) ApprovePurchase(ctx context.Context, userID, purchaseID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApprovePurchase] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	p, err := s.purchaseRepo.GetDetailTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[ApprovePurchase] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if p.Status != constant.PurchaseStatusPending {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	if err := s.purchaseRepo.UpdateStatusTx(ctx, tx, purchaseID, constant.PurchaseStatusApproved); err != nil {
		logger.Error("[ApprovePurchase] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.purchaseRepo.SetApproverTx(ctx, tx, purchaseID, userID); err != nil {
		logger.Error("[ApprovePurchase] set approver", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApprovePurchase] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *purchaseAppImpl) CancelPurchase(ctx context.Context, purchaseID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelPurchase] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	p, err := s.purchaseRepo.GetDetailTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[CancelPurchase] get detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	// Once a delivery landed the purchase has inventory behind it and can
	// only run to completion.
	if p.Status != constant.PurchaseStatusPending && p.Status != constant.PurchaseStatusApproved {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	if err := s.purchaseRepo.UpdateStatusTx(ctx, tx, purchaseID, constant.PurchaseStatusCancelled); err != nil {
		logger.Error("[CancelPurchase] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelPurchase] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// AddDelivery registers an in-transit delivery for a subset of the ordered
// items. The new quantities may not push any item past its ordered total
// when combined with deliveries already in flight or completed.
func (s *purchaseAppImpl) AddDelivery(ctx context.Context, purchaseID uint64, req *model.DeliveryRequest) (uint64, error) {
	if len(req.Items) == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	wh, err := s.warehouseRepo.GetByID(ctx, req.WarehouseID)
	if err != nil {
		logger.Error("[AddDelivery] get warehouse", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if wh == nil || wh.Status != constant.WarehouseStatusActive {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AddDelivery] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	p, err := s.purchaseRepo.GetDetailTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[AddDelivery] get detail", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return 0, errors.SetCustomError(constant.ErrNotFound)
	}
	if p.Status != constant.PurchaseStatusApproved && p.Status != constant.PurchaseStatusPartialDelivered {
		return 0, errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.purchaseRepo.GetItemsTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[AddDelivery] get items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	ordered := make(map[uint64]float64, len(items))
	for _, it := range items {
		ordered[it.ID] = it.Quantity
	}

	delivered, err := s.purchaseRepo.GetDeliveredByItemTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[AddDelivery] get delivered quantities", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	for _, it := range req.Items {
		orderedQty, ok := ordered[it.PurchaseItemID]
		if !ok {
			return 0, errors.SetCustomError(constant.ErrInvalidRequest)
		}
		if delivered[it.PurchaseItemID]+it.Quantity > orderedQty {
			return 0, errors.SetCustomError(constant.ErrInvalidRequest)
		}
	}

	deliveryID, err := s.purchaseRepo.InsertDeliveryTx(ctx, tx, &model.PurchaseDelivery{
		PurchaseID:  purchaseID,
		Status:      constant.DeliveryStatusInTransit,
		WarehouseID: req.WarehouseID,
		Notes:       req.Notes,
	})
	if err != nil {
		logger.Error("[AddDelivery] insert delivery", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.purchaseRepo.InsertDeliveryItemsTx(ctx, tx, deliveryID, req.Items); err != nil {
		logger.Error("[AddDelivery] insert delivery items", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recomputeStatusTx(ctx, tx, purchaseID, p.Status); err != nil {
		return 0, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AddDelivery] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return deliveryID, nil
}

// CompleteDelivery creates one new product row per delivered item. Each row
// is a fresh lot tagged with the purchase and delivery it came from, never a
// merge into existing stock of the same name.
func (s *purchaseAppImpl) CompleteDelivery(ctx context.Context, purchaseID, deliveryID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CompleteDelivery] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	p, err := s.purchaseRepo.GetDetailTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[CompleteDelivery] get purchase", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	d, err := s.purchaseRepo.GetDeliveryDetailTx(ctx, tx, deliveryID)
	if err != nil {
		logger.Error("[CompleteDelivery] get delivery", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if d == nil || d.PurchaseID != purchaseID {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if d.Status != constant.DeliveryStatusInTransit {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, err := s.purchaseRepo.GetItemsTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[CompleteDelivery] get purchase items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	byID := make(map[uint64]model.PurchaseItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	deliveryItems, err := s.purchaseRepo.GetDeliveryItemsTx(ctx, tx, deliveryID)
	if err != nil {
		logger.Error("[CompleteDelivery] get delivery items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	for _, di := range deliveryItems {
		ordered, ok := byID[di.PurchaseItemID]
		if !ok {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		lotCode := fmt.Sprintf("PO-%d-D%d", purchaseID, deliveryID)
		if _, err := s.productRepo.InsertTx(ctx, tx, &model.Product{
			Name:        ordered.Name,
			Category:    ordered.Category,
			Unit:        ordered.Unit,
			Stock:       di.Quantity,
			WarehouseID: d.WarehouseID,
			LotCode:     lotCode,
		}); err != nil {
			logger.Error("[CompleteDelivery] insert product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	now := time.Now()
	if err := s.purchaseRepo.UpdateDeliveryStatusTx(ctx, tx, deliveryID, constant.DeliveryStatusCompleted, &now); err != nil {
		logger.Error("[CompleteDelivery] update delivery status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recomputeStatusTx(ctx, tx, purchaseID, p.Status); err != nil {
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CompleteDelivery] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *purchaseAppImpl) CancelDelivery(ctx context.Context, purchaseID, deliveryID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelDelivery] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	p, err := s.purchaseRepo.GetDetailTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[CancelDelivery] get purchase", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	d, err := s.purchaseRepo.GetDeliveryDetailTx(ctx, tx, deliveryID)
	if err != nil {
		logger.Error("[CancelDelivery] get delivery", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if d == nil || d.PurchaseID != purchaseID {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if d.Status != constant.DeliveryStatusInTransit {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}

	if err := s.purchaseRepo.UpdateDeliveryStatusTx(ctx, tx, deliveryID, constant.DeliveryStatusCancelled, nil); err != nil {
		logger.Error("[CancelDelivery] update delivery status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.recomputeStatusTx(ctx, tx, purchaseID, p.Status); err != nil {
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelDelivery] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// recomputeStatusTx reloads the aggregates and persists the derived status
// when it changed. Runs inside the caller's transaction so the derivation
// sees the delivery writes of this operation.
func (s *purchaseAppImpl) recomputeStatusTx(ctx context.Context, tx *sqlx.Tx, purchaseID uint64, current constant.PurchaseStatus) error {
	orderedTotal, err := s.purchaseRepo.GetOrderedQuantityTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[RecomputeStatus] get ordered quantity", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	summaries, err := s.purchaseRepo.GetDeliverySummariesTx(ctx, tx, purchaseID)
	if err != nil {
		logger.Error("[RecomputeStatus] get delivery summaries", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	derived := DeriveStatus(current, orderedTotal, summaries)
	if derived == current {
		return nil
	}

	if err := s.purchaseRepo.UpdateStatusTx(ctx, tx, purchaseID, derived); err != nil {
		logger.Error("[RecomputeStatus] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *purchaseAppImpl) GetPurchase(ctx context.Context, purchaseID uint64) (*model.Purchase, error) {
	p, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		logger.Error("[GetPurchase] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return p, nil
}

func (s *purchaseAppImpl) ListPurchases(ctx context.Context, filter *model.PurchaseFilter) (*model.PurchaseListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.purchaseRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListPurchases] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PurchaseListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}
