package purchase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	apppurchase "github.com/rsetiawan/agrostock/application/purchase"
	"github.com/rsetiawan/agrostock/constant"
	productmocks "github.com/rsetiawan/agrostock/mocks/repository/product"
	purchasemocks "github.com/rsetiawan/agrostock/mocks/repository/purchase"
	txmocks "github.com/rsetiawan/agrostock/mocks/repository/tx"
	warehousemocks "github.com/rsetiawan/agrostock/mocks/repository/warehouse"
	"github.com/rsetiawan/agrostock/model"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo        *txmocks.TxRepository
	purchaseRepo  *purchasemocks.PurchaseRepository
	productRepo   *productmocks.ProductRepository
	warehouseRepo *warehousemocks.WarehouseRepository
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:        txmocks.NewTxRepository(t),
		purchaseRepo:  purchasemocks.NewPurchaseRepository(t),
		productRepo:   productmocks.NewProductRepository(t),
		warehouseRepo: warehousemocks.NewWarehouseRepository(t),
	}
}

func newApp(f fields) apppurchase.PurchaseApp {
	return apppurchase.NewPurchaseApp(f.txRepo, f.purchaseRepo, f.productRepo, f.warehouseRepo)
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	var ce interface {
		error
		ErrorCode() string
	}
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want coded error", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestPurchaseApp_CreatePurchase(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.PurchaseRequest
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: record pending purchase with items",
			req: &model.PurchaseRequest{
				Supplier: "CV Tani Makmur",
				Items: []model.PurchaseItemRequest{
					{Name: "Urea", Category: "fertilizer", Unit: "kg", Quantity: 50, UnitCost: 12000},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.purchaseRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(p *model.Purchase) bool {
					return p.Status == constant.PurchaseStatusPending && p.Supplier == "CV Tani Makmur" && p.RequestedBy == 9
				})).Return(uint64(7), nil).Once()

				f.purchaseRepo.On("InsertItemsTx", mock.Anything, tx, uint64(7), mock.Anything).Return(nil).Once()
			},
			want:    7,
			wantErr: false,
		},
		{
			name:     "error: no items",
			req:      &model.PurchaseRequest{Supplier: "CV Tani Makmur"},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := newApp(f).CreatePurchase(context.Background(), 9, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatePurchase() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got != tt.want {
				t.Fatalf("CreatePurchase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPurchaseApp_ApprovePurchase(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusPending,
	}, nil).Once()
	f.purchaseRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(7), constant.PurchaseStatusApproved).Return(nil).Once()
	f.purchaseRepo.On("SetApproverTx", mock.Anything, tx, uint64(7), uint64(9)).Return(nil).Once()

	if err := newApp(f).ApprovePurchase(context.Background(), 9, 7); err != nil {
		t.Fatalf("ApprovePurchase() error = %v", err)
	}
}

func TestPurchaseApp_ApprovePurchase_NotPending(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusCompleted,
	}, nil).Once()

	err := newApp(f).ApprovePurchase(context.Background(), 9, 7)
	assertErrCode(t, err, constant.ErrInvalidStatus)
}

func TestPurchaseApp_CancelPurchase(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: cancel approved purchase with no deliveries",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusApproved,
				}, nil).Once()
				f.purchaseRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(7), constant.PurchaseStatusCancelled).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: deliveries already in flight",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusPartialDelivered,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name: "error: purchase not found",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			err := newApp(f).CancelPurchase(context.Background(), 7)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CancelPurchase() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestPurchaseApp_AddDelivery(t *testing.T) {
	req := &model.DeliveryRequest{
		WarehouseID: 2,
		Items: []model.DeliveryItemRequest{
			{PurchaseItemID: 11, Quantity: 20},
		},
	}

	tests := []struct {
		name     string
		req      *model.DeliveryRequest
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: first delivery moves purchase to partial",
			req:  req,
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusApproved,
				}, nil).Once()

				f.purchaseRepo.On("GetItemsTx", mock.Anything, tx, uint64(7)).Return([]model.PurchaseItem{
					{ID: 11, Quantity: 50},
				}, nil).Once()
				f.purchaseRepo.On("GetDeliveredByItemTx", mock.Anything, tx, uint64(7)).Return(map[uint64]float64{}, nil).Once()

				f.purchaseRepo.On("InsertDeliveryTx", mock.Anything, tx, mock.MatchedBy(func(d *model.PurchaseDelivery) bool {
					return d.PurchaseID == 7 && d.Status == constant.DeliveryStatusInTransit && d.WarehouseID == 2
				})).Return(uint64(3), nil).Once()
				f.purchaseRepo.On("InsertDeliveryItemsTx", mock.Anything, tx, uint64(3), req.Items).Return(nil).Once()

				f.purchaseRepo.On("GetOrderedQuantityTx", mock.Anything, tx, uint64(7)).Return(float64(50), nil).Once()
				f.purchaseRepo.On("GetDeliverySummariesTx", mock.Anything, tx, uint64(7)).Return([]model.DeliverySummary{
					{ID: 3, Status: constant.DeliveryStatusInTransit, TotalQuantity: 20},
				}, nil).Once()
				f.purchaseRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(7), constant.PurchaseStatusPartialDelivered).Return(nil).Once()
			},
			want:    3,
			wantErr: false,
		},
		{
			name: "error: delivery would exceed ordered quantity",
			req:  req,
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusPartialDelivered,
				}, nil).Once()

				f.purchaseRepo.On("GetItemsTx", mock.Anything, tx, uint64(7)).Return([]model.PurchaseItem{
					{ID: 11, Quantity: 50},
				}, nil).Once()
				// 40 already delivered or in transit; another 20 would overshoot.
				f.purchaseRepo.On("GetDeliveredByItemTx", mock.Anything, tx, uint64(7)).Return(map[uint64]float64{11: 40}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: delivery item not on the purchase",
			req: &model.DeliveryRequest{
				WarehouseID: 2,
				Items: []model.DeliveryItemRequest{
					{PurchaseItemID: 99, Quantity: 1},
				},
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusApproved,
				}, nil).Once()

				f.purchaseRepo.On("GetItemsTx", mock.Anything, tx, uint64(7)).Return([]model.PurchaseItem{
					{ID: 11, Quantity: 50},
				}, nil).Once()
				f.purchaseRepo.On("GetDeliveredByItemTx", mock.Anything, tx, uint64(7)).Return(map[uint64]float64{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: purchase still pending approval",
			req:  req,
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
					ID:     7,
					Status: constant.PurchaseStatusPending,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name: "error: target warehouse inactive",
			req:  req,
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusInactive}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := newApp(f).AddDelivery(context.Background(), 7, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddDelivery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got != tt.want {
				t.Fatalf("AddDelivery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPurchaseApp_CompleteDelivery(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusPartialDelivered,
	}, nil).Once()
	f.purchaseRepo.On("GetDeliveryDetailTx", mock.Anything, tx, uint64(3)).Return(&model.PurchaseDelivery{
		ID:          3,
		PurchaseID:  7,
		Status:      constant.DeliveryStatusInTransit,
		WarehouseID: 2,
	}, nil).Once()

	f.purchaseRepo.On("GetItemsTx", mock.Anything, tx, uint64(7)).Return([]model.PurchaseItem{
		{ID: 11, Name: "Urea", Category: "fertilizer", Unit: "kg", Quantity: 50},
	}, nil).Once()
	f.purchaseRepo.On("GetDeliveryItemsTx", mock.Anything, tx, uint64(3)).Return([]model.DeliveryItem{
		{ID: 21, DeliveryID: 3, PurchaseItemID: 11, Quantity: 30},
	}, nil).Once()

	// Each delivered item lands as a fresh lot in the delivery's warehouse.
	f.productRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Urea" && p.Stock == 30 && p.WarehouseID == 2 && p.LotCode == "PO-7-D3"
	})).Return(uint64(101), nil).Once()

	f.purchaseRepo.On("UpdateDeliveryStatusTx", mock.Anything, tx, uint64(3), constant.DeliveryStatusCompleted, mock.MatchedBy(func(ts *time.Time) bool {
		return ts != nil
	})).Return(nil).Once()

	// This was the last outstanding quantity, so the purchase completes.
	f.purchaseRepo.On("GetOrderedQuantityTx", mock.Anything, tx, uint64(7)).Return(float64(50), nil).Once()
	f.purchaseRepo.On("GetDeliverySummariesTx", mock.Anything, tx, uint64(7)).Return([]model.DeliverySummary{
		{ID: 2, Status: constant.DeliveryStatusCompleted, TotalQuantity: 20},
		{ID: 3, Status: constant.DeliveryStatusCompleted, TotalQuantity: 30},
	}, nil).Once()
	f.purchaseRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(7), constant.PurchaseStatusCompleted).Return(nil).Once()

	if err := newApp(f).CompleteDelivery(context.Background(), 7, 3); err != nil {
		t.Fatalf("CompleteDelivery() error = %v", err)
	}
}

func TestPurchaseApp_CompleteDelivery_WrongPurchase(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusPartialDelivered,
	}, nil).Once()
	f.purchaseRepo.On("GetDeliveryDetailTx", mock.Anything, tx, uint64(3)).Return(&model.PurchaseDelivery{
		ID:         3,
		PurchaseID: 8,
		Status:     constant.DeliveryStatusInTransit,
	}, nil).Once()

	err := newApp(f).CompleteDelivery(context.Background(), 7, 3)
	assertErrCode(t, err, constant.ErrNotFound)
}

func TestPurchaseApp_CompleteDelivery_NotInTransit(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusCompleted,
	}, nil).Once()
	f.purchaseRepo.On("GetDeliveryDetailTx", mock.Anything, tx, uint64(3)).Return(&model.PurchaseDelivery{
		ID:         3,
		PurchaseID: 7,
		Status:     constant.DeliveryStatusCompleted,
	}, nil).Once()

	err := newApp(f).CompleteDelivery(context.Background(), 7, 3)
	assertErrCode(t, err, constant.ErrInvalidStatus)
}

func TestPurchaseApp_CancelDelivery(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()

	f.purchaseRepo.On("GetDetailTx", mock.Anything, tx, uint64(7)).Return(&model.Purchase{
		ID:     7,
		Status: constant.PurchaseStatusPartialDelivered,
	}, nil).Once()
	f.purchaseRepo.On("GetDeliveryDetailTx", mock.Anything, tx, uint64(3)).Return(&model.PurchaseDelivery{
		ID:         3,
		PurchaseID: 7,
		Status:     constant.DeliveryStatusInTransit,
	}, nil).Once()

	f.purchaseRepo.On("UpdateDeliveryStatusTx", mock.Anything, tx, uint64(3), constant.DeliveryStatusCancelled, (*time.Time)(nil)).Return(nil).Once()

	// The cancelled delivery drops out of the aggregates; nothing else was
	// delivered, so the status falls back to what it already was.
	f.purchaseRepo.On("GetOrderedQuantityTx", mock.Anything, tx, uint64(7)).Return(float64(50), nil).Once()
	f.purchaseRepo.On("GetDeliverySummariesTx", mock.Anything, tx, uint64(7)).Return([]model.DeliverySummary{}, nil).Once()

	if err := newApp(f).CancelDelivery(context.Background(), 7, 3); err != nil {
		t.Fatalf("CancelDelivery() error = %v", err)
	}
}
