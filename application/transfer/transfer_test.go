package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	apptransfer "github.com/rsetiawan/agrostock/application/transfer"
	"github.com/rsetiawan/agrostock/cmd/config"
	"github.com/rsetiawan/agrostock/constant"
	productmocks "github.com/rsetiawan/agrostock/mocks/repository/product"
	transfermocks "github.com/rsetiawan/agrostock/mocks/repository/transfer"
	txmocks "github.com/rsetiawan/agrostock/mocks/repository/tx"
	warehousemocks "github.com/rsetiawan/agrostock/mocks/repository/warehouse"
	"github.com/rsetiawan/agrostock/model"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	config        *config.Config
	txRepo        *txmocks.TxRepository
	transferRepo  *transfermocks.TransferRepository
	productRepo   *productmocks.ProductRepository
	warehouseRepo *warehousemocks.WarehouseRepository
}

func newFields(t *testing.T) fields {
	return fields{
		config:        &config.Config{},
		txRepo:        txmocks.NewTxRepository(t),
		transferRepo:  transfermocks.NewTransferRepository(t),
		productRepo:   productmocks.NewProductRepository(t),
		warehouseRepo: warehousemocks.NewWarehouseRepository(t),
	}
}

func newApp(f fields) apptransfer.TransferApp {
	return apptransfer.NewTransferApp(f.config, f.txRepo, f.transferRepo, f.productRepo, f.warehouseRepo, nil)
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

func TestTransferApp_CreateTransfer(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.TransferRequest
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: record pending transfer",
			req: &model.TransferRequest{
				SourceWarehouseID: 1,
				TargetWarehouseID: 2,
				Items:             []model.ConsumeItem{{ProductID: 5, Quantity: 10, Unit: "kg"}},
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Warehouse{ID: 1, Status: constant.WarehouseStatusActive}, nil).Once()
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{
					ID: 5, Stock: 25, WarehouseID: 1,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.transferRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(tr *model.Transfer) bool {
					return tr.Status == constant.TransferStatusPending && tr.RequestedBy == 9
				})).Return(uint64(41), nil).Once()

				f.transferRepo.On("InsertItemsTx", mock.Anything, tx, uint64(41), mock.Anything).Return(nil).Once()
			},
			want:    41,
			wantErr: false,
		},
		{
			name: "error: same source and target",
			req: &model.TransferRequest{
				SourceWarehouseID: 1,
				TargetWarehouseID: 1,
				Items:             []model.ConsumeItem{{ProductID: 5, Quantity: 10, Unit: "kg"}},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: product not in source warehouse",
			req: &model.TransferRequest{
				SourceWarehouseID: 1,
				TargetWarehouseID: 2,
				Items:             []model.ConsumeItem{{ProductID: 5, Quantity: 10, Unit: "kg"}},
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Warehouse{ID: 1, Status: constant.WarehouseStatusActive}, nil).Once()
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{
					ID: 5, Stock: 25, WarehouseID: 3,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: requested quantity exceeds stock",
			req: &model.TransferRequest{
				SourceWarehouseID: 1,
				TargetWarehouseID: 2,
				Items:             []model.ConsumeItem{{ProductID: 5, Quantity: 100, Unit: "kg"}},
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Warehouse{ID: 1, Status: constant.WarehouseStatusActive}, nil).Once()
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.Warehouse{ID: 2, Status: constant.WarehouseStatusActive}, nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{
					ID: 5, Stock: 25, WarehouseID: 1,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := newApp(f).CreateTransfer(context.Background(), 9, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateTransfer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got != tt.want {
				t.Fatalf("CreateTransfer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransferApp_ApproveTransfer(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()

	f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
		ID:     41,
		Status: constant.TransferStatusPending,
	}, nil).Once()
	f.transferRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(41), constant.TransferStatusApproved).Return(nil).Once()
	f.transferRepo.On("SetActorTx", mock.Anything, tx, uint64(41), constant.TransferStatusApproved, uint64(9), mock.Anything).Return(nil).Once()

	if err := newApp(f).ApproveTransfer(context.Background(), 9, 41); err != nil {
		t.Fatalf("ApproveTransfer() error = %v", err)
	}
}

func TestTransferApp_ApproveTransfer_NotPending(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
		ID:     41,
		Status: constant.TransferStatusShipped,
	}, nil).Once()

	err := newApp(f).ApproveTransfer(context.Background(), 9, 41)
	assertErrCode(t, err, constant.ErrInvalidStatus)
}

func TestTransferApp_ShipTransfer(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: decrement both items and mark shipped",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
					ID:     41,
					Status: constant.TransferStatusApproved,
				}, nil).Once()

				f.transferRepo.On("GetItemsTx", mock.Anything, tx, uint64(41)).Return([]model.TransferItem{
					{ProductID: 5, Quantity: 10},
					{ProductID: 6, Quantity: 3},
				}, nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(5)).Return(&model.Product{ID: 5, Stock: 25}, nil).Once()
				f.productRepo.On("AddStockTx", mock.Anything, tx, uint64(5), float64(-10)).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(6)).Return(&model.Product{ID: 6, Stock: 3}, nil).Once()
				f.productRepo.On("AddStockTx", mock.Anything, tx, uint64(6), float64(-3)).Return(nil).Once()

				f.transferRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(41), constant.TransferStatusShipped).Return(nil).Once()
				f.transferRepo.On("SetActorTx", mock.Anything, tx, uint64(41), constant.TransferStatusShipped, uint64(9), mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: second item short aborts the whole shipment",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
					ID:     41,
					Status: constant.TransferStatusApproved,
				}, nil).Once()

				f.transferRepo.On("GetItemsTx", mock.Anything, tx, uint64(41)).Return([]model.TransferItem{
					{ProductID: 5, Quantity: 10},
					{ProductID: 6, Quantity: 30},
				}, nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(5)).Return(&model.Product{ID: 5, Stock: 25}, nil).Once()
				f.productRepo.On("AddStockTx", mock.Anything, tx, uint64(5), float64(-10)).Return(nil).Once()

				// Item 5 was already decremented inside the tx; the rollback
				// discards that write along with everything else.
				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(6)).Return(&model.Product{ID: 6, Stock: 3}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: transfer not approved",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
					ID:     41,
					Status: constant.TransferStatusPending,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			err := newApp(f).ShipTransfer(context.Background(), 9, 41)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ShipTransfer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestTransferApp_ReceiveTransfer(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()

	f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
		ID:                41,
		Status:            constant.TransferStatusShipped,
		TargetWarehouseID: 2,
	}, nil).Once()

	f.transferRepo.On("GetItemsTx", mock.Anything, tx, uint64(41)).Return([]model.TransferItem{
		{ProductID: 5, Quantity: 10},
		{ProductID: 6, Quantity: 3},
	}, nil).Once()

	// Product 5 is confirmed short (8 of 10); product 6 defaults to shipped.
	f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(5)).Return(&model.Product{ID: 5, Stock: 15}, nil).Once()
	f.productRepo.On("AddStockTx", mock.Anything, tx, uint64(5), float64(8)).Return(nil).Once()
	f.productRepo.On("ReassignWarehouseTx", mock.Anything, tx, uint64(5), uint64(2)).Return(nil).Once()
	f.transferRepo.On("SetReceivedQuantityTx", mock.Anything, tx, uint64(41), uint64(5), float64(8)).Return(nil).Once()

	f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(6)).Return(&model.Product{ID: 6, Stock: 0}, nil).Once()
	f.productRepo.On("AddStockTx", mock.Anything, tx, uint64(6), float64(3)).Return(nil).Once()
	f.productRepo.On("ReassignWarehouseTx", mock.Anything, tx, uint64(6), uint64(2)).Return(nil).Once()
	f.transferRepo.On("SetReceivedQuantityTx", mock.Anything, tx, uint64(41), uint64(6), float64(3)).Return(nil).Once()

	f.transferRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(41), constant.TransferStatusCompleted).Return(nil).Once()
	f.transferRepo.On("SetActorTx", mock.Anything, tx, uint64(41), constant.TransferStatusCompleted, uint64(9), mock.Anything).Return(nil).Once()

	err := newApp(f).ReceiveTransfer(context.Background(), 9, 41, &model.ReceiveTransferRequest{
		Items: []model.ReceivedItem{
			{ProductID: 5, ReceivedQuantity: 8},
		},
	})
	if err != nil {
		t.Fatalf("ReceiveTransfer() error = %v", err)
	}
}

func TestTransferApp_ReceiveTransfer_NotShipped(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
		ID:     41,
		Status: constant.TransferStatusApproved,
	}, nil).Once()

	err := newApp(f).ReceiveTransfer(context.Background(), 9, 41, &model.ReceiveTransferRequest{})
	assertErrCode(t, err, constant.ErrInvalidStatus)
}

func TestTransferApp_ExpireTransfer(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
	}{
		{
			name: "success: cancel pending transfer past its window",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
					ID:     41,
					Status: constant.TransferStatusPending,
				}, nil).Once()
				f.transferRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(41), constant.TransferStatusCancelled).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: no-op when already approved",
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
					ID:     41,
					Status: constant.TransferStatusApproved,
				}, nil).Once()
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			err := newApp(f).ExpireTransfer(context.Background(), 41)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpireTransfer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransferApp_CancelTransfer_Shipped(t *testing.T) {
	f := newFields(t)

	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()

	f.transferRepo.On("GetDetailTx", mock.Anything, tx, uint64(41)).Return(&model.Transfer{
		ID:     41,
		Status: constant.TransferStatusShipped,
	}, nil).Once()

	err := newApp(f).CancelTransfer(context.Background(), 41)
	assertErrCode(t, err, constant.ErrInvalidStatus)
}
