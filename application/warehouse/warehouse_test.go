package warehouse_test

import (
	"context"
	"errors"
	"testing"

	appwarehouse "github.com/rsetiawan/agrostock/application/warehouse"
	"github.com/rsetiawan/agrostock/constant"
	warehousemocks "github.com/rsetiawan/agrostock/mocks/repository/warehouse"
	"github.com/rsetiawan/agrostock/model"
	"github.com/stretchr/testify/mock"
)

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

func TestWarehouseApp_CreateWarehouse(t *testing.T) {
	repo := warehousemocks.NewWarehouseRepository(t)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(w *model.Warehouse) bool {
		return w.Name == "Gudang Utara" && w.Location == "Blok A"
	})).Return(uint64(3), nil).Once()

	got, err := appwarehouse.NewWarehouseApp(repo).CreateWarehouse(context.Background(), &model.WarehouseRequest{
		Name:     "Gudang Utara",
		Location: "Blok A",
	})
	if err != nil {
		t.Fatalf("CreateWarehouse() error = %v", err)
	}
	if got != 3 {
		t.Fatalf("CreateWarehouse() = %v, want 3", got)
	}
}

func TestWarehouseApp_GetWarehouse_NotFound(t *testing.T) {
	repo := warehousemocks.NewWarehouseRepository(t)
	repo.On("GetByID", mock.Anything, uint64(3)).Return(nil, nil).Once()

	_, err := appwarehouse.NewWarehouseApp(repo).GetWarehouse(context.Background(), 3)
	assertErrCode(t, err, constant.ErrNotFound)
}

func TestWarehouseApp_DeactivateWarehouse(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(repo *warehousemocks.WarehouseRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: mark inactive",
			mockCall: func(repo *warehousemocks.WarehouseRepository) {
				repo.On("GetByID", mock.Anything, uint64(3)).Return(&model.Warehouse{
					ID: 3, Status: constant.WarehouseStatusActive,
				}, nil).Once()
				repo.On("SetStatus", mock.Anything, uint64(3), constant.WarehouseStatusInactive).Return(nil).Once()
			},
		},
		{
			name: "error: warehouse missing",
			mockCall: func(repo *warehousemocks.WarehouseRepository) {
				repo.On("GetByID", mock.Anything, uint64(3)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := warehousemocks.NewWarehouseRepository(t)
			tt.mockCall(repo)

			err := appwarehouse.NewWarehouseApp(repo).DeactivateWarehouse(context.Background(), 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeactivateWarehouse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}
