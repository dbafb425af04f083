package product_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appproduct "github.com/rsetiawan/agrostock/application/product"
	"github.com/rsetiawan/agrostock/cmd/config"
	"github.com/rsetiawan/agrostock/constant"
	productmocks "github.com/rsetiawan/agrostock/mocks/repository/product"
	redismocks "github.com/rsetiawan/agrostock/mocks/repository/redis"
	warehousemocks "github.com/rsetiawan/agrostock/mocks/repository/warehouse"
	"github.com/rsetiawan/agrostock/model"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	config        *config.Config
	productRepo   *productmocks.ProductRepository
	warehouseRepo *warehousemocks.WarehouseRepository
	redisRepo     *redismocks.Repository
}

func newFields(t *testing.T) fields {
	return fields{
		config: &config.Config{
			Stock: config.StockConfig{ProductCacheTTL: 5 * time.Minute},
		},
		productRepo:   productmocks.NewProductRepository(t),
		warehouseRepo: warehousemocks.NewWarehouseRepository(t),
		redisRepo:     redismocks.NewRepository(t),
	}
}

func newApp(f fields) appproduct.ProductApp {
	return appproduct.NewProductApp(f.config, f.productRepo, f.warehouseRepo, f.redisRepo)
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

func TestProductApp_GetProduct(t *testing.T) {
	cached, _ := json.Marshal(&model.Product{ID: 5, Name: "Urea", Stock: 25})

	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.Product
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: cache hit skips the database",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "product:5").Return(string(cached), nil).Once()
			},
			want: &model.Product{ID: 5, Name: "Urea", Stock: 25},
		},
		{
			name: "success: cache miss loads from db and backfills",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "product:5").Return("", errors.New("redis: nil")).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{
					ID: 5, Name: "Urea", Stock: 25,
				}, nil).Once()
				f.redisRepo.On("SetWithTTL", mock.Anything, "product:5", mock.Anything, 5*time.Minute).Return(nil).Once()
			},
			want: &model.Product{ID: 5, Name: "Urea", Stock: 25},
		},
		{
			name: "error: product not found",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "product:5").Return("", errors.New("redis: nil")).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
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

			got, err := newApp(f).GetProduct(context.Background(), 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.ID != tt.want.ID || got.Name != tt.want.Name || got.Stock != tt.want.Stock {
				t.Fatalf("GetProduct() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_CreateProduct(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.ProductRequest
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: insert into active warehouse",
			req: &model.ProductRequest{
				Name: "Urea", Unit: "kg", Stock: 25, MinStock: 5, WarehouseID: 1,
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Warehouse{
					ID: 1, Status: constant.WarehouseStatusActive,
				}, nil).Once()
				f.productRepo.On("Insert", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
					return p.Name == "Urea" && p.Stock == 25 && p.WarehouseID == 1
				})).Return(uint64(5), nil).Once()
			},
			want: 5,
		},
		{
			name: "error: inactive warehouse",
			req: &model.ProductRequest{
				Name: "Urea", Unit: "kg", Stock: 25, WarehouseID: 1,
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Warehouse{
					ID: 1, Status: constant.WarehouseStatusInactive,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: warehouse missing",
			req: &model.ProductRequest{
				Name: "Urea", Unit: "kg", Stock: 25, WarehouseID: 1,
			},
			mockCall: func(f fields) {
				f.warehouseRepo.On("GetByID", mock.Anything, uint64(1)).Return(nil, nil).Once()
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

			got, err := newApp(f).CreateProduct(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got != tt.want {
				t.Fatalf("CreateProduct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductApp_UpdateProduct(t *testing.T) {
	f := newFields(t)

	f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{
		ID: 5, Name: "Urea", Stock: 25, WarehouseID: 1,
	}, nil).Once()
	f.productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		// Stock is untouched by a detail update.
		return p.ID == 5 && p.Name == "Urea Prill" && p.MinStock == 10 && p.Stock == 25
	})).Return(nil).Once()
	f.redisRepo.On("Delete", mock.Anything, "product:5").Return(nil).Once()

	err := newApp(f).UpdateProduct(context.Background(), 5, &model.ProductRequest{
		Name: "Urea Prill", Unit: "kg", MinStock: 10, WarehouseID: 1,
	})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
}

func TestProductApp_DeleteProduct(t *testing.T) {
	f := newFields(t)

	f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Product{ID: 5}, nil).Once()
	f.productRepo.On("Delete", mock.Anything, uint64(5)).Return(nil).Once()
	f.redisRepo.On("Delete", mock.Anything, "product:5").Return(nil).Once()

	if err := newApp(f).DeleteProduct(context.Background(), 5); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
}

func TestProductApp_ListLowStock(t *testing.T) {
	f := newFields(t)

	f.productRepo.On("ListBelowMinStock", mock.Anything).Return([]model.Product{
		{ID: 5, Name: "Urea", Stock: 2, MinStock: 5},
	}, nil).Once()

	got, err := newApp(f).ListLowStock(context.Background())
	if err != nil {
		t.Fatalf("ListLowStock() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("ListLowStock() = %+v, want product 5", got)
	}
}
