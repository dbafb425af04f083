package warehouse

import (
	"context"

	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	warehouserepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type WarehouseApp interface {
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error)
	CreateWarehouse(ctx context.Context, req *model.WarehouseRequest) (uint64, error)
	DeactivateWarehouse(ctx context.Context, id uint64) error
}

type warehouseAppImpl struct {
	warehouseRepo warehouserepo.WarehouseRepository
}

func NewWarehouseApp(warehouseRepo warehouserepo.WarehouseRepository) WarehouseApp {
	return &warehouseAppImpl{warehouseRepo: warehouseRepo}
}

func (s *warehouseAppImpl) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	items, err := s.warehouseRepo.List(ctx)
	if err != nil {
		logger.Error("[ListWarehouses] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *warehouseAppImpl) GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error) {
	wh, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetWarehouse] get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if wh == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return wh, nil
}

func (s *warehouseAppImpl) CreateWarehouse(ctx context.Context, req *model.WarehouseRequest) (uint64, error) {
	id, err := s.warehouseRepo.Insert(ctx, &model.Warehouse{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		logger.Error("[CreateWarehouse] insert", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	return id, nil
}

// DeactivateWarehouse stops new products, harvests and transfers from
// targeting the warehouse. Existing stock stays in place.
func (s *warehouseAppImpl) DeactivateWarehouse(ctx context.Context, id uint64) error {
	wh, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[DeactivateWarehouse] get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if wh == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.warehouseRepo.SetStatus(ctx, id, constant.WarehouseStatusInactive); err != nil {
		logger.Error("[DeactivateWarehouse] set status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
