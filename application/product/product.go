package product

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsetiawan/agrostock/cmd/config"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	productrepo "github.com/rsetiawan/agrostock/repository/product"
	redisrepo "github.com/rsetiawan/agrostock/repository/redis"
	warehouserepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/utils/errors"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

type ProductApp interface {
	ListProducts(ctx context.Context, filter *model.ProductFilter) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.ProductRequest) (uint64, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) error
	DeleteProduct(ctx context.Context, id uint64) error
	ListLowStock(ctx context.Context) ([]model.Product, error)
}

type productAppImpl struct {
	config        *config.Config
	productRepo   productrepo.ProductRepository
	warehouseRepo warehouserepo.WarehouseRepository
	redisRepo     redisrepo.Repository
}

func NewProductApp(config *config.Config, productRepo productrepo.ProductRepository, warehouseRepo warehouserepo.WarehouseRepository, redisRepo redisrepo.Repository) ProductApp {
	return &productAppImpl{
		config:        config,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		redisRepo:     redisRepo,
	}
}

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter *model.ProductFilter) (*model.ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

// GetProduct serves from the Redis cache when possible. Stale reads are
// bounded by the cache TTL and by invalidation on every direct update; stock
// movements go through transactions and bypass this path entirely.
func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	if cached, err := s.redisRepo.Get(ctx, productCacheKey(id)); err == nil && cached != "" {
		var p model.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := s.redisRepo.SetWithTTL(ctx, productCacheKey(id), string(raw), s.config.Stock.ProductCacheTTL); err != nil {
			logger.Warn("[GetProduct] cache set", zap.String("error", err.Error()))
		}
	}

	return p, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.ProductRequest) (uint64, error) {
	wh, err := s.warehouseRepo.GetByID(ctx, req.WarehouseID)
	if err != nil {
		logger.Error("[CreateProduct] get warehouse", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if wh == nil || wh.Status != constant.WarehouseStatusActive {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	id, err := s.productRepo.Insert(ctx, &model.Product{
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		WarehouseID: req.WarehouseID,
		FieldName:   req.FieldName,
	})
	if err != nil {
		logger.Error("[CreateProduct] insert", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	return id, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateProduct] get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Unit = req.Unit
	existing.MinStock = req.MinStock
	existing.FieldName = req.FieldName

	if err := s.productRepo.Update(ctx, existing); err != nil {
		logger.Error("[UpdateProduct] update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("[UpdateProduct] cache invalidate", zap.String("error", err.Error()))
	}
	return nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id uint64) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[DeleteProduct] get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteProduct] delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("[DeleteProduct] cache invalidate", zap.String("error", err.Error()))
	}
	return nil
}

func (s *productAppImpl) ListLowStock(ctx context.Context) ([]model.Product, error) {
	items, err := s.productRepo.ListBelowMinStock(ctx)
	if err != nil {
		logger.Error("[ListLowStock] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
