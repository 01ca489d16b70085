package product

import (
	"context"
	"fmt"
	"time"

	"salesdash/internal/logger"

	"go.uber.org/zap"
)

// Gateway is the slice of the sales backend the catalog needs.
type Gateway interface {
	FetchProducts(ctx context.Context) ([]Product, error)
	UpdateProductStock(ctx context.Context, update StockUpdate) error
}

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, productID int64) (*Product, error)
	AddStock(ctx context.Context, productID int64, amount int) (*Product, error)
}

type service struct {
	gateway Gateway
	assets  *AssetTable
}

func NewService(gateway Gateway, assets *AssetTable) Service {
	return &service{gateway: gateway, assets: assets}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()
	products, err := s.gateway.FetchProducts(ctx)
	if err != nil {
		log.Error("fetch products failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedFetchProducts, err)
	}

	out := make([]Product, len(products))
	for i, p := range products {
		p.ImageURL, _ = s.assets.Resolve(p.ID)
		out[i] = p
	}

	log.Debug("products listed",
		zap.Int("count", len(out)),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}

func (s *service) Get(ctx context.Context, productID int64) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// AddStock tops up a product's stock. The backend stores absolute values,
// so the new level is computed from the freshly fetched one.
func (s *service) AddStock(ctx context.Context, productID int64, amount int) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddStock"),
		zap.Int64("product_id", productID),
		zap.Int("amount", amount),
	)

	if amount <= 0 {
		log.Warn("invalid stock amount")
		return nil, ErrInvalidStockAmount
	}

	p, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	update := StockUpdate{ProductID: p.ID, UpdatedStock: p.Stock + amount}
	if err := s.gateway.UpdateProductStock(ctx, update); err != nil {
		log.Error("stock update rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedUpdateStock, err)
	}

	log.Info("stock updated",
		zap.Int("previous_stock", p.Stock),
		zap.Int("updated_stock", update.UpdatedStock),
	)

	p.Stock = update.UpdatedStock
	return p, nil
}
