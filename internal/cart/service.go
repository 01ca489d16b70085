package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salesdash/internal/logger"
	"salesdash/internal/product"
)

// ProductLookup resolves the current product snapshot for a cart line.
type ProductLookup interface {
	Get(ctx context.Context, productID int64) (*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*Cart, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*Cart, AddResult, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID int64) (*Cart, error)
	SetQuantity(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*Cart, bool, error)
	SetUser(ctx context.Context, sessionID uuid.UUID, userID string) (*Cart, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	mu       sync.Mutex
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(ctx, sessionID)
}

// mutate runs load → fn → save under the service lock.
func (s *service) mutate(ctx context.Context, sessionID uuid.UUID, fn func(c *Cart) error) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return c, err
	}
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*Cart, AddResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Int64("product_id", productID),
	)

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		return nil, AddResult{}, err
	}

	var res AddResult
	c, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		var addErr error
		res, addErr = c.AddItem(*p, quantity)
		return addErr
	})
	if err != nil {
		log.Warn("add to cart rejected", zap.Error(err))
		return nil, res, err
	}

	if res.Clamped {
		log.Info("quantity clamped to available stock",
			zap.Int("requested", res.Requested),
			zap.Int("added", res.Added),
		)
	}
	return c, res, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID int64) (*Cart, error) {
	c, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.RemoveItem(productID)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID uuid.UUID, productID int64, quantity int) (*Cart, bool, error) {
	var clamped bool
	c, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		var setErr error
		clamped, setErr = c.SetQuantity(productID, quantity)
		return setErr
	})
	if err != nil {
		return nil, false, err
	}
	return c, clamped, nil
}

func (s *service) SetUser(ctx context.Context, sessionID uuid.UUID, userID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.SetUser(userID)
		return nil
	})
}

// Clear drops the whole persisted cart, user id included.
func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("cart cleared",
		zap.String("layer", "service"),
		zap.String("method", "Clear"),
	)
	return nil
}
