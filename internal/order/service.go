package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salesdash/internal/cart"
	"salesdash/internal/logger"
	"salesdash/internal/product"
)

// Gateway is the order-submission side of the sales backend.
type Gateway interface {
	CreateOrder(ctx context.Context, payload Payload) (*Receipt, error)
	UpdateOrderStatus(ctx context.Context, change StatusChange) error
}

// CartStore is the session cart the checkout reads and clears.
type CartStore interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// ProductLookup is the catalog read used to resolve draft lines.
type ProductLookup interface {
	List(ctx context.Context) ([]product.Product, error)
}

type Service interface {
	Checkout(ctx context.Context, sessionID uuid.UUID) (*Receipt, error)
	CreateDraft(ctx context.Context, draft Draft) (*Receipt, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
}

type service struct {
	gateway  Gateway
	carts    CartStore
	products ProductLookup
}

func NewService(gateway Gateway, carts CartStore, products ProductLookup) Service {
	return &service{gateway: gateway, carts: carts, products: products}
}

// Checkout submits the session cart. The cart is cleared only after the
// backend accepts the order.
func (s *service) Checkout(ctx context.Context, sessionID uuid.UUID) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	payload, err := BuildFromCart(c)
	if err != nil {
		log.Warn("checkout rejected", zap.Error(err))
		return nil, err
	}

	receipt, err := s.submit(ctx, *payload)
	if err != nil {
		log.Error("order submission failed, cart kept", zap.Error(err))
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists on the backend; a stale cart is the lesser problem.
		log.Error("order placed but cart not cleared", zap.Error(err))
	}

	log.Info("checkout completed",
		zap.Int64("order_id", receipt.OrderID),
		zap.String("total_amount", payload.TotalAmount.StringFixed(2)),
	)
	return receipt, nil
}

// CreateDraft builds a transient cart from catalog products with the same
// stock clamping as the session cart, then submits it. The user is checked
// before the catalog is fetched, and the catalog is fetched once per draft.
func (s *service) CreateDraft(ctx context.Context, draft Draft) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateDraft"),
	)

	if _, err := validateUser(draft.UserID, len(draft.Lines)); err != nil {
		log.Warn("draft rejected", zap.Error(err))
		return nil, err
	}

	status := StatusPending
	if draft.Status != "" {
		st, err := ParseStatus(draft.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	catalog, err := s.products.List(ctx)
	if err != nil {
		log.Warn("draft catalog lookup failed", zap.Error(err))
		return nil, err
	}
	byID := make(map[int64]product.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	c := cart.New()
	c.SetUser(draft.UserID)
	for _, line := range draft.Lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, product.ErrProductNotFound)
		}
		res, err := c.AddItem(p, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, err)
		}
		if res.Clamped {
			log.Info("draft line clamped",
				zap.Int64("product_id", line.ProductID),
				zap.Int("requested", res.Requested),
				zap.Int("added", res.Added),
			)
		}
	}

	payload, err := BuildWithStatus(c, status)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, *payload)
}

func (s *service) submit(ctx context.Context, payload Payload) (*Receipt, error) {
	receipt, err := s.gateway.CreateOrder(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedSubmitOrder, err)
	}
	if receipt == nil {
		receipt = &Receipt{}
	}
	receipt.Order = payload
	return receipt, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
	)

	if orderID <= 0 {
		return ErrInvalidOrderID
	}
	st, err := ParseStatus(status)
	if err != nil {
		log.Warn("invalid status", zap.String("status", status))
		return err
	}

	if err := s.gateway.UpdateOrderStatus(ctx, StatusChange{OrderID: orderID, NewStatus: st}); err != nil {
		log.Error("status update failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFailedUpdateStatus, err)
	}

	log.Info("order status updated", zap.String("status", string(st)))
	return nil
}
