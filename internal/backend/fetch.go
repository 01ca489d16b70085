package backend

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"salesdash/internal/dataset"
	"salesdash/internal/logger"
	"salesdash/internal/metrics"
	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/user"
)

const (
	pathOrders     = "/api/get_orders"
	pathUsers      = "/api/get_users"
	pathOrderItems = "/api/get_order_items"
	pathProducts   = "/api/get_products"
	pathJoined     = "/api/data"
)

func (c *Client) FetchOrders(ctx context.Context) ([]order.Order, error) {
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, pathOrders, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSlice(dtos, orderDTO.toDomain), nil
}

func (c *Client) FetchUsers(ctx context.Context) ([]user.User, error) {
	var dtos []userDTO
	if err := c.do(ctx, http.MethodGet, pathUsers, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSlice(dtos, userDTO.toDomain), nil
}

func (c *Client) FetchOrderItems(ctx context.Context) ([]order.LineItem, error) {
	var dtos []orderItemDTO
	if err := c.do(ctx, http.MethodGet, pathOrderItems, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSlice(dtos, orderItemDTO.toDomain), nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]product.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, pathProducts, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSlice(dtos, productDTO.toDomain), nil
}

// FetchAll loads the four collections in parallel. The first failure
// cancels the remaining requests and no partial snapshot is returned.
func (c *Client) FetchAll(ctx context.Context) (*dataset.Snapshot, error) {
	timer := metrics.StartTimer()
	g, gctx := errgroup.WithContext(ctx)

	var snap dataset.Snapshot
	g.Go(func() (err error) {
		snap.Orders, err = c.FetchOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Users, err = c.FetchUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.OrderItems, err = c.FetchOrderItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Products, err = c.FetchProducts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.FromCtx(ctx).Error("bulk load failed",
			zap.String("layer", "backend"),
			zap.Error(err),
		)
		return nil, err
	}

	logger.FromCtx(ctx).Debug("bulk load completed",
		zap.String("layer", "backend"),
		zap.Int("orders", len(snap.Orders)),
		zap.Int("users", len(snap.Users)),
		zap.Int("order_items", len(snap.OrderItems)),
		zap.Int("products", len(snap.Products)),
		zap.Duration("duration", timer.Duration()),
	)
	return &snap, nil
}

// FetchJoined reads the flat /api/data view and normalizes it.
func (c *Client) FetchJoined(ctx context.Context) (*dataset.Snapshot, error) {
	var rows []joinedRow
	if err := c.do(ctx, http.MethodGet, pathJoined, nil, &rows); err != nil {
		return nil, err
	}
	snap := Normalize(rows)
	return &snap, nil
}

// Normalize splits outer-join rows back into collections. Orders, users and
// products are deduplicated by id (first row wins); every row with an order,
// a product and a quantity becomes a line item.
func Normalize(rows []joinedRow) dataset.Snapshot {
	var snap dataset.Snapshot
	seenOrders := make(map[int64]struct{})
	seenUsers := make(map[int64]struct{})
	seenProducts := make(map[int64]struct{})

	for _, r := range rows {
		if id := firstID(r.OrderID); id > 0 {
			if _, dup := seenOrders[id]; !dup {
				seenOrders[id] = struct{}{}
				snap.Orders = append(snap.Orders, orderDTO{
					OrderID:        r.OrderID,
					UserID:         r.UserID,
					Status:         r.Status,
					TotalAmount:    r.TotalAmount,
					OrderCreatedAt: r.OrderCreatedAt,
				}.toDomain())
			}
		}

		if id := firstID(r.UserID); id > 0 {
			if _, dup := seenUsers[id]; !dup {
				seenUsers[id] = struct{}{}
				snap.Users = append(snap.Users, userDTO{
					UserID:        r.UserID,
					Username:      r.Username,
					Email:         r.Email,
					UserCreatedAt: r.UserCreatedAt,
				}.toDomain())
			}
		}

		if id := firstID(r.ProductID); id > 0 {
			if _, dup := seenProducts[id]; !dup {
				seenProducts[id] = struct{}{}
				snap.Products = append(snap.Products, product.Product{
					ID:       id,
					Name:     str(r.ProductName),
					Category: firstStr(r.ProductCategory, r.Category),
				})
			}
			if firstID(r.OrderID) > 0 && r.Quantity != nil {
				snap.OrderItems = append(snap.OrderItems, order.LineItem{
					OrderID:   *r.OrderID,
					ProductID: id,
					Quantity:  *r.Quantity,
				})
			}
		}
	}
	return snap
}
