package backend

import (
	"context"
	"net/http"

	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/user"
)

const (
	pathCreateUser = "/api/users"
	pathOrdersPost = "/api/orders"
	pathStatus     = "/api/orders/status"
	pathStock      = "/api/products/stock"
)

type createOrderResponse struct {
	Message string `json:"message"`
	OrderID *int64 `json:"order_id"`
	Order   *struct {
		OrderID *int64 `json:"order_id"`
	} `json:"order"`
}

func (c *Client) CreateUser(ctx context.Context, reg user.Registration) error {
	return c.do(ctx, http.MethodPost, pathCreateUser, reg, nil)
}

func (c *Client) CreateOrder(ctx context.Context, payload order.Payload) (*order.Receipt, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, pathOrdersPost, payload, &resp); err != nil {
		return nil, err
	}

	receipt := &order.Receipt{Message: resp.Message, OrderID: firstID(resp.OrderID)}
	if receipt.OrderID == 0 && resp.Order != nil {
		receipt.OrderID = firstID(resp.Order.OrderID)
	}
	return receipt, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, change order.StatusChange) error {
	return c.do(ctx, http.MethodPatch, pathStatus, change, nil)
}

func (c *Client) UpdateProductStock(ctx context.Context, update product.StockUpdate) error {
	return c.do(ctx, http.MethodPost, pathStock, update, nil)
}
