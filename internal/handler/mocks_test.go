package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salesdash/internal/cart"
	"salesdash/internal/dataset"
	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/user"
)

type MockLoader struct{ mock.Mock }

func (m *MockLoader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*dataset.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) List(ctx context.Context, q user.Query) ([]user.Summary, error) {
	args := m.Called(ctx, q)
	if s := args.Get(0); s != nil {
		return s.([]user.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int64) (*user.Detail, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*user.Detail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, input user.NewUser) error {
	return m.Called(ctx, input).Error(0)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) AddStock(ctx context.Context, id int64, amount int) (*product.Product, error) {
	args := m.Called(ctx, id, amount)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCartService struct{ mock.Mock }

func cartResult(args mock.Arguments) *cart.Cart {
	if c := args.Get(0); c != nil {
		return c.(*cart.Cart)
	}
	return nil
}

func (m *MockCartService) Get(ctx context.Context, sid uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, sid)
	return cartResult(args), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sid uuid.UUID, productID int64, qty int) (*cart.Cart, cart.AddResult, error) {
	args := m.Called(ctx, sid, productID, qty)
	return cartResult(args), args.Get(1).(cart.AddResult), args.Error(2)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sid uuid.UUID, productID int64) (*cart.Cart, error) {
	args := m.Called(ctx, sid, productID)
	return cartResult(args), args.Error(1)
}

func (m *MockCartService) SetQuantity(ctx context.Context, sid uuid.UUID, productID int64, qty int) (*cart.Cart, bool, error) {
	args := m.Called(ctx, sid, productID, qty)
	return cartResult(args), args.Bool(1), args.Error(2)
}

func (m *MockCartService) SetUser(ctx context.Context, sid uuid.UUID, userID string) (*cart.Cart, error) {
	args := m.Called(ctx, sid, userID)
	return cartResult(args), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sid uuid.UUID) error {
	return m.Called(ctx, sid).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, sid uuid.UUID) (*order.Receipt, error) {
	args := m.Called(ctx, sid)
	if r := args.Get(0); r != nil {
		return r.(*order.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) CreateDraft(ctx context.Context, draft order.Draft) (*order.Receipt, error) {
	args := m.Called(ctx, draft)
	if r := args.Get(0); r != nil {
		return r.(*order.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}
