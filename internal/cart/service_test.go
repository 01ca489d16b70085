package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salesdash/internal/product"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, sessionID uuid.UUID) (*Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, sessionID uuid.UUID, c *Cart) error {
	args := m.Called(ctx, sessionID, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) Get(ctx context.Context, productID int64) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductLookup)
		p := testProduct(1, "10", 3)

		products.On("Get", ctx, int64(1)).Return(&p, nil)
		repo.On("Load", ctx, sessionID).Return(New(), nil)
		repo.On("Save", ctx, sessionID, mock.AnythingOfType("*cart.Cart")).Return(nil)

		c, res, err := NewService(repo, products).AddItem(ctx, sessionID, 1, 10)

		require.NoError(t, err)
		assert.True(t, res.Clamped)
		assert.Equal(t, 3, c.TotalItems())
		repo.AssertExpectations(t)
	})

	t.Run("Product not found", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductLookup)
		products.On("Get", ctx, int64(9)).Return(nil, product.ErrProductNotFound)

		_, _, err := NewService(repo, products).AddItem(ctx, sessionID, 9, 1)

		assert.ErrorIs(t, err, product.ErrProductNotFound)
		repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("No stock is not saved", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductLookup)
		p := testProduct(1, "10", 0)

		products.On("Get", ctx, int64(1)).Return(&p, nil)
		repo.On("Load", ctx, sessionID).Return(New(), nil)

		_, _, err := NewService(repo, products).AddItem(ctx, sessionID, 1, 1)

		assert.ErrorIs(t, err, ErrNoStock)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Save error", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductLookup)
		p := testProduct(1, "10", 3)

		products.On("Get", ctx, int64(1)).Return(&p, nil)
		repo.On("Load", ctx, sessionID).Return(New(), nil)
		repo.On("Save", ctx, sessionID, mock.Anything).Return(ErrFailedSaveCart)

		_, _, err := NewService(repo, products).AddItem(ctx, sessionID, 1, 1)

		assert.ErrorIs(t, err, ErrFailedSaveCart)
	})
}

func TestService_SetQuantity(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	stored := New()
	_, _ = stored.AddItem(testProduct(1, "10", 4), 1)

	repo := new(MockRepository)
	repo.On("Load", ctx, sessionID).Return(stored, nil)
	repo.On("Save", ctx, sessionID, stored).Return(nil)

	c, clamped, err := NewService(repo, nil).SetQuantity(ctx, sessionID, 1, 6)

	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, 4, c.TotalItems())
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Unknown item", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, sessionID).Return(New(), nil)

		_, err := NewService(repo, nil).RemoveItem(ctx, sessionID, 5)

		assert.ErrorIs(t, err, ErrCartItemNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Load error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, sessionID).Return(nil, errors.New("db down"))

		_, err := NewService(repo, nil).RemoveItem(ctx, sessionID, 5)
		assert.Error(t, err)
	})
}

func TestService_SetUserAndClear(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	repo := new(MockRepository)
	repo.On("Load", ctx, sessionID).Return(New(), nil)
	repo.On("Save", ctx, sessionID, mock.Anything).Return(nil)
	repo.On("Delete", ctx, sessionID).Return(nil)

	svc := NewService(repo, nil)

	c, err := svc.SetUser(ctx, sessionID, "12")
	require.NoError(t, err)
	assert.Equal(t, "12", c.UserID())

	assert.NoError(t, svc.Clear(ctx, sessionID))
	repo.AssertExpectations(t)
}
