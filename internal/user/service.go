package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"salesdash/internal/logger"
	"salesdash/internal/order"
)

// Gateway is the user-facing slice of the sales backend.
type Gateway interface {
	FetchUsers(ctx context.Context) ([]User, error)
	FetchOrders(ctx context.Context) ([]order.Order, error)
	CreateUser(ctx context.Context, reg Registration) error
}

type Service interface {
	List(ctx context.Context, q Query) ([]Summary, error)
	Get(ctx context.Context, userID int64) (*Detail, error)
	Create(ctx context.Context, input NewUser) error
}

type service struct {
	gateway Gateway
}

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

func (s *service) load(ctx context.Context) ([]User, []order.Order, error) {
	users, err := s.gateway.FetchUsers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedFetchUsers, err)
	}
	orders, err := s.gateway.FetchOrders(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedFetchUsers, err)
	}
	return users, orders, nil
}

func (s *service) List(ctx context.Context, q Query) ([]Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListUsers"),
	)

	if _, err := q.normalized(); err != nil {
		log.Warn("invalid query", zap.Any("query", q))
		return nil, err
	}

	users, orders, err := s.load(ctx)
	if err != nil {
		log.Error("failed to load directory", zap.Error(err))
		return nil, err
	}

	rows, err := Apply(Summarize(users, orders), q)
	if err != nil {
		log.Warn("filter rejected", zap.String("term", q.Term), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, userID int64) (*Detail, error) {
	users, orders, err := s.load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load user",
			zap.String("layer", "service"),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	for _, u := range UniqueUsers(users) {
		if u.ID != userID {
			continue
		}
		mine := OrdersFor(orders, userID)
		return &Detail{User: u, Orders: mine, TotalSpent: sumTotals(mine)}, nil
	}
	return nil, ErrUserNotFound
}

func (s *service) Create(ctx context.Context, input NewUser) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateUser"),
	)

	reg, err := validateNewUser(input)
	if err != nil {
		log.Warn("invalid user input", zap.Error(err))
		return err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return err
	}
	reg.PasswordHash = hashed

	if err := s.gateway.CreateUser(ctx, reg); err != nil {
		log.Error("failed to create user", zap.String("email", reg.Email), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFailedCreateUser, err)
	}

	log.Info("user created", zap.String("username", reg.Username))
	return nil
}

func validateNewUser(input NewUser) (Registration, error) {
	reg := Registration{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
	}
	if reg.Username == "" || reg.Email == "" || input.Password == "" {
		return reg, fmt.Errorf("%w: username, email and password are required", ErrInvalidUserInput)
	}
	addr, err := mail.ParseAddress(reg.Email)
	if err != nil || addr.Address != reg.Email {
		return reg, fmt.Errorf("%w: email %q is not valid", ErrInvalidUserInput, reg.Email)
	}
	return reg, nil
}
