package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salesdash/internal/logger"
)

type Repository interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, sessionID uuid.UUID, c *Cart) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Load returns an empty cart when the session has never saved one.
func (r *repository) Load(ctx context.Context, sessionID uuid.UUID) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Load"),
		zap.String("session_id", sessionID.String()),
	)

	var (
		userID sql.NullString
		items  []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, items
		FROM carts
		WHERE session_id = $1
	`, sessionID.String()).Scan(&userID, &items)

	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stored cart")
		return New(), nil
	}
	if err != nil {
		log.Error("failed to query cart", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}

	entries, err := decodeEntries(items)
	if err != nil {
		log.Error("failed to decode cart items", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}

	return FromEntries(userID.String, entries), nil
}

func (r *repository) Save(ctx context.Context, sessionID uuid.UUID, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.String("session_id", sessionID.String()),
	)

	items, err := encodeEntries(c.Entries())
	if err != nil {
		log.Error("failed to encode cart items", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFailedSaveCart, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (session_id, user_id, items, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			items = EXCLUDED.items,
			updated_at = NOW()
	`, sessionID.String(), c.UserID(), items)
	if err != nil {
		log.Error("failed to upsert cart", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFailedSaveCart, err)
	}

	log.Debug("cart saved", zap.Int("lines", c.Len()))
	return nil
}

// Delete is idempotent; a missing row is not an error.
func (r *repository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID.String())
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete cart",
			zap.String("layer", "repository"),
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrFailedDeleteCart, err)
	}
	return nil
}
