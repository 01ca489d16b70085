package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"salesdash/internal/backend"
	"salesdash/internal/cart"
	"salesdash/internal/logger"
	"salesdash/internal/order"
	"salesdash/internal/product"
	"salesdash/internal/session"
	"salesdash/internal/user"
	"salesdash/internal/utils"
)

var errInvalidBody = errors.New("invalid request body")

var (
	badRequest = []error{
		errInvalidBody,
		utils.ErrInvalidID,
		user.ErrInvalidFilter,
		user.ErrInvalidUserInput,
		product.ErrInvalidStockAmount,
		cart.ErrInvalidQuantity,
	}
	notFound = []error{
		product.ErrProductNotFound,
		user.ErrUserNotFound,
		cart.ErrCartItemNotFound,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service error to its HTTP status and client message.
func statusFor(err error) (int, string) {
	if apiErr, ok := backend.AsAPIError(err); ok {
		return http.StatusBadGateway, apiErr.Message
	}
	switch {
	case errors.Is(err, session.ErrMissingSession):
		return http.StatusUnauthorized, err.Error()
	case order.IsValidation(err), isAny(err, badRequest):
		return http.StatusBadRequest, err.Error()
	case isAny(err, notFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cart.ErrNoStock):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)

	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
	)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Info("request rejected", zap.Error(err))
	}

	utils.WriteJSONError(w, msg, code)
}
