// Package service implements the Foodgram use cases on top of the store.
//
// Services validate input, enforce ownership, translate store errors into
// domain errors and log state changes. They never see HTTP types.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/store"
)

// DefaultPageSize is used when a service is built with a non-positive page size.
const DefaultPageSize = 6

func orDefaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func orDefaultPageSize(n int) int {
	if n < 1 {
		return DefaultPageSize
	}
	return n
}

// notFoundAs converts store.ErrNotFound into a domain not-found error with
// msg and wraps anything else with op.
func notFoundAs(err error, op, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound(msg).WithCause(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
