package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

var (
	ErrInvalidID     = errors.New("product id must be a positive integer")
	ErrIDMismatch    = errors.New("product id in body does not match path")
	ErrMalformedBody = errors.New("malformed request body")
)

// mapError translates domain and request errors into HTTP status codes.
// Unknown errors become 500.
func mapError(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	}

	// Bad request (validation)
	switch {
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrIDMismatch),
		errors.Is(err, ErrMalformedBody),
		errors.Is(err, domain.ErrEmptyProductName),
		errors.Is(err, domain.ErrProductNameTooLong),
		errors.Is(err, domain.ErrEmptyImageURL),
		errors.Is(err, domain.ErrNegativeCount),
		errors.Is(err, domain.ErrNegativeSize),
		errors.Is(err, domain.ErrWeightTooLong),
		errors.Is(err, domain.ErrEmptyCommentDescription),
		errors.Is(err, domain.ErrCommentProductMismatch),
		errors.Is(err, domain.ErrDuplicateCommentID):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
