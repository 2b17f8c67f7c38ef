package apperror

import (
	"errors"
	"net/http"
)

// Business rule violations. Callers wrap these with fmt.Errorf("...: %w", err)
// and the HTTP edge classifies them with errors.Is.
var (
	ErrBookingClosed            = errors.New("booking is closed for this listing")
	ErrInvalidDate              = errors.New("selected date is not available for booking")
	ErrAlreadyBooked            = errors.New("tourist has already booked this listing")
	ErrNotBooked                = errors.New("tourist has not booked this listing")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed for this booking")
	ErrInsufficientFunds        = errors.New("insufficient wallet balance")
	ErrInvalidStatus            = errors.New("operation not allowed in the current status")
	ErrInvalidAmount            = errors.New("amount must be greater than zero")
	ErrInvalidInput             = errors.New("invalid input")
)

// Lookup and access failures
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("access denied")
	ErrBusy            = errors.New("another request for the same booking is in progress")
)

var badRequest = []error{
	ErrBookingClosed,
	ErrInvalidDate,
	ErrAlreadyBooked,
	ErrCancellationWindowClosed,
	ErrInsufficientFunds,
	ErrInvalidStatus,
	ErrInvalidAmount,
	ErrInvalidInput,
}

var notFound = []error{
	ErrNotBooked,
	ErrListingNotFound,
	ErrOrderNotFound,
	ErrProductNotFound,
}

// IsBusinessError reports whether err is a client-facing rule violation
// rather than an internal failure.
func IsBusinessError(err error) bool {
	return HTTPStatus(err) != http.StatusInternalServerError
}

// HTTPStatus maps an error chain to the status code the API answers with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBusy):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Code returns a stable machine readable code for the error chain.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrBookingClosed):
		return "BOOKING_CLOSED"
	case errors.Is(err, ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, ErrAlreadyBooked):
		return "ALREADY_BOOKED"
	case errors.Is(err, ErrNotBooked):
		return "NOT_BOOKED"
	case errors.Is(err, ErrCancellationWindowClosed):
		return "CANCELLATION_WINDOW_CLOSED"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrInvalidStatus):
		return "INVALID_STATUS"
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrListingNotFound), errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrProductNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrBusy):
		return "BUSY"
	}
	return "INTERNAL_ERROR"
}

// Outcome is Code as a low-cardinality metric label, "success" for nil.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if code := Code(err); code != "INTERNAL_ERROR" {
		return code
	}
	return "error"
}
