package services

import (
	"errors"
	"net/http"
)

// Domain errors use the token strings the frontend matches on.
var (
	ErrBoothNotFound   = errors.New("BOOTH_NOT_FOUND")
	ErrTableNotFound   = errors.New("TABLE_NOT_FOUND")
	ErrMenuNotFound    = errors.New("MENU_NOT_FOUND")
	ErrOrderNotFound   = errors.New("ORDER_NOT_FOUND")
	ErrManagerNotFound = errors.New("MANAGER_NOT_FOUND")

	ErrDuplicateTableNo     = errors.New("DUPLICATE_TABLE_NO")
	ErrDuplicateMenuName    = errors.New("DUPLICATE_MENU_NAME")
	ErrUsernameTaken        = errors.New("USERNAME_TAKEN")
	ErrManagerAlreadyExists = errors.New("MANAGER_ALREADY_EXISTS")

	ErrInvalidState  = errors.New("INVALID_STATE")
	ErrUnknownStatus = errors.New("UNKNOWN_STATUS")

	ErrBoothTableMismatch = errors.New("BOOTH_TABLE_MISMATCH")
	ErrOrderIDMismatch    = errors.New("ORDER_ID_MISMATCH")
	ErrStatusMismatch     = errors.New("STATUS_MISMATCH")
	ErrTableIDMismatch    = errors.New("TABLE_ID_MISMATCH")

	ErrCategoryRequired = errors.New("CATEGORY_REQUIRED")
	ErrInvalidCategory  = errors.New("INVALID_CATEGORY")
	ErrMenuNotInBooth   = errors.New("MENU_NOT_IN_BOOTH")
	ErrRequiredFields   = errors.New("REQUIRED_FIELDS_MISSING")
)

// HTTPStatus maps a domain error to the status code controllers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBoothNotFound),
		errors.Is(err, ErrTableNotFound),
		errors.Is(err, ErrMenuNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrManagerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateTableNo),
		errors.Is(err, ErrDuplicateMenuName),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrManagerAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrBoothTableMismatch),
		errors.Is(err, ErrOrderIDMismatch),
		errors.Is(err, ErrStatusMismatch),
		errors.Is(err, ErrTableIDMismatch),
		errors.Is(err, ErrCategoryRequired),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrMenuNotInBooth),
		errors.Is(err, ErrRequiredFields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
