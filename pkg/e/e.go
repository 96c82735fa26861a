package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Редирект на форму логина
	ErrUnauthenticated = fmt.Errorf("admin session required")

	// 404 Not Found
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrAdminNotFound    = fmt.Errorf("admin not found")

	// 400 Bad Request
	ErrMissingFields        = fmt.Errorf("required form fields are missing")
	ErrNameRequired         = fmt.Errorf("name is required")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be a non-negative integer")
	ErrInvalidDate          = fmt.Errorf("manufacture date must be YYYY-MM-DD")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrUnknownCategory      = fmt.Errorf("category does not exist")
	ErrCategoryInUse        = fmt.Errorf("category has dependent products")
	ErrInvalidSearchType    = fmt.Errorf("search_type must be categories or products")
	ErrAmbiguousAdminAction = fmt.Errorf("exactly one admin action marker is required")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
