// internal/services/errors.go
package services

import "errors"

// Domain error sentinels. Handlers map these to HTTP statuses: validation
// errors to 400, not-found to 404; anything else from a write path is a
// storage failure and surfaces as 500.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrRegionNotFound   = errors.New("region not found")
	ErrShopNotFound     = errors.New("shop not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrPlanNotFound     = errors.New("plan not found")

	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidDate     = errors.New("invalid date format, expected YYYY-MM-DD")

	ErrRegionExists = errors.New("region with this name already exists")

	ErrProductInUse  = errors.New("product is referenced by existing sales and cannot be deleted")
	ErrCustomerInUse = errors.New("customer is referenced by existing sales and cannot be deleted")
	ErrRegionInUse   = errors.New("region has shops and cannot be deleted")
)

// IsValidationError reports whether err belongs to the 400 family.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrRegionExists),
		errors.Is(err, ErrProductInUse),
		errors.Is(err, ErrCustomerInUse),
		errors.Is(err, ErrRegionInUse):
		return true
	}
	return false
}

// IsNotFound reports whether err belongs to the 404 family.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSaleNotFound),
		errors.Is(err, ErrRegionNotFound),
		errors.Is(err, ErrShopNotFound),
		errors.Is(err, ErrSupplierNotFound),
		errors.Is(err, ErrGoalNotFound),
		errors.Is(err, ErrPlanNotFound):
		return true
	}
	return false
}
