package transaction

import (
	"FinTrack/pkg/response"
	"net/http"
)

var (
	ErrTransactionNotFound    = response.NewError(http.StatusNotFound, "transaction not found")
	ErrInvalidTransaction     = response.NewError(http.StatusBadRequest, "invalid transaction data")
	ErrInvalidTransactionType = response.NewError(http.StatusBadRequest, "invalid transaction type")
	ErrInvalidMethod          = response.NewError(http.StatusBadRequest, "invalid payment method")
	ErrInvalidAmount          = response.NewError(http.StatusBadRequest, "amount must be greater than zero")
	ErrMissingDate            = response.NewError(http.StatusBadRequest, "transaction date is required")
	ErrFutureDate             = response.NewError(http.StatusBadRequest, "transaction date cannot be in the future")
	ErrPeriodMismatch         = response.NewError(http.StatusBadRequest, "transaction period does not match its date")
	ErrInvalidPeriod          = response.NewError(http.StatusBadRequest, "invalid year or month")
	ErrInvalidDateRange       = response.NewError(http.StatusBadRequest, "from date must be before or equal to the to date")
	ErrWorkplaceRequired      = response.NewError(http.StatusBadRequest, "workplace is required")
	ErrTransactionNotOwned    = response.NewError(http.StatusForbidden, "transaction does not belong to user")
	ErrCreateTransaction      = response.NewError(http.StatusInternalServerError, "failed to create transaction")
	ErrDeleteTransaction      = response.NewError(http.StatusInternalServerError, "failed to delete transaction")
	ErrFetchTransactions      = response.NewError(http.StatusInternalServerError, "failed to load transactions")
)
