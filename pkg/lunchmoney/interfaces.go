package lunchmoney

import (
	"context"
	"time"
)

// TransactionService handles transaction-related operations
type TransactionService interface {
	// Query returns a transaction query builder
	Query() TransactionQueryBuilder

	// List retrieves transactions matching params. A nil params lists
	// with the API's default window.
	List(ctx context.Context, params *ListTransactionsParams) (*TransactionList, error)
}

// TransactionQueryBuilder provides fluent query building
type TransactionQueryBuilder interface {
	// From sets the start date (YYYY-MM-DD)
	From(date string) TransactionQueryBuilder

	// To sets the end date (YYYY-MM-DD)
	To(date string) TransactionQueryBuilder

	// Between sets both dates from time values
	Between(start, end time.Time) TransactionQueryBuilder

	// WithCategory filters by category ID
	WithCategory(categoryID float64) TransactionQueryBuilder

	// Params returns the params built so far
	Params() *ListTransactionsParams

	// Execute runs the query
	Execute(ctx context.Context) (*TransactionList, error)
}
