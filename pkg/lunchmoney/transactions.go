package lunchmoney

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	internalTypes "github.com/eshaffer321/lunchmoney-go/internal/types"
)

const dateLayout = "2006-01-02"

// ListTransactionsParams filters a transaction listing. Nil fields are
// omitted from the request; no cross-field checks are made.
type ListTransactionsParams struct {
	StartDate  *string
	EndDate    *string
	CategoryID *float64
}

// QueryParams returns the query-string pairs in wire order
func (p *ListTransactionsParams) QueryParams() []Param {
	if p == nil {
		return nil
	}

	var params []Param
	if p.StartDate != nil {
		params = append(params, Param{Key: "start_date", Value: *p.StartDate})
	}
	if p.EndDate != nil {
		params = append(params, Param{Key: "end_date", Value: *p.EndDate})
	}
	if p.CategoryID != nil {
		params = append(params, Param{Key: "category_id", Value: FormatCategoryID(*p.CategoryID)})
	}
	return params
}

// FormatCategoryID renders a category ID as plain base-10 text
func FormatCategoryID(id float64) string {
	return strconv.FormatFloat(id, 'f', -1, 64)
}

// TransactionList is a transaction listing as returned by the API
type TransactionList struct {
	// Raw is the response body, byte for byte
	Raw json.RawMessage
}

// Pretty returns the body indented with two spaces, keeping the server's key order
func (l *TransactionList) Pretty() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(l.Raw), "", "  "); err != nil {
		return "", &Error{Kind: KindDecode, Code: "INVALID_JSON", Message: "failed to format response", Err: err}
	}
	return buf.String(), nil
}

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// Query returns a transaction query builder
func (s *transactionService) Query() TransactionQueryBuilder {
	return &transactionQueryBuilder{
		service: s,
		params:  &ListTransactionsParams{},
	}
}

// List retrieves transactions
func (s *transactionService) List(ctx context.Context, params *ListTransactionsParams) (*TransactionList, error) {
	body, err := s.client.get(ctx, internalTypes.TransactionsPath, params.QueryParams())
	if err != nil {
		return nil, err
	}
	return &TransactionList{Raw: body}, nil
}

// transactionQueryBuilder implements TransactionQueryBuilder
type transactionQueryBuilder struct {
	service *transactionService
	params  *ListTransactionsParams
}

func (b *transactionQueryBuilder) From(date string) TransactionQueryBuilder {
	b.params.StartDate = &date
	return b
}

func (b *transactionQueryBuilder) To(date string) TransactionQueryBuilder {
	b.params.EndDate = &date
	return b
}

func (b *transactionQueryBuilder) Between(start, end time.Time) TransactionQueryBuilder {
	return b.From(start.Format(dateLayout)).To(end.Format(dateLayout))
}

func (b *transactionQueryBuilder) WithCategory(categoryID float64) TransactionQueryBuilder {
	b.params.CategoryID = &categoryID
	return b
}

func (b *transactionQueryBuilder) Params() *ListTransactionsParams {
	p := *b.params
	return &p
}

func (b *transactionQueryBuilder) Execute(ctx context.Context) (*TransactionList, error) {
	return b.service.List(ctx, b.Params())
}
