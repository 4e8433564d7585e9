package main

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/lunchmoney-go/pkg/lunchmoney"
)

const missingAPIKeyText = "Error: LUNCH_MONEY_API_KEY environment variable is required"

// lunchMoneyTools holds the Lunch Money client and implements the tool handlers
type lunchMoneyTools struct {
	client *lunchmoney.Client
	logger lunchmoney.Logger
}

func newLunchMoneyTools(client *lunchmoney.Client, logger lunchmoney.Logger) *lunchMoneyTools {
	return &lunchMoneyTools{client: client, logger: logger}
}

// GetTransactionsInput mirrors getTransactionsInputSchema. Pointers keep
// "absent" distinct from zero values such as category_id 0.
type GetTransactionsInput struct {
	StartDate  *string  `json:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty"`
	CategoryID *float64 `json:"category_id,omitempty"`
}

func (in GetTransactionsInput) params() *lunchmoney.ListTransactionsParams {
	return &lunchmoney.ListTransactionsParams{
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		CategoryID: in.CategoryID,
	}
}

// GetTransactions lists transactions and returns the API response as indented
// JSON. Failures come back as an error result, never as a Go error.
func (t *lunchMoneyTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, any, error) {
	invocationID := uuid.NewString()

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetTag("tool", "get_transactions")
	hub.Scope().SetTag("invocation_id", invocationID)
	ctx = sentry.SetHubOnContext(ctx, hub)

	t.debug("get_transactions called", "invocation_id", invocationID, "params", len(input.params().QueryParams()))

	result, err := t.client.Transactions.List(ctx, input.params())
	if err != nil {
		if lunchmoney.IsConfigError(err) {
			t.warn("get_transactions rejected", "invocation_id", invocationID, "error", err)
			return errorResult(missingAPIKeyText), nil, nil
		}
		t.warn("get_transactions failed", "invocation_id", invocationID, "kind", lunchmoney.KindOf(err), "error", err)
		return errorResult(fmt.Sprintf("Error fetching transactions: %s", lunchmoney.Message(err))), nil, nil
	}

	text, err := result.Pretty()
	if err != nil {
		return errorResult(fmt.Sprintf("Error fetching transactions: %s", lunchmoney.Message(err))), nil, nil
	}

	t.debug("get_transactions succeeded", "invocation_id", invocationID, "bytes", len(result.Raw))
	return textResult(text), nil, nil
}

func (t *lunchMoneyTools) debug(msg string, keysAndValues ...interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, keysAndValues...)
	}
}

func (t *lunchMoneyTools) warn(msg string, keysAndValues ...interface{}) {
	if t.logger != nil {
		t.logger.Warn(msg, keysAndValues...)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	res := textResult(text)
	res.IsError = true
	return res
}
