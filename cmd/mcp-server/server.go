package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/lunchmoney-go/pkg/lunchmoney"
)

const (
	serverName    = "lunch-money-mcp"
	serverVersion = "0.1.0"

	connectedMessage = "Lunch Money MCP Server connected via stdio"
)

func newServer(client *lunchmoney.Client, logger lunchmoney.Logger) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	server := mcp.NewServer(impl, nil)
	registerTools(server, newLunchMoneyTools(client, logger))
	return server
}

func registerTools(server *mcp.Server, tools *lunchMoneyTools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Title:       "Get Transactions",
		Description: "Retrieve transactions from Lunch Money, optionally filtered by date range (YYYY-MM-DD) and category ID. Returns the API response as JSON.",
		InputSchema: getTransactionsInputSchema(),
	}, tools.GetTransactions)
}
