package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/eshaffer321/lunchmoney-go/internal/config"
	"github.com/eshaffer321/lunchmoney-go/pkg/lunchmoney"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lunchmoney-mcp",
		Short:        "Lunch Money MCP server",
		Long:         "Exposes Lunch Money transactions as an MCP tool over stdio.",
		Version:      serverVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	root.PersistentFlags().String("base-url", "", "Lunch Money API base URL (env LUNCH_MONEY_BASE_URL)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	})
	root.AddCommand(newTransactionsCmd())

	return root
}

func newTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Call get_transactions once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			tools := newLunchMoneyTools(client, logger)

			var input GetTransactionsInput
			flags := cmd.Flags()
			if flags.Changed("start-date") {
				v, _ := flags.GetString("start-date")
				input.StartDate = &v
			}
			if flags.Changed("end-date") {
				v, _ := flags.GetString("end-date")
				input.EndDate = &v
			}
			if flags.Changed("category-id") {
				v, _ := flags.GetFloat64("category-id")
				input.CategoryID = &v
			}

			res, _, err := tools.GetTransactions(cmd.Context(), nil, input)
			if err != nil {
				return fmt.Errorf("get_transactions failed: %w", err)
			}
			if res == nil {
				return fmt.Errorf("get_transactions returned no result")
			}
			for _, c := range res.Content {
				if text, ok := c.(*mcp.TextContent); ok {
					fmt.Fprintln(cmd.OutOrStdout(), text.Text)
				}
			}
			if res.IsError {
				return fmt.Errorf("get_transactions returned an error")
			}
			return nil
		},
	}

	cmd.Flags().String("start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64("category-id", 0, "Filter by category ID")
	return cmd
}

// setup loads configuration and builds the logger and client
func setup(cmd *cobra.Command) (*lunchmoney.Client, *log.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// stdout carries MCP frames; logs go to stderr
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          serverName,
	})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		logger.Warn("tool calls will fail until configured", "error", err)
	}

	client, err := lunchmoney.NewClient(&lunchmoney.ClientOptions{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.APIKey,
		Logger:    logger,
		SentryDSN: cfg.SentryDSN,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Lunch Money client: %w", err)
	}

	return client, logger, nil
}

func runServe(cmd *cobra.Command) error {
	client, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := newServer(client, logger)

	session, err := server.Connect(ctx, &mcp.StdioTransport{}, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logger.Error("failed to connect transport", "error", err)
		return err
	}
	logger.Info(connectedMessage, "base_url", client.BaseURL())

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", "reason", context.Cause(ctx))
		_ = session.Close()
		<-waitErr
		return nil
	case err := <-waitErr:
		if err != nil && ctx.Err() == nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	}
}
