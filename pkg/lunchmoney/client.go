package lunchmoney

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/eshaffer321/lunchmoney-go/internal/transport"
	internalTypes "github.com/eshaffer321/lunchmoney-go/internal/types"
)

const (
	// DefaultBaseURL is the default Lunch Money API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// UserAgent is the user agent string
	UserAgent = internalTypes.UserAgent
)

// Client is the main Lunch Money API client
type Client struct {
	// Service interfaces
	Transactions TransactionService

	// Internal fields
	baseURL   string
	token     string
	transport Transport
	options   *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Token is the Lunch Money access token sent as a bearer credential
	Token string

	// Logger for debug logging
	Logger Logger

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Hooks provides lifecycle hooks for requests
type Hooks = internalTypes.Hooks

// Param is an ordered query-string pair
type Param = transport.Param

// Transport handles HTTP communication
type Transport interface {
	Get(ctx context.Context, path string, params []Param) (json.RawMessage, error)
	SetAuth(token string)
}

// NewClient creates a new Lunch Money client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// Log error but don't fail client creation
		if err := sentry.Init(sentryOpts); err != nil && opts.Logger != nil {
			opts.Logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:    opts.BaseURL,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger,
		Hooks:      opts.Hooks,
	})

	c := &Client{
		baseURL:   opts.BaseURL,
		transport: trans,
		options:   opts,
	}
	c.SetToken(opts.Token)
	c.initServices()

	return c, nil
}

// NewClientWithToken creates a client with an access token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

func (c *Client) initServices() {
	c.Transactions = &transactionService{client: c}
}

// SetToken sets the access token
func (c *Client) SetToken(token string) {
	c.token = token
	c.transport.SetAuth(token)
}

// HasToken reports whether an access token is configured
func (c *Client) HasToken() bool {
	return c.token != ""
}

// BaseURL returns the API base URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get executes a GET against the API, reporting failures to Sentry
func (c *Client) get(ctx context.Context, path string, params []Param) (json.RawMessage, error) {
	if !c.HasToken() {
		return nil, &Error{
			Kind:    KindConfig,
			Code:    "MISSING_API_KEY",
			Message: ErrMissingAPIKey.Error(),
			Err:     ErrMissingAPIKey,
		}
	}

	start := time.Now()
	body, err := c.transport.Get(ctx, path, params)
	duration := time.Since(start)

	if err != nil {
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("lunchmoney.path", path)
			if kind := KindOf(err); kind != "" {
				scope.SetTag("lunchmoney.error_kind", string(kind))
			}
			scope.SetContext("request", map[string]interface{}{
				"params":   len(params),
				"duration": duration.String(),
			})
			hub.CaptureException(err)
		})
		return nil, err
	}

	return body, nil
}

// Close flushes any pending Sentry events
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
