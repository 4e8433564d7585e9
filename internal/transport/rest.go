package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/eshaffer321/lunchmoney-go/internal/types"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// Param is a single query-string pair. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// RESTTransport handles REST communication with the Lunch Money API
type RESTTransport struct {
	baseURL string
	client  *retryablehttp.Client
	headers map[string]string
	token   string
	logger  types.Logger
	hooks   *types.Hooks
}

// Options for REST transport
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    map[string]string
	Logger     types.Logger
	Hooks      *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
	}

	// Requests are single-attempt: no retries, and the caller sees the
	// underlying error and response instead of retryablehttp's summary.
	client := retryablehttp.NewClient()
	client.HTTPClient = opts.HTTPClient
	client.RetryMax = 0
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil
	if opts.Logger != nil {
		client.Logger = &retryLogger{logger: opts.Logger}
	}

	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": types.UserAgent,
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		headers: headers,
		logger:  opts.Logger,
		hooks:   opts.Hooks,
	}
}

// SetAuth sets the bearer token
func (t *RESTTransport) SetAuth(token string) {
	t.token = token
}

// BuildURL joins the base URL, path and ordered query params
func (t *RESTTransport) BuildURL(path string, params []Param) string {
	u := t.baseURL + path
	if len(params) == 0 {
		return u
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return u + "?" + strings.Join(parts, "&")
}

// Get issues a GET request and returns the raw JSON body
func (t *RESTTransport) Get(ctx context.Context, path string, params []Param) (json.RawMessage, error) {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, t.BuildURL(path, params), nil)
	if err != nil {
		return nil, &types.Error{Kind: types.KindTransport, Code: "BAD_REQUEST", Err: errors.Wrap(err, "failed to create request")}
	}

	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set(authHeaderKey, fmt.Sprintf("Bearer %s", t.token))

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq.Request)
	}

	if t.logger != nil {
		t.logger.Debug("REST request", "method", http.MethodGet, "path", path, "params", len(params))
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return nil, &types.Error{Kind: types.KindTransport, Code: "TRANSPORT_ERROR", Err: err}
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.Error{Kind: types.KindTransport, Code: "READ_ERROR", Err: errors.Wrap(err, "failed to read response")}
	}

	if t.logger != nil {
		t.logger.Debug("REST response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, t.handleHTTPError(resp.StatusCode, respBody)
	}

	if !json.Valid(bytes.TrimSpace(respBody)) {
		return nil, &types.Error{
			Kind:       types.KindDecode,
			Code:       "INVALID_JSON",
			Message:    "failed to parse response: body is not valid JSON",
			StatusCode: resp.StatusCode,
		}
	}

	return json.RawMessage(respBody), nil
}

// handleHTTPError maps a non-2xx status to a typed error
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
		Name    string      `json:"name"`
	}
	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errorText(errResp.Error)
	}

	remote := func(code string, sentinel error, message string) error {
		if msg != "" {
			message = fmt.Sprintf("%s: %s", message, msg)
		}
		return &types.Error{
			Kind:       types.KindRemote,
			Code:       code,
			Message:    message,
			StatusCode: statusCode,
			Err:        sentinel,
		}
	}

	base := fmt.Sprintf("Request failed with status code %d", statusCode)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return remote("UNAUTHORIZED", types.ErrNotAuthenticated, base)
	case http.StatusNotFound:
		return remote("NOT_FOUND", types.ErrNotFound, base)
	case http.StatusTooManyRequests:
		return remote("RATE_LIMITED", types.ErrRateLimited, base)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return remote("TIMEOUT", types.ErrTimeout, base)
	}

	if statusCode >= 500 {
		if desc := httpStatusDescription(statusCode); desc != "" {
			base = fmt.Sprintf("%s (%s)", base, desc)
		}
		return remote("SERVER_ERROR", types.ErrServerError, base)
	}

	return remote("HTTP_ERROR", nil, base)
}

// errorText flattens Lunch Money's "error" field, which is either a
// string or a list of strings.
func errorText(v interface{}) string {
	switch e := v.(type) {
	case string:
		return e
	case []interface{}:
		parts := make([]string, 0, len(e))
		for _, item := range e {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// httpStatusDescription returns a human-readable description for common HTTP status codes.
// This helps users understand errors like 525 (SSL Handshake Failed) which are Cloudflare-specific.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
		530: "Origin DNS Error",
	}
	return descriptions[statusCode]
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
