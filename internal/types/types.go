package types

import (
	"context"
	"net/http"
	"time"
)

// Logger interface for logging
type Logger interface {
	Debug(msg interface{}, keysAndValues ...interface{})
	Info(msg interface{}, keysAndValues ...interface{})
	Warn(msg interface{}, keysAndValues ...interface{})
	Error(msg interface{}, keysAndValues ...interface{})
}

// Hooks provides lifecycle hooks for requests
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, err error)
}
