package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
	// limiter settings, used when the rate limiter is on
	RPS   float64
	Burst int
}

const (
	readTimeout       = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 120 * time.Second
	writeTimeoutSlack = 5 * time.Second
)

// New builds the API http.Server. Handlers see ctx as their base context, so
// canceling it reaches in-flight requests.
// With a zero Timeout neither the handler nor the response write is bounded.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	var writeTimeout time.Duration
	if config.Timeout > 0 {
		handler = http.TimeoutHandler(handler, config.Timeout, "request timed out")
		writeTimeout = config.Timeout + writeTimeoutSlack
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
