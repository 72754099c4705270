// Package server wires handlers and middleware into the service's router.
package server

import (
	"context"
	"net/http"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"

	"go.uber.org/zap"
)

// Deps carries everything the router needs; nil optional fields are skipped.
type Deps struct {
	Books          *book.HTTPHandler
	Logger         *zap.Logger
	Metrics        *httpx.Metrics
	RateLimiter    *httpx.RateLimitMiddleware
	Ready          func(ctx context.Context) error
	MaxBodyBytes   int64
	EnableHSTS     bool
	AllowedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	instrument := func(route string, h http.HandlerFunc) http.Handler {
		if d.Metrics == nil {
			return h
		}
		return d.Metrics.Instrument(route, h)
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if d.Metrics != nil {
		router.Handle("GET /metrics", d.Metrics.Handler())
	}

	router.Handle("POST /add", instrument("add", d.Books.Add))
	router.Handle("GET /fetch", instrument("fetch", d.Books.Fetch))

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(d.EnableHSTS),
	}
	if len(d.AllowedOrigins) > 0 {
		middlewares = append(middlewares, httpx.CORSMiddleware(d.AllowedOrigins))
	}
	if d.RateLimiter != nil {
		middlewares = append(middlewares, d.RateLimiter.Middleware)
	}
	if d.MaxBodyBytes > 0 {
		middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(d.MaxBodyBytes))
	}
	return httpx.Chain(router, middlewares...)
}
