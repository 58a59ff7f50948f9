// Command ouch-demo serves a few endpoints that fail in different ways so the
// error pages and JSON payloads can be inspected in a browser or with curl.
//
//	APP_ENV=development OUCH_EDITOR=vscode go run ./cmd/ouch-demo
//	curl -H 'Accept: application/json' localhost:8080/orders/42
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/ouch"
	"github.com/dmitrymomot/ouch/core/config"
	"github.com/dmitrymomot/ouch/core/inspector"
	"github.com/dmitrymomot/ouch/core/logger"
	"github.com/dmitrymomot/ouch/core/response"
	"github.com/dmitrymomot/ouch/handlers"
)

type Config struct {
	Ouch handlers.Config

	AppName         string        `env:"APP_NAME" envDefault:"ouch-demo"`
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("demo server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg Config) *slog.Logger {
	level := logger.WithLevel(cfg.Ouch.Level())
	switch cfg.Ouch.Env {
	case "production", "prod":
		return logger.New(logger.WithProduction(cfg.AppName), level)
	case "staging":
		return logger.New(logger.WithStaging(cfg.AppName), level)
	default:
		return logger.New(logger.WithDevelopment(cfg.AppName), level)
	}
}

func run(cfg Config, log *slog.Logger) error {
	errorRun, err := cfg.Ouch.Run(log)
	if err != nil {
		return fmt.Errorf("build error chain: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      ouch.Middleware(errorRun)(routes(errorRun)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully", logger.Duration(cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type order struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

func routes(errorRun *ouch.Run) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_ = response.Render(w, r, response.HTMLWithStatus(`<ul>
<li><a href="/panic">/panic</a> recovered panic</li>
<li><a href="/orders/42">/orders/42</a> wrapped not found error</li>
<li><a href="/orders/7">/orders/7</a> successful JSON response</li>
<li><a href="/teapot">/teapot</a> error with a custom name and status</li>
</ul>`, http.StatusOK))
	})

	mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) {
		var totals map[string]int
		totals["boom"]++
	})

	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		o, err := findOrder(r.PathValue("id"))
		if err != nil {
			errorRun.ServeError(w, r, err)
			return
		}
		_ = response.Render(w, r, response.JSONWithStatus(o, http.StatusOK))
	})

	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		errorRun.ServeError(w, r, inspector.New("short and stout").
			WithStatus(http.StatusTeapot).
			WithName("TeapotError"))
	})

	return mux
}

func findOrder(id string) (order, error) {
	if id != "7" {
		return order{}, inspector.Errorf("load order %s: %w", id, response.ErrNotFound.WithMessage("order not found"))
	}
	return order{ID: id, Total: 1999}, nil
}
