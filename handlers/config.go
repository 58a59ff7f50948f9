package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/ouch"
	"github.com/dmitrymomot/ouch/core/inspector"
)

// Config describes a standard handler chain. Load it with config.Load.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Theme       string   `env:"OUCH_THEME" envDefault:"blue"`
	PageTitle   string   `env:"OUCH_PAGE_TITLE" envDefault:"Ouch! There was an error."`
	Editor      string   `env:"OUCH_EDITOR"`
	EditorsFile string   `env:"OUCH_EDITORS_FILE"`
	SourcePaths []string `env:"OUCH_SOURCE_PATHS" envSeparator:","`
	ExposeEnv   bool     `env:"OUCH_EXPOSE_ENV" envDefault:"false"`

	JSONOnlyAjax     bool `env:"OUCH_JSON_ONLY_AJAX" envDefault:"true"`
	JSONReturnFrames bool `env:"OUCH_JSON_RETURN_FRAMES" envDefault:"false"`
	SendResponse     bool `env:"OUCH_SEND_RESPONSE" envDefault:"true"`
}

// IsProduction reports whether APP_ENV is "production" or "prod".
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// Level parses LogLevel, defaulting to info for unknown values.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Run builds a chain that logs every error, answers JSON requests with the JSON payload and,
// outside production, renders the pretty page for everything else. In production the page is
// left out and the HTTP integration falls back to a plain status response.
func (c Config) Run(log *slog.Logger) (*ouch.Run, error) {
	if log == nil {
		log = slog.Default()
	}

	jsonOpts := []JSONOption{SendResponse(c.SendResponse)}
	if c.JSONOnlyAjax {
		jsonOpts = append(jsonOpts, OnlyForAjaxOrJSON())
	}
	if c.JSONReturnFrames && !c.IsProduction() {
		jsonOpts = append(jsonOpts, ReturnFrames())
	}

	handlers := []any{
		NewLogHandler(log),
		NewJSONResponseHandler(jsonOpts...),
	}

	if !c.IsProduction() {
		page, err := c.prettyPage()
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, page)
	}

	run := ouch.New(
		ouch.WithLogger(log),
		ouch.WithInspectorOptions(inspector.WithSourcePaths(c.SourcePaths...)),
	)
	for _, h := range handlers {
		if err := run.PushHandler(h); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func (c Config) prettyPage() (*PrettyPageHandler, error) {
	opts := []PageOption{
		WithTheme(c.Theme),
		WithPageTitle(c.PageTitle),
		WithSendResponse(c.SendResponse),
	}
	if c.ExposeEnv {
		opts = append(opts, WithEnvironment(environ()))
	}
	page := NewPrettyPageHandler(opts...)

	editorsFile := c.EditorsFile
	if editorsFile == "" {
		// No user editors file is the common case.
		editorsFile, _ = DefaultEditorsFile()
	}
	if editorsFile != "" {
		if err := page.LoadEditors(editorsFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if c.Editor != "" {
		if err := page.SetEditor(c.Editor); err != nil {
			return nil, fmt.Errorf("OUCH_EDITOR: %w", err)
		}
	}
	return page, nil
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
