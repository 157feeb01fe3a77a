// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/holdings/internal/config"
	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/internal/holdings"
	"github.com/law-makers/holdings/internal/proxy"
	"github.com/law-makers/holdings/internal/ratelimit"
	"github.com/law-makers/holdings/pkg/models"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release the
// browser and idle HTTP connections.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     engine.Fetcher
	Mode        models.FetchMode
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures the global logger based on the provided config
//   - Creates the rate limiter for per-host request throttling
//   - Initializes the HTTP client with timeouts and the optional proxy rotation
//   - Creates the fetcher for the configured mode
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := setupLogger(cfg, os.Stderr)
	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Str("config_file", cfg.ConfigFile).
		Msg("Logger initialized")

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	proxies, err := proxy.Parse(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	if proxies.Len() > 0 {
		transport.Proxy = proxies.ProxyFunc
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Int("proxies", proxies.Len()).
		Msg("HTTP client initialized")

	// Chrome takes a single --proxy-server
	browserProxy := ""
	if p := proxies.First(); p != nil {
		browserProxy = p.String()
	}

	mode := models.FetchMode(cfg.Mode)
	var fetcher engine.Fetcher
	switch mode {
	case models.ModeStatic:
		fetcher = engine.NewStaticFetcher(httpClient, rateLimiter, cfg.UserAgent, cfg.Headers)
	case models.ModeSPA:
		fetcher = engine.NewDynamicFetcher(engine.DynamicOptions{
			ChromePath: cfg.ChromePath,
			Headless:   cfg.Headless,
			UserAgent:  cfg.UserAgent,
			Proxy:      browserProxy,
			Timeout:    cfg.HTTPTimeout,
			Limiter:    rateLimiter,
		})
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be static or spa)", cfg.Mode)
	}
	logger.Debug().Str("fetcher", fetcher.Name()).Msg("Fetcher initialized")

	return &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Mode:        mode,
		startTime:   time.Now(),
	}, nil
}

// setupLogger points the global zerolog logger at w and applies the configured level
func setupLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JSONLog {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return log.Logger
}

// NewDriver builds a holdings driver from the loaded configuration
func (a *Application) NewDriver() *holdings.Driver {
	return holdings.NewDriver(holdings.Config{
		ListingURL:      a.Config.ListingURL,
		LinkSelector:    a.Config.LinkSelector,
		TableSelector:   a.Config.TableSelector,
		Schema:          models.DefaultSchema(),
		Workers:         a.Config.Workers,
		OutputPath:      a.Config.OutputPath,
		SkipMissingHref: a.Config.SkipMissingHref,
	}, a.Fetcher)
}

// Close shuts down the browser (if one was started) and idle HTTP connections.
// Errors are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	if closer, ok := a.Fetcher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing fetcher")
		}
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return ctx.Err()
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
