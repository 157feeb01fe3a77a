package app

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/holdings/internal/config"
	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/internal/holdings"
	"github.com/law-makers/holdings/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:       "info",
		HTTPTimeout:    5 * time.Second,
		UserAgent:      "AppTest/1.0",
		RateLimitRPS:   -1,
		RateLimitBurst: 1,
		Mode:           "static",
		Headless:       true,
		ListingURL:     "https://example.com/list.html",
		LinkSelector:   "a",
		TableSelector:  "table",
		Workers:        3,
		OutputPath:     "out.csv",
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNew_StaticMode(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, models.ModeStatic, a.Mode)
	assert.IsType(t, &engine.StaticFetcher{}, a.Fetcher)
	assert.Equal(t, 5*time.Second, a.HTTPClient.Timeout)
	assert.NotNil(t, a.RateLimiter)
}

func TestNew_SPAModeDoesNotStartBrowser(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "spa"
	cfg.ChromePath = "/nonexistent/chrome"

	a, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &engine.DynamicFetcher{}, a.Fetcher)
	require.NoError(t, a.Close(context.Background()))
}

func TestNew_InvalidMode(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "auto"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNew_Proxy(t *testing.T) {
	cfg := testConfig()
	cfg.Proxy = "http://localhost:8080,socks5://localhost:1080"
	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())
	assert.NotNil(t, a.HTTPClient.Transport.(*http.Transport).Proxy)

	cfg.Proxy = "::not a proxy"
	_, err = New(cfg)
	require.Error(t, err)
}

func TestNewDriver_UsesConfig(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	defer a.Close(context.Background())

	d := a.NewDriver()
	require.NotNil(t, d)
	assert.Equal(t, holdings.StateIdle, d.State())
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	orig := log.Logger
	defer func() { log.Logger = orig }()

	var buf bytes.Buffer
	cfg := testConfig()
	cfg.JSONLog = true
	cfg.LogLevel = "warn"

	logger := setupLogger(cfg, &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestSetupLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	orig := log.Logger
	defer func() { log.Logger = orig }()

	cfg := testConfig()
	cfg.LogLevel = "loud"
	setupLogger(cfg, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
