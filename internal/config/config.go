package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/law-makers/holdings/internal/utils/headers"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout    time.Duration
	UserAgent      string
	Proxy          string
	Headers        map[string]string
	RateLimitRPS   float64
	RateLimitBurst int

	// Engine
	Mode       string
	ChromePath string
	Headless   bool

	// Scrape
	ListingURL      string
	LinkSelector    string
	TableSelector   string
	SkipMissingHref bool
	Workers         int
	OutputPath      string

	// ConfigFile is the file that was read, empty if none
	ConfigFile string
}

// Load builds a Config by combining defaults, an optional config file,
// HOLDINGS_* environment variables, and CLI flags (highest precedence).
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cmd != nil {
		for key, name := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		JSONLog:         v.GetBool("json"),
		HTTPTimeout:     v.GetDuration("timeout"),
		UserAgent:       v.GetString("user_agent"),
		Proxy:           v.GetString("proxy"),
		Headers:         headers.ParseHeaders(v.GetStringSlice("header")),
		RateLimitRPS:    v.GetFloat64("rate"),
		RateLimitBurst:  v.GetInt("burst"),
		Mode:            strings.ToLower(v.GetString("mode")),
		ChromePath:      v.GetString("chrome_path"),
		Headless:        !v.GetBool("headful"),
		ListingURL:      v.GetString("listing_url"),
		LinkSelector:    v.GetString("link_selector"),
		TableSelector:   v.GetString("table_selector"),
		SkipMissingHref: v.GetBool("skip_missing_href"),
		Workers:         v.GetInt("workers"),
		OutputPath:      v.GetString("output"),
		ConfigFile:      v.ConfigFileUsed(),
	}

	switch {
	case v.GetBool("verbose"):
		cfg.LogLevel = "debug"
	case v.GetBool("quiet"):
		cfg.LogLevel = "error"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("json", DefaultJSONLog)
	v.SetDefault("timeout", DefaultHTTPTimeout)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("rate", DefaultRateLimitRPS)
	v.SetDefault("burst", DefaultRateLimitBurst)
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("headful", !DefaultHeadless)
	v.SetDefault("listing_url", DefaultListingURL)
	v.SetDefault("link_selector", DefaultLinkSelector)
	v.SetDefault("table_selector", DefaultTableSelector)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("output", DefaultOutputPath)
}
