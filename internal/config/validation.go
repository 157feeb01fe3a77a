package config

import (
	"fmt"
	"strings"

	urlutil "github.com/law-makers/holdings/internal/utils/url"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.Workers <= 0 || c.Workers > DefaultMaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d", DefaultMaxWorkers)
	}
	if c.Mode != "static" && c.Mode != "spa" {
		return fmt.Errorf("invalid mode %q (must be static or spa)", c.Mode)
	}
	if err := urlutil.ValidateURL(c.ListingURL); err != nil {
		return fmt.Errorf("listing url: %w", err)
	}
	if strings.TrimSpace(c.LinkSelector) == "" {
		return fmt.Errorf("link selector is required")
	}
	if strings.TrimSpace(c.TableSelector) == "" {
		return fmt.Errorf("table selector is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output path is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
