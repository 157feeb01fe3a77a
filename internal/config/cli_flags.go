package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.BoolP("quiet", "q", false, "Suppress all output except errors")
	pf.Bool("json", false, "Output logs in JSON format")
	pf.String("config", "", "Path to configuration file (default ./holdings.yaml if present)")
	pf.String("proxy", "", "HTTP/SOCKS5 proxy, or a comma separated list to rotate through (e.g., http://localhost:8080)")
	pf.String("timeout", DefaultHTTPTimeout.String(), "Hard timeout for each request")
	pf.String("user-agent", "", "Custom user agent string")
	pf.StringArrayP("header", "H", nil, "Extra request header (e.g., -H \"Referer: https://example.com\")")
	pf.Float64("rate", DefaultRateLimitRPS, "Max requests per second per host (negative disables)")
	pf.Int("burst", DefaultRateLimitBurst, "Rate limiter burst size")
	pf.StringP("mode", "m", DefaultMode, "Fetch engine: static or spa (headless Chrome)")
	pf.String("chrome-path", "", "Chrome/Chromium executable for --mode=spa")
	pf.Bool("headful", false, "Show the browser window in --mode=spa")

	pf.String("listing-url", DefaultListingURL, "Listing page that links to every fund")
	pf.String("link-selector", DefaultLinkSelector, "CSS selector for fund anchors on the listing page")
	pf.Bool("skip-missing-href", false, "Skip listing anchors without href instead of failing")
}

// RegisterScrapeFlags registers flags used only when holdings tables are fetched
func RegisterScrapeFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	f := cmd.Flags()
	f.String("table-selector", DefaultTableSelector, "CSS selector for the holdings table on each fund page")
	f.IntP("workers", "w", DefaultWorkers, "Number of concurrent fund page workers (1-50)")
	f.StringP("output", "o", DefaultOutputPath, "CSV file to write")
}

// flagKeys maps configuration keys to flag names
var flagKeys = map[string]string{
	"verbose":           "verbose",
	"quiet":             "quiet",
	"json":              "json",
	"config":            "config",
	"proxy":             "proxy",
	"timeout":           "timeout",
	"user_agent":        "user-agent",
	"header":            "header",
	"rate":              "rate",
	"burst":             "burst",
	"mode":              "mode",
	"chrome_path":       "chrome-path",
	"headful":           "headful",
	"listing_url":       "listing-url",
	"link_selector":     "link-selector",
	"skip_missing_href": "skip-missing-href",
	"table_selector":    "table-selector",
	"workers":           "workers",
	"output":            "output",
}
