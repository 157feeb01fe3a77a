package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultUserAgent      = "Holdings/1.0 (https://github.com/law-makers/holdings)"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
	DefaultMode           = "static"
	DefaultHeadless       = true

	DefaultListingURL    = "https://www.moneycontrol.com/mutual-funds/performance-tracker/returns/small-cap-fund.html"
	DefaultLinkSelector  = "#dataTableId > tbody > tr > td > a"
	DefaultTableSelector = "#equityCompleteHoldingTable"
	DefaultWorkers       = 5
	DefaultMaxWorkers    = 50
	DefaultOutputPath    = "data.csv"

	// DefaultConfigName is looked up in the working directory when --config is not given
	DefaultConfigName = "holdings"
	EnvPrefix         = "HOLDINGS"
)
