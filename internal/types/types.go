package types

import "time"

// ProductInfo is one row of a category report. PowerFound is false when no
// power figure was extracted for the row and Power holds the zero default.
type ProductInfo struct {
	Name       string  `json:"name"`
	Power      float64 `json:"power"`
	Price      int64   `json:"price"`
	PowerFound bool    `json:"-"`
}

// Category describes a Danawa listing category. HasPower is false for
// categories whose listings never carry a power figure.
type Category struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	PowerUnit string `json:"power_unit,omitempty"`
	HasPower  bool   `json:"has_power"`
}

// Listing is the raw material scraped from a category page
type Listing struct {
	URL       string
	Names     []string
	Text      string
	ItemCount int
}

// CategoryResult represents the extraction result for a single category
type CategoryResult struct {
	Category  Category      `json:"category"`
	URL       string        `json:"url"`
	Products  []ProductInfo `json:"products"`
	Warnings  []string      `json:"warnings,omitempty"`
	Error     string        `json:"error,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Config holds the configuration for the crawler
type Config struct {
	BaseURL            string
	Category           string
	RequestDelay       time.Duration
	MaxRetries         int
	Timeout            time.Duration
	UseHeadlessBrowser bool
	WaitSelector       string
	UserAgent          string

	CacheType string
	CacheTTL  time.Duration
	RedisURL  string

	Format   string
	Output   string
	LogLevel string
	Verbose  bool
	Port     string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "https://prod.danawa.com/list/?cate=",
		Category:           "10330122",
		RequestDelay:       1 * time.Second,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
		UseHeadlessBrowser: false,
		WaitSelector:       "li.prod_item",
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		CacheType:          "memory",
		CacheTTL:           10 * time.Minute,
		Format:             "text",
		LogLevel:           "info",
		Port:               "8080",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
