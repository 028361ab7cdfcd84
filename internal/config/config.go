package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"danawa-crawler/internal/types"
	"danawa-crawler/report"
)

var categoryCode = regexp.MustCompile(`^\d+$`)

// flagKeys maps configuration keys to the CLI flags that can set them
var flagKeys = map[string]string{
	"category":      "category",
	"base_url":      "base-url",
	"delay":         "delay",
	"retries":       "retries",
	"timeout":       "timeout",
	"browser":       "browser",
	"wait_selector": "wait-selector",
	"user_agent":    "user-agent",
	"cache":         "cache",
	"cache_ttl":     "cache-ttl",
	"redis_url":     "redis-url",
	"format":        "format",
	"output":        "output",
	"log_level":     "log-level",
	"verbose":       "verbose",
	"port":          "port",
}

// RegisterFlags adds the configuration flags to a flag set
func RegisterFlags(flags *pflag.FlagSet) {
	d := types.DefaultConfig()

	flags.StringP("category", "c", d.Category, "Danawa category code to crawl")
	flags.String("base-url", d.BaseURL, "Listing URL prefix the category code is appended to")
	flags.Duration("delay", d.RequestDelay, "Delay between requests")
	flags.Int("retries", d.MaxRetries, "Maximum retry attempts")
	flags.Duration("timeout", d.Timeout, "Request timeout")
	flags.Bool("browser", d.UseHeadlessBrowser, "Use headless browser for JavaScript-rendered listings")
	flags.String("wait-selector", d.WaitSelector, "Element the browser waits for before reading the page")
	flags.String("user-agent", d.UserAgent, "User-Agent header")
	flags.String("cache", d.CacheType, "Page cache: none, memory or redis")
	flags.Duration("cache-ttl", d.CacheTTL, "How long fetched pages stay cached")
	flags.String("redis-url", d.RedisURL, "Redis URL for --cache=redis")
	flags.StringP("format", "f", d.Format, "Report format: "+strings.Join(report.Formats(), ", "))
	flags.StringP("output", "o", d.Output, "Output file path (default: stdout)")
	flags.String("log-level", d.LogLevel, "Log level")
	flags.BoolP("verbose", "v", d.Verbose, "Enable verbose logging")
}

// Load builds the configuration from defaults, an optional YAML file, DANAWA_*
// environment variables and finally any flags set on the command line.
// flags may be nil and configFile may be empty.
func Load(flags *pflag.FlagSet, configFile string) (*types.Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("crawler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/danawa-crawler")
	}

	v.SetEnvPrefix("DANAWA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// unprefixed names kept from earlier deployments
	_ = v.BindEnv("log_level", "DANAWA_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("port", "DANAWA_PORT", "API_PORT")

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &types.Config{
		BaseURL:            v.GetString("base_url"),
		Category:           strings.TrimSpace(v.GetString("category")),
		RequestDelay:       v.GetDuration("delay"),
		MaxRetries:         v.GetInt("retries"),
		Timeout:            v.GetDuration("timeout"),
		UseHeadlessBrowser: v.GetBool("browser"),
		WaitSelector:       v.GetString("wait_selector"),
		UserAgent:          v.GetString("user_agent"),
		CacheType:          v.GetString("cache"),
		CacheTTL:           v.GetDuration("cache_ttl"),
		RedisURL:           v.GetString("redis_url"),
		Format:             v.GetString("format"),
		Output:             v.GetString("output"),
		LogLevel:           v.GetString("log_level"),
		Verbose:            v.GetBool("verbose"),
		Port:               v.GetString("port"),
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("category", d.Category)
	v.SetDefault("delay", d.RequestDelay)
	v.SetDefault("retries", d.MaxRetries)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("browser", d.UseHeadlessBrowser)
	v.SetDefault("wait_selector", d.WaitSelector)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("cache", d.CacheType)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("port", d.Port)
}

// Validate checks a configuration for values the crawler cannot work with
func Validate(config *types.Config) error {
	if !categoryCode.MatchString(config.Category) {
		return fmt.Errorf("category must be a numeric Danawa code, got: %q", config.Category)
	}
	if config.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("retries must not be negative, got: %d", config.MaxRetries)
	}
	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", config.Timeout)
	}
	if !report.ValidFormat(config.Format) {
		return fmt.Errorf("format must be one of %s, got: %s", strings.Join(report.Formats(), ", "), config.Format)
	}
	switch config.CacheType {
	case "none", "memory":
	case "redis":
		if config.RedisURL == "" {
			return errors.New("redis URL is required when cache type is 'redis'")
		}
	default:
		return fmt.Errorf("cache type must be 'none', 'memory' or 'redis', got: %s", config.CacheType)
	}
	return nil
}
