package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "sjsage522/pricecompare/pkg/errors"
)

// DefaultUserAgent is the desktop browser user agent sent to every storefront
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config represents the application configuration
type Config struct {
	// Storefront search endpoints
	JumiaURL string
	SlotURL  string

	// Fetch configuration
	RequestTimeout  time.Duration
	UserAgent       string
	ConcurrentFetch bool
	BlockTime       time.Duration

	// Pipeline configuration
	FilterPolicy          string
	FilterBlacklist       []string
	AllowFractionalPrices bool
	TopN                  int
	DefaultQuery          string

	// Output configuration
	ExportDir    string
	ErrorLogFile string

	// Memcache configuration, empty means in-process cache
	MemcacheAddr string

	// Redis configuration, empty disables publishing
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// HTTP delivery, empty runs a single comparison and exits
	HTTPAddr           string
	RateLimitPerSecond int
	TrustedProxies     []string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		JumiaURL:              getEnv("JUMIA_URL", "https://www.jumia.com.ng/catalog/?q="),
		SlotURL:               getEnv("SLOT_URL", "https://slot.ng/index.php/catalogsearch/result/?q="),
		RequestTimeout:        time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		UserAgent:             getEnv("USER_AGENT", DefaultUserAgent),
		ConcurrentFetch:       getEnvBool("CONCURRENT_FETCH", true),
		BlockTime:             time.Duration(getEnvInt("BLOCK_TIME_SECONDS", 500)) * time.Second,
		FilterPolicy:          getEnv("FILTER_POLICY", "tiered"),
		FilterBlacklist:       getEnvList("FILTER_BLACKLIST"),
		AllowFractionalPrices: getEnvBool("ALLOW_FRACTIONAL_PRICES", false),
		TopN:                  getEnvInt("TOP_N", 5),
		DefaultQuery:          getEnv("DEFAULT_QUERY", "Samsung Galaxy S24"),
		ExportDir:             getEnv("EXPORT_DIR", "."),
		ErrorLogFile:          getEnv("ERROR_LOG_FILE", "pricecompare_error.log"),
		MemcacheAddr:          os.Getenv("MEMCACHE_ADDR"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		RedisStream:           getEnv("REDIS_STREAM", "pricecompare"),
		RedisStreamCount:      getEnvInt("REDIS_STREAM_COUNT", 1),
		RedisStreamMaxLength:  getEnvInt("REDIS_STREAM_MAX_LENGTH", 1000),
		HTTPAddr:              os.Getenv("HTTP_ADDR"),
		RateLimitPerSecond:    getEnvInt("RATE_LIMIT_PER_SECOND", 2),
		TrustedProxies:        getEnvList("TRUSTED_PROXIES"),
		Environment:           getEnv("PRICECOMPARE_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	for name, raw := range map[string]string{"JUMIA_URL": c.JumiaURL, "SLOT_URL": c.SlotURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return pkgerrors.NewConfiguration(fmt.Sprintf("%s must be an absolute URL, got %q", name, raw), err)
		}
	}

	if c.RequestTimeout <= 0 {
		return pkgerrors.NewConfiguration("REQUEST_TIMEOUT_SECONDS must be positive", nil)
	}

	if c.FilterPolicy != "tiered" && c.FilterPolicy != "keyword" {
		return pkgerrors.NewConfiguration(fmt.Sprintf("FILTER_POLICY must be 'tiered' or 'keyword', got: %s", c.FilterPolicy), nil)
	}

	if c.TopN <= 0 {
		return pkgerrors.NewConfiguration(fmt.Sprintf("TOP_N must be positive, got: %d", c.TopN), nil)
	}

	if c.RedisAddr != "" && c.RedisStreamCount <= 0 {
		return pkgerrors.NewConfiguration("REDIS_STREAM_COUNT must be positive when REDIS_ADDR is set", nil)
	}

	if c.HTTPAddr != "" && c.RateLimitPerSecond <= 0 {
		return pkgerrors.NewConfiguration("RATE_LIMIT_PER_SECOND must be positive when HTTP_ADDR is set", nil)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
