package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/timecost/internal/common"
	"github.com/noah-isme/timecost/internal/obs"
)

// DefaultStoreBaseURL is the storefront swept when STORE_BASE_URL is unset.
const DefaultStoreBaseURL = "http://shopicruit.myshopify.com"

// DefaultMaxPageBytes bounds a single products.json response.
const DefaultMaxPageBytes = 16 << 20

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv                   string        `validate:"required"`
	StoreBaseURL             string        `validate:"required,http_url"`
	CatalogRequestTimeout    time.Duration `validate:"gte=0"`
	CatalogRequestsPerSecond float64       `validate:"gte=0"`
	CatalogMaxPageBytes      int64         `validate:"gte=0"`

	LogFormat string `validate:"oneof=json console text"`
	LogLevel  string
	LogFile   string

	TracingEnabled       bool
	ServiceName          string  `validate:"required"`
	OTLPEndpoint         string  `validate:"omitempty,url"`
	TracingSamplingRatio float64 `validate:"gte=0,lte=1"`

	MetricsNamespace string `validate:"required"`
	MetricsBucketsMS []float64
	MetricsTextfile  string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	timeout, err := parseDuration(k.String("CATALOG_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, malformed("CATALOG_REQUEST_TIMEOUT", err)
	}
	rps, err := common.ParseFloat(k.String("CATALOG_REQUESTS_PER_SECOND"), 0)
	if err != nil {
		return nil, malformed("CATALOG_REQUESTS_PER_SECOND", err)
	}
	maxPageBytes, err := common.ParseInt64(k.String("CATALOG_MAX_PAGE_BYTES"), DefaultMaxPageBytes)
	if err != nil {
		return nil, malformed("CATALOG_MAX_PAGE_BYTES", err)
	}
	sampling, err := common.ParseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0)
	if err != nil {
		return nil, malformed("OBS_TRACING_SAMPLING_RATIO", err)
	}

	cfg := &Config{
		AppEnv:                   valueOrDefault(k.String("APP_ENV"), "development"),
		StoreBaseURL:             strings.TrimRight(valueOrDefault(k.String("STORE_BASE_URL"), DefaultStoreBaseURL), "/"),
		CatalogRequestTimeout:    timeout,
		CatalogRequestsPerSecond: rps,
		CatalogMaxPageBytes:      maxPageBytes,
		LogFormat:                strings.ToLower(valueOrDefault(k.String("OBS_LOG_FORMAT"), "console")),
		LogLevel:                 valueOrDefault(k.String("OBS_LOG_LEVEL"), "warn"),
		LogFile:                  strings.TrimSpace(k.String("OBS_LOG_FILE")),
		TracingEnabled:           parseBool(k.String("OBS_ENABLE_TRACING")),
		ServiceName:              valueOrDefault(k.String("OBS_SERVICE_NAME"), obs.DefaultServiceName),
		OTLPEndpoint:             strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		TracingSamplingRatio:     sampling,
		MetricsNamespace:         valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "timecost"),
		MetricsBucketsMS:         obs.ParseBucketsCSV(k.String("OBS_METRICS_BUCKETS_MS")),
		MetricsTextfile:          strings.TrimSpace(k.String("OBS_METRICS_TEXTFILE")),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, common.NewAppError(common.CodeConfigInvalid, "invalid configuration", 0, err)
	}
	return cfg, nil
}

// Tracing returns the tracer settings for this run.
func (c *Config) Tracing() obs.TracingConfig {
	return obs.TracingConfig{
		ServiceName:   c.ServiceName,
		Environment:   c.AppEnv,
		Endpoint:      c.OTLPEndpoint,
		SamplingRatio: c.TracingSamplingRatio,
	}
}

// ProductsURL returns the catalog endpoint without the page query.
func (c *Config) ProductsURL() string {
	return strings.TrimRight(c.StoreBaseURL, "/") + "/products.json"
}

func malformed(key string, err error) error {
	return common.NewAppError(common.CodeConfigInvalid, key+" is malformed", 0, err)
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return 0, nil
	}
	return time.ParseDuration(trimmed)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
