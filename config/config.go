package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jonwraymond/rentdata/cache"
	"github.com/jonwraymond/rentdata/geocode"
	"github.com/jonwraymond/rentdata/observe"
	"github.com/jonwraymond/rentdata/secret"
)

// Prefix is prepended to every variable name.
const Prefix = "RENTDATA_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full rentdata configuration.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"rentdata"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Store     StoreConfig     `envPrefix:"STORE_"`
	API       APIConfig       `envPrefix:"API_"`
	Query     QueryConfig     `envPrefix:"QUERY_"`
	Property  PropertyConfig  `envPrefix:"PROPERTY_"`
	Geocode   GeocodeConfig   `envPrefix:"GEOCODE_"`
	Location  LocationConfig  `envPrefix:"LOCATION_"`
	Telemetry TelemetryConfig `envPrefix:"TELEMETRY_"`
}

// StoreConfig selects the persistent kv.Store.
type StoreConfig struct {
	Backend       string `env:"BACKEND" envDefault:"file"`
	Dir           string `env:"DIR" envDefault:".rentdata"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_NAMESPACE" envDefault:"rentdata:"`
}

// APIConfig points at the authoritative API.
type APIConfig struct {
	Endpoint  string        `env:"ENDPOINT"`
	Token     string        `env:"TOKEN"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"15s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"rentdata"`
}

// QueryConfig tunes the query cache.
type QueryConfig struct {
	TTL          time.Duration `env:"TTL" envDefault:"5m"`
	MaxTTL       time.Duration `env:"MAX_TTL" envDefault:"24h"`
	StaleOnError bool          `env:"STALE_ON_ERROR" envDefault:"true"`
	MemorySize   int           `env:"MEMORY_SIZE" envDefault:"500"`
}

// PropertyConfig tunes the property resolver.
type PropertyConfig struct {
	EdgeBaseURL    string        `env:"EDGE_BASE_URL"`
	LocalTTL       time.Duration `env:"LOCAL_TTL" envDefault:"0s"`
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"5"`
	RefreshTimeout time.Duration `env:"REFRESH_TIMEOUT" envDefault:"15s"`
}

// GeocodeConfig configures the geocoding providers.
type GeocodeConfig struct {
	ProviderAKey       string        `env:"PROVIDER_A_KEY"`
	ProviderAURL       string        `env:"PROVIDER_A_URL"`
	ProviderBUserAgent string        `env:"PROVIDER_B_USER_AGENT"`
	ProviderBURL       string        `env:"PROVIDER_B_URL"`
	ProviderBDelay     time.Duration `env:"PROVIDER_B_DELAY" envDefault:"1s"`
	AttemptTimeout     time.Duration `env:"ATTEMPT_TIMEOUT" envDefault:"5s"`
	Country            string        `env:"COUNTRY" envDefault:"Tanzania"`
	CountryCode        string        `env:"COUNTRY_CODE" envDefault:"tz"`
	// Bounds is minLat,maxLat,minLng,maxLng.
	Bounds []float64 `env:"BOUNDS" envDefault:"-11.75,-0.95,29.3,40.5" envSeparator:","`
}

// LocationConfig tunes the location directory cache.
type LocationConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"720h"`
	// Static serves the built-in table instead of calling the API.
	Static bool `env:"STATIC" envDefault:"false"`
}

// TelemetryConfig maps onto observe.Config.
type TelemetryConfig struct {
	TracesExporter  string  `env:"TRACES_EXPORTER" envDefault:"none"`
	MetricsExporter string  `env:"METRICS_EXPORTER" envDefault:"none"`
	Endpoint        string  `env:"OTLP_ENDPOINT"`
	SamplePct       float64 `env:"SAMPLE_PCT" envDefault:"1.0"`
}

// LoadOptions controls Load.
type LoadOptions struct {
	// EnvFiles are dotenv files to read. Missing files are skipped.
	// Default: [".env"]
	EnvFiles []string

	// Environment replaces the process environment (tests).
	Environment map[string]string

	// Secrets resolves credential references.
	// Default: secret.NewResolver() over the merged environment
	Secrets *secret.Resolver
}

// Load reads, validates and resolves the configuration.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	environ, err := mergedEnvironment(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver := opts.Secrets
	if resolver == nil {
		lookup := func(k string) (string, bool) {
			v, ok := environ[k]
			return v, ok
		}
		resolver = secret.NewResolver(secret.WithLookup(lookup), secret.WithProvider(secret.EnvProvider{Lookup: lookup}))
	}
	err = resolver.ResolveInPlace(ctx, map[string]*string{
		"API_TOKEN":              &cfg.API.Token,
		"GEOCODE_PROVIDER_A_KEY": &cfg.Geocode.ProviderAKey,
		"STORE_REDIS_PASSWORD":   &cfg.Store.RedisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func mergedEnvironment(opts LoadOptions) (map[string]string, error) {
	base := opts.Environment
	if base == nil {
		base = env.ToMap(os.Environ())
	}
	files := opts.EnvFiles
	if files == nil {
		files = []string{".env"}
	}

	out := make(map[string]string, len(base))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		vals, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	for k, v := range base {
		out[k] = v
	}
	return out, nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Store.Backend)
	}
	if len(c.Geocode.Bounds) != 4 || c.Geocode.Bounds[0] >= c.Geocode.Bounds[1] || c.Geocode.Bounds[2] >= c.Geocode.Bounds[3] {
		return fmt.Errorf("%w: %v", ErrInvalidBounds, c.Geocode.Bounds)
	}
	if c.Property.MaxRetries < 1 {
		return fmt.Errorf("%w: PROPERTY_MAX_RETRIES must be at least 1", ErrInvalidValue)
	}
	if c.Query.TTL <= 0 || c.Location.TTL <= 0 {
		return fmt.Errorf("%w: TTLs must be positive", ErrInvalidValue)
	}
	if c.Query.MemorySize < 1 {
		return fmt.Errorf("%w: QUERY_MEMORY_SIZE must be at least 1", ErrInvalidValue)
	}
	return nil
}

// Policy returns the query cache policy.
func (c *Config) Policy() cache.Policy {
	return cache.Policy{
		DefaultTTL:   c.Query.TTL,
		MaxTTL:       c.Query.MaxTTL,
		StaleOnError: c.Query.StaleOnError,
	}
}

// BoundingBox returns the geocoding acceptance box.
func (c *Config) BoundingBox() geocode.BoundingBox {
	b := c.Geocode.Bounds
	return geocode.BoundingBox{MinLat: b[0], MaxLat: b[1], MinLng: b[2], MaxLng: b[3]}
}

// Observe returns the telemetry configuration.
func (c *Config) Observe(version string) observe.Config {
	traces := strings.ToLower(c.Telemetry.TracesExporter)
	metrics := strings.ToLower(c.Telemetry.MetricsExporter)
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   traces != "" && traces != "none",
			Exporter:  traces,
			Endpoint:  c.Telemetry.Endpoint,
			SamplePct: c.Telemetry.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  metrics != "" && metrics != "none",
			Exporter: metrics,
			Endpoint: c.Telemetry.Endpoint,
		},
		Logging: observe.LoggingConfig{Enabled: true, Level: c.LogLevel},
	}
}
