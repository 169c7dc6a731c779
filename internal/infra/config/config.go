package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	LLM      LLMConfig      `yaml:"llm"`
	Stylist  StylistConfig  `yaml:"stylist"`
	Ranker   RankerConfig   `yaml:"ranker"`
	Wardrobe WardrobeConfig `yaml:"wardrobe"`
	History  HistoryConfig  `yaml:"history"`
	Weather  WeatherConfig  `yaml:"weather"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for POST requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AuthConfig holds bearer token settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"tokenTtl"`
}

// LLMConfig selects and tunes the generative planner.
type LLMConfig struct {
	Provider            string        `yaml:"provider"`
	APIKey              string        `yaml:"apiKey"`
	BaseURL             string        `yaml:"baseUrl"`
	Model               string        `yaml:"model"`
	Temperature         float32       `yaml:"temperature"`
	WardrobeTokenBudget int           `yaml:"wardrobeTokenBudget"`
	GenerationTimeout   time.Duration `yaml:"generationTimeout"`
	CommentaryTimeout   time.Duration `yaml:"commentaryTimeout"`
	Breaker             BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker around planner calls.
type BreakerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MinRequests  uint32        `yaml:"minRequests"`
	FailureRatio float64       `yaml:"failureRatio"`
	Interval     time.Duration `yaml:"interval"`
	OpenTimeout  time.Duration `yaml:"openTimeout"`
}

// StylistConfig carries pipeline thresholds.
type StylistConfig struct {
	CandidateCount       int      `yaml:"candidateCount"`
	MaxOuterwearTemp     float64  `yaml:"maxOuterwearTemp"`
	MinExposedTemp       float64  `yaml:"minExposedTemp"`
	FreezingTemp         float64  `yaml:"freezingTemp"`
	ChillyTemp           float64  `yaml:"chillyTemp"`
	HotTemp              float64  `yaml:"hotTemp"`
	RainIndicators       []string `yaml:"rainIndicators"`
	HeavyRainIndicators  []string `yaml:"heavyRainIndicators"`
	FallbackOnStoreError bool     `yaml:"fallbackOnStoreError"`
}

// RankerConfig points at the scoring model artifact.
type RankerConfig struct {
	ModelPath string   `yaml:"modelPath"`
	S3        S3Config `yaml:"s3"`
}

// S3Config contains credentials for s3:// model paths.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
}

// WardrobeConfig configures the closet store.
type WardrobeConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// HistoryConfig configures recommendation history.
type HistoryConfig struct {
	Enabled   bool           `yaml:"enabled"`
	ListLimit int            `yaml:"listLimit"`
	Postgres  PostgresConfig `yaml:"postgres"`
}

// WeatherConfig configures forecast lookups.
type WeatherConfig struct {
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	GeocodingKey string        `yaml:"geocodingKey"`
	GeocodingURL string        `yaml:"geocodingUrl"`
	Lang         string        `yaml:"lang"`
	Timeout      time.Duration `yaml:"timeout"`
	CacheTTL     time.Duration `yaml:"cacheTtl"`
	Redis        RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	setString(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	setString(&cfg.Auth.Issuer, "AUTH_ISSUER")
	setDuration(&cfg.Auth.TokenTTL, "AUTH_TOKEN_TTL")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	if cfg.LLM.APIKey == "" && strings.EqualFold(cfg.LLM.Provider, ProviderGemini) {
		setString(&cfg.LLM.APIKey, "GEMINI_API_KEY")
	}
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setDuration(&cfg.LLM.GenerationTimeout, "LLM_GENERATION_TIMEOUT")
	setDuration(&cfg.LLM.CommentaryTimeout, "LLM_COMMENTARY_TIMEOUT")
	setBool(&cfg.LLM.Breaker.Enabled, "LLM_BREAKER_ENABLED")

	setInt(&cfg.Stylist.CandidateCount, "STYLIST_CANDIDATE_COUNT")
	setBool(&cfg.Stylist.FallbackOnStoreError, "STYLIST_FALLBACK_ON_STORE_ERROR")

	setString(&cfg.Ranker.ModelPath, "RANKER_MODEL_PATH")
	setString(&cfg.Ranker.S3.Endpoint, "RANKER_S3_ENDPOINT")
	setString(&cfg.Ranker.S3.AccessKey, "RANKER_S3_ACCESS_KEY")
	setString(&cfg.Ranker.S3.SecretKey, "RANKER_S3_SECRET_KEY")
	setString(&cfg.Ranker.S3.Region, "RANKER_S3_REGION")

	setString(&cfg.Wardrobe.Postgres.DSN, "WARDROBE_POSTGRES_DSN")
	setInt32(&cfg.Wardrobe.Postgres.MaxConns, "WARDROBE_POSTGRES_MAX_CONNS")
	setBool(&cfg.History.Enabled, "HISTORY_ENABLED")
	setString(&cfg.History.Postgres.DSN, "HISTORY_POSTGRES_DSN")
	setInt32(&cfg.History.Postgres.MaxConns, "HISTORY_POSTGRES_MAX_CONNS")

	setString(&cfg.Weather.APIKey, "OPENWEATHER_API_KEY")
	setString(&cfg.Weather.BaseURL, "OPENWEATHER_BASE_URL")
	setString(&cfg.Weather.GeocodingKey, "GOOGLE_GEOCODING_API_KEY")
	setDuration(&cfg.Weather.CacheTTL, "WEATHER_CACHE_TTL")
	setBool(&cfg.Weather.Redis.Enabled, "WEATHER_REDIS_ENABLED")
	setString(&cfg.Weather.Redis.Addr, "WEATHER_REDIS_ADDR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = int32(parsed)
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Planner providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/recommendations",
				},
			},
		},
		Auth: AuthConfig{
			Issuer:   "wearther",
			TokenTTL: 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:            ProviderStatic,
			Model:               "gpt-4o-mini",
			Temperature:         0.1,
			WardrobeTokenBudget: 1500,
			GenerationTimeout:   30 * time.Second,
			CommentaryTimeout:   20 * time.Second,
			Breaker: BreakerConfig{
				Enabled:      true,
				MinRequests:  5,
				FailureRatio: 0.6,
				Interval:     time.Minute,
				OpenTimeout:  time.Minute,
			},
		},
		Stylist: StylistConfig{
			CandidateCount:   5,
			MaxOuterwearTemp: 30,
			MinExposedTemp:   18,
			FreezingTemp:     5,
			ChillyTemp:       12,
			HotTemp:          25,
			RainIndicators:      []string{"rain", "shower", "drizzle", "비"},
			HeavyRainIndicators: []string{"rain", "비"},
		},
		Ranker: RankerConfig{
			ModelPath: "models/ranker.json",
		},
		Wardrobe: WardrobeConfig{
			Postgres: PostgresConfig{MaxConns: 4},
		},
		History: HistoryConfig{
			Enabled:   true,
			ListLimit: 50,
			Postgres:  PostgresConfig{MaxConns: 4},
		},
		Weather: WeatherConfig{
			Lang:     "kr",
			Timeout:  10 * time.Second,
			CacheTTL: 30 * time.Minute,
			Redis:    RedisConfig{Prefix: "wearther:forecast"},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderOpenAI, ProviderGemini:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("llm.apiKey cannot be empty for provider %q", c.LLM.Provider)
		}
		if strings.TrimSpace(c.LLM.Model) == "" {
			return errors.New("llm.model cannot be empty")
		}
	case ProviderStatic:
	default:
		return fmt.Errorf("llm.provider %q is not one of openai, gemini, static", c.LLM.Provider)
	}
	if c.LLM.Breaker.Enabled && (c.LLM.Breaker.FailureRatio <= 0 || c.LLM.Breaker.FailureRatio > 1) {
		return errors.New("llm.breaker.failureRatio must be in (0, 1]")
	}
	if c.Stylist.CandidateCount <= 0 {
		return errors.New("stylist.candidateCount must be positive")
	}
	if c.Stylist.FreezingTemp > c.Stylist.ChillyTemp {
		return errors.New("stylist.freezingTemp cannot exceed stylist.chillyTemp")
	}
	if strings.TrimSpace(c.Ranker.ModelPath) == "" {
		return errors.New("ranker.modelPath cannot be empty")
	}
	if strings.HasPrefix(c.Ranker.ModelPath, "s3://") && strings.TrimSpace(c.Ranker.S3.Endpoint) == "" {
		return errors.New("ranker.s3.endpoint cannot be empty for s3:// model paths")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Redis.Enabled && strings.TrimSpace(c.Weather.Redis.Addr) == "" {
		return errors.New("weather.redis.addr cannot be empty when redis cache is enabled")
	}
	return nil
}
