package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/ggyyuubb/wearther/internal/domain/auth"
	"github.com/ggyyuubb/wearther/internal/domain/forecast"
	"github.com/ggyyuubb/wearther/internal/domain/history"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
	"github.com/ggyyuubb/wearther/internal/infra/config"
	"github.com/ggyyuubb/wearther/internal/infra/forecastcache"
	"github.com/ggyyuubb/wearther/internal/infra/historyrepo"
	"github.com/ggyyuubb/wearther/internal/infra/llm/chatgpt"
	"github.com/ggyyuubb/wearther/internal/infra/planner"
	"github.com/ggyyuubb/wearther/internal/infra/ranker"
	"github.com/ggyyuubb/wearther/internal/infra/wardrobestore"
	"github.com/ggyyuubb/wearther/internal/infra/weather/openweather"
)

func ProvideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func ProvideStylistConfig(cfg *config.Config) stylist.Config {
	out := stylist.DefaultConfig()
	s := cfg.Stylist
	out.CandidateCount = s.CandidateCount
	out.Filter.MaxOuterwearTemp = s.MaxOuterwearTemp
	out.Filter.MinExposedTemp = s.MinExposedTemp
	out.Advisory.FreezingTemp = s.FreezingTemp
	out.Advisory.ChillyTemp = s.ChillyTemp
	out.Advisory.HotTemp = s.HotTemp
	if len(s.RainIndicators) > 0 {
		out.Filter.RainIndicators = s.RainIndicators
	}
	if len(s.HeavyRainIndicators) > 0 {
		out.Advisory.HeavyRainIndicators = s.HeavyRainIndicators
	}
	if cfg.LLM.GenerationTimeout > 0 {
		out.GenerationTimeout = cfg.LLM.GenerationTimeout
	}
	if cfg.LLM.CommentaryTimeout > 0 {
		out.CommentaryTimeout = cfg.LLM.CommentaryTimeout
	}
	return out
}

func ProvideHistoryConfig(cfg *config.Config) history.Config {
	return history.Config{ListLimit: cfg.History.ListLimit}
}

// ProvideStylistDependencies assembles the process-wide collaborators. A collaborator that
// fails to start is left nil so requests report SERVICE_INIT_FAILURE instead of the process
// refusing to boot.
func ProvideStylistDependencies(cfg *config.Config, logger *slog.Logger) stylist.Dependencies {
	return stylist.Dependencies{
		Forecasts: ProvideForecastSource(cfg, logger),
		Wardrobe:  ProvideWardrobeSource(cfg, logger),
		Planner:   ProvidePlanner(cfg, logger),
		Scorer:    ProvideScorer(cfg, logger),
	}
}

func ProvideForecastSource(cfg *config.Config, logger *slog.Logger) stylist.ForecastSource {
	client, err := openweather.NewClient(openweather.Config{
		APIKey:       cfg.Weather.APIKey,
		BaseURL:      cfg.Weather.BaseURL,
		GeocodingKey: cfg.Weather.GeocodingKey,
		GeocodingURL: cfg.Weather.GeocodingURL,
		Lang:         cfg.Weather.Lang,
		Timeout:      cfg.Weather.Timeout,
	}, logger)
	if err != nil {
		logger.Error("forecast provider unavailable", "error", err)
		return nil
	}
	// One fetch is a geocoding call plus a forecast call.
	fetchCfg := forecast.Config{CacheTTL: cfg.Weather.CacheTTL, FetchTimeout: 2 * cfg.Weather.Timeout}
	return forecast.NewService(fetchCfg, client, ProvideForecastCache(cfg, logger), logger)
}

func ProvideForecastCache(cfg *config.Config, logger *slog.Logger) forecast.Cache {
	if !cfg.Weather.Redis.Enabled {
		return forecastcache.NewMemoryStore()
	}
	opt, err := buildValkeyOptions(cfg.Weather.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return forecastcache.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return forecastcache.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return forecastcache.NewMemoryStore()
	}
	logger.Info("forecast valkey cache enabled", "addr", cfg.Weather.Redis.Addr)
	return forecastcache.NewValkeyStore(client, cfg.Weather.Redis.Prefix)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func ProvideWardrobeSource(cfg *config.Config, logger *slog.Logger) stylist.WardrobeSource {
	loaderCfg := wardrobe.LoaderConfig{FallbackOnError: cfg.Stylist.FallbackOnStoreError}
	pool := openPostgresPool(cfg.Wardrobe.Postgres, "wardrobe", logger)
	if pool == nil {
		logger.Warn("wardrobe postgres unavailable, using memory store")
		return wardrobe.NewLoader(wardrobestore.NewMemoryStore(), loaderCfg, logger)
	}
	return wardrobe.NewLoader(wardrobestore.NewPostgresStore(pool), loaderCfg, logger)
}

func ProvidePlanner(cfg *config.Config, logger *slog.Logger) stylist.Planner {
	provider := strings.ToLower(cfg.LLM.Provider)
	if provider != config.ProviderOpenAI && provider != config.ProviderGemini {
		logger.Info("using static planner")
		return planner.NewStaticPlanner()
	}
	prompts := planner.NewPrompts(planner.NewTokenCounter(logger), cfg.LLM.WardrobeTokenBudget)

	var p stylist.Planner
	switch provider {
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			logger.Error("openai planner unavailable", "error", err)
			return nil
		}
		p = planner.NewChatPlanner(client, planner.ChatConfig{Model: cfg.LLM.Model, Temperature: cfg.LLM.Temperature}, prompts, logger)
	case config.ProviderGemini:
		gp, err := planner.NewGeminiPlanner(context.Background(), planner.GeminiConfig{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
		}, prompts, logger)
		if err != nil {
			logger.Error("gemini planner unavailable", "error", err)
			return nil
		}
		p = gp
	}

	if !cfg.LLM.Breaker.Enabled {
		return p
	}
	bc := planner.DefaultBreakerConfig()
	bc.Name = "planner-" + provider
	if cfg.LLM.Breaker.MinRequests > 0 {
		bc.MinRequests = cfg.LLM.Breaker.MinRequests
	}
	if cfg.LLM.Breaker.FailureRatio > 0 {
		bc.FailureRatio = cfg.LLM.Breaker.FailureRatio
	}
	if cfg.LLM.Breaker.Interval > 0 {
		bc.Interval = cfg.LLM.Breaker.Interval
	}
	if cfg.LLM.Breaker.OpenTimeout > 0 {
		bc.Timeout = cfg.LLM.Breaker.OpenTimeout
	}
	return planner.WithBreaker(p, bc, logger)
}

func ProvideScorer(cfg *config.Config, logger *slog.Logger) stylist.Scorer {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	model, err := ranker.Load(ctx, cfg.Ranker.ModelPath, ranker.S3Config{
		Endpoint:  cfg.Ranker.S3.Endpoint,
		AccessKey: cfg.Ranker.S3.AccessKey,
		SecretKey: cfg.Ranker.S3.SecretKey,
		Region:    cfg.Ranker.S3.Region,
	}, logger)
	if err != nil {
		logger.Error("ranking model unavailable", "path", cfg.Ranker.ModelPath, "error", err)
		return nil
	}
	logger.Info("ranking model loaded", "path", cfg.Ranker.ModelPath, "schema", model.Schema())
	return model
}

func ProvideHistoryService(cfg *config.Config, logger *slog.Logger) history.Service {
	if !cfg.History.Enabled {
		return nil
	}
	var repo history.Repository = historyrepo.NewMemoryRepository()
	if pool := openPostgresPool(cfg.History.Postgres, "history", logger); pool != nil {
		repo = historyrepo.NewPostgresRepository(pool)
	} else {
		logger.Info("history postgres unavailable, using memory repository")
	}
	return history.NewService(ProvideHistoryConfig(cfg), repo, logger)
}

// openPostgresPool returns nil when the dsn is empty or the database is unreachable.
func openPostgresPool(pg config.PostgresConfig, name string, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(pg.DSN)
	if dsn == "" {
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn", "store", name, "error", err)
		return nil
	}
	if pg.MaxConns > 0 {
		poolConfig.MaxConns = pg.MaxConns
	}
	if pg.MinConns > 0 {
		poolConfig.MinConns = pg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool", "store", name, "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed", "store", name, "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres store enabled", "store", name)
	return pool
}
