package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 5, cfg.Stylist.CandidateCount)
	require.Equal(t, 30.0, cfg.Stylist.MaxOuterwearTemp)
	require.Equal(t, 18.0, cfg.Stylist.MinExposedTemp)
	require.Equal(t, ProviderStatic, cfg.LLM.Provider)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
llm:
  provider: gemini
  apiKey: file-key
  model: gemini-2.5-flash
stylist:
  candidateCount: 7
  hotTemp: 27
ranker:
  modelPath: s3://models/ranker.json
  s3:
    endpoint: https://acct.r2.cloudflarestorage.com
weather:
  cacheTtl: 10m
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WEATHER_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "env-key", cfg.LLM.APIKey)
	require.Equal(t, 7, cfg.Stylist.CandidateCount)
	require.Equal(t, 27.0, cfg.Stylist.HotTemp)
	require.Equal(t, 12.0, cfg.Stylist.ChillyTemp)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 5*time.Minute, cfg.Weather.CacheTTL)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"missing api key":     func(c *Config) { c.LLM.Provider = ProviderOpenAI },
		"unknown provider":    func(c *Config) { c.LLM.Provider = "llama" },
		"zero candidates":     func(c *Config) { c.Stylist.CandidateCount = 0 },
		"s3 without endpoint": func(c *Config) { c.Ranker.ModelPath = "s3://bucket/key" },
		"redis without addr":  func(c *Config) { c.Weather.Redis.Enabled = true },
		"inverted cold":       func(c *Config) { c.Stylist.FreezingTemp = 15 },
		"bad breaker ratio":   func(c *Config) { c.LLM.Breaker.FailureRatio = 1.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
