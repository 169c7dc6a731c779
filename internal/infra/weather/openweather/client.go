package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
)

const (
	defaultOneCallURL   = "https://api.openweathermap.org/data/3.0/onecall"
	defaultGeocodingURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultLang         = "kr"
	maxDays             = 7
)

// Seoul is used when no geocoding key is configured.
var Seoul = Coordinates{Lat: 37.5665, Lon: 126.9780}

// Coordinates is a resolved location.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Config configures the forecast client.
type Config struct {
	APIKey       string
	BaseURL      string
	GeocodingKey string
	GeocodingURL string
	Lang         string
	Timeout      time.Duration
}

// Client fetches daily forecasts from OpenWeather One Call after geocoding the location.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds an API client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultOneCallURL
	}
	if strings.TrimSpace(cfg.GeocodingURL) == "" {
		cfg.GeocodingURL = defaultGeocodingURL
	}
	if cfg.Lang == "" {
		cfg.Lang = defaultLang
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "weather.openweather"),
	}, nil
}

// Daily implements forecast.Provider.
func (c *Client) Daily(ctx context.Context, location string) ([]forecast.Day, error) {
	coords, err := c.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("exclude", "minutely,alerts")
	params.Set("units", "metric")
	params.Set("lang", c.cfg.Lang)
	params.Set("appid", c.cfg.APIKey)

	var raw oneCallResponse
	if err := c.getJSON(ctx, c.cfg.BaseURL+"?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	if len(raw.Daily) == 0 {
		return nil, errors.New("weather response has no daily forecast")
	}
	return normalizeDaily(raw), nil
}

// Geocode resolves a free-text address. Without a geocoding key it returns Seoul.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	if strings.TrimSpace(c.cfg.GeocodingKey) == "" {
		c.logger.Warn("geocoding key not configured, using default coordinates", "location", address)
		return Seoul, nil
	}
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.cfg.GeocodingKey)

	var raw geocodeResponse
	if err := c.getJSON(ctx, c.cfg.GeocodingURL+"?"+params.Encode(), &raw); err != nil {
		return Coordinates{}, fmt.Errorf("geocoding request: %w", err)
	}
	if raw.Status != "OK" || len(raw.Results) == 0 {
		return Coordinates{}, fmt.Errorf("geocoding failed for %q: status=%s", address, raw.Status)
	}
	loc := raw.Results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lon: loc.Lng}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type oneCallResponse struct {
	TimezoneOffset int        `json:"timezone_offset"`
	Daily          []dailyRaw `json:"daily"`
}

type dailyRaw struct {
	DT   int64 `json:"dt"`
	Temp struct {
		Day   float64 `json:"day"`
		Night float64 `json:"night"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
	} `json:"temp"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// normalizeDaily keeps at most seven days; the average is the mean of the day and night readings.
func normalizeDaily(raw oneCallResponse) []forecast.Day {
	zone := time.FixedZone("local", raw.TimezoneOffset)
	days := raw.Daily
	if len(days) > maxDays {
		days = days[:maxDays]
	}
	out := make([]forecast.Day, 0, len(days))
	for _, d := range days {
		condition := ""
		if len(d.Weather) > 0 {
			condition = d.Weather[0].Description
			if condition == "" {
				condition = d.Weather[0].Main
			}
		}
		out = append(out, forecast.Day{
			Date:      time.Unix(d.DT, 0).In(zone).Format("01-02"),
			AvgTemp:   round1((d.Temp.Day + d.Temp.Night) / 2),
			MinTemp:   round1(d.Temp.Min),
			MaxTemp:   round1(d.Temp.Max),
			Condition: condition,
		})
	}
	return out
}

func round1(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return f
}

var _ forecast.Provider = (*Client)(nil)
