package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"

	"github.com/hydertrax/hydertrax/pkg/redis_client"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client looks up current conditions from Open-Meteo. Lookups are cached for
// ten minutes and never block prediction: on any failure the configured
// fallback is returned instead.
type Client struct {
	baseURL   string
	latitude  float64
	longitude float64

	httpClient *http.Client
	fallback   Conditions

	conditionsCache *cache.Cache[Conditions]
}

func NewClient(latitude float64, longitude float64, fallback Conditions) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		latitude:  latitude,
		longitude: longitude,

		httpClient: &http.Client{Timeout: 3 * time.Second},
		fallback:   fallback,
	}
}

// SetBaseURL overrides the lookup endpoint. Used by tests.
func (client *Client) SetBaseURL(url string) {
	client.baseURL = url
}

// CreateConditionsCache attaches the shared redis cache. Requires
// redis_client.Connect to have been called.
func (client *Client) CreateConditionsCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(10*time.Minute))
	client.conditionsCache = cache.New[Conditions](redisStore)
}

type openMeteoResponse struct {
	Current struct {
		Temperature2M       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity2M  float64 `json:"relative_humidity_2m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
}

// Current returns the conditions at the served location. It degrades rather
// than fails: a lookup error after one retry yields the configured fallback.
func (client *Client) Current(ctx context.Context) Conditions {
	cacheKey := fmt.Sprintf("weather_conditions:%.4f:%.4f", client.latitude, client.longitude)

	if client.conditionsCache != nil {
		if cached, err := client.conditionsCache.Get(ctx, cacheKey); err == nil {
			return cached
		}
	}

	conditions, err := client.lookup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Weather lookup failed, using fallback conditions")
		return client.fallback
	}

	if client.conditionsCache != nil {
		if err := client.conditionsCache.Set(ctx, cacheKey, conditions); err != nil {
			log.Debug().Err(err).Msg("Failed to cache weather conditions")
		}
	}

	return conditions
}

func (client *Client) lookup(ctx context.Context) (Conditions, error) {
	var conditions Conditions

	// A single bounded retry. Prediction must never stall on the network.
	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 1), ctx)

	err := backoff.Retry(func() error {
		url := fmt.Sprintf(
			"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,apparent_temperature,relative_humidity_2m,weather_code&timezone=auto",
			client.baseURL, client.latitude, client.longitude,
		)

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		response, err := client.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("weather endpoint returned %d", response.StatusCode)
		}

		var decoded openMeteoResponse
		if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
			return err
		}

		conditions = Conditions{
			Condition:    conditionForWMOCode(decoded.Current.WeatherCode),
			TemperatureC: decoded.Current.ApparentTemperature,
			HumidityPct:  decoded.Current.RelativeHumidity2M,
			Source:       "open-meteo",
		}

		return nil
	}, retryPolicy)

	if err != nil {
		return Conditions{}, err
	}

	return conditions, nil
}
