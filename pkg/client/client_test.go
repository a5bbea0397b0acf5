package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/k-shtanenko/city-weather/internal/application"
	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/api"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/database"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/excel"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/messaging"
	"github.com/k-shtanenko/city-weather/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	repo, err := database.NewGormWeatherRepository(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "weather.db"),
		Seed:     true,
		LogLevel: "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := &config.Config{
		App: config.AppConfig{Version: "1.0.0", Env: "test", ShutdownTimeout: time.Second},
	}
	service := application.NewWeatherService(repo, messaging.NopPublisher{}, excel.NewWorkbookExporter(nil), validation.Options{}, nil)
	server := httptest.NewServer(api.NewAPIServer(service, cfg, nil).Handler())
	t.Cleanup(server.Close)

	return New(server.URL, WithTimeout(5*time.Second))
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 5)

	created, err := c.Create(ctx, Input{
		City:        "São Paulo",
		Temperature: 26.4,
		Humidity:    78,
		Pressure:    1011,
		Description: "Humid",
		WindSpeed:   9.1,
		Visibility:  9,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := c.Get(ctx, "são paulo")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "São Paulo", got.City)

	updated, err := c.Update(ctx, created.ID, Input{
		City:        "São Paulo",
		Temperature: 27,
		Humidity:    70,
		Pressure:    1010,
		Description: "Cloudy",
		WindSpeed:   4,
		Visibility:  11,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Cloudy", updated.Description)

	found, err := c.Search(ctx, "paulo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, "São Paulo")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.NotFound())
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	t.Run("conflict", func(t *testing.T) {
		_, err := c.Create(ctx, Input{City: "tokyo", Temperature: 1, Humidity: 1, Pressure: 1, Description: "x", WindSpeed: 1, Visibility: 1})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.Conflict())
		assert.Equal(t, "Weather data for tokyo already exists. Use PUT to update.", apiErr.Message)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := c.Create(ctx, Input{City: "Nowhere"})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, validation.MsgRequiredFields, apiErr.Message)
	})

	t.Run("delete missing", func(t *testing.T) {
		err := c.Delete(ctx, 424242)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.NotFound())
		assert.Equal(t, "Weather data with ID 424242 not found", apiErr.Message)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := New("http://127.0.0.1:1", WithTimeout(time.Second)).List(ctx)

		require.Error(t, err)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestClient_HealthAndExport(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)

	data, err := c.Export(ctx, "on")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}
