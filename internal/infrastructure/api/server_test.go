package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k-shtanenko/city-weather/internal/application"
	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/database"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/excel"
	"github.com/k-shtanenko/city-weather/internal/infrastructure/messaging"
	"github.com/k-shtanenko/city-weather/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listBody struct {
	Success bool `json:"success"`
	Data    []struct {
		ID          int64   `json:"id"`
		City        string  `json:"city"`
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		Pressure    float64 `json:"pressure"`
		Description string  `json:"description"`
		WindSpeed   float64 `json:"wind_speed"`
		Visibility  float64 `json:"visibility"`
	} `json:"data"`
	Count int    `json:"count"`
	Query string `json:"query"`
}

type recordBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID          int64   `json:"id"`
		City        string  `json:"city"`
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		Pressure    float64 `json:"pressure"`
		Description string  `json:"description"`
		WindSpeed   float64 `json:"wind_speed"`
		Visibility  float64 `json:"visibility"`
		CreatedAt   string  `json:"created_at"`
		UpdatedAt   string  `json:"updated_at"`
	} `json:"data"`
}

func newIntegrationServer(t *testing.T, opts validation.Options) http.Handler {
	t.Helper()

	repo, err := database.NewGormWeatherRepository(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "weather.db"),
		Seed:     true,
		LogLevel: "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	service := application.NewWeatherService(repo, messaging.NopPublisher{}, excel.NewWorkbookExporter(nil), opts, nil)
	return NewAPIServer(service, testConfig(), nil).Handler()
}

func listAll(t *testing.T, h http.Handler) listBody {
	t.Helper()
	w := doRequest(t, h, http.MethodGet, "/api/weather", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIntegration_CreateThenGetAnyCase(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})
	before := listAll(t, h).Count

	w := doRequest(t, h, http.MethodPost, "/api/weather", barcelonaJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created recordBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Positive(t, created.Data.ID)
	assert.Equal(t, "Barcelona", created.Data.City)

	for _, name := range []string{"Barcelona", "BARCELONA", "barcelona"} {
		w = doRequest(t, h, http.MethodGet, "/api/weather/"+name, "")
		require.Equal(t, http.StatusOK, w.Code)

		var got recordBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.Data.ID, got.Data.ID)
		assert.Equal(t, "Barcelona", got.Data.City)
		assert.Equal(t, 24.5, got.Data.Temperature)
		assert.Equal(t, 65.0, got.Data.Humidity)
		assert.Equal(t, 1015.2, got.Data.Pressure)
		assert.Equal(t, "Sunny", got.Data.Description)
		assert.Equal(t, 12.3, got.Data.WindSpeed)
		assert.Equal(t, 15.0, got.Data.Visibility)
		assert.NotEmpty(t, got.Data.CreatedAt)
	}

	assert.Equal(t, before+1, listAll(t, h).Count)
}

func TestIntegration_DuplicateCreateLeavesRecordUntouched(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})

	w := doRequest(t, h, http.MethodGet, "/api/weather/london", "")
	require.Equal(t, http.StatusOK, w.Code)
	stored := w.Body.String()
	count := listAll(t, h).Count

	dup := `{"city":"LONDON","temperature":1,"humidity":1,"pressure":1,"description":"x","wind_speed":1,"visibility":1}`
	w = doRequest(t, h, http.MethodPost, "/api/weather", dup)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Weather data for LONDON already exists. Use PUT to update.", decodeBody(t, w)["message"])

	w = doRequest(t, h, http.MethodGet, "/api/weather/london", "")
	assert.Equal(t, stored, w.Body.String())
	assert.Equal(t, count, listAll(t, h).Count)
}

func TestIntegration_UpdateMissingIDLeavesCount(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})
	count := listAll(t, h).Count

	for _, id := range []string{"9999", "abc"} {
		w := doRequest(t, h, http.MethodPut, "/api/weather/"+id, barcelonaJSON)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, fmt.Sprintf("Weather data with ID %s not found", id), decodeBody(t, w)["message"])
	}

	assert.Equal(t, count, listAll(t, h).Count)
}

func TestIntegration_UpdateReplacesRecord(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})

	w := doRequest(t, h, http.MethodGet, "/api/weather/Paris", "")
	require.Equal(t, http.StatusOK, w.Code)
	var paris recordBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paris))

	body := `{"city":"Paris","temperature":30.1,"humidity":40,"pressure":1020,"description":"Hot","wind_speed":2,"visibility":20}`
	path := fmt.Sprintf("/api/weather/%d", paris.Data.ID)

	w = doRequest(t, h, http.MethodPut, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated recordBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Weather data updated successfully", updated.Message)
	assert.Equal(t, paris.Data.ID, updated.Data.ID)
	assert.Equal(t, 30.1, updated.Data.Temperature)
	assert.Equal(t, "Hot", updated.Data.Description)

	t.Run("missing field is rejected before writing", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPut, path, `{"city":"Paris"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(t, h, http.MethodGet, "/api/weather/Paris", "")
		var current recordBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
		assert.Equal(t, 30.1, current.Data.Temperature)
	})

	t.Run("renaming onto another city conflicts", func(t *testing.T) {
		clash := strings.Replace(body, `"Paris"`, `"tokyo"`, 1)
		w := doRequest(t, h, http.MethodPut, path, clash)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestIntegration_DeleteThenGet(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})

	w := doRequest(t, h, http.MethodGet, "/api/weather/Sydney", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sydney recordBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sydney))
	count := listAll(t, h).Count

	path := fmt.Sprintf("/api/weather/%d", sydney.Data.ID)
	w = doRequest(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("Weather data with ID %d deleted successfully", sydney.Data.ID), decodeBody(t, w)["message"])

	w = doRequest(t, h, http.MethodGet, "/api/weather/sydney", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, count-1, listAll(t, h).Count)

	w = doRequest(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntegration_SearchIsSubsequenceOfList(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})
	all := listAll(t, h)

	for _, fragment := range []string{"", "o", "ON", "york", "zz"} {
		w := doRequest(t, h, http.MethodGet, "/api/weather/search/"+fragment, "")
		require.Equal(t, http.StatusOK, w.Code)

		var found listBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
		assert.Equal(t, fragment, found.Query)

		var want []string
		for _, r := range all.Data {
			if strings.Contains(strings.ToLower(r.City), strings.ToLower(fragment)) {
				want = append(want, r.City)
			}
		}
		var got []string
		for _, r := range found.Data {
			got = append(got, r.City)
		}
		assert.Equal(t, want, got, "fragment %q", fragment)
		assert.Equal(t, len(want), found.Count)
	}
}

func TestIntegration_RangeEnforcement(t *testing.T) {
	wet := strings.Replace(barcelonaJSON, `"humidity":65`, `"humidity":150`, 1)

	t.Run("accepted by default", func(t *testing.T) {
		h := newIntegrationServer(t, validation.Options{})
		w := doRequest(t, h, http.MethodPost, "/api/weather", wet)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejected when enforced", func(t *testing.T) {
		h := newIntegrationServer(t, validation.Options{EnforceRanges: true})
		w := doRequest(t, h, http.MethodPost, "/api/weather", wet)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, validation.MsgOutOfRange, decodeBody(t, w)["message"])
	})
}

func TestIntegration_Export(t *testing.T) {
	h := newIntegrationServer(t, validation.Options{})

	w := doRequest(t, h, http.MethodGet, "/api/export/weather", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excel.ContentType, w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
