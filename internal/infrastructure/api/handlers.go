package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/k-shtanenko/city-weather/internal/domain/ports"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
)

const (
	msgInvalidJSON   = "Invalid JSON payload"
	msgCreated       = "Weather data added successfully"
	msgUpdated       = "Weather data updated successfully"
	msgDeletedFormat = "Weather data with ID %s deleted successfully"
	msgRouteNotFound = "API endpoint not found"
	msgPanic         = "Something went wrong!"
	msgRateLimited   = "Too many requests, please try again later."
	healthOK         = "OK"
	healthDegraded   = "DEGRADED"
	isoMillisFormat  = "2006-01-02T15:04:05.000Z07:00"
	exportFileName   = "weather-data.xlsx"
)

type APIHandler struct {
	service   ports.WeatherService
	version   string
	startedAt time.Time
	logger    logger.Logger
}

func NewAPIHandler(service ports.WeatherService, version string, log logger.Logger) *APIHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &APIHandler{
		service:   service,
		version:   version,
		startedAt: time.Now(),
		logger:    log.WithField("component", "api_handler"),
	}
}

// ListWeather godoc
// @Summary List weather records
// @Description Returns every stored record ordered by city
// @Tags weather
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather [get]
func (h *APIHandler) ListWeather(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Data:    records,
		Count:   len(records),
	})
}

// GetWeatherByCity godoc
// @Summary Get weather for a city
// @Description Case-insensitive exact match on the city name
// @Tags weather
// @Produce json
// @Param city path string true "City name"
// @Success 200 {object} RecordResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather/{city} [get]
func (h *APIHandler) GetWeatherByCity(c *gin.Context) {
	record, err := h.service.GetByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecordResponse{
		Success: true,
		Data:    record,
	})
}

// SearchWeather godoc
// @Summary Search weather records
// @Description Case-insensitive substring match on the city name. An empty query returns every record.
// @Tags weather
// @Produce json
// @Param query path string true "Part of a city name"
// @Success 200 {object} SearchResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather/search/{query} [get]
func (h *APIHandler) SearchWeather(c *gin.Context) {
	query := strings.TrimPrefix(c.Param("query"), "/")

	records, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Data:    records,
		Count:   len(records),
		Query:   query,
	})
}

// CreateWeather godoc
// @Summary Add weather for a new city
// @Tags weather
// @Accept json
// @Produce json
// @Param record body WeatherRequest true "Weather data"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} MessageResponse
// @Failure 409 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather [post]
func (h *APIHandler) CreateWeather(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	record, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RecordResponse{
		Success: true,
		Message: msgCreated,
		Data:    record,
	})
}

// UpdateWeather godoc
// @Summary Replace a weather record
// @Description All fields are required; the record is replaced as a whole
// @Tags weather
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body WeatherRequest true "Weather data"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 409 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather/{id} [put]
func (h *APIHandler) UpdateWeather(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	record, err := h.service.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecordResponse{
		Success: true,
		Message: msgUpdated,
		Data:    record,
	})
}

// DeleteWeather godoc
// @Summary Delete a weather record
// @Tags weather
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/weather/{id} [delete]
func (h *APIHandler) DeleteWeather(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: fmt.Sprintf(msgDeletedFormat, id),
	})
}

// ExportWeather godoc
// @Summary Download weather records as a spreadsheet
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param q query string false "Only cities containing this text"
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /api/export/weather [get]
func (h *APIHandler) ExportWeather(c *gin.Context) {
	data, contentType, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exportFileName))
	c.Data(http.StatusOK, contentType, data)
}

// HealthCheck godoc
// @Summary Service health
// @Description Status is DEGRADED when the database does not answer a ping
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *APIHandler) HealthCheck(c *gin.Context) {
	status := healthOK
	if err := h.service.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warnf("Health check failed: %v", err)
		status = healthDegraded
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(isoMillisFormat),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

// Index godoc
// @Summary API index
// @Tags system
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *APIHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{
		Message: "Weather API Server",
		Version: h.version,
		Endpoints: map[string]string{
			"GET /api/weather":               "Get all weather data",
			"GET /api/weather/:city":         "Get weather data by city name",
			"POST /api/weather":              "Add new weather data",
			"PUT /api/weather/:id":           "Update weather data by ID",
			"DELETE /api/weather/:id":        "Delete weather data by ID",
			"GET /api/weather/search/:query": "Search weather data by city name",
			"GET /api/export/weather":        "Download weather data as an Excel workbook",
			"GET /health":                    "Service health",
		},
		Frontend: "Dashboard available in the weather-frontend directory",
	})
}

func (h *APIHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, MessageResponse{
		Success: false,
		Message: msgRouteNotFound,
	})
}

// bindPayload decodes the body as a JSON object. An empty body is treated as
// an empty object so that it fails the required-fields check.
func (h *APIHandler) bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}

	payload := map[string]interface{}{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return payload, true
	}

	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, MessageResponse{
			Success: false,
			Message: msgInvalidJSON,
		})
		return nil, false
	}
	return payload, true
}

func (h *APIHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr entities.ValidationError
		notFoundErr   entities.NotFoundError
		conflictErr   entities.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, MessageResponse{Success: false, Message: err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, MessageResponse{Success: false, Message: err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, MessageResponse{Success: false, Message: err.Error()})
	default:
		logger.FromContext(c.Request.Context(), h.logger).
			WithError(err).
			Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
