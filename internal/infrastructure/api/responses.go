package api

import "github.com/k-shtanenko/city-weather/internal/domain/entities"

type ListResponse struct {
	Success bool                     `json:"success"`
	Data    []entities.WeatherRecord `json:"data"`
	Count   int                      `json:"count"`
}

type SearchResponse struct {
	Success bool                     `json:"success"`
	Data    []entities.WeatherRecord `json:"data"`
	Count   int                      `json:"count"`
	Query   string                   `json:"query"`
}

type RecordResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Data    *entities.WeatherRecord `json:"data"`
}

// MessageResponse is used both for client errors and for delete confirmations.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse carries the underlying message of an internal failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

type PanicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Frontend  string            `json:"frontend"`
}

// WeatherRequest documents the create/update body. Handlers decode into a
// generic map so presence and type checks see exactly what was sent.
type WeatherRequest struct {
	City        string  `json:"city" example:"Barcelona"`
	Temperature float64 `json:"temperature" example:"24.5"`
	Humidity    float64 `json:"humidity" example:"65"`
	Pressure    float64 `json:"pressure" example:"1015.2"`
	Description string  `json:"description" example:"Sunny"`
	WindSpeed   float64 `json:"wind_speed" example:"12.3"`
	Visibility  float64 `json:"visibility" example:"15"`
}
