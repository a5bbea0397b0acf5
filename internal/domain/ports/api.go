package ports

import (
	"context"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
)

// WeatherService is what the HTTP handlers call. Create and Update take the
// raw decoded JSON object so that presence and type checks see exactly what
// the client sent.
type WeatherService interface {
	List(ctx context.Context) ([]entities.WeatherRecord, error)
	GetByCity(ctx context.Context, city string) (*entities.WeatherRecord, error)
	Search(ctx context.Context, fragment string) ([]entities.WeatherRecord, error)
	Create(ctx context.Context, payload map[string]interface{}) (*entities.WeatherRecord, error)
	Update(ctx context.Context, id string, payload map[string]interface{}) (*entities.WeatherRecord, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, fragment string) (data []byte, contentType string, err error)
	HealthCheck(ctx context.Context) error
}

type APIServer interface {
	Start() error
	Stop(ctx context.Context) error
}
