package ports

import (
	"context"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
)

// WeatherRepository is the storage adapter behind the weather endpoints.
// Lookups return (nil, nil) when nothing matches.
type WeatherRepository interface {
	ListAll(ctx context.Context) ([]entities.WeatherRecord, error)
	FindByCity(ctx context.Context, city string) (*entities.WeatherRecord, error)
	FindByID(ctx context.Context, id int64) (*entities.WeatherRecord, error)
	Insert(ctx context.Context, input entities.WeatherInput) (entities.InsertResult, error)
	Update(ctx context.Context, id int64, input entities.WeatherInput) (entities.WriteResult, error)
	Delete(ctx context.Context, id int64) (entities.WriteResult, error)
	SearchByCity(ctx context.Context, fragment string) ([]entities.WeatherRecord, error)
	Count(ctx context.Context) (int64, error)
	HealthCheck(ctx context.Context) error
	Close() error
}
