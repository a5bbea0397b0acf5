package ports

import (
	"context"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
)

type EventPublisher interface {
	Publish(ctx context.Context, event entities.WeatherEvent) error
	Close() error
}
