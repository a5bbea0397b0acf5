package ports

import (
	"context"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
)

type Exporter interface {
	ExportRecords(ctx context.Context, records []entities.WeatherRecord) ([]byte, error)
	ContentType() string
}
