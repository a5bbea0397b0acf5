package testutils

import (
	"context"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

type MockWeatherRepository struct {
	mock.Mock
}

func (m *MockWeatherRepository) ListAll(ctx context.Context) ([]entities.WeatherRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRepository) FindByCity(ctx context.Context, city string) (*entities.WeatherRecord, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRepository) FindByID(ctx context.Context, id int64) (*entities.WeatherRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRepository) Insert(ctx context.Context, input entities.WeatherInput) (entities.InsertResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(entities.InsertResult), args.Error(1)
}

func (m *MockWeatherRepository) Update(ctx context.Context, id int64, input entities.WeatherInput) (entities.WriteResult, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(entities.WriteResult), args.Error(1)
}

func (m *MockWeatherRepository) Delete(ctx context.Context, id int64) (entities.WriteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.WriteResult), args.Error(1)
}

func (m *MockWeatherRepository) SearchByCity(ctx context.Context, fragment string) ([]entities.WeatherRecord, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWeatherRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWeatherRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event entities.WeatherEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportRecords(ctx context.Context, records []entities.WeatherRecord) ([]byte, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExporter) ContentType() string {
	args := m.Called()
	return args.String(0)
}

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) List(ctx context.Context) ([]entities.WeatherRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) GetByCity(ctx context.Context, city string) (*entities.WeatherRecord, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Search(ctx context.Context, fragment string) ([]entities.WeatherRecord, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Create(ctx context.Context, payload map[string]interface{}) (*entities.WeatherRecord, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Update(ctx context.Context, id string, payload map[string]interface{}) (*entities.WeatherRecord, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWeatherService) Export(ctx context.Context, fragment string) ([]byte, string, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockWeatherService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
