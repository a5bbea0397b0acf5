package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/k-shtanenko/city-weather/internal/domain/ports"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	"github.com/k-shtanenko/city-weather/internal/validation"
)

type WeatherService struct {
	repo      ports.WeatherRepository
	publisher ports.EventPublisher
	exporter  ports.Exporter
	opts      validation.Options
	logger    logger.Logger
}

// NewWeatherService wires the request logic. publisher and exporter may be
// nil: events are then skipped and Export reports an error.
func NewWeatherService(
	repo ports.WeatherRepository,
	publisher ports.EventPublisher,
	exporter ports.Exporter,
	opts validation.Options,
	log logger.Logger,
) *WeatherService {
	if log == nil {
		log = logger.NewNop()
	}
	return &WeatherService{
		repo:      repo,
		publisher: publisher,
		exporter:  exporter,
		opts:      opts,
		logger:    log.WithField("component", "weather_service"),
	}
}

func (s *WeatherService) List(ctx context.Context) ([]entities.WeatherRecord, error) {
	return s.repo.ListAll(ctx)
}

func (s *WeatherService) GetByCity(ctx context.Context, city string) (*entities.WeatherRecord, error) {
	record, err := s.repo.FindByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, entities.CityNotFound(city)
	}
	return record, nil
}

func (s *WeatherService) Search(ctx context.Context, fragment string) ([]entities.WeatherRecord, error) {
	return s.repo.SearchByCity(ctx, fragment)
}

func (s *WeatherService) Create(ctx context.Context, payload map[string]interface{}) (*entities.WeatherRecord, error) {
	if err := validation.Check(payload, s.opts); err != nil {
		return nil, err
	}
	input := validation.ToInput(payload, s.opts)

	result, err := s.repo.Insert(ctx, input)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateCity) {
			return nil, entities.ConflictError{City: input.City}
		}
		return nil, err
	}

	record := input.ToRecord(result.ID)
	record.CreatedAt = result.CreatedAt
	record.UpdatedAt = result.UpdatedAt

	s.logger.WithFields(map[string]interface{}{
		"id":   record.ID,
		"city": record.City,
	}).Info("Weather record created")

	s.publish(ctx, entities.NewWeatherEvent(entities.EventTypeCreated, record.ID, record))
	return record, nil
}

// Update replaces every field of the record with the given id. An id that is
// not an integer cannot exist and is reported as not found.
func (s *WeatherService) Update(ctx context.Context, id string, payload map[string]interface{}) (*entities.WeatherRecord, error) {
	if err := validation.Check(payload, s.opts); err != nil {
		return nil, err
	}

	recordID, ok := parseID(id)
	if !ok {
		return nil, entities.IDNotFound(id)
	}
	input := validation.ToInput(payload, s.opts)

	result, err := s.repo.Update(ctx, recordID, input)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateCity) {
			return nil, entities.ConflictError{City: input.City}
		}
		return nil, err
	}
	if !result.Found() {
		return nil, entities.IDNotFound(id)
	}

	record := input.ToRecord(recordID)
	if stored, err := s.repo.FindByID(ctx, recordID); err != nil {
		s.logger.Warnf("Failed to reload weather record %d: %v", recordID, err)
	} else if stored != nil {
		record = stored
	}

	s.logger.WithFields(map[string]interface{}{
		"id":   record.ID,
		"city": record.City,
	}).Info("Weather record updated")

	s.publish(ctx, entities.NewWeatherEvent(entities.EventTypeUpdated, record.ID, record))
	return record, nil
}

func (s *WeatherService) Delete(ctx context.Context, id string) error {
	recordID, ok := parseID(id)
	if !ok {
		return entities.IDNotFound(id)
	}

	result, err := s.repo.Delete(ctx, recordID)
	if err != nil {
		return err
	}
	if !result.Found() {
		return entities.IDNotFound(id)
	}

	s.logger.WithField("id", recordID).Info("Weather record deleted")

	s.publish(ctx, entities.NewWeatherEvent(entities.EventTypeDeleted, recordID, nil))
	return nil
}

// Export renders all records, or those whose city contains fragment, as a
// spreadsheet.
func (s *WeatherService) Export(ctx context.Context, fragment string) ([]byte, string, error) {
	if s.exporter == nil {
		return nil, "", errors.New("export is not configured")
	}

	var (
		records []entities.WeatherRecord
		err     error
	)
	if fragment == "" {
		records, err = s.repo.ListAll(ctx)
	} else {
		records, err = s.repo.SearchByCity(ctx, fragment)
	}
	if err != nil {
		return nil, "", err
	}

	data, err := s.exporter.ExportRecords(ctx, records)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export weather data: %w", err)
	}
	return data, s.exporter.ContentType(), nil
}

func (s *WeatherService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// publish runs after the write has committed, so a failure is only logged.
func (s *WeatherService) publish(ctx context.Context, event entities.WeatherEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warnf("Failed to publish %s event for record %d", event.Type, event.RecordID)
	}
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
