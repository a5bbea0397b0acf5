package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type GormWeatherRepository struct {
	db        *gorm.DB
	logger    logger.Logger
	closeOnce sync.Once
}

// NewGormWeatherRepository opens the configured database, makes sure the
// weather_data table exists and seeds it when empty.
func NewGormWeatherRepository(cfg config.DatabaseConfig, log logger.Logger) (*GormWeatherRepository, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithField("component", "weather_repository")

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.Printf{Log: log.WithField("component", "gorm")}, gormlogger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	repo := &GormWeatherRepository{db: db, logger: log}

	if err := repo.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.Seed {
		if err := repo.seed(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	log.Infof("Connected to %s database", cfg.Driver)
	return repo, nil
}

func (r *GormWeatherRepository) migrate() error {
	if err := r.db.AutoMigrate(&entities.WeatherRecord{}); err != nil {
		return fmt.Errorf("failed to migrate weather_data: %w", err)
	}
	return nil
}

func (r *GormWeatherRepository) seed(ctx context.Context) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	records := make([]*entities.WeatherRecord, 0, len(SampleData))
	for _, in := range SampleData {
		records = append(records, in.ToRecord(0))
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
	if result.Error != nil {
		return fmt.Errorf("failed to seed weather data: %w", result.Error)
	}

	r.logger.Infof("Seeded %d sample weather records", result.RowsAffected)
	return nil
}

func (r *GormWeatherRepository) ListAll(ctx context.Context) ([]entities.WeatherRecord, error) {
	var records []entities.WeatherRecord
	err := r.db.WithContext(ctx).
		Order("city_key ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list weather data: %w", err)
	}
	return nonNil(records), nil
}

func (r *GormWeatherRepository) FindByCity(ctx context.Context, city string) (*entities.WeatherRecord, error) {
	var record entities.WeatherRecord
	err := r.db.WithContext(ctx).
		Where("city_key = ?", entities.CityKey(city)).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find weather data by city: %w", err)
	}
	return &record, nil
}

func (r *GormWeatherRepository) FindByID(ctx context.Context, id int64) (*entities.WeatherRecord, error) {
	var record entities.WeatherRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find weather data by id: %w", err)
	}
	return &record, nil
}

func (r *GormWeatherRepository) Insert(ctx context.Context, input entities.WeatherInput) (entities.InsertResult, error) {
	record := input.ToRecord(0)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isDuplicateKey(err) {
			return entities.InsertResult{}, entities.ErrDuplicateCity
		}
		return entities.InsertResult{}, fmt.Errorf("failed to insert weather data: %w", err)
	}

	return entities.InsertResult{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// Update overwrites every mutable column. There is no lookup for another row
// with the new city; the unique index on city_key rejects a collision.
func (r *GormWeatherRepository) Update(ctx context.Context, id int64, input entities.WeatherInput) (entities.WriteResult, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.WeatherRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"city":        input.City,
			"city_key":    entities.CityKey(input.City),
			"temperature": input.Temperature,
			"humidity":    input.Humidity,
			"pressure":    input.Pressure,
			"description": input.Description,
			"wind_speed":  input.WindSpeed,
			"visibility":  input.Visibility,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return entities.WriteResult{}, entities.ErrDuplicateCity
		}
		return entities.WriteResult{}, fmt.Errorf("failed to update weather data: %w", result.Error)
	}
	return entities.WriteResult{RowsAffected: result.RowsAffected}, nil
}

func (r *GormWeatherRepository) Delete(ctx context.Context, id int64) (entities.WriteResult, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.WeatherRecord{})
	if result.Error != nil {
		return entities.WriteResult{}, fmt.Errorf("failed to delete weather data: %w", result.Error)
	}
	return entities.WriteResult{RowsAffected: result.RowsAffected}, nil
}

func (r *GormWeatherRepository) SearchByCity(ctx context.Context, fragment string) ([]entities.WeatherRecord, error) {
	pattern := "%" + escapeLike(entities.CityKey(fragment)) + "%"

	var records []entities.WeatherRecord
	err := r.db.WithContext(ctx).
		Where("city_key LIKE ? ESCAPE '!'", pattern).
		Order("city_key ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search weather data: %w", err)
	}
	return nonNil(records), nil
}

func (r *GormWeatherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.WeatherRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count weather data: %w", err)
	}
	return count, nil
}

func (r *GormWeatherRepository) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close releases the connection pool. Calls after the first are no-ops.
func (r *GormWeatherRepository) Close() error {
	var closeErr error
	r.closeOnce.Do(func() {
		sqlDB, err := r.db.DB()
		if err != nil {
			closeErr = err
			return
		}
		closeErr = sqlDB.Close()
		r.logger.Info("Database connection closed")
	})
	return closeErr
}

func nonNil(records []entities.WeatherRecord) []entities.WeatherRecord {
	if records == nil {
		return []entities.WeatherRecord{}
	}
	return records
}
