package entities

import (
	"strings"
	"time"
)

// WeatherRecord is a single city's current weather row. It doubles as the gorm
// model for the weather_data table.
type WeatherRecord struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	City        string    `json:"city" gorm:"size:191;not null"`
	CityKey     string    `json:"-" gorm:"column:city_key;size:191;not null;uniqueIndex:idx_weather_data_city_key"`
	Temperature float64   `json:"temperature" gorm:"not null"`
	Humidity    float64   `json:"humidity" gorm:"not null"`
	Pressure    float64   `json:"pressure" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	WindSpeed   float64   `json:"wind_speed" gorm:"not null"`
	Visibility  float64   `json:"visibility" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WeatherRecord) TableName() string { return "weather_data" }

// WeatherInput holds the caller-supplied fields of a record. Create and update
// always carry all of them.
type WeatherInput struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Visibility  float64 `json:"visibility"`
}

// CityKey is the normalized form used for case-insensitive uniqueness and lookup.
func CityKey(city string) string {
	return strings.ToLower(city)
}

func (in WeatherInput) ToRecord(id int64) *WeatherRecord {
	return &WeatherRecord{
		ID:          id,
		City:        in.City,
		CityKey:     CityKey(in.City),
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		Pressure:    in.Pressure,
		Description: in.Description,
		WindSpeed:   in.WindSpeed,
		Visibility:  in.Visibility,
	}
}

func (r *WeatherRecord) Input() WeatherInput {
	return WeatherInput{
		City:        r.City,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Pressure:    r.Pressure,
		Description: r.Description,
		WindSpeed:   r.WindSpeed,
		Visibility:  r.Visibility,
	}
}

func (r *WeatherRecord) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":          r.ID,
		"city":        r.City,
		"temperature": r.Temperature,
		"humidity":    r.Humidity,
		"pressure":    r.Pressure,
		"description": r.Description,
		"wind_speed":  r.WindSpeed,
		"visibility":  r.Visibility,
		"created_at":  r.CreatedAt.Format(time.RFC3339),
		"updated_at":  r.UpdatedAt.Format(time.RFC3339),
	}
}

// InsertResult is what the store reports after a successful insert.
type InsertResult struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WriteResult reports how many rows an update or delete touched. Zero means
// the id did not exist.
type WriteResult struct {
	RowsAffected int64
}

func (r WriteResult) Found() bool { return r.RowsAffected > 0 }
