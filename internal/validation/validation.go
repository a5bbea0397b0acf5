// Package validation holds the pure checks applied to weather payloads before
// anything is written: required fields, primitive types, numeric ranges, and
// the city-name sanitizer.
package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
)

// Payload is a decoded JSON object as received from a client.
type Payload = map[string]interface{}

const (
	FieldCity        = "city"
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldPressure    = "pressure"
	FieldDescription = "description"
	FieldWindSpeed   = "wind_speed"
	FieldVisibility  = "visibility"
)

// RequiredFields is listed in the order used by error messages.
var RequiredFields = []string{
	FieldCity,
	FieldTemperature,
	FieldHumidity,
	FieldPressure,
	FieldDescription,
	FieldWindSpeed,
	FieldVisibility,
}

var numericFields = []string{
	FieldTemperature,
	FieldHumidity,
	FieldPressure,
	FieldWindSpeed,
	FieldVisibility,
}

const (
	MsgRequiredFields = "All fields are required: city, temperature, humidity, pressure, description, wind_speed, visibility"
	MsgInvalidTypes   = "Invalid data types provided"
	MsgOutOfRange     = "Values are outside acceptable ranges"
)

const (
	MinTemperature = -100.0
	MaxTemperature = 100.0
	MinHumidity    = 0.0
	MaxHumidity    = 100.0
)

type Options struct {
	EnforceRanges bool
	SanitizeCity  bool
}

func HasAllRequiredFields(p Payload) bool {
	for _, field := range RequiredFields {
		if v, ok := p[field]; !ok || v == nil {
			return false
		}
	}
	return true
}

func HasValidTypes(p Payload) bool {
	if !isString(p[FieldCity]) || !isString(p[FieldDescription]) {
		return false
	}
	for _, field := range numericFields {
		if _, ok := toFloat(p[field]); !ok {
			return false
		}
	}
	return true
}

func IsInRange(p Payload) bool {
	values := make(map[string]float64, len(numericFields))
	for _, field := range numericFields {
		v, ok := toFloat(p[field])
		if !ok || math.IsNaN(v) {
			return false
		}
		values[field] = v
	}

	return values[FieldHumidity] >= MinHumidity && values[FieldHumidity] <= MaxHumidity &&
		values[FieldPressure] > 0 &&
		values[FieldWindSpeed] >= 0 &&
		values[FieldVisibility] >= 0 &&
		values[FieldTemperature] >= MinTemperature && values[FieldTemperature] <= MaxTemperature
}

// SanitizeCityName trims surrounding whitespace and drops angle brackets.
// Anything that is not a string becomes "".
func SanitizeCityName(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

func RoundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}

// Check runs required -> types -> ranges and stops at the first failure. Empty
// city or description strings count as missing. Ranges are only evaluated when
// opts.EnforceRanges is set.
func Check(p Payload, opts Options) error {
	if !HasAllRequiredFields(p) || isEmptyString(p[FieldCity]) || isEmptyString(p[FieldDescription]) {
		return entities.ValidationError{Reason: MsgRequiredFields}
	}
	if !HasValidTypes(p) {
		return entities.ValidationError{Reason: MsgInvalidTypes}
	}
	if opts.EnforceRanges && !IsInRange(p) {
		return entities.ValidationError{Reason: MsgOutOfRange}
	}
	return nil
}

// ToInput converts a payload that already passed Check.
func ToInput(p Payload, opts Options) entities.WeatherInput {
	city, _ := p[FieldCity].(string)
	if opts.SanitizeCity {
		city = SanitizeCityName(city)
	}
	description, _ := p[FieldDescription].(string)

	input := entities.WeatherInput{
		City:        city,
		Description: description,
	}
	input.Temperature, _ = toFloat(p[FieldTemperature])
	input.Humidity, _ = toFloat(p[FieldHumidity])
	input.Pressure, _ = toFloat(p[FieldPressure])
	input.WindSpeed, _ = toFloat(p[FieldWindSpeed])
	input.Visibility, _ = toFloat(p[FieldVisibility])
	return input
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && s == ""
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
