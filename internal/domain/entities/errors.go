package entities

import (
	"errors"
	"fmt"
)

// ErrDuplicateCity is returned by the store when a case-insensitive match of
// the city already exists.
var ErrDuplicateCity = errors.New("duplicate city")

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

func CityNotFound(city string) NotFoundError {
	return NotFoundError{Message: fmt.Sprintf("Weather data not found for city: %s", city)}
}

func IDNotFound(id string) NotFoundError {
	return NotFoundError{Message: fmt.Sprintf("Weather data with ID %s not found", id)}
}

type ConflictError struct {
	City string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("Weather data for %s already exists. Use PUT to update.", e.City)
}

func (e ConflictError) Unwrap() error {
	return ErrDuplicateCity
}
