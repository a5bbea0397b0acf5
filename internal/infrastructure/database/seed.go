package database

import "github.com/k-shtanenko/city-weather/internal/domain/entities"

// SampleData is inserted into an empty table on startup.
var SampleData = []entities.WeatherInput{
	{City: "New York", Temperature: 22.5, Humidity: 65, Pressure: 1013.25, Description: "Partly cloudy", WindSpeed: 15.2, Visibility: 10.0},
	{City: "London", Temperature: 18.3, Humidity: 72, Pressure: 1008.5, Description: "Light rain", WindSpeed: 12.8, Visibility: 8.5},
	{City: "Tokyo", Temperature: 28.7, Humidity: 58, Pressure: 1015.8, Description: "Sunny", WindSpeed: 8.4, Visibility: 15.0},
	{City: "Sydney", Temperature: 25.1, Humidity: 70, Pressure: 1012.3, Description: "Overcast", WindSpeed: 18.6, Visibility: 12.0},
	{City: "Paris", Temperature: 19.8, Humidity: 68, Pressure: 1010.2, Description: "Foggy", WindSpeed: 10.3, Visibility: 6.0},
}
