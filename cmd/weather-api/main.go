package main

import (
	"github.com/k-shtanenko/city-weather/internal/bootstrap"
)

// @schemes http

// @title City Weather API
// @version 1.0.0
// @description CRUD API over current weather records keyed by city.

// @host localhost:3000
// @BasePath /

func main() {
	bootstrap.Bootstrap()
}
