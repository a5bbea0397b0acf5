// Package client is a small Go client for the weather records API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

type Record struct {
	ID          int64     `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Pressure    float64   `json:"pressure"`
	Description string    `json:"description"`
	WindSpeed   float64   `json:"wind_speed"`
	Visibility  float64   `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Input struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Visibility  float64 `json:"visibility"`
}

type Health struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

func (e *APIError) Conflict() bool { return e.StatusCode == http.StatusConflict }

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type listBody struct {
	Data  []Record `json:"data"`
	Count int      `json:"count"`
}

type recordBody struct {
	Message string `json:"message"`
	Data    Record `json:"data"`
}

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func WithRetries(count int, wait time.Duration) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(count).SetRetryWaitTime(wait)
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *resty.Client) {
		c.SetTransport(hc.Transport)
		if hc.Timeout > 0 {
			c.SetTimeout(hc.Timeout)
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second).
		SetError(&errorBody{})

	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func (c *Client) List(ctx context.Context) ([]Record, error) {
	var body listBody
	resp, err := c.http.R().SetContext(ctx).SetResult(&body).Get("/api/weather")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) Get(ctx context.Context, city string) (*Record, error) {
	var body recordBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("city", city).
		SetResult(&body).
		Get("/api/weather/{city}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &body.Data, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	var body listBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("query", query).
		SetResult(&body).
		Get("/api/weather/search/{query}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) Create(ctx context.Context, in Input) (*Record, error) {
	var body recordBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&body).
		Post("/api/weather")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &body.Data, nil
}

func (c *Client) Update(ctx context.Context, id int64, in Input) (*Record, error) {
	var body recordBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(in).
		SetResult(&body).
		Put("/api/weather/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &body.Data, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/weather/{id}")
	return check(resp, err)
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var body Health
	resp, err := c.http.R().SetContext(ctx).SetResult(&body).Get("/health")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &body, nil
}

// Export downloads the spreadsheet of all records, or of cities containing
// query when it is not empty.
func (c *Client) Export(ctx context.Context, query string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	resp, err := req.Get("/api/export/weather")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("weather api request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
