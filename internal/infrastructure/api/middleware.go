package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/k-shtanenko/city-weather/internal/config"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	"golang.org/x/time/rate"
)

const RequestIDHeader = "X-Request-ID"

type Middleware struct {
	logger      logger.Logger
	rateLimiter *rate.Limiter
	corsOrigins []string
}

// NewMiddleware allows rateLimit requests per rateWindow with bursts of the
// same size. A non-positive rateLimit disables limiting.
func NewMiddleware(cfg config.APIConfig, log logger.Logger) *Middleware {
	if log == nil {
		log = logger.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 && cfg.RateLimitWindow > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateLimitWindow/time.Duration(cfg.RateLimit)), cfg.RateLimit)
	}

	return &Middleware{
		logger:      log.WithField("component", "middleware"),
		rateLimiter: limiter,
		corsOrigins: cfg.CorsAllowedOrigins,
	}
}

func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

func (m *Middleware) CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(m.corsOrigins) == 0 || containsWildcard(m.corsOrigins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = m.corsOrigins
	}

	return cors.New(cfg)
}

func (m *Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		log := logger.FromContext(c.Request.Context(), m.logger)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				log.Error(e)
			}
			return
		}

		log.Infof("HTTP | %3d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			path,
		)
	}
}

func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.rateLimiter != nil && !m.rateLimiter.Allow() {
			m.logger.Warnf("Rate limit exceeded for IP: %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, MessageResponse{
				Success: false,
				Message: msgRateLimited,
			})
			return
		}
		c.Next()
	}
}

func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context(), m.logger).Errorf("Panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, PanicResponse{
					Success: false,
					Message: msgPanic,
					Error:   fmt.Sprint(r),
				})
			}
		}()
		c.Next()
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
