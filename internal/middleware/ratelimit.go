package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// RateLimitMiddleware limits requests per client IP using a Redis counter
// with a rolling window. When Redis is unavailable requests pass through.
func RateLimitMiddleware(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		key := name + ":" + c.ClientIP()
		allowed, err := database.CheckRateLimit(key, limit, window)
		if err != nil {
			// Redis hiccup, fail open.
			logger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed")
			c.Next()
			return
		}

		if !allowed {
			logger.Warn().
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthRateLimit covers login, signup and password reset endpoints.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware("auth", 20, time.Minute)
}

// UploadRateLimit covers endpoints that push images to the image host.
func UploadRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware("upload", 30, time.Minute)
}

// GeneralRateLimit covers the rest of the API.
func GeneralRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware("general", 600, time.Minute)
}
