package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
)

const localeKey = "locale"

// CORS allows the browser shell to call the API from any origin
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Accept-Language, X-Session-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request once it has been served
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Locale negotiates the response locale from ?lang= and Accept-Language
func Locale(fallback models.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := i18n.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"), fallback)
		c.Set(localeKey, loc)
		c.Header("Content-Language", string(loc))
		c.Next()
	}
}

func locale(c *gin.Context) models.Locale {
	if v, ok := c.Get(localeKey); ok {
		if loc, ok := v.(models.Locale); ok {
			return loc
		}
	}
	return models.LocaleHindi
}
