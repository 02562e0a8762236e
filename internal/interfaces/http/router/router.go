// Package router wires handlers into the gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/infrastructure/config"
	"github.com/propledger/backend/internal/interfaces/http/handler"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Lifecycle *handler.LifecycleHandler
	Backup    *handler.BackupHandler
}

// New builds the gin engine with all routes and middleware
func New(cfg *config.Config, handlers Handlers, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	handlers.System.RegisterRoutes(r)

	api := r.Group("/api/v1")
	handlers.Lifecycle.RegisterRoutes(api.Group("/lifecycle"))
	handlers.Backup.RegisterRoutes(api.Group("/backup"))

	return r, nil
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
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

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
