// Package main provides the API server entry point.
package main

import (
	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/middleware"
)

// SetupRoutes configures the Echo instance: middleware chain, health
// endpoints and the versioned API surface.
func SetupRoutes(c *Container) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(c.Logger))
	e.Use(middleware.RequestLogging(c.Logger))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Logger:    c.Logger,
		Store:     c.RateLimitStore,
		Requests:  c.Config.RateLimit.Requests,
		Window:    c.Config.RateLimit.Window,
		SkipPaths: []string{"/health", "/ready"},
	}))
	e.Use(middleware.Auth(middleware.AuthConfig{
		Logger:    c.Logger,
		Validator: c.TokenValidator,
		Resolver:  c.UserResolver,
		SkipPaths: []string{"/health", "/ready"},
	}))

	c.HealthHandler.RegisterRoutes(e)

	api := e.Group("/api/v1")
	c.QuizHandler.RegisterRoutes(api)
	c.QuestionHandler.RegisterRoutes(api)
	c.CategoryHandler.RegisterRoutes(api)
	c.WSHandler.RegisterRoutes(api)

	return e
}
