// Package server contains the HTTP handlers and route wiring for the
// Masterblog API.
package server

import (
	"context"
	"strings"
	"time"

	"masterblog/internal/config"
	"masterblog/internal/middleware"
	"masterblog/internal/models"
	"masterblog/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	tokenIssuer   = "masterblog-api"
	tokenAudience = "masterblog-client"
)

// Rate-limit policy: the day and hour ceilings apply to every route, the
// minute ceiling only to the post listing.
var (
	limitPerDay    = middleware.Limit{Name: "default_day", Max: 200, Window: 24 * time.Hour}
	limitPerHour   = middleware.Limit{Name: "default_hour", Max: 50, Window: time.Hour}
	limitListPosts = middleware.Limit{Name: "list_posts", Max: 10, Window: time.Minute}
)

// Server holds all dependencies and provides handlers
type Server struct {
	config  *config.Config
	redis   *redis.Client
	limiter *middleware.Limiter
	posts   *repository.PostRepository
	users   *repository.UserStore
}

// NewServer creates a server instance with already-initialized dependencies.
// redisClient may be nil; the rate limiter then counts in process memory.
func NewServer(cfg *config.Config, posts *repository.PostRepository, redisClient *redis.Client) *Server {
	return &Server{
		config:  cfg,
		redis:   redisClient,
		limiter: middleware.NewLimiter(redisClient),
		posts:   posts,
		users:   repository.NewUserStore(),
	}
}

// StartLimiterJanitor starts the periodic cleanup of idle in-process rate
// limit buckets. Only useful when running without Redis; stops when ctx is
// cancelled.
func (s *Server) StartLimiterJanitor(ctx context.Context) {
	if s.redis == nil {
		s.limiter.StartJanitor(ctx, 2*time.Minute)
	}
}

// App builds the Fiber application with all middleware and routes attached.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Masterblog API",
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Structured logging middleware (after requestid)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. the rate
	// limiter) so browser clients still receive CORS headers on errors.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Process-wide ceilings per client address
	app.Use(middleware.RateLimit(s.limiter, limitPerDay, limitPerHour))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	api := app.Group("/api")

	api.Post("/register", s.Register)
	api.Post("/login", s.Login)

	posts := api.Group("/posts")
	posts.Get("/", middleware.RateLimit(s.limiter, limitListPosts), s.GetPosts)
	posts.Get("/search", s.SearchPosts)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	posts.Post("/:id/comments", s.AddComment)
	posts.Post("/:id/like", s.LikePost)
	posts.Put("/:id", s.AuthRequired(), s.UpdatePost)
	// Delete, comments and like are deliberately left unauthenticated; tests
	// assert this stays true until the API contract changes.
	posts.Delete("/:id", s.DeletePost)
}

// HealthCheck handles liveness probe requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	redisStatus := "unconfigured"
	if s.redis != nil {
		redisStatus = "healthy"
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	return c.JSON(fiber.Map{
		"status": "up",
		"posts":  s.posts.Len(),
		"checks": fiber.Map{
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It accepts a Bearer
// token signed with the per-process secret and stores the authenticated
// username in c.Locals("username").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		username, ok := claims["sub"].(string)
		if !ok || username == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		c.Locals("username", username)
		return c.Next()
	}
}
