package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// Deps collects everything route registration needs.
type Deps struct {
	Cfg         config.Config
	Bookings    *handler.BookingHandler
	Restaurants *handler.RestaurantHandler
	Auth        *handler.AuthHandler
	Notify      *handler.NotificationHandler
	Redis       *redis.Client
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
}

// Register wires all routes onto the Echo instance.
//
// Booking routes are open to anonymous diners.  Public catalog reads
// sit behind the Redis response cache.  Catalog mutations under
// /admin require a staff access token.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	cached := middleware.NewRedisCache(d.Cache, d.Redis)

	// Reservations.
	bookings := e.Group("/bookings", limiter)
	bookings.POST("", d.Bookings.Create)
	bookings.GET("", d.Bookings.List)
	bookings.GET("/:id", d.Bookings.Get)
	bookings.PUT("/:id", d.Bookings.Update)
	bookings.DELETE("/:id", d.Bookings.Delete)

	// Public catalog reads.
	e.GET("/restaurants", d.Restaurants.List, limiter, cached)
	e.GET("/restaurants/:id", d.Restaurants.Get, limiter, cached)

	// Staff-only catalog mutations.
	admin := e.Group("/admin",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	admin.POST("", d.Restaurants.Create)
	admin.PUT("/:id", d.Restaurants.Upsert)
	admin.DELETE("/:id", d.Restaurants.Delete)

	// Staff accounts.
	auth := e.Group("/auth", limiter)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	// Live booking feed (server-sent events).
	e.GET("/notification", d.Notify.Stream)
}
