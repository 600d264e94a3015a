// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/config"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/handler"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently this is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the booking and notification surface.  All
// routes require a valid access token; refund processing additionally
// requires the ADMIN role.  Mutating booking routes sit behind the Redis
// token-bucket limiter and the availability read behind the response cache;
// both degrade to pass-through when rdb is nil.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, n *handler.NotificationHandler, jwtSecret string, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole("CLIENT", "HOST", "ADMIN"))

	// Availability is read-heavy; cache the answer briefly.
	v1.GET("/locations/:id/availability", b.CheckAvailability, cache)

	// Lifecycle operations.
	v1.POST("/bookings", b.Create, limiter)
	v1.POST("/bookings/:id/approve", b.Approve, limiter)
	v1.POST("/bookings/:id/reject", b.Reject, limiter)
	v1.POST("/bookings/:id/cancel", b.Cancel, limiter)
	v1.POST("/bookings/:id/request-refund", b.RequestRefund, limiter)
	// Refunds move money and write the audit trail; admins only.
	v1.POST("/bookings/:id/refund", b.Refund, limiter, middleware.RequireRole("ADMIN"))

	// Reads.
	v1.GET("/bookings/:id", b.Get)
	v1.GET("/bookings/:id/history", b.History, middleware.RequireRole("ADMIN"))
	v1.GET("/my-bookings", b.ListMine)
	v1.GET("/locations/:id/bookings", b.ListForLocation)

	// Notification sink surface.
	v1.GET("/notifications", n.List)
	v1.POST("/notifications/:id/read", n.MarkRead)
}
