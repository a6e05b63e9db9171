package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/handler"
	"github.com/iliyamo/hotel-back-office/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff authentication endpoints.  Token
// acquisition lives under /api/v1/auth; /api/v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body, so no JWT is required.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBackOffice registers the protected back-office API: clients,
// rooms and reservations.  Every route requires a valid access token
// and a staff role; both ADMIN and RECEPTIONIST may operate the desk,
// deletes are ADMIN only.  extra middleware (response cache, rate
// limit) is applied after authentication so cache keys and rate-limit
// buckets can see the authenticated user.
func RegisterBackOffice(e *echo.Echo, cl *handler.ClientHandler, rm *handler.RoomHandler, rs *handler.ReservationHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/api/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "RECEPTIONIST"),
	)
	g.Use(extra...)

	admin := middleware.RequireRole("ADMIN")

	g.POST("/clients", cl.Create)
	g.GET("/clients", cl.List)
	g.GET("/clients/:id", cl.GetOne)
	g.PUT("/clients/:id", cl.Update)
	g.DELETE("/clients/:id", cl.Delete, admin)

	g.POST("/rooms", rm.Create)
	g.GET("/rooms", rm.List)
	g.GET("/rooms/:id", rm.GetOne)
	g.PUT("/rooms/:id", rm.Update)
	g.DELETE("/rooms/:id", rm.Delete, admin)
	// Manual trigger for the status sweep that also runs on a timer.
	g.POST("/rooms/sync-status", rm.SyncStatus)

	g.POST("/reservations", rs.Create)
	g.GET("/reservations", rs.List)
	g.GET("/reservations/:id", rs.GetOne)
	g.PUT("/reservations/:id", rs.Update)
	g.DELETE("/reservations/:id", rs.Delete)
}
