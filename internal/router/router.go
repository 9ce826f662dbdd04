package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/handler"
	"github.com/rivieraprestige/concierge-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no caching or rate limiting. Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Unauthenticated
// operations live under /v1/auth, while session-scoped endpoints live under
// /v1 behind the JWT middleware. Note there is no role middleware here:
// any authenticated user may call /v1/auth/me, and the handler reports the
// effective role from a fresh lookup.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	auth := e.Group("/v1/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/refresh-access", a.RefreshAccess)

	protected := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	protected.POST("/logout", a.Logout)
	protected.GET("/me", a.Me)
}
