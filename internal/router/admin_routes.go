package router

// This file registers the back-office routes. Every route requires a valid
// JWT and a staff role resolved fresh from the database on each request; the
// settings endpoints additionally require the admin role.

import (
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/handler"
	"github.com/rivieraprestige/concierge-api/internal/middleware"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// RegisterAdmin registers staff-scoped endpoints under /v1/admin. The role
// check hits role_assignments on every request, so a revoked assignment
// locks the user out immediately without waiting for token expiry.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, roles *repository.RoleRepo, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireStaff(roles),
	)

	// ---- Properties ----
	g.GET("/properties", h.ListProperties)
	g.POST("/properties", h.CreateProperty)
	g.PUT("/properties/:id", h.UpdateProperty)
	g.POST("/properties/:id/publish", h.PublishProperty)
	g.DELETE("/properties/:id", h.DeleteProperty)

	// ---- Experiences ----
	g.GET("/experiences", h.ListExperiences)
	g.POST("/experiences", h.CreateExperience)
	g.PUT("/experiences/:id", h.UpdateExperience)
	g.POST("/experiences/:id/publish", h.PublishExperience)
	g.DELETE("/experiences/:id", h.DeleteExperience)

	// ---- Articles ----
	g.GET("/articles", h.ListArticles)
	g.POST("/articles", h.CreateArticle)
	g.PUT("/articles/:id", h.UpdateArticle)
	g.POST("/articles/:id/publish", h.PublishArticle)
	g.DELETE("/articles/:id", h.DeleteArticle)

	// ---- Inquiries ----
	g.GET("/inquiries", h.ListInquiries)
	g.POST("/inquiries/:id/status", h.SetInquiryStatus)
	g.DELETE("/inquiries/:id", h.DeleteInquiry)

	// ---- Dashboard ----
	g.GET("/stats", h.Stats)
	g.GET("/activity", h.ListActivity)

	// ---- Settings (admin only) ----
	settings := e.Group(
		"/v1/admin/settings",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(roles),
	)
	settings.GET("/users", h.ListUsers)
	settings.PUT("/users/:id/role", h.AssignRole)
	settings.DELETE("/users/:id/role", h.RemoveRole)
}
