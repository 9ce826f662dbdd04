package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/handler"
)

// RegisterPublic registers guest-facing endpoints under /v1. None of them
// require authentication; the extra middleware (Redis response cache, token
// bucket limiter) is passed in by main so tests can register without Redis.
func RegisterPublic(
	e *echo.Echo,
	pub *handler.PublicHandler,
	site *handler.SiteHandler,
	inq *handler.InquiryHandler,
	mws ...echo.MiddlewareFunc,
) {
	g := e.Group("/v1", mws...)

	// ---- Catalog ----
	g.GET("/properties", pub.GetPublicProperties)
	g.GET("/properties/:id", pub.GetPublicProperty)
	g.GET("/search/properties", pub.SearchProperties)
	g.GET("/experiences", pub.GetPublicExperiences)
	g.GET("/experiences/:id", pub.GetPublicExperience)
	g.GET("/articles", pub.GetPublicArticles)
	g.GET("/articles/:id", pub.GetPublicArticle)

	// ---- Site chrome ----
	g.GET("/i18n/:lang", site.GetTranslations)
	g.GET("/refdata", site.GetRefData)
	g.GET("/messaging-link", site.GetMessagingLink)

	// ---- Inquiries ----
	// POSTs go through the same limiter group; the response cache middleware
	// only ever caches GETs so these pass through it untouched.
	g.POST("/inquiries", inq.SubmitContact)
	g.POST("/properties/:id/inquiries", inq.SubmitPropertyInquiry)
}
