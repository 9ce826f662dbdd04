package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/config"
	"github.com/rivieraprestige/concierge-api/internal/database"
	"github.com/rivieraprestige/concierge-api/internal/handler"
	"github.com/rivieraprestige/concierge-api/internal/middleware"
	"github.com/rivieraprestige/concierge-api/internal/queue"
	"github.com/rivieraprestige/concierge-api/internal/repository"
	"github.com/rivieraprestige/concierge-api/internal/router"
)

func main() {
	// .env is a local development convenience; in production the variables
	// come from the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)
	properties := repository.NewPropertyRepo(db)
	experiences := repository.NewExperienceRepo(db)
	articles := repository.NewArticleRepo(db)
	inquiries := repository.NewInquiryRepo(db)
	activity := repository.NewActivityRepo(db)

	// The activity consumer is the sole writer of the activity_log table.
	// It reconnects on its own; a missing broker only costs audit entries.
	go queue.StartActivityConsumer(cfg.AMQPURL, activity)

	// Redis is optional: when unavailable the cache and limiter middleware
	// degrade to pass-through.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, roles, tokens), cfg.JWTSecret)

	pub := &handler.PublicHandler{Properties: properties, Experiences: experiences, Articles: articles}
	site := &handler.SiteHandler{ContactPhone: cfg.ContactPhone}
	inq := handler.NewInquiryHandler(inquiries, properties)
	router.RegisterPublic(e, pub, site, inq,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	admin := handler.NewAdminHandler(properties, experiences, articles, inquiries, users, roles, activity)
	router.RegisterAdmin(e, admin, roles, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
