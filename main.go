package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/api"
	"github.com/junaidrashid-git/storefront/auth"
	"github.com/junaidrashid-git/storefront/config"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/routes"
	"github.com/junaidrashid-git/storefront/session"
	"github.com/junaidrashid-git/storefront/storage"
	"github.com/junaidrashid-git/storefront/storefront"
)

var log = logger.New("")

func main() {
	log.Success("Starting storefront...")

	cfg := config.Load()

	// Init local storage DB
	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open local storage", err)
	}

	backend := api.NewClient(cfg.BackendEndpoint, api.WithTimeout(cfg.BackendTimeout))
	log.Info("Backend endpoint: %s", cfg.BackendEndpoint)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	pages := storefront.NewRegistry(backend,
		storefront.WithIdleTTL(cfg.PageIdleTTL),
		storefront.WithMaxPages(cfg.MaxPages),
	)

	routes.SetupRoutes(r, routes.Dependencies{
		Backend:        backend,
		Pages:          pages,
		Sessions:       session.NewManager(storage.NewLocalStorage(db)),
		Issuer:         auth.NewIssuer(cfg.VisitorSecret),
		SearchDelay:    cfg.SearchDebounce,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	log.Success("Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server", err)
	}
}

// cors refuses credentials together with a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
