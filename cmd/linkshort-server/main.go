package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/admin"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/auth"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/config"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/database"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/links"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/logger"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/redirect"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/shortcode"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/users"
)

func main() {
	cfgPath := os.Getenv("LINKSHORT_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log)
	defer func() {
		_ = zlog.Sync()
	}()
	sugar := zlog.Sugar()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		sugar.Fatalf("Failed to run migrations: %v", err)
	}
	sugar.Info("Database migrations completed")

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.TokenTTL())
	generator := shortcode.NewGenerator(db, cfg.BaseURL)
	authRequired := auth.Middleware(tokens, db)

	r := gin.New()
	r.Use(logger.GinRecovery(zlog), logger.GinLogger(zlog))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Hello"})
	})

	authHandler := auth.NewHandler(db, tokens)
	authHandler.RegisterRoutes(r, authRequired)

	usersHandler := users.NewHandler(db)
	usersHandler.RegisterRoutes(r, authRequired)

	linksHandler := links.NewHandler(db, generator)
	linksHandler.RegisterRoutes(r, authRequired)

	adminHandler := admin.NewHandler(db)
	adminHandler.RegisterRoutes(r.Group("/admin"))

	// Redirect route is registered LAST so /:shortener does not shadow
	// the static routes above.
	redirectHandler := redirect.NewHandler(db, cfg.BaseURL)
	redirectHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugar.Infof("Starting link shortener server on :%d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalf("Failed to start server: %v", err)
	}
}
