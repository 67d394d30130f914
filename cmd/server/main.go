package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bhandras/inkwire/internal/api/handlers"
	"github.com/bhandras/inkwire/internal/api/middleware"
	"github.com/bhandras/inkwire/internal/config"
	"github.com/bhandras/inkwire/internal/logger"
	"github.com/bhandras/inkwire/internal/session"
	"github.com/bhandras/inkwire/internal/websocket"
)

func main() {
	if err := logger.Init(false); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		if err := logger.Init(true); err != nil {
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := session.NewRegistry()
	wsServer := websocket.NewServer(registry, cfg.AllowedOrigins)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// Root endpoint - returns plain text for client validation
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to Inkwire Server!")
	})
	router.GET("/health", handlers.Health)

	sessionHandler := handlers.NewSessionHandler(registry, wsServer.Hub())
	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", sessionHandler.CreateSession)
		v1.GET("/sessions/:id", sessionHandler.GetSession)
		v1.GET("/stream", wsServer.HandleStream)
	}

	logger.Infof("Inkwire Server starting on http://localhost%s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
