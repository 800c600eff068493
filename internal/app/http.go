package app

import (
	"context"
	"net/http"
	"time"

	"lingo-service/internal/auth/credentials"
	"lingo-service/internal/auth/handler"
	"lingo-service/internal/config"
	"lingo-service/internal/presence"
	"lingo-service/internal/realtime"
	"lingo-service/internal/session"
	"lingo-service/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, *realtime.Gateway, *Infra, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	router, gateway := newRouter(cfg, infra)
	return router, gateway, infra, nil
}

func newRouter(cfg config.Config, infra *Infra) (*gin.Engine, *realtime.Gateway) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessions := session.NewManager(
		infra.Sessions,
		[]byte(cfg.CookieSecret),
		cfg.SessionTTL,
		session.CookieOptions{
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	)

	userService := users.NewService(infra.Users, credentials.NewHasher(bcrypt.DefaultCost))
	loginService := credentials.NewService(infra.Users)

	apiHandler := handler.NewHandler(sessions, loginService, userService)

	gateway := realtime.NewGateway(sessions, presence.NewRegistry(), cfg.FrontendURL)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.FrontendURL != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ----------------------------
	// Public Routes
	// ----------------------------

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws", gin.WrapH(gateway))

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
		router.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticDir + "/index.html")
		})
	}

	// ----------------------------
	// API Routes
	// ----------------------------

	api := router.Group("/api")
	apiHandler.RegisterRoutes(api)

	api.GET("/online", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"online": gateway.Online()})
	})

	handler.LogRoutes(router)

	return router, gateway
}
