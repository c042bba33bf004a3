package http

import (
	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply CSRF protection if a secret is configured
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Resolve the identity cookie on every request
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Create controllers
	health := NewHealthController(cfg.Database, cfg.Version)
	usersController := NewUsersController(cfg.AuthService, cfg.QuizService, cfg.StatsService, cfg.CookieOptions)
	sessionsController := NewSessionsController(cfg.QuizService, cfg.StatsService)
	statsController := NewStatsController(cfg.StatsService)
	kanasController := NewKanasController(cfg.KanaStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Account endpoints
	router.POST("/api/users/signup", usersController.Signup)
	router.POST("/api/users/login", usersController.Login)
	router.POST("/api/users/logout", usersController.Logout)
	router.POST("/api/users/update", usersController.Update)
	router.GET("/api/users/:name", usersController.Profile)

	// Quiz session endpoints
	router.POST("/api/sessions/create", sessionsController.Create)
	router.POST("/api/sessions/:id/guess", sessionsController.Guess)
	router.POST("/api/sessions/:id/finish", sessionsController.Finish)
	router.POST("/api/sessions/:id/visibility", sessionsController.Visibility)
	router.GET("/api/sessions/my", sessionsController.MySessions)
	router.GET("/api/sessions/:id", sessionsController.Detail)

	// Statistics endpoints
	router.GET("/api/stats/overview", statsController.Overview)
	router.GET("/api/stats/users", statsController.Users)
	router.GET("/api/stats/sessions", statsController.Sessions)

	// Kana catalog endpoints
	router.GET("/api/kanas", kanasController.All)
	router.GET("/api/kanas/hiragana", kanasController.Hiraganas)
	router.GET("/api/kanas/katakana", kanasController.Katakanas)
	router.GET("/api/kanas/hiragana/:reading", kanasController.HiraganaDetail)
	router.GET("/api/kanas/katakana/:reading", kanasController.KatakanaDetail)

	// Contact form endpoint
	if cfg.ContactNotifier != nil {
		contactController := NewContactController(cfg.ContactNotifier)
		router.POST("/api/contact/message", contactController.Message)
	}

	return router
}
