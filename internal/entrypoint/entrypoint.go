package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/auth"
	"github.com/antonin-suzor/kanaschool/internal/config"
	"github.com/antonin-suzor/kanaschool/internal/contact"
	"github.com/antonin-suzor/kanaschool/internal/database"
	"github.com/antonin-suzor/kanaschool/internal/database/kanas"
	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	statsdb "github.com/antonin-suzor/kanaschool/internal/database/stats"
	"github.com/antonin-suzor/kanaschool/internal/database/users"
	http_controllers "github.com/antonin-suzor/kanaschool/internal/http"
	"github.com/antonin-suzor/kanaschool/internal/quiz"
	"github.com/antonin-suzor/kanaschool/internal/scheduler"
	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting KanaSchool v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	userRepo := users.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)
	kanaRepo := kanas.NewRepository(db.DB)
	statsRepo := statsdb.NewRepository(db.DB)

	// Services
	authService := auth.NewService(userRepo, sessionRepo)
	quizService := quiz.NewService(sessionRepo)
	statsService := stats.NewService(statsRepo)

	cookieOpts := auth.CookieOptions{
		MaxAge: cfg.Auth.CookieMaxAge,
		Secure: cfg.Auth.SecureCookies,
	}
	authMiddleware := auth.NewMiddleware(authService, cookieOpts, cfg.Auth.TrustCookieOnStoreUnavailable)

	// CSRF protection is opt-in; generate a secret when none configured
	var csrfSecret []byte
	if cfg.Auth.CSRFEnabled {
		secret := cfg.Auth.CSRFSecret
		if secret == "" {
			secret, err = auth.GenerateCSRFSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			log.Printf("Generated CSRF secret (set AUTH_CSRF_SECRET to persist)")
		}
		csrfSecret, err = hex.DecodeString(secret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(secret)
		}
	}

	// Contact form delivery
	var contactNotifier *contact.Notifier
	if cfg.Contact.DiscordWebhookURL != "" {
		contactNotifier = contact.NewNotifier(cfg.Contact.DiscordWebhookURL)
	} else {
		log.Printf("WARNING: Discord webhook URL is not set. Contact endpoint will be disabled. Set 'DISCORD_WEBHOOK_URL' environment variable to enable.")
	}

	// Optional daily stats report
	statsReport := scheduler.NewStatsReportScheduler(statsService, cfg.StatsReport.Schedule, cfg.StatsReport.Enabled)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := statsReport.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start stats report scheduler: %v", err)
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		AuthService:     authService,
		QuizService:     quizService,
		StatsService:    statsService,
		KanaStore:       kanaRepo,
		ContactNotifier: contactNotifier,
		AuthMiddleware:  authMiddleware,
		CookieOptions:   cookieOpts,
		CSRFSecret:      csrfSecret,
		SecureCookies:   cfg.Auth.SecureCookies,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		schedulerCancel()
		statsReport.Stop()
	}

	Serve(router, cfg, onShutdown)
}
