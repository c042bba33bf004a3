package http

import (
	"github.com/antonin-suzor/kanaschool/internal/auth"
	"github.com/antonin-suzor/kanaschool/internal/contact"
	"github.com/antonin-suzor/kanaschool/internal/database"
	"github.com/antonin-suzor/kanaschool/internal/database/kanas"
	"github.com/antonin-suzor/kanaschool/internal/quiz"
	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	AuthService  *auth.Service
	QuizService  *quiz.Service
	StatsService *stats.Service
	KanaStore    *kanas.Repository

	// Contact form delivery (optional; nil disables the endpoint)
	ContactNotifier *contact.Notifier

	// Identity cookie handling
	AuthMiddleware *auth.Middleware
	CookieOptions  auth.CookieOptions

	// CSRF protection (empty secret disables it)
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
