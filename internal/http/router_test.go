package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/antonin-suzor/kanaschool/internal/auth"
	"github.com/antonin-suzor/kanaschool/internal/contact"
	"github.com/antonin-suzor/kanaschool/internal/database"
	"github.com/antonin-suzor/kanaschool/internal/database/kanas"
	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	statsdb "github.com/antonin-suzor/kanaschool/internal/database/stats"
	"github.com/antonin-suzor/kanaschool/internal/database/users"
	"github.com/antonin-suzor/kanaschool/internal/quiz"
	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// setupTestRouter wires a full router over a fresh file-backed store.
func setupTestRouter(t *testing.T, notifier *contact.Notifier) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authService := auth.NewService(users.NewRepository(db.DB), sessions.NewRepository(db.DB))
	quizService := quiz.NewService(sessions.NewRepository(db.DB))
	statsService := stats.NewService(statsdb.NewRepository(db.DB))

	cookieOpts := auth.CookieOptions{MaxAge: 30 * 24 * time.Hour, Secure: false}

	router := NewRouter(RouterConfig{
		Database:        db,
		AuthService:     authService,
		QuizService:     quizService,
		StatsService:    statsService,
		KanaStore:       kanas.NewRepository(db.DB),
		ContactNotifier: notifier,
		AuthMiddleware:  auth.NewMiddleware(authService, cookieOpts, false),
		CookieOptions:   cookieOpts,
		Version:         "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

// performRequest sends a JSON request through the router, attaching any
// cookies, and returns the recorder.
func performRequest(router *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signupTestUser registers an account through the API and returns its
// identity cookies.
func signupTestUser(t *testing.T, router *gin.Engine, name string) []*http.Cookie {
	t.Helper()

	w := performRequest(router, "POST", "/api/users/signup", `{"name":"`+name+`","password":"secret"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
