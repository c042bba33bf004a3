package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// ContextKeyUser is the gin context key holding the resolved *AuthUser.
const ContextKeyUser = "auth_user"

// Middleware resolves the identity cookie into a request user.
type Middleware struct {
	service *Service
	opts    CookieOptions

	// When the store cannot answer the re-validation lookup, trust the
	// cookie contents instead of treating the request as anonymous.
	trustCookieOnStoreUnavailable bool
}

// NewMiddleware creates the identity middleware.
func NewMiddleware(service *Service, opts CookieOptions, trustCookieOnStoreUnavailable bool) *Middleware {
	return &Middleware{
		service:                       service,
		opts:                          opts,
		trustCookieOnStoreUnavailable: trustCookieOnStoreUnavailable,
	}
}

// Handler parses the identity cookie, re-validates the referenced user
// against the store and attaches the resolved view to the context.
// Requests without a valid identity proceed anonymously; handlers that
// need a user reject them.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed, err := ParseIdentityCookie(c)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				// Present but unparseable: drop it
				ClearIdentityCookie(c, m.opts)
			}
			c.Next()
			return
		}

		user, err := m.service.GetAuthUserByID(claimed.ID)
		switch {
		case err == nil:
			c.Set(ContextKeyUser, user)
		case errors.Is(err, ErrUserNotFound):
			// Account deleted since the cookie was issued
			ClearIdentityCookie(c, m.opts)
		case m.trustCookieOnStoreUnavailable:
			log.Printf("Identity re-validation unavailable, trusting cookie for user %d: %v", claimed.ID, err)
			c.Set(ContextKeyUser, claimed)
		default:
			log.Printf("Identity re-validation unavailable, treating request as anonymous: %v", err)
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user for the request, or nil.
func CurrentUser(c *gin.Context) *entities.AuthUser {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*entities.AuthUser)
	if !ok {
		return nil
	}
	return user
}
