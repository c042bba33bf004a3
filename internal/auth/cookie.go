package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// CookieName is the identity cookie. It carries the JSON-serialized
// AuthUser view, not a session token; the middleware re-validates the
// referenced user on each request.
const CookieName = "auth"

// CookieOptions control how the identity cookie is issued.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// SetIdentityCookie writes the identity cookie for the given user.
func SetIdentityCookie(c *gin.Context, user *entities.AuthUser, opts CookieOptions) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, string(payload), int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
	return nil
}

// ClearIdentityCookie expires the identity cookie.
func ClearIdentityCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", opts.Secure, true)
}

// ParseIdentityCookie reads the identity cookie. Returns
// http.ErrNoCookie when absent; any other error means the cookie is
// present but malformed.
func ParseIdentityCookie(c *gin.Context) (*entities.AuthUser, error) {
	value, err := c.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	var user entities.AuthUser
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
