package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/auth"
	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	"github.com/antonin-suzor/kanaschool/internal/quiz"
	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// profileSessionLimit caps the session list on a profile page.
const profileSessionLimit = 10

// UsersController handles account endpoints and public profiles.
type UsersController struct {
	authService  *auth.Service
	quizService  *quiz.Service
	statsService *stats.Service
	cookieOpts   auth.CookieOptions
}

// NewUsersController creates a new UsersController.
func NewUsersController(authService *auth.Service, quizService *quiz.Service, statsService *stats.Service, cookieOpts auth.CookieOptions) *UsersController {
	return &UsersController{
		authService:  authService,
		quizService:  quizService,
		statsService: statsService,
		cookieOpts:   cookieOpts,
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup creates an account and issues the identity cookie.
func (uc *UsersController) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.authService.Signup(req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrUsernameTaken),
			errors.Is(err, auth.ErrPasswordRequired):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "signup", "failed to create user")
		}
		return
	}

	if err := auth.SetIdentityCookie(c, user, uc.cookieOpts); err != nil {
		respondInternalError(c, err, "signup cookie", "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login validates credentials and issues the identity cookie. Unknown
// usernames and wrong passwords produce the same response.
func (uc *UsersController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.authService.Login(req.Name, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondUnauthorized(c, auth.ErrInvalidCredentials.Error())
			return
		}
		respondInternalError(c, err, "login", "failed to log in")
		return
	}

	if err := auth.SetIdentityCookie(c, user, uc.cookieOpts); err != nil {
		respondInternalError(c, err, "login cookie", "failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the identity cookie. Always succeeds, authenticated or
// not.
func (uc *UsersController) Logout(c *gin.Context) {
	auth.ClearIdentityCookie(c, uc.cookieOpts)
	respondSuccess(c)
}

type updateRequest struct {
	Action      string `json:"action"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	NewUsername string `json:"newUsername"`
	IsPublic    *bool  `json:"isPublic"`
	SessionID   uint   `json:"sessionId"`
	Password    string `json:"password"`
}

// Update dispatches account mutations by action. Username and
// visibility changes re-issue the identity cookie with the fresh view;
// account deletion clears it.
func (uc *UsersController) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	switch req.Action {
	case "updatePassword":
		uc.updatePassword(c, user.ID, req)
	case "updateUsername":
		uc.updateUsername(c, user.ID, req)
	case "updateVisibility":
		uc.updateVisibility(c, user.ID, req)
	case "deleteAccount":
		uc.deleteAccount(c, user.ID, req)
	case "deleteSession":
		uc.deleteSession(c, user.ID, req)
	default:
		respondBadRequest(c, "invalid action")
	}
}

func (uc *UsersController) updatePassword(c *gin.Context, userID uint, req updateRequest) {
	if req.OldPassword == "" || req.NewPassword == "" {
		respondBadRequest(c, "old password and new password are required")
		return
	}

	if err := uc.authService.UpdatePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordIncorrect),
			errors.Is(err, auth.ErrPasswordRequired),
			errors.Is(err, auth.ErrUserNotFound):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "update password", "failed to update password")
		}
		return
	}
	respondSuccess(c)
}

func (uc *UsersController) updateUsername(c *gin.Context, userID uint, req updateRequest) {
	if req.NewUsername == "" {
		respondBadRequest(c, "new username is required")
		return
	}

	user, err := uc.authService.UpdateUsername(userID, req.NewUsername)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameInvalid), errors.Is(err, auth.ErrUsernameTaken):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "update username", "failed to update username")
		}
		return
	}

	if err := auth.SetIdentityCookie(c, user, uc.cookieOpts); err != nil {
		respondInternalError(c, err, "update username cookie", "failed to update username")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (uc *UsersController) updateVisibility(c *gin.Context, userID uint, req updateRequest) {
	if req.IsPublic == nil {
		respondBadRequest(c, "isPublic must be a boolean")
		return
	}

	user, err := uc.authService.UpdateVisibility(userID, *req.IsPublic)
	if err != nil {
		respondInternalError(c, err, "update visibility", "failed to update profile visibility")
		return
	}

	if err := auth.SetIdentityCookie(c, user, uc.cookieOpts); err != nil {
		respondInternalError(c, err, "update visibility cookie", "failed to update profile visibility")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (uc *UsersController) deleteAccount(c *gin.Context, userID uint, req updateRequest) {
	if req.Password == "" {
		respondBadRequest(c, "password is required")
		return
	}

	if err := uc.authService.DeleteAccount(userID, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordIncorrect), errors.Is(err, auth.ErrUserNotFound):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "delete account", "failed to delete account")
		}
		return
	}

	auth.ClearIdentityCookie(c, uc.cookieOpts)
	respondSuccess(c)
}

func (uc *UsersController) deleteSession(c *gin.Context, userID uint, req updateRequest) {
	if req.SessionID == 0 {
		respondBadRequest(c, "session ID is required")
		return
	}

	if err := uc.authService.DeleteSession(userID, req.SessionID); err != nil {
		switch {
		case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrNotSessionOwner):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "delete session", "failed to delete session")
		}
		return
	}
	respondSuccess(c)
}

type profileSession struct {
	sessions.SessionWithStats
	Percentage int  `json:"percentage"`
	IsFinished bool `json:"isFinished"`
}

// Profile returns a public profile with stats and a session list.
// Private profiles are only visible to their owner and look absent to
// everyone else.
func (uc *UsersController) Profile(c *gin.Context) {
	name := c.Param("name")

	user, err := uc.authService.GetAuthUserByName(name)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user not found")
			return
		}
		respondInternalError(c, err, "profile lookup", "failed to load profile")
		return
	}

	viewer := auth.CurrentUser(c)
	isOwnProfile := viewer != nil && viewer.ID == user.ID
	if !user.IsPublic && !isOwnProfile {
		respondNotFound(c, "user profile is private")
		return
	}

	profileStats, err := uc.statsService.ProfileStats(user.ID)
	if err != nil {
		respondInternalError(c, err, "profile stats", "failed to load profile")
		return
	}

	sessionRows, err := uc.quizService.SessionsWithStats(user.ID, profileSessionLimit, 0, isOwnProfile)
	if err != nil {
		respondInternalError(c, err, "profile sessions", "failed to load profile")
		return
	}

	sessionList := make([]profileSession, 0, len(sessionRows))
	for _, row := range sessionRows {
		sessionList = append(sessionList, profileSession{
			SessionWithStats: row,
			Percentage:       stats.Percentage(int64(row.CorrectGuesses), int64(row.TotalGuesses)),
			IsFinished:       row.FinishedAt != nil,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"stats":        profileStats,
		"sessions":     sessionList,
		"isOwnProfile": isOwnProfile,
	})
}
