package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/auth"
	"github.com/antonin-suzor/kanaschool/internal/entities"
	"github.com/antonin-suzor/kanaschool/internal/quiz"
	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// SessionsController handles the quiz session lifecycle.
type SessionsController struct {
	quizService  *quiz.Service
	statsService *stats.Service
}

// NewSessionsController creates a new SessionsController.
func NewSessionsController(quizService *quiz.Service, statsService *stats.Service) *SessionsController {
	return &SessionsController{
		quizService:  quizService,
		statsService: statsService,
	}
}

type createSessionRequest struct {
	Hiragana *int `json:"hiragana"`
	Katakana *int `json:"katakana"`
	Mods     *int `json:"mods"`
	Mult     *int `json:"mult"`
}

// intOrDefault returns *v, or def when the field was absent.
func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Create starts a new quiz session. Absent config fields default to
// enabled / multiplier 1.
func (sc *SessionsController) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	sessionID, err := sc.quizService.CreateSession(user.ID, quiz.Config{
		Hiragana: intOrDefault(req.Hiragana, 1),
		Katakana: intOrDefault(req.Katakana, 1),
		Mods:     intOrDefault(req.Mods, 1),
		Mult:     intOrDefault(req.Mult, 1),
	})
	if err != nil {
		respondInternalError(c, err, "create session", "failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

type guessRequest struct {
	KanaID    uint `json:"kanaId"`
	IsCorrect bool `json:"isCorrect"`
}

// Guess records one guess for the session. Sessions that are missing or
// belong to someone else both answer 404.
func (sc *SessionsController) Guess(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if _, err := sc.quizService.GetUserSession(sessionID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session not found")
			return
		}
		respondInternalError(c, err, "guess ownership", "failed to record guess")
		return
	}

	if _, err := sc.quizService.RecordGuess(sessionID, req.KanaID, req.IsCorrect); err != nil {
		respondInternalError(c, err, "record guess", "failed to record guess")
		return
	}

	respondSuccess(c)
}

// Finish marks the session finished. Calling it on an already finished
// session just refreshes the timestamp.
func (sc *SessionsController) Finish(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := sc.quizService.GetUserSession(sessionID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session not found")
			return
		}
		respondInternalError(c, err, "finish ownership", "failed to finish session")
		return
	}

	if err := sc.quizService.FinishSession(sessionID); err != nil {
		respondInternalError(c, err, "finish session", "failed to finish session")
		return
	}

	respondSuccess(c)
}

type visibilityRequest struct {
	SessionID uint  `json:"sessionId"`
	IsPublic  *bool `json:"isPublic"`
}

// Visibility flips the session between public and private. The target
// session ID travels in the body.
func (sc *SessionsController) Visibility(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.SessionID == 0 || req.IsPublic == nil {
		respondBadRequest(c, "missing sessionId or isPublic")
		return
	}

	if _, err := sc.quizService.GetUserSession(req.SessionID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session not found")
			return
		}
		respondInternalError(c, err, "visibility ownership", "failed to update session")
		return
	}

	if err := sc.quizService.SetVisibility(req.SessionID, *req.IsPublic); err != nil {
		respondInternalError(c, err, "update visibility", "failed to update session")
		return
	}

	respondSuccess(c)
}

type sessionSummary struct {
	entities.Session
	Percentage      int       `json:"percentage"`
	LastInteraction time.Time `json:"lastInteraction"`
	IsFinished      bool      `json:"isFinished"`
}

// MySessions returns the caller's recent unfinished and finished
// sessions, each with its correct-answer percentage.
func (sc *SessionsController) MySessions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	unfinished, err := sc.quizService.UnfinishedSessions(user.ID)
	if err != nil {
		respondInternalError(c, err, "my sessions unfinished", "failed to load sessions")
		return
	}
	finished, err := sc.quizService.FinishedSessions(user.ID)
	if err != nil {
		respondInternalError(c, err, "my sessions finished", "failed to load sessions")
		return
	}

	unfinishedSummaries, err := sc.summarize(unfinished)
	if err != nil {
		respondInternalError(c, err, "my sessions stats", "failed to load sessions")
		return
	}
	finishedSummaries, err := sc.summarize(finished)
	if err != nil {
		respondInternalError(c, err, "my sessions stats", "failed to load sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unfinishedSessions": unfinishedSummaries,
		"finishedSessions":   finishedSummaries,
	})
}

func (sc *SessionsController) summarize(list []entities.Session) ([]sessionSummary, error) {
	summaries := make([]sessionSummary, 0, len(list))
	for _, session := range list {
		percentage, err := sc.statsService.SessionPercentage(session.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sessionSummary{
			Session:         session,
			Percentage:      percentage,
			LastInteraction: session.UpdatedAt,
			IsFinished:      session.IsFinished(),
		})
	}
	return summaries, nil
}

// Detail returns one session with its remaining and guessed kanas.
// Unfinished sessions are owner-only; finished private sessions are
// owner-only too, with a distinct message.
func (sc *SessionsController) Detail(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := sc.quizService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session not found")
			return
		}
		respondInternalError(c, err, "session lookup", "failed to load session")
		return
	}

	viewer := auth.CurrentUser(c)
	isOwner := viewer != nil && viewer.ID == session.UserID
	isFinished := session.IsFinished()

	if !isFinished && !isOwner {
		respondForbidden(c, "cannot view ongoing sessions that are not yours")
		return
	}
	if isFinished && !session.IsPublic && !isOwner {
		respondForbidden(c, "this session is private")
		return
	}

	remaining := []entities.Kana{}
	if !isFinished {
		remaining, err = sc.quizService.RemainingKanas(session)
		if err != nil {
			respondInternalError(c, err, "remaining kanas", "failed to load session")
			return
		}
	}

	guessed, err := sc.quizService.GuessedKanas(sessionID)
	if err != nil {
		respondInternalError(c, err, "guessed kanas", "failed to load session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":        session,
		"remainingKanas": remaining,
		"guessedKanas":   guessed,
		"multiplier":     session.Mult,
		"isFinished":     isFinished,
		"isOwner":        isOwner,
	})
}
