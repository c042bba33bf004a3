// Package stats computes the aggregate views shown on the landing,
// users and sessions pages, plus per-user and per-session summaries.
package stats

import (
	"math"
	"time"

	statsdb "github.com/antonin-suzor/kanaschool/internal/database/stats"
)

// Percentage returns correct/total as a rounded integer percentage,
// zero when total is zero.
func Percentage(correct, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PeriodStats is one row of the landing page overview. For the
// last-month period, UserCount means accounts created in the period.
type PeriodStats struct {
	UserCount         int64 `json:"user_count"`
	SessionCount      int64 `json:"session_count"`
	CorrectPercentage int   `json:"correct_percentage"`
}

// Overview is the landing page summary.
type Overview struct {
	AllTime   PeriodStats `json:"all_time"`
	LastMonth PeriodStats `json:"last_month"`
}

// UserTotals is the sitewide users page summary.
type UserTotals struct {
	TotalUsers             int64   `json:"total_users"`
	UsersLastMonth         int64   `json:"users_last_month"`
	AverageSessionsPerUser float64 `json:"average_sessions_per_user"`
	MaxSessionsForUser     int64   `json:"max_sessions_for_user"`
}

// SessionTotals is the sitewide sessions page summary.
type SessionTotals struct {
	TotalSessions          int64 `json:"total_sessions"`
	SessionsLastMonth      int64 `json:"sessions_last_month"`
	AllTimePercentage      int   `json:"all_time_percentage"`
	LastMonthPercentage    int   `json:"last_month_percentage"`
	HiraganaPercentage     int   `json:"hiragana_percentage"`
	KatakanaPercentage     int   `json:"katakana_percentage"`
	DiacriticsPercentage   int   `json:"diacritics_percentage"`
	NoDiacriticsPercentage int   `json:"no_diacritics_percentage"`
}

// ProfileStats is one user's summary.
type ProfileStats struct {
	TotalSessions       int64 `json:"total_sessions"`
	FinishedSessions    int64 `json:"finished_sessions"`
	AllTimePercentage   int   `json:"all_time_percentage"`
	LastMonthPercentage int   `json:"last_month_percentage"`
}

// Service computes aggregate statistics from the stats repository.
type Service struct {
	repo *statsdb.Repository
}

// NewService creates a new statistics service.
func NewService(repo *statsdb.Repository) *Service {
	return &Service{repo: repo}
}

// Overview returns the landing page summary: all-time and last-month
// user/session counts and correct-answer percentages.
func (s *Service) Overview() (*Overview, error) {
	totalUsers, err := s.repo.TotalUserCount()
	if err != nil {
		return nil, err
	}
	totalSessions, err := s.repo.TotalSessionCount()
	if err != nil {
		return nil, err
	}
	allTime, err := s.repo.AllTimeAnswerStats()
	if err != nil {
		return nil, err
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)

	usersLastMonth, err := s.repo.UsersCreatedSince(oneMonthAgo)
	if err != nil {
		return nil, err
	}
	sessionsLastMonth, err := s.repo.SessionsCreatedSince(oneMonthAgo)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.repo.AnswerStatsSince(oneMonthAgo)
	if err != nil {
		return nil, err
	}

	return &Overview{
		AllTime: PeriodStats{
			UserCount:         totalUsers,
			SessionCount:      totalSessions,
			CorrectPercentage: Percentage(allTime.Correct, allTime.Total),
		},
		LastMonth: PeriodStats{
			UserCount:         usersLastMonth,
			SessionCount:      sessionsLastMonth,
			CorrectPercentage: Percentage(lastMonth.Correct, lastMonth.Total),
		},
	}, nil
}

// UserTotals returns the sitewide users page summary.
func (s *Service) UserTotals() (*UserTotals, error) {
	totalUsers, err := s.repo.TotalUserCount()
	if err != nil {
		return nil, err
	}

	usersLastMonth, err := s.repo.UsersCreatedSince(time.Now().AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}

	average, err := s.repo.AverageSessionsPerUser()
	if err != nil {
		return nil, err
	}

	max, err := s.repo.MaxSessionsPerUser()
	if err != nil {
		return nil, err
	}

	return &UserTotals{
		TotalUsers:             totalUsers,
		UsersLastMonth:         usersLastMonth,
		AverageSessionsPerUser: Round2(average),
		MaxSessionsForUser:     max,
	}, nil
}

// SessionTotals returns the sitewide sessions page summary.
func (s *Service) SessionTotals() (*SessionTotals, error) {
	totalSessions, err := s.repo.TotalSessionCount()
	if err != nil {
		return nil, err
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)

	sessionsLastMonth, err := s.repo.SessionsCreatedSince(oneMonthAgo)
	if err != nil {
		return nil, err
	}
	allTime, err := s.repo.AllTimeAnswerStats()
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.repo.AnswerStatsSince(oneMonthAgo)
	if err != nil {
		return nil, err
	}

	kanaRatio, err := s.repo.KanaRatioStats()
	if err != nil {
		return nil, err
	}
	scriptTotal := kanaRatio.HiraganaCount + kanaRatio.KatakanaCount

	diacritics, err := s.repo.DiacriticsRatioStats()
	if err != nil {
		return nil, err
	}
	modTotal := diacritics.BaseCount + diacritics.DiacriticsCount

	return &SessionTotals{
		TotalSessions:          totalSessions,
		SessionsLastMonth:      sessionsLastMonth,
		AllTimePercentage:      Percentage(allTime.Correct, allTime.Total),
		LastMonthPercentage:    Percentage(lastMonth.Correct, lastMonth.Total),
		HiraganaPercentage:     Percentage(kanaRatio.HiraganaCount, scriptTotal),
		KatakanaPercentage:     Percentage(kanaRatio.KatakanaCount, scriptTotal),
		DiacriticsPercentage:   Percentage(diacritics.DiacriticsCount, modTotal),
		NoDiacriticsPercentage: Percentage(diacritics.BaseCount, modTotal),
	}, nil
}

// ProfileStats returns one user's summary. The recent window is the
// last 30 days of session creation.
func (s *Service) ProfileStats(userID uint) (*ProfileStats, error) {
	totalSessions, err := s.repo.UserSessionCount(userID)
	if err != nil {
		return nil, err
	}
	finished, err := s.repo.FinishedSessionCount(userID)
	if err != nil {
		return nil, err
	}
	allTime, err := s.repo.UserAnswerStats(userID)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.repo.UserAnswerStatsSince(userID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		TotalSessions:       totalSessions,
		FinishedSessions:    finished,
		AllTimePercentage:   Percentage(allTime.Correct, allTime.Total),
		LastMonthPercentage: Percentage(lastMonth.Correct, lastMonth.Total),
	}, nil
}

// SessionPercentage returns one session's correct-answer percentage.
func (s *Service) SessionPercentage(sessionID uint) (int, error) {
	answerStats, err := s.repo.SessionAnswerStats(sessionID)
	if err != nil {
		return 0, err
	}
	return Percentage(answerStats.Correct, answerStats.Total), nil
}
