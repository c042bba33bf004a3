package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonin-suzor/kanaschool/internal/stats"
)

func TestStatsController_Overview(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, nil)
	defer cleanup()

	cookies := signupTestUser(t, router, "misaki")
	sessionID := createTestSession(t, router, cookies, `{}`)
	kanaID := firstRemainingKanaID(t, router, cookies, sessionID)

	w := performRequest(router, "POST", fmt.Sprintf("/api/sessions/%d/guess", sessionID),
		fmt.Sprintf(`{"kanaId":%d,"isCorrect":true}`, kanaID), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/api/stats/overview", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var overview stats.Overview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.Equal(t, int64(1), overview.AllTime.UserCount)
	assert.Equal(t, int64(1), overview.AllTime.SessionCount)
	assert.Equal(t, 100, overview.AllTime.CorrectPercentage)
}

func TestStatsController_Users(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, nil)
	defer cleanup()

	cookies := signupTestUser(t, router, "misaki")
	createTestSession(t, router, cookies, `{}`)
	createTestSession(t, router, cookies, `{}`)

	w := performRequest(router, "GET", "/api/stats/users", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var totals stats.UserTotals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, int64(1), totals.TotalUsers)
	assert.Equal(t, 2.0, totals.AverageSessionsPerUser)
	assert.Equal(t, int64(2), totals.MaxSessionsForUser)
}

func TestStatsController_Sessions(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, nil)
	defer cleanup()

	w := performRequest(router, "GET", "/api/stats/sessions", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Empty store degrades every figure to zero
	var totals stats.SessionTotals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, int64(0), totals.TotalSessions)
	assert.Equal(t, 0, totals.AllTimePercentage)
}
