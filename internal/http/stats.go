package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// StatsController serves the sitewide aggregate pages.
type StatsController struct {
	statsService *stats.Service
}

// NewStatsController creates a new StatsController.
func NewStatsController(statsService *stats.Service) *StatsController {
	return &StatsController{statsService: statsService}
}

// Overview returns the landing page summary.
func (st *StatsController) Overview(c *gin.Context) {
	overview, err := st.statsService.Overview()
	if err != nil {
		respondInternalError(c, err, "stats overview", "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Users returns the sitewide user totals.
func (st *StatsController) Users(c *gin.Context) {
	totals, err := st.statsService.UserTotals()
	if err != nil {
		respondInternalError(c, err, "stats users", "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Sessions returns the sitewide session totals.
func (st *StatsController) Sessions(c *gin.Context) {
	totals, err := st.statsService.SessionTotals()
	if err != nil {
		respondInternalError(c, err, "stats sessions", "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, totals)
}
