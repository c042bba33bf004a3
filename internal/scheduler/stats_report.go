// Package scheduler runs the periodic sitewide stats report.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/antonin-suzor/kanaschool/internal/stats"
)

// StatsReportScheduler logs a sitewide activity summary on a cron
// schedule, typically once a day.
type StatsReportScheduler struct {
	statsService *stats.Service
	schedule     string
	enabled      bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStatsReportScheduler creates a new scheduler instance.
func NewStatsReportScheduler(statsService *stats.Service, schedule string, enabled bool) *StatsReportScheduler {
	return &StatsReportScheduler{
		statsService: statsService,
		schedule:     schedule,
		enabled:      enabled,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the report is enabled.
func (s *StatsReportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Stats report scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runReport()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Stats report scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler and waits for a running report.
func (s *StatsReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Stats report scheduler: stopped")
}

// RunNow triggers an immediate report.
func (s *StatsReportScheduler) RunNow() {
	go s.runReport()
}

// IsRunning returns whether the scheduler is active.
func (s *StatsReportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next report will run.
func (s *StatsReportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *StatsReportScheduler) runReport() {
	startTime := time.Now()

	overview, err := s.statsService.Overview()
	if err != nil {
		log.Printf("Stats report: failed to compute overview: %v", err)
		return
	}

	log.Printf("Stats report: all-time %d users, %d sessions, %d%% correct; last month %d new users, %d sessions, %d%% correct (computed in %v)",
		overview.AllTime.UserCount,
		overview.AllTime.SessionCount,
		overview.AllTime.CorrectPercentage,
		overview.LastMonth.UserCount,
		overview.LastMonth.SessionCount,
		overview.LastMonth.CorrectPercentage,
		time.Since(startTime).Round(time.Millisecond))
}
