// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/service"
	zlog "github.com/rs/zerolog/log"
)

// jobTimeout bounds one safety sweep so a hung database cannot wedge the
// scheduler loop.
const jobTimeout = 5 * time.Minute

// Status is a snapshot of the scheduler state for the admin endpoint.
type Status struct {
	Running    bool                      `json:"running"`
	LastRun    *time.Time                `json:"last_run,omitzero"`
	NextRun    *time.Time                `json:"next_run,omitzero"`
	LastResult *models.SafetyCheckResult `json:"last_result,omitempty"`
	LastError  string                    `json:"last_error,omitempty"`
}

// SafetyCheckScheduler runs the daily safety meter sweep at midnight UTC.
type SafetyCheckScheduler struct {
	progressService service.ProgressService

	mu         sync.Mutex
	running    bool
	stopChan   chan struct{}
	lastRun    *time.Time
	nextRun    *time.Time
	lastResult *models.SafetyCheckResult
	lastError  string
}

// NewSafetyCheckScheduler creates a scheduler. Call Start to begin the loop.
func NewSafetyCheckScheduler(progressService service.ProgressService) *SafetyCheckScheduler {
	return &SafetyCheckScheduler{progressService: progressService}
}

// Start launches the scheduling loop. Calling Start on a running scheduler
// is a no-op.
func (s *SafetyCheckScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	next := nextMidnightUTC(time.Now().UTC())
	s.nextRun = &next

	go s.loop(s.stopChan)
	zlog.Info().Time("next_run", next).Msg("Scheduler: Safety check scheduler started")
}

// Stop terminates the scheduling loop. Safe to call more than once.
func (s *SafetyCheckScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stopChan)
	s.running = false
	s.nextRun = nil
	zlog.Info().Msg("Scheduler: Safety check scheduler stopped")
}

func (s *SafetyCheckScheduler) loop(stop chan struct{}) {
	for {
		now := time.Now().UTC()
		next := nextMidnightUTC(now)

		s.mu.Lock()
		s.nextRun = &next
		s.mu.Unlock()

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			s.runJob()
		}
	}
}

func (s *SafetyCheckScheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	ranAt := time.Now().UTC()
	result, err := s.progressService.RunSafetyMeterCheck(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = &ranAt
	s.lastResult = result
	if err != nil {
		s.lastError = err.Error()
		zlog.Error().Err(err).Msg("Scheduler: Safety check run failed")
		return
	}
	s.lastError = ""
	zlog.Info().Int("checked", result.UsersChecked).Int("degraded", result.UsersDegraded).Msg("Scheduler: Safety check run completed")
}

// RunNow triggers one sweep immediately, outside the daily cadence. Used
// by the admin endpoint.
func (s *SafetyCheckScheduler) RunNow(ctx context.Context) (*models.SafetyCheckResult, error) {
	ranAt := time.Now().UTC()
	result, err := s.progressService.RunSafetyMeterCheck(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = &ranAt
	s.lastResult = result
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}
	s.lastError = ""
	return result, nil
}

// Status reports the current scheduler state.
func (s *SafetyCheckScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running:    s.running,
		LastRun:    s.lastRun,
		NextRun:    s.nextRun,
		LastResult: s.lastResult,
		LastError:  s.lastError,
	}
}

func nextMidnightUTC(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
