package maintenance

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/services"
)

// Retention knobs for the maintenance pass. Events older than the
// retention window are pruned; stylist sessions idle longer than the
// idle window are dropped (which also invalidates any in-flight run).
const (
	eventRetention = 30 * 24 * time.Hour
	sessionMaxIdle = time.Hour
)

// Scheduler runs periodic housekeeping on a cron expression.
type Scheduler struct {
	eventSvc   services.EventServiceProvider
	stylistSvc *services.StylistService
	schedule   cron.Schedule
	nextRun    time.Time
	ticker     *time.Ticker
	done       chan bool
}

// New creates a scheduler from a standard cron expression.
func New(cronExpr string, eventSvc services.EventServiceProvider, stylistSvc *services.StylistService) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		eventSvc:   eventSvc,
		stylistSvc: stylistSvc,
		schedule:   schedule,
		nextRun:    schedule.Next(time.Now()),
		done:       make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop.
func (s *Scheduler) Run() {
	log.Info().Time("next_run", s.nextRun).Msg("Starting maintenance scheduler")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping maintenance scheduler")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRun) {
				s.runMaintenance()
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.done <- true
}

func (s *Scheduler) runMaintenance() {
	pruned, err := s.eventSvc.DeleteEventsBefore(time.Now().Add(-eventRetention))
	if err != nil {
		log.Error().Err(err).Msg("Maintenance: failed to prune events")
	} else if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("Maintenance: pruned old events")
	}

	if expired := s.stylistSvc.ExpireIdle(sessionMaxIdle); expired > 0 {
		log.Info().Int("expired", expired).Msg("Maintenance: expired idle stylist sessions")
	}
}
