package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// SweepService runs the overdue refresh on a cron schedule inside the
// server process. The sweep itself stays an explicit LoanService
// operation; this only triggers it.
type SweepService struct {
	loanService *LoanService
	schedule    string
	cron        *cron.Cron
}

// NewSweepService creates a new sweep service. An empty schedule
// disables scheduling; the HTTP trigger still works.
func NewSweepService(loanService *LoanService, schedule string) *SweepService {
	return &SweepService{
		loanService: loanService,
		schedule:    schedule,
		cron:        cron.New(),
	}
}

// Start registers and starts the scheduled sweep
func (s *SweepService) Start() error {
	if s.schedule == "" {
		log.Println("⏸  Overdue sweep schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🕒 Overdue sweep scheduled [%s]", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *SweepService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SweepService) run() {
	refreshed, err := s.loanService.RefreshOverdue(context.Background())
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}
	if refreshed > 0 {
		log.Printf("⏰ Overdue sweep refreshed %d loan(s)", refreshed)
	}
}
