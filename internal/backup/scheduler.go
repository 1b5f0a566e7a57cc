package backup

import (
	"log"
	"time"
)

// Scheduler takes automatic snapshots on a fixed interval.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
	ticker   *time.Ticker
	stop     chan bool
	running  bool
}

// NewScheduler creates a scheduler that backs up every interval.
func NewScheduler(m *Manager, interval time.Duration) *Scheduler {
	return &Scheduler{
		manager:  m,
		interval: interval,
		stop:     make(chan bool),
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start() {
	if s.running {
		log.Println("Backup scheduler already running")
		return
	}

	s.running = true
	s.ticker = time.NewTicker(s.interval)

	log.Printf("Backup scheduler started - snapshot every %s", s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				if info, err := s.manager.Create(); err != nil {
					log.Printf("Scheduled backup failed: %v", err)
				} else {
					log.Printf("Scheduled backup created: %s", info.ID)
				}
			case <-s.stop:
				s.ticker.Stop()
				s.running = false
				log.Println("Backup scheduler stopped")
				return
			}
		}
	}()
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	if s.running {
		s.stop <- true
	}
}
