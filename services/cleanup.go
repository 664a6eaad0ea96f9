// services/cleanup.go - Background sweeper for finished game sessions
package services

import (
	"log"
	"time"
)

const (
	cleanupInterval = time.Minute

	// Finished sessions stay around briefly so clients can still fetch the
	// final snapshot after the result screen.
	sessionRetention = 10 * time.Minute
)

// CleanupService periodically drops ended and abandoned sessions from the
// in-memory registry.
type CleanupService struct {
	sessions *SessionService
	stop     chan struct{}
	done     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService(sessions *SessionService) {
	cleanupService = &CleanupService{
		sessions: sessions,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start runs the sweep loop until Stop is called.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if removed := s.sessions.SweepEnded(sessionRetention); removed > 0 {
					log.Printf("🧹 Cleaned up %d finished game sessions", removed)
				}
			}
		}
	}()
}

// Stop shuts the sweep loop down and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}
