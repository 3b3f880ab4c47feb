package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/portal/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// SessionJanitorConfig holds configuration for the session janitor
type SessionJanitorConfig struct {
	// Interval is how often expired sessions are purged
	Interval time.Duration

	// Retention keeps expired rows around for a grace period so recent
	// audits can still resolve them
	Retention time.Duration
}

// DefaultSessionJanitorConfig returns default janitor configuration
func DefaultSessionJanitorConfig() SessionJanitorConfig {
	return SessionJanitorConfig{
		Interval:  time.Hour,
		Retention: 24 * time.Hour,
	}
}

// SessionJanitor periodically deletes sessions that expired longer ago
// than the retention period. Live and merely revoked sessions are never
// touched; revocation is recorded in place and cleaned up here only
// after expiry.
type SessionJanitor struct {
	config      SessionJanitorConfig
	sessionRepo identity.SessionRepository
	logger      *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSessionJanitor creates a new session janitor
func NewSessionJanitor(config SessionJanitorConfig, sessionRepo identity.SessionRepository, logger *zap.Logger) *SessionJanitor {
	if config.Interval <= 0 {
		config.Interval = DefaultSessionJanitorConfig().Interval
	}
	if config.Retention <= 0 {
		config.Retention = DefaultSessionJanitorConfig().Retention
	}
	return &SessionJanitor{
		config:      config,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Start starts the background sweep loop
func (j *SessionJanitor) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = true
	j.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.runLoop(ctx)

	j.logger.Info("Session janitor started",
		zap.Duration("interval", j.config.Interval),
		zap.Duration("retention", j.config.Retention),
	)

	return nil
}

// Stop stops the janitor and waits for an in-flight sweep to finish
func (j *SessionJanitor) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.isRunning {
		j.mu.Unlock()
		return nil
	}
	j.isRunning = false
	j.mu.Unlock()

	if j.cancel != nil {
		j.cancel()
	}

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		j.logger.Info("Session janitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *SessionJanitor) runLoop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// sweep deletes sessions whose expiry fell outside the retention window
func (j *SessionJanitor) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.config.Retention)

	deleted, err := j.sessionRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge expired sessions", zap.Error(err))
		return
	}

	if deleted > 0 {
		j.logger.Info("Purged expired sessions",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
}
