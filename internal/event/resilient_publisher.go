package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps a Bus to add retry logic and dead letter queuing
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects dead-letter file writes
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event. On failure it launches a background
// retry loop and returns nil immediately, decoupling the caller from the
// retry mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, e Event) error {
	err := p.inner.Publish(ctx, e)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgPublishRetrying,
		"event_type", e.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	go p.retryLoop(e)

	return nil
}

func (p *ResilientPublisher) retryLoop(e Event) {
	// Detached context: the original request context may already be cancelled
	ctx := context.Background()

	delay := p.config.RetryDelay
	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(delay)
		delay *= 2

		if err := p.inner.Publish(ctx, e); err == nil {
			logger.Info(LogMsgPublishRecovered, "event_type", e.Type, "attempt", i)
			return
		} else {
			logger.Warn(LogMsgPublishRetryFailed, "event_type", e.Type, "attempt", i, "error", err)
		}
	}

	p.writeToDeadLetter(e)
}

type deadLetterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`
}

func (p *ResilientPublisher) writeToDeadLetter(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error(LogMsgDeadLetterOpenFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := deadLetterEntry{Timestamp: time.Now(), Event: e}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	} else {
		logger.Info(LogMsgDeadLetterWritten, "event_type", e.Type)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(t Type, h Handler) {
	p.inner.Subscribe(t, h)
}
