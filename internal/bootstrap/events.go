package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vantol/PackForge_Go/internal/config"
	"github.com/vantol/PackForge_Go/internal/event"
	"github.com/vantol/PackForge_Go/internal/worker"
)

// InitializeEventSystem creates the in-process event bus and the resilient
// publisher that callers use to emit events. Dispatch runs on the shared
// worker pool; events that exhaust their retries land in the dead-letter file.
func InitializeEventSystem(cfg *config.Config, pool *worker.Pool) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewBus(pool)

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     maxRetries,
		RetryDelay:     retryDelay,
		DeadLetterPath: deadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}
