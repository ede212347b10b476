package event

import (
	"context"
	"time"

	"github.com/finquest/finquest/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// PublishWithRetry attempts to publish an event. If the first attempt fails it
// initiates a background retry loop, so the caller is never blocked on
// downstream handler failures.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn("event_publish_failed_queuing_retry",
		"event_type", event.Type,
		"error", err,
		"max_retries", p.config.MaxRetries)

	// Detached from the request context: the request may finish before the
	// retries do.
	go p.retryLoop(event, err)
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		err := p.inner.Publish(ctx, event)
		if err == nil {
			log.Info("event_retry_succeeded",
				"event_type", event.Type,
				"attempt", attempt)
			return
		}
		lastErr = err

		log.Warn("event_retry_failed",
			"event_type", event.Type,
			"attempt", attempt,
			"error", err)
	}

	if p.config.DeadLetter == nil {
		log.Error("event_dropped_no_dead_letter", "event_type", event.Type, "error", lastErr)
		return
	}

	if err := p.config.DeadLetter.Write(event, p.config.MaxRetries+1, lastErr); err != nil {
		log.Error("dead_letter_write_failed", "event_type", event.Type, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
