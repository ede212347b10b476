package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(QuestCompleted, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewQuestResultEvent(QuestResultPayloadV1{
		CharacterID: "char-1",
		QuestID:     7,
		Percentage:  80,
		Passed:      true,
		XPGained:    120,
		GoldGained:  decimal.NewFromInt(60),
	})

	err := bus.Publish(context.Background(), evt)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, QuestCompleted, received[0].Type)
	assert.Equal(t, SchemaVersion, received[0].Version)
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewLevelUpEvent("char-1", 4, 5, "Money Squire"))
	assert.NoError(t, err)
}

func TestMemoryBus_MultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()

	var count int32
	for i := 0; i < 3; i++ {
		bus.Subscribe(MiniGamePlayed, func(ctx context.Context, e Event) error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}

	err := bus.Publish(context.Background(), NewMiniGamePlayedEvent(MiniGamePayloadV1{
		CharacterID: "char-1",
		GameType:    "budget_balance",
		Score:       75,
	}))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(AchievementUnlocked, func(ctx context.Context, e Event) error {
		return errors.New("handler one failed")
	})
	var secondRan bool
	bus.Subscribe(AchievementUnlocked, func(ctx context.Context, e Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), NewAchievementUnlockedEvent(AchievementUnlockedPayloadV1{
		CharacterID:   "char-1",
		AchievementID: 3,
		Name:          "First Steps",
	}))
	assert.Error(t, err)
	assert.True(t, secondRan, "a failing handler must not stop later handlers")
}

func TestNewQuestResultEvent_TypeFollowsOutcome(t *testing.T) {
	passed := NewQuestResultEvent(QuestResultPayloadV1{Passed: true})
	failed := NewQuestResultEvent(QuestResultPayloadV1{Passed: false})

	assert.Equal(t, QuestCompleted, passed.Type)
	assert.Equal(t, QuestFailed, failed.Type)
}

// flakyBus fails the first failures publishes, then succeeds.
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (b *flakyBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("transient failure")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func (b *flakyBus) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	inner := &flakyBus{failures: 0}
	rp := NewResilientPublisher(inner, ResilientConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	rp.PublishWithRetry(context.Background(), NewLevelUpEvent("char-1", 1, 2, "Financial Apprentice"))

	assert.Equal(t, 1, inner.callCount())
}

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	inner := &flakyBus{failures: 2}
	rp := NewResilientPublisher(inner, ResilientConfig{MaxRetries: 5, RetryDelay: time.Millisecond})

	rp.PublishWithRetry(context.Background(), NewLevelUpEvent("char-1", 1, 2, "Financial Apprentice"))

	require.Eventually(t, func() bool {
		return inner.callCount() == 3
	}, time.Second, 5*time.Millisecond)
}

func TestResilientPublisher_ExhaustedRetriesWriteDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	inner := &flakyBus{failures: 100}
	rp := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		DeadLetter: dlw,
	})

	rp.PublishWithRetry(context.Background(), NewLevelUpEvent("char-1", 9, 10, "Savings Knight"))

	require.Eventually(t, func() bool {
		data, readErr := os.ReadFile(path)
		return readErr == nil && len(data) > 0
	}, time.Second, 5*time.Millisecond)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry DeadLetterEntry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, CharacterLevelUp, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.NotEmpty(t, entry.LastError)
}

func TestCalculateRetryDelay_ExponentialBackoff(t *testing.T) {
	base := 2 * time.Second

	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
