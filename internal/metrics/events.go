package metrics

import (
	"context"

	"github.com/finquest/finquest/internal/event"
	"github.com/finquest/finquest/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.QuestCompleted,
		event.QuestFailed,
		event.CharacterLevelUp,
		event.AchievementUnlocked,
		event.MiniGamePlayed,
		event.CharacterCreated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.QuestResultPayloadV1:
		result := ResultFailed
		if payload.Passed {
			result = ResultPassed
		}
		QuestSubmissions.WithLabelValues(result).Inc()
		XPAwarded.WithLabelValues(SourceQuest).Add(float64(payload.XPGained))
		GoldAwarded.WithLabelValues(SourceQuest).Add(payload.GoldGained.InexactFloat64())

	case event.LevelUpPayloadV1:
		LevelUps.Inc()

	case event.AchievementUnlockedPayloadV1:
		AchievementUnlocks.WithLabelValues(payload.Name).Inc()
		XPAwarded.WithLabelValues(SourceAchievement).Add(float64(payload.XPBonus))
		GoldAwarded.WithLabelValues(SourceAchievement).Add(payload.GoldBonus.InexactFloat64())

	case event.MiniGamePayloadV1:
		MiniGamePlays.WithLabelValues(payload.GameType).Inc()
		XPAwarded.WithLabelValues(SourceMiniGame).Add(float64(payload.XPGained))
		GoldAwarded.WithLabelValues(SourceMiniGame).Add(payload.GoldGained.InexactFloat64())

	default:
		if evt.Type == event.CharacterCreated {
			CharactersCreated.Inc()
			break
		}
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
