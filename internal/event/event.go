package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type   `json:"type"`
	Payload any    `json:"payload"`
}

// SchemaVersion is the current event schema version.
const SchemaVersion = "1.0"

// Progression event types
const (
	QuestAccepted       Type = "quest.accepted"
	QuestCompleted      Type = "quest.completed"
	QuestFailed         Type = "quest.failed"
	CharacterLevelUp    Type = "character.levelup"
	AchievementUnlocked Type = "achievement.unlocked"
	MiniGamePlayed      Type = "minigame.played"
	CharacterCreated    Type = "character.created"
)

// Typed event payloads for type safety

// QuestResultPayloadV1 is the typed payload for quest completion/failure events.
type QuestResultPayloadV1 struct {
	CharacterID string          `json:"character_id"`
	QuestID     int             `json:"quest_id"`
	Title       string          `json:"title"`
	Percentage  int             `json:"percentage"`
	Passed      bool            `json:"passed"`
	XPGained    int             `json:"xp_gained"`
	GoldGained  decimal.Decimal `json:"gold_gained"`
}

// LevelUpPayloadV1 is the typed payload for level-up events.
type LevelUpPayloadV1 struct {
	CharacterID string `json:"character_id"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	NewClass    string `json:"new_class"`
}

// AchievementUnlockedPayloadV1 is the typed payload for achievement unlocks.
type AchievementUnlockedPayloadV1 struct {
	CharacterID   string          `json:"character_id"`
	AchievementID int             `json:"achievement_id"`
	Name          string          `json:"name"`
	XPBonus       int             `json:"xp_bonus"`
	GoldBonus     decimal.Decimal `json:"gold_bonus"`
}

// MiniGamePayloadV1 is the typed payload for mini-game plays.
type MiniGamePayloadV1 struct {
	CharacterID string          `json:"character_id"`
	GameType    string          `json:"game_type"`
	Score       int             `json:"score"`
	XPGained    int             `json:"xp_gained"`
	GoldGained  decimal.Decimal `json:"gold_gained"`
}

// NewQuestResultEvent builds a quest completion or failure event.
func NewQuestResultEvent(payload QuestResultPayloadV1) Event {
	eventType := QuestFailed
	if payload.Passed {
		eventType = QuestCompleted
	}
	return Event{Version: SchemaVersion, Type: eventType, Payload: payload}
}

// NewLevelUpEvent builds a character level-up event.
func NewLevelUpEvent(characterID string, oldLevel, newLevel int, newClass string) Event {
	return Event{
		Version: SchemaVersion,
		Type:    CharacterLevelUp,
		Payload: LevelUpPayloadV1{
			CharacterID: characterID,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			NewClass:    newClass,
		},
	}
}

// NewAchievementUnlockedEvent builds an achievement unlock event.
func NewAchievementUnlockedEvent(payload AchievementUnlockedPayloadV1) Event {
	return Event{Version: SchemaVersion, Type: AchievementUnlocked, Payload: payload}
}

// NewMiniGamePlayedEvent builds a mini-game play event.
func NewMiniGamePlayedEvent(payload MiniGamePayloadV1) Event {
	return Event{Version: SchemaVersion, Type: MiniGamePlayed, Payload: payload}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
