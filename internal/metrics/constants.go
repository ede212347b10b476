package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameQuestSubmissions    = "quest_submissions_total"
	MetricNameLevelUps            = "character_level_ups_total"
	MetricNameAchievementUnlocks  = "achievement_unlocks_total"
	MetricNameMiniGamePlays       = "minigame_plays_total"
	MetricNameXPAwarded           = "xp_awarded_total"
	MetricNameGoldAwarded         = "gold_awarded_total"
	MetricNameCharactersCreated   = "characters_created_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextQuestSubmissions   = "Total number of quest submissions"
	HelpTextLevelUps           = "Total number of character level ups"
	HelpTextAchievementUnlocks = "Total number of achievement unlocks"
	HelpTextMiniGamePlays      = "Total number of mini-game plays"
	HelpTextXPAwarded          = "Total experience points awarded"
	HelpTextGoldAwarded        = "Total gold awarded"
	HelpTextCharactersCreated  = "Total number of characters created"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelResult      = "result"
	LabelGameType    = "game_type"
	LabelAchievement = "achievement"
	LabelSource      = "source"
)

// Quest submission result label values
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

// XP/gold source label values
const (
	SourceQuest       = "quest"
	SourceMiniGame    = "minigame"
	SourceAchievement = "achievement"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
