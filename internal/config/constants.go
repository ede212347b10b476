package config

// Default configuration values
const (
	// DefaultJWTExpiry is the token lifetime when JWT_EXPIRES_IN is unset.
	DefaultJWTExpiry = "168h" // 7 days

	// DefaultBcryptCost matches the original registration flow's cost.
	DefaultBcryptCost = 12
)

// Database pool defaults
const (
	DefaultMaxConnections = 25
	DefaultMinConnections = 2
)

// Event publishing defaults
const (
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = "2s"
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
