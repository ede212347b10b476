package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Query Limits
const (
	// DefaultListLimit caps unbounded list queries
	DefaultListLimit = 50

	// MaxSearchResults caps the user search result set
	MaxSearchResults = 20
)
