package minigame

// Score bounds accepted from the client.
const (
	MinScore = 0
	MaxScore = 100
)

// History paging limits.
const (
	DefaultHistoryEntries = 20
	MaxHistoryEntries     = 100
)
