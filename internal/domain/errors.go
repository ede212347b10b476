package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Auth errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgUserExists         = "username or email already exists"
	ErrMsgInvalidCredentials = "invalid credentials"

	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgCharacterExists   = "character already exists"

	// Quest errors
	ErrMsgQuestNotFound        = "quest not found"
	ErrMsgQuestNotAccepted     = "quest not accepted"
	ErrMsgQuestAlreadyAccepted = "quest already accepted"
	ErrMsgLevelRequirement     = "level requirement not met"

	// Achievement errors
	ErrMsgAchievementNotFound = "achievement not found"

	// Social errors
	ErrMsgFriendshipExists   = "friend request already exists"
	ErrMsgFriendshipNotFound = "friend request not found"
	ErrMsgSelfFriendship     = "cannot add yourself as a friend"

	// Validation errors
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgInvalidGameType = "invalid game type"
	ErrMsgScoreOutOfRange = "score out of range"

	// Infrastructure errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors.
// These errors should be used consistently across all layers of the
// application. Wrap with fmt.Errorf("%s: %w", details, domain.ErrXxx) for
// additional context.
var (
	// Auth errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrUserExists         = errors.New(ErrMsgUserExists)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)

	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrCharacterExists   = errors.New(ErrMsgCharacterExists)

	// Quest errors
	ErrQuestNotFound        = errors.New(ErrMsgQuestNotFound)
	ErrQuestNotAccepted     = errors.New(ErrMsgQuestNotAccepted)
	ErrQuestAlreadyAccepted = errors.New(ErrMsgQuestAlreadyAccepted)
	ErrLevelRequirement     = errors.New(ErrMsgLevelRequirement)

	// Achievement errors
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)

	// Social errors
	ErrFriendshipExists   = errors.New(ErrMsgFriendshipExists)
	ErrFriendshipNotFound = errors.New(ErrMsgFriendshipNotFound)
	ErrSelfFriendship     = errors.New(ErrMsgSelfFriendship)

	// Validation errors
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
	ErrInvalidGameType = errors.New(ErrMsgInvalidGameType)
	ErrScoreOutOfRange = errors.New(ErrMsgScoreOutOfRange)
)
