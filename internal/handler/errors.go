package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQuestID    = "Invalid quest ID"
	ErrMsgInvalidRequestID  = "Invalid request ID"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgMissingAuthHeader = "Missing or malformed Authorization header"
)

// Success messages for API responses
const (
	MsgRegisteredSuccess    = "Account created"
	MsgQuestAcceptedSuccess = "Quest accepted!"
	MsgQuestPassed          = "Quest completed!"
	MsgQuestFailed          = "Not quite - review the feedback and try again"
	MsgFriendRequestSent    = "Friend request sent to %s!"
	MsgFriendRequestOK      = "Friend request accepted!"
	MsgFriendRemoved        = "Friend removed"
)
