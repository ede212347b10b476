package domain

import "time"

// User is a registered account. Authentication state lives here; all game
// state hangs off the user's character.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FriendshipStatus is the lifecycle state of a friend request.
type FriendshipStatus string

// Friendship statuses
const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is an edge in the friend graph, created by a request from
// UserID to FriendID and activated when accepted.
type Friendship struct {
	ID        int              `json:"id"`
	UserID    string           `json:"user_id"`
	FriendID  string           `json:"friend_id"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// FriendEntry is the friend-list view joining the friend's account and
// character summary.
type FriendEntry struct {
	FriendshipID  int       `json:"friendship_id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	CharacterName string    `json:"character_name,omitempty"`
	Level         int       `json:"level"`
	Class         string    `json:"class,omitempty"`
	Since         time.Time `json:"since"`
}
