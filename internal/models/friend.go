package models

import "time"

// Friendship links two users. It is symmetric: the store keeps one row per
// pair with UserID below FriendID.
type Friendship struct {
	UserID    int64
	FriendID  int64
	CreatedAt time.Time
}
