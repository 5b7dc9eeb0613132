package models

import (
	"time"
)

// Account is the relational user record. ID is a UUID string; every per-user
// document in Mongo is keyed by it.
type Account struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	DisplayName    string    `json:"displayName"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	FollowerCount  int       `gorm:"not null;default:0" json:"followerCount"`
	FollowingCount int       `gorm:"not null;default:0" json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FollowEdge records that Follower follows Followee.
type FollowEdge struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	FollowerID string    `gorm:"size:36;not null;uniqueIndex:uidx_follow_pair" json:"followerId"`
	FolloweeID string    `gorm:"size:36;not null;uniqueIndex:uidx_follow_pair" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FollowRequest is a pending follow awaiting the followee's decision.
type FollowRequest struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	RequesterID string    `gorm:"size:36;not null;uniqueIndex:uidx_request_pair" json:"requesterId"`
	TargetID    string    `gorm:"size:36;not null;uniqueIndex:uidx_request_pair" json:"targetId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlockEdge records that Blocker has blocked Blocked. A block edge forbids
// follow operations in either direction.
type BlockEdge struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	BlockerID string    `gorm:"size:36;not null;uniqueIndex:uidx_block_pair" json:"blockerId"`
	BlockedID string    `gorm:"size:36;not null;uniqueIndex:uidx_block_pair" json:"blockedId"`
	CreatedAt time.Time `json:"createdAt"`
}
