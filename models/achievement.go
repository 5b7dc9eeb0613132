package models

import "time"

// Achievement is an admin-managed definition: reach Target counted events of
// Code to earn it. DailyLimited achievements count at most once per calendar
// day.
type Achievement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Target       int       `gorm:"not null" json:"target"`
	DailyLimited bool      `gorm:"not null;default:false" json:"dailyLimited"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AchievementProgress is one user's running counter toward an achievement.
// LastCountedDay gates daily-limited increments; it is compared against a
// caller-supplied as-of date, never the server clock.
type AchievementProgress struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	UserID         string     `gorm:"size:36;not null;uniqueIndex:uidx_user_achievement" json:"userId"`
	AchievementID  uint       `gorm:"not null;uniqueIndex:uidx_user_achievement" json:"achievementId"`
	Count          int        `gorm:"not null;default:0" json:"count"`
	LastCountedDay *time.Time `json:"lastCountedDay,omitempty"`
	AchievedAt     *time.Time `json:"achievedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
