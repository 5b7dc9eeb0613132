package services

import (
	"errors"
	"time"

	"fitlog/models"
	"fitlog/status"
	"fitlog/store"

	"gorm.io/gorm"
)

// EventSink receives achievement events for broadcast. The websocket hub
// implements it; a nil sink drops events.
type EventSink interface {
	AchievementEarned(userID, code string, at time.Time)
}

// AchievementService maintains achievement definitions and per-user
// progress counters in the relational store.
type AchievementService struct {
	db     *gorm.DB
	events EventSink
}

func NewAchievementService(db *gorm.DB, events EventSink) *AchievementService {
	return &AchievementService{db: db, events: events}
}

// Definitions lists all achievement definitions.
func (a *AchievementService) Definitions() ([]models.Achievement, status.Result) {
	var defs []models.Achievement
	if err := a.db.Order("code").Find(&defs).Error; err != nil {
		return nil, failure(err)
	}
	return defs, status.OK()
}

// UpsertDefinition creates or updates an achievement definition by code.
// Admin only; the route guard enforces that.
func (a *AchievementService) UpsertDefinition(def models.Achievement) status.Result {
	if def.Code == "" || def.Target <= 0 {
		return status.Error(status.ModelStateNotValid, "code and a positive target are required")
	}

	var existing models.Achievement
	err := a.db.Where("code = ?", def.Code).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := a.db.Create(&def).Error; err != nil {
			return failure(err)
		}
		return status.OK()
	}
	if err != nil {
		return failure(err)
	}

	existing.Name = def.Name
	existing.Description = def.Description
	existing.Target = def.Target
	existing.DailyLimited = def.DailyLimited
	if err := a.db.Save(&existing).Error; err != nil {
		return failure(err)
	}
	return status.OK()
}

// Progress lists a user's counters joined with their definitions.
type ProgressEntry struct {
	Achievement models.Achievement         `json:"achievement"`
	Progress    models.AchievementProgress `json:"progress"`
}

func (a *AchievementService) Progress(userID string) ([]ProgressEntry, status.Result) {
	var rows []models.AchievementProgress
	if err := a.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, failure(err)
	}

	entries := make([]ProgressEntry, 0, len(rows))
	for _, row := range rows {
		var def models.Achievement
		if err := a.db.First(&def, row.AchievementID).Error; err != nil {
			return nil, failure(err)
		}
		entries = append(entries, ProgressEntry{Achievement: def, Progress: row})
	}
	return entries, status.OK()
}

// Increment counts one event toward an achievement. asOf is supplied by the
// caller; daily-limited achievements count at most once per asOf calendar
// day. Earning the achievement fires the event sink.
func (a *AchievementService) Increment(userID, code string, asOf time.Time) status.Result {
	asOfDay := store.DayOf(asOf)

	var earned bool
	err := a.db.Transaction(func(tx *gorm.DB) error {
		var def models.Achievement
		if err := tx.Where("code = ?", code).First(&def).Error; err != nil {
			return err
		}

		var progress models.AchievementProgress
		err := tx.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.AchievementProgress{UserID: userID, AchievementID: def.ID}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if def.DailyLimited && progress.LastCountedDay != nil && progress.LastCountedDay.Equal(asOfDay) {
			// Already counted for this day; not an error.
			return nil
		}

		progress.Count++
		progress.LastCountedDay = &asOfDay
		if progress.AchievedAt == nil && progress.Count >= def.Target {
			now := asOf
			progress.AchievedAt = &now
			earned = true
		}
		return tx.Save(&progress).Error
	})
	if err != nil {
		return failure(err)
	}

	if earned && a.events != nil {
		a.events.AchievementEarned(userID, code, asOf)
	}
	return status.OK()
}
