package services

import (
	"context"
	"errors"
	"time"

	"fitlog/internal/cache"
	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"

	"gorm.io/gorm"
)

// LeaderboardScope selects whose records a board covers.
type LeaderboardScope string

const (
	ScopeSelf    LeaderboardScope = "self"
	ScopeFriends LeaderboardScope = "friends"
)

// ParseLeaderboardScope resolves a wire value into a LeaderboardScope.
func ParseLeaderboardScope(s string) (LeaderboardScope, error) {
	switch LeaderboardScope(s) {
	case ScopeSelf, ScopeFriends:
		return LeaderboardScope(s), nil
	}
	return "", errors.New("unknown leaderboard scope " + s)
}

// CommunityService owns the social graph and orchestrates leaderboard
// computation across the domain services.
type CommunityService struct {
	db       *gorm.DB
	engine   leaderboard.Engine
	cardio   *CardioService
	training *TrainingService
	stats    *StatisticsService
	boards   *cache.LeaderboardCache
}

func NewCommunityService(db *gorm.DB, cardio *CardioService, training *TrainingService, stats *StatisticsService, boards *cache.LeaderboardCache) *CommunityService {
	return &CommunityService{db: db, cardio: cardio, training: training, stats: stats, boards: boards}
}

// blocked reports whether a block edge exists in either direction.
func (c *CommunityService) blocked(a, b string) (bool, error) {
	var count int64
	err := c.db.Model(&models.BlockEdge{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// Follow creates a follow edge and bumps both follower counters in one
// transaction. Blocked pairs are forbidden, duplicate edges conflict.
func (c *CommunityService) Follow(followerID, followeeID string) status.Result {
	if followerID == followeeID {
		return status.Error(status.ModelStateNotValid, "cannot follow yourself")
	}

	isBlocked, err := c.blocked(followerID, followeeID)
	if err != nil {
		return failure(err)
	}
	if isBlocked {
		return status.Error(status.Forbidden, "blocked relationship")
	}

	var existing models.FollowEdge
	err = c.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing).Error
	if err == nil {
		return status.Error(status.AlreadyExists, "already following")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(err)
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).Where("id = ?", followeeID).
			UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// Unfollow removes the edge and decrements both counters in one transaction.
func (c *CommunityService) Unfollow(followerID, followeeID string) status.Result {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.FollowEdge{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).Where("id = ?", followeeID).
			UpdateColumn("follower_count", gorm.Expr("follower_count - 1")).Error
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// RequestFollow files a pending follow request.
func (c *CommunityService) RequestFollow(requesterID, targetID string) status.Result {
	if requesterID == targetID {
		return status.Error(status.ModelStateNotValid, "cannot request yourself")
	}
	isBlocked, err := c.blocked(requesterID, targetID)
	if err != nil {
		return failure(err)
	}
	if isBlocked {
		return status.Error(status.Forbidden, "blocked relationship")
	}

	var existing models.FollowRequest
	err = c.db.Where("requester_id = ? AND target_id = ?", requesterID, targetID).First(&existing).Error
	if err == nil {
		return status.Error(status.AlreadyExists, "request already pending")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(err)
	}

	if err := c.db.Create(&models.FollowRequest{RequesterID: requesterID, TargetID: targetID}).Error; err != nil {
		return failure(err)
	}
	return status.OK()
}

// AcceptRequest converts a pending request into a follow edge in one
// transaction.
func (c *CommunityService) AcceptRequest(targetID, requesterID string) status.Result {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
			Delete(&models.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(&models.FollowEdge{FollowerID: requesterID, FolloweeID: targetID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", requesterID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).Where("id = ?", targetID).
			UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// DeclineRequest drops a pending request.
func (c *CommunityService) DeclineRequest(targetID, requesterID string) status.Result {
	res := c.db.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Delete(&models.FollowRequest{})
	if res.Error != nil {
		return failure(res.Error)
	}
	if res.RowsAffected == 0 {
		return status.Error(status.NotFound, "no pending request")
	}
	return status.OK()
}

// Block creates a block edge and tears down any follow edges between the two
// users, adjusting counters, all in one transaction.
func (c *CommunityService) Block(blockerID, blockedID string) status.Result {
	if blockerID == blockedID {
		return status.Error(status.ModelStateNotValid, "cannot block yourself")
	}

	var existing models.BlockEdge
	err := c.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&existing).Error
	if err == nil {
		return status.Error(status.AlreadyExists, "already blocked")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(err)
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.BlockEdge{BlockerID: blockerID, BlockedID: blockedID}).Error; err != nil {
			return err
		}
		pairs := [][2]string{{blockerID, blockedID}, {blockedID, blockerID}}
		for _, pair := range pairs {
			res := tx.Where("follower_id = ? AND followee_id = ?", pair[0], pair[1]).
				Delete(&models.FollowEdge{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				if err := tx.Model(&models.Account{}).Where("id = ?", pair[0]).
					UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Account{}).Where("id = ?", pair[1]).
					UpdateColumn("follower_count", gorm.Expr("follower_count - 1")).Error; err != nil {
					return err
				}
			}
		}
		// Pending requests between the pair die with the block.
		return tx.Where("(requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)",
			blockerID, blockedID, blockedID, blockerID).
			Delete(&models.FollowRequest{}).Error
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// Unblock removes a block edge.
func (c *CommunityService) Unblock(blockerID, blockedID string) status.Result {
	res := c.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.BlockEdge{})
	if res.Error != nil {
		return failure(res.Error)
	}
	if res.RowsAffected == 0 {
		return status.Error(status.NotFound, "no block edge")
	}
	return status.OK()
}

// Followers lists the accounts following a user.
func (c *CommunityService) Followers(userID string) ([]models.Account, status.Result) {
	var accounts []models.Account
	err := c.db.
		Joins("JOIN follow_edges ON follow_edges.follower_id = accounts.id").
		Where("follow_edges.followee_id = ?", userID).
		Find(&accounts).Error
	if err != nil {
		return nil, failure(err)
	}
	return accounts, status.OK()
}

// Following lists the accounts a user follows.
func (c *CommunityService) Following(userID string) ([]models.Account, status.Result) {
	var accounts []models.Account
	err := c.db.
		Joins("JOIN follow_edges ON follow_edges.followee_id = accounts.id").
		Where("follow_edges.follower_id = ?", userID).
		Find(&accounts).Error
	if err != nil {
		return nil, failure(err)
	}
	return accounts, status.OK()
}

// scopeUserIDs resolves a leaderboard scope to the set of user IDs it covers.
func (c *CommunityService) scopeUserIDs(userID string, scope LeaderboardScope) ([]string, error) {
	if scope == ScopeSelf {
		return []string{userID}, nil
	}
	var edges []models.FollowEdge
	if err := c.db.Where("follower_id = ?", userID).Find(&edges).Error; err != nil {
		return nil, err
	}
	ids := []string{userID}
	for _, e := range edges {
		ids = append(ids, e.FolloweeID)
	}
	return ids, nil
}

// StatBoard computes a leaderboard over one statistic type: denormalized
// all-time counters for the all-time window, per-record scans otherwise.
func (c *CommunityService) StatBoard(ctx context.Context, userID string, scope LeaderboardScope, t models.StatisticType, window leaderboard.TimeWindow, now time.Time) (leaderboard.Board, status.Result) {
	metric := string(t)
	return c.computeBoard(ctx, userID, scope, metric, window, now, leaderboard.ValueDesc,
		leaderboard.SourceFunc(func(ctx context.Context, uid string, w leaderboard.TimeWindow, at time.Time) (leaderboard.Record, bool, error) {
			cutoff, bounded := w.Cutoff(at)
			value, ok, res := c.stats.WindowValue(ctx, uid, t, cutoff, bounded)
			if !res.Success {
				return leaderboard.Record{}, false, errors.New(res.Message)
			}
			if !ok {
				return leaderboard.Record{}, false, nil
			}
			return leaderboard.Record{UserID: uid, Value: value}, true, nil
		}))
}

// CardioBoard computes a best-speed leaderboard for one activity type.
func (c *CommunityService) CardioBoard(ctx context.Context, userID string, scope LeaderboardScope, activity models.ActivityType, window leaderboard.TimeWindow, now time.Time) (leaderboard.Board, status.Result) {
	metric := "cardio:" + string(activity)
	return c.computeBoard(ctx, userID, scope, metric, window, now, leaderboard.ValueDesc, c.cardio.BestSpeedSource(activity))
}

// LiftBoard computes a best-weight leaderboard for one exercise name.
func (c *CommunityService) LiftBoard(ctx context.Context, userID string, scope LeaderboardScope, exercise string, window leaderboard.TimeWindow, now time.Time) (leaderboard.Board, status.Result) {
	metric := "lift:" + exercise
	return c.computeBoard(ctx, userID, scope, metric, window, now, leaderboard.WeightThenReps, c.training.BestLiftSource(exercise))
}

func (c *CommunityService) computeBoard(ctx context.Context, userID string, scope LeaderboardScope, metric string, window leaderboard.TimeWindow, now time.Time, cmp leaderboard.Comparator, src leaderboard.Source) (leaderboard.Board, status.Result) {
	cacheOwner := userID + ":" + string(scope)
	if board, ok := c.boards.Get(ctx, cacheOwner, metric, window); ok {
		return board, status.OK()
	}

	ids, err := c.scopeUserIDs(userID, scope)
	if err != nil {
		return leaderboard.Board{}, failure(err)
	}

	board, err := c.engine.Compute(ctx, metric, ids, src, cmp, window, now)
	if err != nil {
		return leaderboard.Board{}, failure(err)
	}

	c.boards.Put(ctx, cacheOwner, metric, window, board)
	return board, status.OK()
}
