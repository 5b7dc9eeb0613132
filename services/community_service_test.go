package services

import (
	"testing"

	"fitlog/models"
	"fitlog/status"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestParseLeaderboardScope(t *testing.T) {
	for _, valid := range []string{"self", "friends"} {
		if _, err := ParseLeaderboardScope(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseLeaderboardScope("everyone"); err == nil {
		t.Error("expected unknown scope to fail")
	}
}

func newCommunityFixture(t *testing.T, userIDs ...string) (*CommunityService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.Account{}, &models.FollowEdge{}, &models.FollowRequest{}, &models.BlockEdge{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, id := range userIDs {
		acc := models.Account{ID: id, Email: id + "@example.com", PasswordHash: "x", DisplayName: id}
		if err := db.Create(&acc).Error; err != nil {
			t.Fatalf("seed account %s: %v", id, err)
		}
	}
	return NewCommunityService(db, nil, nil, nil, nil), db
}

func counters(t *testing.T, db *gorm.DB, userID string) (followers, following int) {
	t.Helper()
	var acc models.Account
	if err := db.First(&acc, "id = ?", userID).Error; err != nil {
		t.Fatalf("load account %s: %v", userID, err)
	}
	return acc.FollowerCount, acc.FollowingCount
}

func TestFollowUpdatesBothCounters(t *testing.T) {
	c, db := newCommunityFixture(t, "u1", "u2")

	if res := c.Follow("u1", "u2"); !res.Success {
		t.Fatalf("Follow failed: %v", res.Message)
	}

	if followers, _ := counters(t, db, "u2"); followers != 1 {
		t.Errorf("expected followee's follower count 1, got %d", followers)
	}
	if _, following := counters(t, db, "u1"); following != 1 {
		t.Errorf("expected follower's following count 1, got %d", following)
	}
}

func TestFollowDuplicateEdgeConflicts(t *testing.T) {
	c, db := newCommunityFixture(t, "u1", "u2")

	if res := c.Follow("u1", "u2"); !res.Success {
		t.Fatalf("Follow failed: %v", res.Message)
	}
	res := c.Follow("u1", "u2")
	if res.Success || res.Code != status.AlreadyExists {
		t.Fatalf("expected AlreadyExists on duplicate edge, got %+v", res)
	}
	// The failed follow must not touch the counters.
	if followers, _ := counters(t, db, "u2"); followers != 1 {
		t.Errorf("duplicate follow bumped follower count to %d", followers)
	}
}

func TestFollowBlockedPairForbidden(t *testing.T) {
	c, _ := newCommunityFixture(t, "u1", "u2")

	if res := c.Block("u2", "u1"); !res.Success {
		t.Fatalf("Block failed: %v", res.Message)
	}

	// The block forbids follow traffic in both directions.
	if res := c.Follow("u1", "u2"); res.Success || res.Code != status.Forbidden {
		t.Errorf("expected Forbidden for blocked follower, got %+v", res)
	}
	if res := c.Follow("u2", "u1"); res.Success || res.Code != status.Forbidden {
		t.Errorf("expected Forbidden for blocking follower, got %+v", res)
	}
	if res := c.RequestFollow("u1", "u2"); res.Success || res.Code != status.Forbidden {
		t.Errorf("expected Forbidden for blocked request, got %+v", res)
	}
}

func TestBlockTearsDownFollowsAndRequests(t *testing.T) {
	c, db := newCommunityFixture(t, "u1", "u2", "u3")

	if res := c.Follow("u1", "u2"); !res.Success {
		t.Fatal(res.Message)
	}
	if res := c.Follow("u2", "u1"); !res.Success {
		t.Fatal(res.Message)
	}
	if res := c.Follow("u1", "u3"); !res.Success {
		t.Fatal(res.Message)
	}
	if res := c.RequestFollow("u2", "u1"); !res.Success {
		t.Fatal(res.Message)
	}

	if res := c.Block("u1", "u2"); !res.Success {
		t.Fatalf("Block failed: %v", res.Message)
	}

	var edges int64
	db.Model(&models.FollowEdge{}).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)", "u1", "u2", "u2", "u1").
		Count(&edges)
	if edges != 0 {
		t.Errorf("block left %d follow edges between the pair", edges)
	}
	var requests int64
	db.Model(&models.FollowRequest{}).Count(&requests)
	if requests != 0 {
		t.Errorf("block left %d pending requests", requests)
	}

	// Counters reflect the teardown; the unrelated u1->u3 edge survives.
	followers, following := counters(t, db, "u1")
	if followers != 0 || following != 1 {
		t.Errorf("expected u1 counters 0/1 after block, got %d/%d", followers, following)
	}
	followers, following = counters(t, db, "u2")
	if followers != 0 || following != 0 {
		t.Errorf("expected u2 counters 0/0 after block, got %d/%d", followers, following)
	}
}

func TestAcceptRequestCreatesFollowEdge(t *testing.T) {
	c, db := newCommunityFixture(t, "u1", "u2")

	if res := c.RequestFollow("u1", "u2"); !res.Success {
		t.Fatalf("RequestFollow failed: %v", res.Message)
	}
	if res := c.AcceptRequest("u2", "u1"); !res.Success {
		t.Fatalf("AcceptRequest failed: %v", res.Message)
	}

	var edges int64
	db.Model(&models.FollowEdge{}).Where("follower_id = ? AND followee_id = ?", "u1", "u2").Count(&edges)
	if edges != 1 {
		t.Fatalf("expected accepted request to create one edge, got %d", edges)
	}
	if followers, _ := counters(t, db, "u2"); followers != 1 {
		t.Errorf("expected follower count 1 after accept, got %d", followers)
	}

	// Accepting again finds no pending request.
	if res := c.AcceptRequest("u2", "u1"); res.Success || res.Code != status.NotFound {
		t.Errorf("expected NotFound on re-accept, got %+v", res)
	}
}

func TestUnfollowMissingEdgeReportsNotFound(t *testing.T) {
	c, _ := newCommunityFixture(t, "u1", "u2")

	if res := c.Unfollow("u1", "u2"); res.Success || res.Code != status.NotFound {
		t.Errorf("expected NotFound for absent edge, got %+v", res)
	}
}
