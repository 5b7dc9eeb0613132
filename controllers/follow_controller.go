package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FollowUserHandler follows a user
func FollowUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("userId")

	allowed, err := rateLimiter.CheckFollowRateLimit(c.Request.Context(), userID, rateLimits)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate limiting unavailable"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before following again"})
		return
	}

	if res := communityService.Follow(userID, targetID); !res.Success {
		fail(c, res)
		return
	}
	rateLimiter.RecordFollow(c.Request.Context(), userID, rateLimits)

	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
}

// UnfollowUserHandler unfollows a user
func UnfollowUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.Unfollow(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

// RequestFollowHandler files a pending follow request
func RequestFollowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.RequestFollow(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow request sent"})
}

// AcceptFollowRequestHandler converts a pending request into a follow
func AcceptFollowRequestHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.AcceptRequest(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow request accepted"})
}

// DeclineFollowRequestHandler drops a pending request
func DeclineFollowRequestHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.DeclineRequest(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow request declined"})
}

// BlockUserHandler blocks a user and tears down any follow relationship
func BlockUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.Block(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// UnblockUserHandler removes a block
func UnblockUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := communityService.Unblock(userID, c.Param("userId")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

// GetFollowersHandler lists the accounts following the user
func GetFollowersHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, res := communityService.Followers(userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": accounts})
}

// GetFollowingHandler lists the accounts the user follows
func GetFollowingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, res := communityService.Following(userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": accounts})
}
