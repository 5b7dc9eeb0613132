package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupCommunityRoutes(router *gin.RouterGroup) {
	// Follow routes
	router.POST("/users/:userId/follow", controllers.FollowUserHandler)
	router.DELETE("/users/:userId/follow", controllers.UnfollowUserHandler)
	router.POST("/users/:userId/follow-request", controllers.RequestFollowHandler)
	router.POST("/users/:userId/follow-request/accept", controllers.AcceptFollowRequestHandler)
	router.POST("/users/:userId/follow-request/decline", controllers.DeclineFollowRequestHandler)
	router.GET("/followers", controllers.GetFollowersHandler)
	router.GET("/following", controllers.GetFollowingHandler)

	// Block routes
	router.POST("/users/:userId/block", controllers.BlockUserHandler)
	router.DELETE("/users/:userId/block", controllers.UnblockUserHandler)

	// Leaderboards
	router.GET("/leaderboards/stats/:type", controllers.GetStatLeaderboardHandler)
	router.GET("/leaderboards/cardio/:activity", controllers.GetCardioLeaderboardHandler)
	router.GET("/leaderboards/lifts/:exercise", controllers.GetLiftLeaderboardHandler)
}
