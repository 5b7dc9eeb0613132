package controllers

import (
	"log"
	"net/http"
	"time"

	"fitlog/internal/cache"
	"fitlog/services"
	"fitlog/status"

	"github.com/gin-gonic/gin"
)

var (
	accountService     *services.AccountService
	dietService        *services.DietService
	cardioService      *services.CardioService
	trainingService    *services.TrainingService
	statisticsService  *services.StatisticsService
	communityService   *services.CommunityService
	mealService        *services.MealService
	achievementService *services.AchievementService
	rateLimiter        *cache.RateLimiter
	rateLimits         cache.RateLimitConfig
)

// Init wires the handler package to the service layer. Called once from main
// before the router starts serving.
func Init(
	accounts *services.AccountService,
	diet *services.DietService,
	cardio *services.CardioService,
	training *services.TrainingService,
	statistics *services.StatisticsService,
	community *services.CommunityService,
	meals *services.MealService,
	achievements *services.AchievementService,
	limiter *cache.RateLimiter,
) {
	accountService = accounts
	dietService = diet
	cardioService = cardio
	trainingService = training
	statisticsService = statistics
	communityService = community
	mealService = meals
	achievementService = achievements
	rateLimiter = limiter
	rateLimits = cache.DefaultRateLimitConfig()
}

// fail writes a failed service result as the HTTP response.
func fail(c *gin.Context, res status.Result) {
	c.JSON(res.Code.HTTPStatus(), gin.H{"error": res.Message, "code": res.Code.String()})
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return userID, true
}

// parseDate accepts a calendar day as 2006-01-02 or full RFC 3339.
func parseDate(c *gin.Context, value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD or RFC 3339"})
		return time.Time{}, false
	}
	return t, true
}

// countToward bumps an achievement counter after a successful log. Missing
// definitions are not an error: deployments choose which achievements exist.
func countToward(userID, code string, asOf time.Time) {
	if achievementService == nil {
		return
	}
	if res := achievementService.Increment(userID, code, asOf); !res.Success && res.Code != status.NotFound {
		// Achievement bookkeeping must never fail the log itself.
		log.Printf("Failed to count %s toward %s: %s", userID, code, res.Message)
	}
}
