package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
	"local-services-server/utils"
)

// RegisterWorkerRoutes registers worker profile and earnings routes
func RegisterWorkerRoutes(router *gin.RouterGroup) {
	workerRoutes := router.Group("/workers")
	{
		workerRoutes.POST("/profile", upsertWorkerProfile)
		workerRoutes.GET("/profile", getOwnWorkerProfile)
		workerRoutes.GET("/:id", getWorkerProfile)
		workerRoutes.PUT("/location", updateWorkerLocation)
		workerRoutes.GET("/me/earnings", getWorkerEarnings)
	}
}

// upsertWorkerProfile creates or updates the caller's worker profile
func upsertWorkerProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	if c.GetString("role") != string(models.RoleWorker) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only workers can manage a worker profile"})
		return
	}

	var req models.WorkerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.WorkerProfile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		profile = models.WorkerProfile{UserID: userID}
	}

	profile.CategoryID = req.CategoryID
	profile.City = req.City
	profile.Address = req.Address
	profile.Experience = req.Experience
	profile.Skills = req.Skills
	profile.HourlyRate = req.HourlyRate

	if profile.ID == 0 {
		err = database.DB.Create(&profile).Error
	} else {
		err = database.DB.Save(&profile).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save worker profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Worker profile saved",
		"profile": profile,
	})
}

// getOwnWorkerProfile returns the caller's worker profile
func getOwnWorkerProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var profile models.WorkerProfile
	if err := database.DB.Where("user_id = ?", userID).
		Preload("Category").
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// getWorkerProfile returns a worker's public profile by user id
func getWorkerProfile(c *gin.Context) {
	workerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker id"})
		return
	}

	var profile models.WorkerProfile
	if err := database.DB.Where("user_id = ?", workerID).
		Preload("Category").
		Preload("User").
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// updateWorkerLocation stores the worker's current coordinates and availability
func updateWorkerLocation(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.IsLocationValid(req.Latitude, req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location coordinates"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"current_lat":          req.Latitude,
		"current_lng":          req.Longitude,
		"is_available":         req.IsAvailable,
		"last_location_update": now,
	}
	result := database.DB.Model(&models.WorkerProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated"})
}

// getWorkerEarnings returns the caller's earnings summary over completed bookings
func getWorkerEarnings(c *gin.Context) {
	userID := c.GetUint("user_id")

	summary, err := services.NewBookingService(database.DB).Earnings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute earnings"})
		return
	}

	var profile models.WorkerProfile
	lifetime := 0.0
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		lifetime = profile.TotalEarnings
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings":          summary,
		"lifetime_earnings": lifetime,
		"completed_jobs":    profile.CompletedJobs,
	})
}
