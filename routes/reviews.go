package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
)

// RegisterReviewRoutes registers all review routes
func RegisterReviewRoutes(router *gin.RouterGroup) {
	reviewRoutes := router.Group("/reviews")
	{
		reviewRoutes.POST("/", createReview)
		reviewRoutes.GET("/my-reviews", getMyReviews)
		reviewRoutes.GET("/worker/:workerId", getWorkerReviews)
		reviewRoutes.PUT("/:reviewId", updateReview)
		reviewRoutes.DELETE("/:reviewId", deleteReview)
	}
}

// createReview submits a review for a completed booking owned by the caller
func createReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.ReviewCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data", "details": err.Error()})
		return
	}

	review, err := services.NewReviewService(database.DB).Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// getMyReviews returns reviews written by the caller
func getMyReviews(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviews, err := services.NewReviewService(database.DB).ListByCustomer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":     reviews,
		"total_count": len(reviews),
	})
}

// getWorkerReviews returns reviews received by a worker
func getWorkerReviews(c *gin.Context) {
	workerID, err := strconv.ParseUint(c.Param("workerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worker id"})
		return
	}

	reviews, err := services.NewReviewService(database.DB).ListByWorker(uint(workerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":     reviews,
		"total_count": len(reviews),
	})
}

// updateReview edits a review written by the caller
func updateReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	var req models.ReviewUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := services.NewReviewService(database.DB).Update(uint(reviewID), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// deleteReview removes a review written by the caller
func deleteReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := services.NewReviewService(database.DB).Delete(uint(reviewID), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
