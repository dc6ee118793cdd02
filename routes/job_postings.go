package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/services"
	ws "local-services-server/websocket"
)

var jobHub *ws.Hub

// SetJobHub wires the WebSocket hub used to push new open postings to workers
func SetJobHub(hub *ws.Hub) {
	jobHub = hub
}

// RegisterJobPostingRoutes registers all job posting routes. Mutations are
// customer-only; reads are open to any authenticated user.
func RegisterJobPostingRoutes(router *gin.RouterGroup) {
	customerOnly := middleware.RequireRole(models.RoleCustomer)

	router.POST("/", customerOnly, createJobPosting)
	router.GET("/my-postings", getMyJobPostings)
	router.GET("/nearby", getNearbyJobPostings)
	router.GET("/:id", getJobPosting)
	router.PUT("/:id", customerOnly, updateJobPosting)
	router.DELETE("/:id", customerOnly, deleteJobPosting)
	router.POST("/:id/repost", customerOnly, repostJobPosting)
	router.GET("/:id/applications", getJobApplications)
}

// createJobPosting creates a new open job posting and pushes it to connected workers
func createJobPosting(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.JobPostingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting, err := services.NewJobService(database.DB).Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if jobHub != nil {
		go jobHub.SendJobPostingNotification(posting)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Job posting created successfully",
		"job_posting": posting,
	})
}

// getMyJobPostings returns all postings created by the current customer
func getMyJobPostings(c *gin.Context) {
	userID := c.GetUint("user_id")

	postings, err := services.NewJobService(database.DB).ListByCustomer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job postings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_postings": postings,
		"total_count":  len(postings),
	})
}

// getNearbyJobPostings returns open postings near the given coordinates
func getNearbyJobPostings(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat is required"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng is required"})
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)
	categoryID, _ := strconv.ParseUint(c.DefaultQuery("category_id", "0"), 10, 32)

	postings, err := services.NewJobService(database.DB).ListNearby(lat, lng, radius, uint(categoryID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_postings": postings,
		"total_count":  len(postings),
	})
}

// getJobPosting returns a single posting by id
func getJobPosting(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job posting id"})
		return
	}

	posting, err := services.NewJobService(database.DB).Get(uint(jobID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_posting": posting})
}

// updateJobPosting edits an open posting owned by the caller
func updateJobPosting(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job posting id"})
		return
	}

	var req models.JobPostingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting, err := services.NewJobService(database.DB).Update(uint(jobID), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Job posting updated successfully",
		"job_posting": posting,
	})
}

// deleteJobPosting deletes an open posting owned by the caller
func deleteJobPosting(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job posting id"})
		return
	}

	if err := services.NewJobService(database.DB).Delete(uint(jobID), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job posting deleted successfully"})
}

// repostJobPosting clones a posting into a new open one
func repostJobPosting(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job posting id"})
		return
	}

	posting, err := services.NewJobService(database.DB).Repost(uint(jobID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if jobHub != nil {
		go jobHub.SendJobPostingNotification(posting)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Job posting reposted successfully",
		"job_posting": posting,
	})
}

// getJobApplications lists applications on a posting, owner only
func getJobApplications(c *gin.Context) {
	userID := c.GetUint("user_id")
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job posting id"})
		return
	}

	applications, err := services.NewApplicationService(database.DB).ListByJob(uint(jobID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total_count":  len(applications),
	})
}
