package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
)

// RegisterApplicationRoutes registers all job application routes
func RegisterApplicationRoutes(router *gin.RouterGroup) {
	router.POST("/", applyForJob)
	router.GET("/my-applications", getMyApplications)
	router.GET("/received", getReceivedApplications)
	router.GET("/:id", getApplication)
	router.PUT("/:id/status", updateApplicationStatus)
	router.POST("/:id/confirm", confirmApplication)
}

// applyForJob creates a worker's application against an open posting
func applyForJob(c *gin.Context) {
	userID := c.GetUint("user_id")
	if c.GetString("role") != string(models.RoleWorker) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only workers can apply for jobs"})
		return
	}

	var req models.ApplicationCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewApplicationService(database.DB).Apply(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// getMyApplications returns the worker's own applications
func getMyApplications(c *gin.Context) {
	userID := c.GetUint("user_id")

	applications, err := services.NewApplicationService(database.DB).ListByWorker(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total_count":  len(applications),
	})
}

// getReceivedApplications returns applications against the customer's postings
func getReceivedApplications(c *gin.Context) {
	userID := c.GetUint("user_id")

	applications, err := services.NewApplicationService(database.DB).ListByCustomer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total_count":  len(applications),
	})
}

// getApplication returns a single application visible to either party
func getApplication(c *gin.Context) {
	userID := c.GetUint("user_id")
	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	application, err := services.NewApplicationService(database.DB).Get(uint(applicationID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// updateApplicationStatus lets the posting owner accept or reject an application
func updateApplicationStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var req models.ApplicationStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := services.NewApplicationService(database.DB).UpdateStatus(uint(applicationID), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

// confirmApplication records the caller's confirmation; when both parties have
// confirmed, the application is converted into a booking exactly once
func confirmApplication(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := models.UserRole(c.GetString("role"))
	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	application, err := services.NewApplicationService(database.DB).Confirm(uint(applicationID), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Confirmation recorded",
		"application": application,
	})
}
