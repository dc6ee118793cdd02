package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
)

// RegisterBookingRoutes registers all booking routes
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("/", createBooking)
	router.GET("/my-bookings", getMyBookings)
	router.GET("/assigned", getAssignedBookings)
	router.GET("/:id", getBooking)
	router.PUT("/:id/status", updateBookingStatus)
}

// createBooking creates a direct booking by a customer against a known worker
func createBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	if c.GetString("role") != string(models.RoleCustomer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only customers can create bookings"})
		return
	}

	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := services.NewBookingService(database.DB).CreateDirect(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// getMyBookings returns bookings where the caller is the customer
func getMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	bookings, err := services.NewBookingService(database.DB).ListByCustomer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":    bookings,
		"total_count": len(bookings),
	})
}

// getAssignedBookings returns bookings where the caller is the worker
func getAssignedBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	bookings, err := services.NewBookingService(database.DB).ListByWorker(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":    bookings,
		"total_count": len(bookings),
	})
}

// getBooking returns a single booking visible to either party
func getBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	booking, err := services.NewBookingService(database.DB).Get(uint(bookingID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// updateBookingStatus applies one role-gated status transition
func updateBookingStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	var req models.BookingStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := services.NewBookingService(database.DB).UpdateStatus(uint(bookingID), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated",
		"booking": booking,
	})
}
