package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/utils"
)

// RegisterAddressRoutes registers the customer address book routes
func RegisterAddressRoutes(router *gin.RouterGroup) {
	router.POST("/", createAddress)
	router.GET("/", getMyAddresses)
	router.PUT("/:id", updateAddress)
	router.DELETE("/:id", deleteAddress)
}

func createAddress(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LocationLat != nil && req.LocationLng != nil &&
		!utils.IsLocationValid(*req.LocationLat, *req.LocationLng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location coordinates"})
		return
	}

	address := models.Address{
		UserID:      userID,
		Label:       req.Label,
		AddressLine: req.AddressLine,
		City:        req.City,
		LocationLat: req.LocationLat,
		LocationLng: req.LocationLng,
		IsDefault:   req.IsDefault,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address saved successfully",
		"address": address,
	})
}

func getMyAddresses(c *gin.Context) {
	userID := c.GetUint("user_id")

	var addresses []models.Address
	if err := database.DB.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses":   addresses,
		"total_count": len(addresses),
	})
}

func updateAddress(c *gin.Context) {
	userID := c.GetUint("user_id")
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var address models.Address
	if err := database.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	address.Label = req.Label
	address.AddressLine = req.AddressLine
	address.City = req.City
	address.LocationLat = req.LocationLat
	address.LocationLng = req.LocationLng
	address.IsDefault = req.IsDefault

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", userID, address.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&address).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"address": address,
	})
}

func deleteAddress(c *gin.Context) {
	userID := c.GetUint("user_id")
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
