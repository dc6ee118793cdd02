package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
)

// RegisterCategoryRoutes registers public service category routes
func RegisterCategoryRoutes(router *gin.RouterGroup) {
	categoryRoutes := router.Group("/categories")
	{
		categoryRoutes.GET("/", getCategories)
		categoryRoutes.GET("/:id", getCategory)
	}
}

// getCategories returns all active service categories in display order
func getCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := database.DB.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  categories,
		"total_count": len(categories),
	})
}

// getCategory returns a single category by id
func getCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var category models.ServiceCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}
