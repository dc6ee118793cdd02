package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"local-services-server/config"
	"local-services-server/database"
	"local-services-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterWorkerMediaRoutes adds the profile photo upload endpoint under the protected group
func RegisterWorkerMediaRoutes(rg *gin.RouterGroup) {
	rg.POST("/workers/profile/photo", func(c *gin.Context) {
		userID := c.GetUint("user_id")

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
			return
		}

		header, _ := c.FormFile("profile_photo")
		if header == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file provided"})
			return
		}
		if !validateImageFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid profile photo"})
			return
		}

		var wp models.WorkerProfile
		if err := database.DB.Where("user_id = ?", userID).First(&wp).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Worker profile not found"})
			return
		}

		media := config.AppConfig.Media
		if media.CloudinaryCloudName == "" || media.CloudinaryAPIKey == "" || media.CloudinaryAPISecret == "" {
			log.Printf("❌ Cloudinary environment variables not set")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary not configured"})
			return
		}

		cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", media.CloudinaryAPIKey, media.CloudinaryAPISecret, media.CloudinaryCloudName)
		cld, err := cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			log.Printf("❌ Failed to initialize Cloudinary: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary initialization failed"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read file"})
			return
		}
		defer file.Close()

		overwrite := true
		uniqueFilename := true
		folder := "workers/profile_photos/" + strconv.Itoa(int(userID))
		up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
			Folder:         folder,
			PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
			Overwrite:      &overwrite,
			UniqueFilename: &uniqueFilename,
			ResourceType:   "image",
		})
		if err != nil {
			log.Printf("❌ Profile photo upload failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Profile upload failed"})
			return
		}

		wp.ProfilePhoto = &up.SecureURL
		if err := database.DB.Save(&wp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "profile_photo_url": up.SecureURL})
	})
}
