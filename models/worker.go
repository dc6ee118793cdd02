package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkerProfile represents a worker's professional profile
type WorkerProfile struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	UserID       uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	CategoryID   uint            `json:"category_id" gorm:"not null"`
	Category     ServiceCategory `json:"category" gorm:"foreignKey:CategoryID"`
	City         string          `json:"city" gorm:"type:varchar(100)"`
	Address      string          `json:"address" gorm:"type:text"`
	Experience   string          `json:"experience" gorm:"type:text"`
	Skills       string          `json:"skills" gorm:"type:text"`
	HourlyRate   float64         `json:"hourly_rate" gorm:"type:decimal(10,2);default:0"`
	ProfilePhoto *string         `json:"profile_photo" gorm:"type:varchar(500)"`

	// Location and availability
	IsAvailable        bool       `json:"is_available" gorm:"default:false"`
	CurrentLat         *float64   `json:"current_lat" gorm:"type:decimal(10,8)"`
	CurrentLng         *float64   `json:"current_lng" gorm:"type:decimal(11,8)"`
	LastLocationUpdate *time.Time `json:"last_location_update"`

	// Lifetime counters. CompletedJobs is bumped when a customer reviews a
	// completed booking; TotalEarnings is bumped when a booking completes.
	// Both are updated with atomic SQL increments, never read-modify-write.
	CompletedJobs int     `json:"completed_jobs" gorm:"default:0"`
	TotalEarnings float64 `json:"total_earnings" gorm:"type:decimal(12,2);default:0"`
	Rating        float64 `json:"rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews  int     `json:"total_reviews" gorm:"default:0"`
	IsVerified    bool    `json:"is_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the WorkerProfile model
func (WorkerProfile) TableName() string {
	return "worker_profiles"
}

// WorkerProfileRequest represents the request structure for creating/updating a worker profile
type WorkerProfileRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	City       string  `json:"city"`
	Address    string  `json:"address"`
	Experience string  `json:"experience"`
	Skills     string  `json:"skills"`
	HourlyRate float64 `json:"hourly_rate"`
}

// LocationUpdateRequest represents a worker's location update
type LocationUpdateRequest struct {
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	IsAvailable bool    `json:"is_available"`
}
