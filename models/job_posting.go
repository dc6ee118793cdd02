package models

import (
	"time"

	"gorm.io/gorm"
)

type JobPostingStatus string

const (
	JobStatusOpen      JobPostingStatus = "open"
	JobStatusAssigned  JobPostingStatus = "assigned"
	JobStatusCompleted JobPostingStatus = "completed"
	JobStatusCancelled JobPostingStatus = "cancelled"
)

// JobPosting represents a customer's request for work, open to worker applications
type JobPosting struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	CustomerID  uint             `json:"customer_id" gorm:"not null;index"`
	Customer    User             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Title       string           `json:"title" gorm:"type:varchar(200);not null"`
	Description string           `json:"description" gorm:"type:text"`
	CategoryID  uint             `json:"category_id" gorm:"not null"`
	Category    ServiceCategory  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Budget      float64          `json:"budget" gorm:"type:decimal(10,2);not null"`
	Address     string           `json:"address" gorm:"type:text;not null"`
	City        string           `json:"city" gorm:"type:varchar(100)"`
	LocationLat *float64         `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng *float64         `json:"location_lng" gorm:"type:decimal(11,8)"`
	Status      JobPostingStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';check:status IN ('open','assigned','completed','cancelled')"`

	// Set only when an application is accepted; references users.id of the worker
	AssignedWorkerID *uint `json:"assigned_worker_id"`
	AssignedWorker   *User `json:"assigned_worker,omitempty" gorm:"foreignKey:AssignedWorkerID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Applications []JobApplication `json:"applications,omitempty" gorm:"foreignKey:JobPostingID"`
}

// TableName specifies the table name for the JobPosting model
func (JobPosting) TableName() string {
	return "job_postings"
}

// IsOpen reports whether the posting still accepts applications and edits
func (jp *JobPosting) IsOpen() bool {
	return jp.Status == JobStatusOpen
}

// JobPostingCreate represents the request structure for creating a job posting
type JobPostingCreate struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	Budget      float64  `json:"budget" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
}

// JobPostingUpdate represents the patch structure for editing an open job posting.
// Nil fields are left unchanged.
type JobPostingUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"category_id"`
	Budget      *float64 `json:"budget"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
}
