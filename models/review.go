package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a customer's rating of a worker for a completed booking.
// One review per booking, enforced by uniqueness on booking_id.
type Review struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	BookingID  uint    `json:"booking_id" gorm:"not null;uniqueIndex"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	CustomerID uint    `json:"customer_id" gorm:"not null;index"`
	Customer   User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID   uint    `json:"worker_id" gorm:"not null;index"`
	Worker     User    `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`

	Stars   int    `json:"stars" gorm:"type:int;not null;check:stars >= 1 AND stars <= 5"`
	Comment string `json:"comment" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ReviewCreate represents the request structure for creating a review
type ReviewCreate struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Stars     int    `json:"stars" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ReviewUpdate represents the request structure for updating a review
type ReviewUpdate struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
