package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

// Canonical booking status vocabulary. Both creation paths (direct booking and
// application conversion) enter at "pending"; the progress state is spelled
// "in_progress" everywhere.
const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// WorkerEarningRate is the share of a completed booking's amount credited to
// the worker; the platform retains the remainder.
const WorkerEarningRate = 0.8

// Booking represents a scheduled, priced unit of work between one customer and
// one worker. Created either directly by a customer against a known worker or
// by converting a mutually confirmed job application.
type Booking struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	CustomerID uint            `json:"customer_id" gorm:"not null;index"`
	Customer   User            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID   uint            `json:"worker_id" gorm:"not null;index"`
	Worker     User            `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	CategoryID uint            `json:"category_id" gorm:"not null"`
	Category   ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Status        BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','accepted','rejected','in_progress','completed','confirmed','cancelled')"`
	Description   string        `json:"description" gorm:"type:text"`
	Urgent        bool          `json:"urgent" gorm:"default:false"`
	Address       string        `json:"address" gorm:"type:text"`
	LocationLat   *float64      `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng   *float64      `json:"location_lng" gorm:"type:decimal(11,8)"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	ScheduledTime string        `json:"scheduled_time" gorm:"size:20"`
	CompletedAt   *time.Time    `json:"completed_at"`

	Amount        float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(10);not null;default:'cash';check:payment_method IN ('cash','upi')"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(10);not null;default:'pending';check:payment_status IN ('pending','paid')"`
	// Computed once, on the transition into completed
	WorkerEarning float64 `json:"worker_earning" gorm:"type:decimal(10,2);default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether the booking can no longer change status
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusRejected, BookingStatusConfirmed:
		return true
	default:
		return false
	}
}

// BookingCreate represents the request structure for a direct customer booking
type BookingCreate struct {
	WorkerID      uint          `json:"worker_id" binding:"required"`
	CategoryID    uint          `json:"category_id" binding:"required"`
	Description   string        `json:"description"`
	Urgent        bool          `json:"urgent"`
	Address       string        `json:"address" binding:"required"`
	LocationLat   *float64      `json:"location_lat"`
	LocationLng   *float64      `json:"location_lng"`
	ScheduledDate time.Time     `json:"scheduled_date" binding:"required"`
	ScheduledTime string        `json:"scheduled_time"`
	Amount        float64       `json:"amount" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"omitempty,oneof=cash upi"`
}

// BookingStatusUpdate represents a requested booking status transition
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" binding:"required"`
}
