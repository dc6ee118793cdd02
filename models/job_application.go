package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "applied"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusConfirmed ApplicationStatus = "confirmed"
)

// JobApplication represents a worker's bid on a job posting. Once both parties
// confirm an accepted application it is converted into a Booking exactly once.
type JobApplication struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	JobPostingID uint       `json:"job_posting_id" gorm:"not null;uniqueIndex:idx_job_worker"`
	JobPosting   JobPosting `json:"job_posting,omitempty" gorm:"foreignKey:JobPostingID"`
	WorkerID     uint       `json:"worker_id" gorm:"not null;uniqueIndex:idx_job_worker"`
	Worker       User       `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	// Denormalized from the posting for fast per-customer lookups
	CustomerID uint `json:"customer_id" gorm:"not null;index"`

	Message           string            `json:"message" gorm:"type:text"`
	ProposedAmount    float64           `json:"proposed_amount" gorm:"type:decimal(10,2);not null"`
	EstimatedDuration string            `json:"estimated_duration" gorm:"type:varchar(100)"`
	ProposedSchedule  *time.Time        `json:"proposed_schedule"`
	Status            ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'applied';check:status IN ('applied','accepted','rejected','confirmed')"`

	// Mutual confirmation flags, settable only by the matching party
	CustomerConfirmed   bool       `json:"customer_confirmed" gorm:"default:false"`
	CustomerConfirmedAt *time.Time `json:"customer_confirmed_at"`
	WorkerConfirmed     bool       `json:"worker_confirmed" gorm:"default:false"`
	WorkerConfirmedAt   *time.Time `json:"worker_confirmed_at"`

	// Conversion guard: set once, irreversible
	ConvertedToBooking bool       `json:"converted_to_booking" gorm:"default:false"`
	ConvertedAt        *time.Time `json:"converted_at"`
	BookingID          *uint      `json:"booking_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the JobApplication model
func (JobApplication) TableName() string {
	return "job_applications"
}

// BothConfirmed reports whether customer and worker have both confirmed
func (a *JobApplication) BothConfirmed() bool {
	return a.CustomerConfirmed && a.WorkerConfirmed
}

// ReadyForConversion reports whether the application can be materialized into a booking
func (a *JobApplication) ReadyForConversion() bool {
	return a.BothConfirmed() && a.Status == ApplicationStatusConfirmed && !a.ConvertedToBooking
}

// ApplicationCreate represents the request structure for applying to a job posting
type ApplicationCreate struct {
	JobPostingID      uint       `json:"job_posting_id" binding:"required"`
	Message           string     `json:"message"`
	ProposedAmount    float64    `json:"proposed_amount" binding:"min=0"`
	EstimatedDuration string     `json:"estimated_duration"`
	ProposedSchedule  *time.Time `json:"proposed_schedule"`
}

// ApplicationStatusUpdate represents the customer's accept/reject decision
type ApplicationStatusUpdate struct {
	Status ApplicationStatus `json:"status" binding:"required,oneof=accepted rejected"`
}
