package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"local-services-server/models"
)

// ApplicationService handles the job application workflow: apply,
// customer accept/reject, two-party confirmation and the at-most-once
// conversion of a confirmed application into a booking.
type ApplicationService struct {
	db *gorm.DB
}

// NewApplicationService creates a new job application service
func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Apply creates a new application by a worker against an open posting.
// A worker may apply at most once per posting.
func (s *ApplicationService) Apply(workerID uint, req models.ApplicationCreate) (*models.JobApplication, error) {
	if req.ProposedAmount < 0 {
		return nil, fmt.Errorf("%w: proposed amount cannot be negative", ErrValidation)
	}

	var posting models.JobPosting
	if err := s.db.First(&posting, req.JobPostingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job posting %d", ErrNotFound, req.JobPostingID)
		}
		return nil, err
	}
	if !posting.IsOpen() {
		return nil, fmt.Errorf("%w: job posting is not open for applications (status %s)", ErrConflict, posting.Status)
	}

	var count int64
	if err := s.db.Model(&models.JobApplication{}).
		Where("job_posting_id = ? AND worker_id = ?", req.JobPostingID, workerID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: worker already applied to this job posting", ErrConflict)
	}

	application := models.JobApplication{
		JobPostingID:      req.JobPostingID,
		WorkerID:          workerID,
		CustomerID:        posting.CustomerID,
		Message:           req.Message,
		ProposedAmount:    req.ProposedAmount,
		EstimatedDuration: req.EstimatedDuration,
		ProposedSchedule:  req.ProposedSchedule,
		Status:            models.ApplicationStatusApplied,
	}
	if err := s.db.Create(&application).Error; err != nil {
		// The unique (posting, worker) index backs up the pre-check under races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: worker already applied to this job posting", ErrConflict)
		}
		return nil, err
	}
	return &application, nil
}

// UpdateStatus lets the owning customer accept or reject an applied
// application. Accepting assigns the posting to the application's worker; no
// other transitions go through here.
func (s *ApplicationService) UpdateStatus(applicationID, customerID uint, newStatus models.ApplicationStatus) (*models.JobApplication, error) {
	if newStatus != models.ApplicationStatusAccepted && newStatus != models.ApplicationStatusRejected {
		return nil, fmt.Errorf("%w: application status can only be set to accepted or rejected", ErrValidation)
	}

	var application models.JobApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: application %d", ErrNotFound, applicationID)
			}
			return err
		}
		if application.CustomerID != customerID {
			return fmt.Errorf("%w: only the posting owner can accept or reject applications", ErrForbidden)
		}
		if application.Status != models.ApplicationStatusApplied {
			return fmt.Errorf("%w: application is already %s", ErrConflict, application.Status)
		}

		if newStatus == models.ApplicationStatusAccepted {
			var posting models.JobPosting
			if err := tx.First(&posting, application.JobPostingID).Error; err != nil {
				return err
			}
			if !posting.IsOpen() {
				return fmt.Errorf("%w: job posting is no longer open (status %s)", ErrConflict, posting.Status)
			}
			updates := map[string]interface{}{
				"status":             models.JobStatusAssigned,
				"assigned_worker_id": application.WorkerID,
			}
			if err := tx.Model(&posting).Updates(updates).Error; err != nil {
				return err
			}
		}

		application.Status = newStatus
		return tx.Model(&application).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Confirm records one party's confirmation on an accepted application. The
// caller must be the worker or customer the application itself references.
// When both flags become true the application auto-promotes to confirmed and
// is converted into a booking exactly once; the whole sequence runs inside a
// single transaction with a conditional claim on converted_to_booking so that
// racing confirm calls cannot create two bookings.
func (s *ApplicationService) Confirm(applicationID, userID uint, role models.UserRole) (*models.JobApplication, error) {
	var application models.JobApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: application %d", ErrNotFound, applicationID)
			}
			return err
		}

		// Confirmation only applies to an accepted (or already confirmed)
		// application; applied has no decision yet and rejected is terminal
		if application.Status != models.ApplicationStatusAccepted &&
			application.Status != models.ApplicationStatusConfirmed {
			return fmt.Errorf("%w: application cannot be confirmed while %s", ErrConflict, application.Status)
		}

		now := time.Now()
		flags := map[string]interface{}{}
		switch role {
		case models.RoleWorker:
			if application.WorkerID != userID {
				return fmt.Errorf("%w: only the applying worker can confirm this application", ErrForbidden)
			}
			if !application.WorkerConfirmed {
				application.WorkerConfirmed = true
				application.WorkerConfirmedAt = &now
				flags["worker_confirmed"] = true
				flags["worker_confirmed_at"] = now
			}
		case models.RoleCustomer:
			if application.CustomerID != userID {
				return fmt.Errorf("%w: only the posting customer can confirm this application", ErrForbidden)
			}
			if !application.CustomerConfirmed {
				application.CustomerConfirmed = true
				application.CustomerConfirmedAt = &now
				flags["customer_confirmed"] = true
				flags["customer_confirmed_at"] = now
			}
		default:
			return fmt.Errorf("%w: role %q cannot confirm applications", ErrForbidden, role)
		}

		if len(flags) > 0 {
			if err := tx.Model(&application).Updates(flags).Error; err != nil {
				return err
			}
		}

		// Auto-promote once both sides have confirmed, whichever came last
		if application.BothConfirmed() && application.Status != models.ApplicationStatusConfirmed && !application.ConvertedToBooking {
			application.Status = models.ApplicationStatusConfirmed
			if err := tx.Model(&application).Update("status", models.ApplicationStatusConfirmed).Error; err != nil {
				return err
			}
		}

		if !application.ReadyForConversion() {
			return nil
		}
		return s.convertToBooking(tx, &application, now)
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// convertToBooking claims the conversion with a conditional update and, if the
// claim wins, materializes the booking. A lost claim means another confirm
// call already converted; that is a no-op, not an error.
func (s *ApplicationService) convertToBooking(tx *gorm.DB, application *models.JobApplication, now time.Time) error {
	claim := tx.Model(&models.JobApplication{}).
		Where("id = ? AND converted_to_booking = ?", application.ID, false).
		Updates(map[string]interface{}{
			"converted_to_booking": true,
			"converted_at":         now,
		})
	if claim.Error != nil {
		return claim.Error
	}
	if claim.RowsAffected == 0 {
		application.ConvertedToBooking = true
		return nil
	}

	var posting models.JobPosting
	if err := tx.First(&posting, application.JobPostingID).Error; err != nil {
		return err
	}

	scheduledDate := now
	if application.ProposedSchedule != nil {
		scheduledDate = *application.ProposedSchedule
	}

	booking := models.Booking{
		CustomerID:    application.CustomerID,
		WorkerID:      application.WorkerID,
		CategoryID:    posting.CategoryID,
		Status:        models.BookingStatusPending,
		Description:   posting.Title,
		Address:       posting.Address,
		LocationLat:   posting.LocationLat,
		LocationLng:   posting.LocationLng,
		ScheduledDate: scheduledDate,
		Amount:        application.ProposedAmount,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := tx.Create(&booking).Error; err != nil {
		return err
	}

	application.ConvertedToBooking = true
	application.ConvertedAt = &now
	application.BookingID = &booking.ID
	return tx.Model(application).Update("booking_id", booking.ID).Error
}

// Get returns an application visible to its worker or customer
func (s *ApplicationService) Get(applicationID, userID uint) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := s.db.Preload("JobPosting").First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application %d", ErrNotFound, applicationID)
		}
		return nil, err
	}
	if application.WorkerID != userID && application.CustomerID != userID {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}
	return &application, nil
}

// ListByWorker returns all applications submitted by a worker, newest first
func (s *ApplicationService) ListByWorker(workerID uint) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := s.db.Where("worker_id = ?", workerID).
		Preload("JobPosting").
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// ListByCustomer returns all applications against a customer's postings, newest first
func (s *ApplicationService) ListByCustomer(customerID uint) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := s.db.Where("customer_id = ?", customerID).
		Preload("JobPosting").
		Preload("Worker").
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// ListByJob returns all applications on one posting, visible to its owner only
func (s *ApplicationService) ListByJob(jobID, customerID uint) ([]models.JobApplication, error) {
	var posting models.JobPosting
	if err := s.db.First(&posting, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job posting %d", ErrNotFound, jobID)
		}
		return nil, err
	}
	if posting.CustomerID != customerID {
		return nil, fmt.Errorf("%w: only the posting owner can list its applications", ErrForbidden)
	}

	var applications []models.JobApplication
	err := s.db.Where("job_posting_id = ?", jobID).
		Preload("Worker").
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}
