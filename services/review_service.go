package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"local-services-server/models"
)

// ReviewService handles review submission against completed bookings and the
// worker rating aggregates derived from them.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create submits a review for a booking. The caller must own the booking, the
// booking must be completed, and the booking must not have been reviewed yet.
// The worker's completed-jobs counter is bumped atomically on success.
func (s *ReviewService) Create(customerID uint, req models.ReviewCreate) (*models.Review, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", ErrValidation)
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, req.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, req.BookingID)
			}
			return err
		}
		if booking.CustomerID != customerID {
			return fmt.Errorf("%w: you can only review your own bookings", ErrForbidden)
		}
		if booking.Status != models.BookingStatusCompleted && booking.Status != models.BookingStatusConfirmed {
			return fmt.Errorf("%w: only completed bookings can be reviewed", ErrConflict)
		}

		var count int64
		if err := tx.Model(&models.Review{}).Where("booking_id = ?", req.BookingID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: booking has already been reviewed", ErrConflict)
		}

		review = models.Review{
			BookingID:  req.BookingID,
			CustomerID: customerID,
			WorkerID:   booking.WorkerID,
			Stars:      req.Stars,
			Comment:    req.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: booking has already been reviewed", ErrConflict)
			}
			return err
		}

		// Atomic increment, independent from the earnings counter bumped at completion
		if err := tx.Model(&models.WorkerProfile{}).
			Where("user_id = ?", booking.WorkerID).
			Update("completed_jobs", gorm.Expr("completed_jobs + ?", 1)).Error; err != nil {
			return err
		}

		return s.refreshWorkerRating(tx, booking.WorkerID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Update edits a review; only its author may do so
func (s *ReviewService) Update(reviewID, customerID uint, req models.ReviewUpdate) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return nil, err
	}
	if review.CustomerID != customerID {
		return nil, fmt.Errorf("%w: you can only edit your own reviews", ErrForbidden)
	}

	review.Stars = req.Stars
	review.Comment = req.Comment
	if err := s.db.Save(&review).Error; err != nil {
		return nil, err
	}
	if err := s.refreshWorkerRating(s.db, review.WorkerID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review; only its author may do so
func (s *ReviewService) Delete(reviewID, customerID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return err
	}
	if review.CustomerID != customerID {
		return fmt.Errorf("%w: you can only delete your own reviews", ErrForbidden)
	}
	if err := s.db.Delete(&review).Error; err != nil {
		return err
	}
	return s.refreshWorkerRating(s.db, review.WorkerID)
}

// ListByCustomer returns all reviews written by a customer, newest first
func (s *ReviewService) ListByCustomer(customerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("customer_id = ?", customerID).
		Preload("Worker").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByWorker returns all reviews received by a worker, newest first
func (s *ReviewService) ListByWorker(workerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("worker_id = ?", workerID).
		Preload("Customer").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// refreshWorkerRating recomputes the worker profile's rating aggregates from
// the surviving reviews
func (s *ReviewService) refreshWorkerRating(tx *gorm.DB, workerID uint) error {
	var stats struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(stars), 0) as average, COUNT(*) as count").
		Where("worker_id = ?", workerID).
		Scan(&stats).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.WorkerProfile{}).
		Where("user_id = ?", workerID).
		Updates(map[string]interface{}{
			"rating":        stats.Average,
			"total_reviews": stats.Count,
		}).Error
}
