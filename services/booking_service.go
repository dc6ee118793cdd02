package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"local-services-server/models"
	"local-services-server/utils"
)

// allowedTransitions is the canonical booking status table. Anything not
// listed here is rejected with InvalidTransitionError.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:    {models.BookingStatusAccepted, models.BookingStatusRejected, models.BookingStatusCancelled},
	models.BookingStatusAccepted:   {models.BookingStatusInProgress, models.BookingStatusCancelled},
	models.BookingStatusInProgress: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCompleted:  {models.BookingStatusConfirmed},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BookingService handles the booking status machine and its completion side
// effects (payout calculation and the worker's lifetime earnings counter).
type BookingService struct {
	db *gorm.DB
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// CreateDirect creates a booking by a customer against a known worker,
// skipping the posting/application flow. Entry status is pending.
func (s *BookingService) CreateDirect(customerID uint, req models.BookingCreate) (*models.Booking, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if req.LocationLat != nil && req.LocationLng != nil &&
		!utils.IsLocationValid(*req.LocationLat, *req.LocationLng) {
		return nil, fmt.Errorf("%w: invalid location coordinates", ErrValidation)
	}

	var worker models.User
	if err := s.db.First(&worker, req.WorkerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: worker %d", ErrNotFound, req.WorkerID)
		}
		return nil, err
	}
	if !worker.IsWorker() {
		return nil, fmt.Errorf("%w: user %d is not a worker", ErrValidation, req.WorkerID)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	booking := models.Booking{
		CustomerID:    customerID,
		WorkerID:      req.WorkerID,
		CategoryID:    req.CategoryID,
		Status:        models.BookingStatusPending,
		Description:   req.Description,
		Urgent:        req.Urgent,
		Address:       req.Address,
		LocationLat:   req.LocationLat,
		LocationLng:   req.LocationLng,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Amount:        req.Amount,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus applies one status transition. The transition must appear in
// the canonical table and the caller must hold the role the target status
// requires: the assigned worker for accepted/rejected/in_progress/completed,
// either party for cancelled, the customer for confirmed.
//
// On the transition into completed: completed_at is stamped, payment_status
// resets to pending (manual settlement), worker_earning is computed as
// amount * 0.8 and the worker's lifetime earnings counter is incremented
// atomically.
func (s *BookingService) UpdateStatus(bookingID, userID uint, newStatus models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}

		if !transitionAllowed(booking.Status, newStatus) {
			return &InvalidTransitionError{From: booking.Status, To: newStatus}
		}
		if err := authorizeTransition(&booking, userID, newStatus); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": newStatus}
		if newStatus == models.BookingStatusCompleted {
			now := time.Now()
			earning := booking.Amount * models.WorkerEarningRate
			updates["completed_at"] = now
			updates["payment_status"] = models.PaymentStatusPending
			updates["worker_earning"] = earning
			booking.CompletedAt = &now
			booking.PaymentStatus = models.PaymentStatusPending
			booking.WorkerEarning = earning

			// Atomic increment, safe under concurrent completions for the same worker
			if err := tx.Model(&models.WorkerProfile{}).
				Where("user_id = ?", booking.WorkerID).
				Update("total_earnings", gorm.Expr("total_earnings + ?", earning)).Error; err != nil {
				return err
			}
		}

		booking.Status = newStatus
		return tx.Model(&booking).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func authorizeTransition(booking *models.Booking, userID uint, newStatus models.BookingStatus) error {
	switch newStatus {
	case models.BookingStatusAccepted, models.BookingStatusRejected,
		models.BookingStatusInProgress, models.BookingStatusCompleted:
		if booking.WorkerID != userID {
			return fmt.Errorf("%w: only the assigned worker can set status %s", ErrForbidden, newStatus)
		}
	case models.BookingStatusCancelled:
		if booking.CustomerID != userID && booking.WorkerID != userID {
			return fmt.Errorf("%w: only the customer or worker on the booking can cancel it", ErrForbidden)
		}
	case models.BookingStatusConfirmed:
		if booking.CustomerID != userID {
			return fmt.Errorf("%w: only the customer can confirm a completed booking", ErrForbidden)
		}
	default:
		return fmt.Errorf("%w: status %s cannot be set directly", ErrValidation, newStatus)
	}
	return nil
}

// Get returns a booking visible to its customer or worker
func (s *BookingService) Get(bookingID, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Category").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, err
	}
	if booking.CustomerID != userID && booking.WorkerID != userID {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}
	return &booking, nil
}

// ListByCustomer returns a customer's bookings, newest first
func (s *BookingService) ListByCustomer(customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("customer_id = ?", customerID).
		Preload("Worker").
		Preload("Category").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListByWorker returns a worker's bookings, newest first
func (s *BookingService) ListByWorker(workerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("worker_id = ?", workerID).
		Preload("Customer").
		Preload("Category").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// EarningsSummary aggregates a worker's completed bookings
type EarningsSummary struct {
	TotalEarnings     float64 `json:"total_earnings"`
	CompletedBookings int64   `json:"completed_bookings"`
	PendingPayouts    int64   `json:"pending_payouts"`
}

// Earnings returns a worker's earnings summary over completed bookings
func (s *BookingService) Earnings(workerID uint) (*EarningsSummary, error) {
	var summary EarningsSummary
	row := s.db.Model(&models.Booking{}).
		Select("COALESCE(SUM(worker_earning), 0)").
		Where("worker_id = ? AND status IN (?, ?)", workerID, models.BookingStatusCompleted, models.BookingStatusConfirmed).
		Row()
	if err := row.Scan(&summary.TotalEarnings); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Booking{}).
		Where("worker_id = ? AND status IN (?, ?)", workerID, models.BookingStatusCompleted, models.BookingStatusConfirmed).
		Count(&summary.CompletedBookings).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Booking{}).
		Where("worker_id = ? AND payment_status = ? AND status IN (?, ?)",
			workerID, models.PaymentStatusPending, models.BookingStatusCompleted, models.BookingStatusConfirmed).
		Count(&summary.PendingPayouts).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
