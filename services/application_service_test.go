package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"local-services-server/models"
)

func TestApplicationApply(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{
		JobPostingID:   posting.ID,
		Message:        "I can do this tomorrow morning",
		ProposedAmount: 450,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, application.Status)
	assert.Equal(t, customer.ID, application.CustomerID)
	assert.False(t, application.WorkerConfirmed)
	assert.False(t, application.CustomerConfirmed)
	assert.False(t, application.ConvertedToBooking)
}

func TestApplicationApplyDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	_, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)

	_, err = svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 400})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplicationApplyClosedPosting(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, db.Model(posting).Update("status", models.JobStatusCancelled).Error)

	_, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplicationAcceptAssignsPosting(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)

	accepted, err := svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, accepted.Status)

	var reloaded models.JobPosting
	require.NoError(t, db.First(&reloaded, posting.ID).Error)
	assert.Equal(t, models.JobStatusAssigned, reloaded.Status)
	require.NotNil(t, reloaded.AssignedWorkerID)
	assert.Equal(t, worker.ID, *reloaded.AssignedWorkerID)
}

func TestApplicationUpdateStatusGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)

	// Only accepted/rejected are settable here
	_, err = svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusConfirmed)
	assert.ErrorIs(t, err, ErrValidation)

	// Only the posting owner decides
	_, err = svc.UpdateStatus(application.ID, stranger.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, ErrForbidden)

	// A decided application cannot be re-decided
	_, err = svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, ErrConflict)
}

// acceptedApplication sets up an accepted application ready for confirmation
func acceptedApplication(t *testing.T, db *gorm.DB) (*ApplicationService, *models.JobApplication, *models.User, *models.User) {
	t.Helper()
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	return svc, application, customer, worker
}

func TestApplicationConfirmWorkerFirst(t *testing.T) {
	db := newTestDB(t)
	svc, application, customer, worker := acceptedApplication(t, db)

	afterWorker, err := svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	require.NoError(t, err)
	assert.True(t, afterWorker.WorkerConfirmed)
	assert.False(t, afterWorker.CustomerConfirmed)
	assert.Equal(t, models.ApplicationStatusAccepted, afterWorker.Status)
	assert.False(t, afterWorker.ConvertedToBooking)

	afterCustomer, err := svc.Confirm(application.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, afterCustomer.BothConfirmed())
	assert.Equal(t, models.ApplicationStatusConfirmed, afterCustomer.Status)
	assert.True(t, afterCustomer.ConvertedToBooking)
	require.NotNil(t, afterCustomer.BookingID)

	var booking models.Booking
	require.NoError(t, db.First(&booking, *afterCustomer.BookingID).Error)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, customer.ID, booking.CustomerID)
	assert.Equal(t, worker.ID, booking.WorkerID)
	assert.Equal(t, 450.0, booking.Amount)
	assert.Equal(t, models.PaymentMethodCash, booking.PaymentMethod)
}

func TestApplicationConfirmCustomerFirst(t *testing.T) {
	db := newTestDB(t)
	svc, application, customer, worker := acceptedApplication(t, db)

	afterCustomer, err := svc.Confirm(application.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, afterCustomer.CustomerConfirmed)
	assert.False(t, afterCustomer.ConvertedToBooking)

	afterWorker, err := svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusConfirmed, afterWorker.Status)
	assert.True(t, afterWorker.ConvertedToBooking)
	assert.NotNil(t, afterWorker.BookingID)
}

func TestApplicationConfirmAtMostOnce(t *testing.T) {
	db := newTestDB(t)
	svc, application, customer, worker := acceptedApplication(t, db)

	_, err := svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	require.NoError(t, err)
	converted, err := svc.Confirm(application.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, converted.BookingID)
	firstBookingID := *converted.BookingID

	// Repeated confirms are no-ops and never mint a second booking
	again, err := svc.Confirm(application.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, again.BookingID)
	assert.Equal(t, firstBookingID, *again.BookingID)

	_, err = svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplicationConfirmRejectedIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(application.ID, customer.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)

	// Neither party can confirm a rejected application
	_, err = svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Confirm(application.ID, customer.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrConflict)

	var reloaded models.JobApplication
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, reloaded.Status)
	assert.False(t, reloaded.WorkerConfirmed)
	assert.False(t, reloaded.CustomerConfirmed)
	assert.False(t, reloaded.ConvertedToBooking)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplicationConfirmBeforeDecision(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	application, err := svc.Apply(worker.ID, models.ApplicationCreate{JobPostingID: posting.ID, ProposedAmount: 450})
	require.NoError(t, err)

	// An application still waiting on the customer cannot be confirmed
	_, err = svc.Confirm(application.ID, worker.ID, models.RoleWorker)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplicationConfirmWrongParty(t *testing.T) {
	db := newTestDB(t)
	svc, application, _, _ := acceptedApplication(t, db)

	stranger := createUser(t, db, models.RoleWorker)
	_, err := svc.Confirm(application.ID, stranger.ID, models.RoleWorker)
	assert.ErrorIs(t, err, ErrForbidden)

	otherCustomer := createUser(t, db, models.RoleCustomer)
	_, err = svc.Confirm(application.ID, otherCustomer.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	var reloaded models.JobApplication
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	assert.False(t, reloaded.WorkerConfirmed)
	assert.False(t, reloaded.CustomerConfirmed)
}

func TestApplicationGetVisibility(t *testing.T) {
	db := newTestDB(t)
	svc, application, customer, worker := acceptedApplication(t, db)

	_, err := svc.Get(application.ID, customer.ID)
	require.NoError(t, err)
	_, err = svc.Get(application.ID, worker.ID)
	require.NoError(t, err)

	stranger := createUser(t, db, models.RoleCustomer)
	_, err = svc.Get(application.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
