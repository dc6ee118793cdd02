package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"local-services-server/models"
)

var userSeq int

// newTestDB opens a fresh in-memory database and migrates the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to ":memory:" gets its own database; pin the
	// pool to one connection so concurrent tests share state
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.ServiceCategory{},
		&models.WorkerProfile{},
		&models.JobPosting{},
		&models.JobApplication{},
		&models.Booking{},
		&models.Review{},
		&models.Address{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		FullName:     fmt.Sprintf("Test %s %d", role, userSeq),
		PhoneNumber:  fmt.Sprintf("+91900000%04d", userSeq),
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB) *models.ServiceCategory {
	t.Helper()
	userSeq++
	category := &models.ServiceCategory{
		Name:     fmt.Sprintf("Plumbing %d", userSeq),
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

// createWorker creates a worker user together with its profile
func createWorker(t *testing.T, db *gorm.DB, categoryID uint) *models.User {
	t.Helper()
	worker := createUser(t, db, models.RoleWorker)
	profile := &models.WorkerProfile{
		UserID:     worker.ID,
		CategoryID: categoryID,
		City:       "Pune",
	}
	require.NoError(t, db.Create(profile).Error)
	return worker
}

func createOpenPosting(t *testing.T, db *gorm.DB, customerID, categoryID uint) *models.JobPosting {
	t.Helper()
	lat, lng := 18.5204, 73.8567
	posting := &models.JobPosting{
		CustomerID:  customerID,
		Title:       "Fix kitchen sink",
		CategoryID:  categoryID,
		Budget:      500,
		Address:     "12 MG Road",
		City:        "Pune",
		LocationLat: &lat,
		LocationLng: &lng,
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(posting).Error)
	return posting
}

func createBooking(t *testing.T, db *gorm.DB, customerID, workerID, categoryID uint, status models.BookingStatus, amount float64) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerID:    customerID,
		WorkerID:      workerID,
		CategoryID:    categoryID,
		Status:        status,
		Address:       "12 MG Road",
		ScheduledDate: time.Now().Add(24 * time.Hour),
		Amount:        amount,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
