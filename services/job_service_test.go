package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-services-server/models"
)

func TestJobServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)

	posting, err := svc.Create(customer.ID, models.JobPostingCreate{
		Title:      "Fix leaking tap",
		CategoryID: category.ID,
		Budget:     300,
		Address:    "5 FC Road",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, posting.Status)
	assert.Equal(t, customer.ID, posting.CustomerID)
	assert.Nil(t, posting.AssignedWorkerID)
}

func TestJobServiceCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)

	_, err := svc.Create(customer.ID, models.JobPostingCreate{
		CategoryID: category.ID,
		Budget:     300,
		Address:    "5 FC Road",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(customer.ID, models.JobPostingCreate{
		Title:      "Fix leaking tap",
		CategoryID: category.ID,
		Budget:     0,
		Address:    "5 FC Road",
	})
	assert.ErrorIs(t, err, ErrValidation)

	badLat, badLng := 120.0, 200.0
	_, err = svc.Create(customer.ID, models.JobPostingCreate{
		Title:       "Fix leaking tap",
		CategoryID:  category.ID,
		Budget:      300,
		Address:     "5 FC Road",
		LocationLat: &badLat,
		LocationLng: &badLng,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJobServiceUpdateOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	newTitle := "Fix bathroom sink"
	_, err := svc.Update(posting.ID, stranger.ID, models.JobPostingUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(posting.ID, customer.ID, models.JobPostingUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestJobServiceUpdateBlockedOnceAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, db.Model(posting).Updates(map[string]interface{}{
		"status":             models.JobStatusAssigned,
		"assigned_worker_id": worker.ID,
	}).Error)

	newTitle := "Changed after assignment"
	_, err := svc.Update(posting.ID, customer.ID, models.JobPostingUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestJobServiceDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, svc.Delete(posting.ID, customer.ID))

	_, err := svc.Get(posting.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobServiceDeleteBlockedOnceAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	worker := createWorker(t, db, category.ID)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, db.Model(posting).Updates(map[string]interface{}{
		"status":             models.JobStatusAssigned,
		"assigned_worker_id": worker.ID,
	}).Error)

	err := svc.Delete(posting.ID, customer.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestJobServiceRepost(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, db.Model(posting).Update("status", models.JobStatusCompleted).Error)

	clone, err := svc.Repost(posting.ID, customer.ID)
	require.NoError(t, err)
	assert.NotEqual(t, posting.ID, clone.ID)
	assert.Equal(t, models.JobStatusOpen, clone.Status)
	assert.Equal(t, posting.Title, clone.Title)
	assert.Nil(t, clone.AssignedWorkerID)
}

func TestJobServiceListNearby(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)

	// Pune city centre
	near := createOpenPosting(t, db, customer.ID, category.ID)

	// Mumbai, ~120km away
	farLat, farLng := 19.0760, 72.8777
	far := &models.JobPosting{
		CustomerID:  customer.ID,
		Title:       "Paint living room",
		CategoryID:  category.ID,
		Budget:      2000,
		Address:     "8 Marine Drive",
		City:        "Mumbai",
		LocationLat: &farLat,
		LocationLng: &farLng,
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(far).Error)

	results, err := svc.ListNearby(18.52, 73.85, 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, near.ID, results[0].ID)
}

func TestJobServiceListNearbyClampsRadius(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)

	// Pune city centre, within any radius
	near := createOpenPosting(t, db, customer.ID, category.ID)

	// Mumbai, ~120km away: outside the 50km maximum
	farLat, farLng := 19.0760, 72.8777
	far := &models.JobPosting{
		CustomerID:  customer.ID,
		Title:       "Rewire hallway lights",
		CategoryID:  category.ID,
		Budget:      1500,
		Address:     "8 Marine Drive",
		City:        "Mumbai",
		LocationLat: &farLat,
		LocationLng: &farLng,
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(far).Error)

	// An absurdly large radius is clamped to the maximum, not honored
	results, err := svc.ListNearby(18.52, 73.85, 10000, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, near.ID, results[0].ID)

	// Zero still falls back to the default radius
	results, err = svc.ListNearby(18.52, 73.85, 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, near.ID, results[0].ID)
}

func TestJobServiceListNearbyExcludesAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	customer := createUser(t, db, models.RoleCustomer)
	category := createCategory(t, db)
	posting := createOpenPosting(t, db, customer.ID, category.ID)

	require.NoError(t, db.Model(posting).Update("status", models.JobStatusAssigned).Error)

	results, err := svc.ListNearby(18.52, 73.85, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
