package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"local-services-server/models"
	"local-services-server/utils"
)

// JobService handles the job posting lifecycle: open -> assigned -> completed/cancelled.
// Assignment itself happens through ApplicationService.UpdateStatus.
type JobService struct {
	db *gorm.DB
}

// NewJobService creates a new job posting service
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// Create creates a new job posting owned by the customer, status open
func (s *JobService) Create(customerID uint, req models.JobPostingCreate) (*models.JobPosting, error) {
	if req.Title == "" || req.Address == "" || req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: title, category and address are required", ErrValidation)
	}
	if req.Budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be greater than zero", ErrValidation)
	}
	if req.LocationLat != nil && req.LocationLng != nil &&
		!utils.IsLocationValid(*req.LocationLat, *req.LocationLng) {
		return nil, fmt.Errorf("%w: invalid location coordinates", ErrValidation)
	}

	posting := models.JobPosting{
		CustomerID:  customerID,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Budget:      req.Budget,
		Address:     req.Address,
		City:        req.City,
		LocationLat: req.LocationLat,
		LocationLng: req.LocationLng,
		Status:      models.JobStatusOpen,
	}
	if err := s.db.Create(&posting).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

// Update applies a patch to a job posting. Only the owning customer may edit,
// and only while the posting is still open.
func (s *JobService) Update(jobID, customerID uint, req models.JobPostingUpdate) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := s.db.First(&posting, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job posting %d", ErrNotFound, jobID)
		}
		return nil, err
	}
	if posting.CustomerID != customerID {
		return nil, fmt.Errorf("%w: only the posting owner can edit it", ErrForbidden)
	}
	if !posting.IsOpen() {
		return nil, fmt.Errorf("%w: job posting is no longer editable (status %s)", ErrConflict, posting.Status)
	}

	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.CategoryID != nil {
		posting.CategoryID = *req.CategoryID
	}
	if req.Budget != nil {
		if *req.Budget <= 0 {
			return nil, fmt.Errorf("%w: budget must be greater than zero", ErrValidation)
		}
		posting.Budget = *req.Budget
	}
	if req.Address != nil {
		posting.Address = *req.Address
	}
	if req.City != nil {
		posting.City = *req.City
	}
	if req.LocationLat != nil {
		posting.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		posting.LocationLng = req.LocationLng
	}

	if err := s.db.Save(&posting).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

// Delete removes a job posting. Deletion is blocked once the posting has been
// assigned; only the owner may delete.
func (s *JobService) Delete(jobID, customerID uint) error {
	var posting models.JobPosting
	if err := s.db.First(&posting, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: job posting %d", ErrNotFound, jobID)
		}
		return err
	}
	if posting.CustomerID != customerID {
		return fmt.Errorf("%w: only the posting owner can delete it", ErrForbidden)
	}
	if !posting.IsOpen() {
		return fmt.Errorf("%w: job posting cannot be deleted once assigned", ErrConflict)
	}
	return s.db.Delete(&posting).Error
}

// Repost clones an existing posting into a brand-new open posting. Status,
// applications and timestamps are not copied.
func (s *JobService) Repost(jobID, customerID uint) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := s.db.First(&posting, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job posting %d", ErrNotFound, jobID)
		}
		return nil, err
	}
	if posting.CustomerID != customerID {
		return nil, fmt.Errorf("%w: only the posting owner can repost it", ErrForbidden)
	}

	clone := models.JobPosting{
		CustomerID:  posting.CustomerID,
		Title:       posting.Title,
		Description: posting.Description,
		CategoryID:  posting.CategoryID,
		Budget:      posting.Budget,
		Address:     posting.Address,
		City:        posting.City,
		LocationLat: posting.LocationLat,
		LocationLng: posting.LocationLng,
		Status:      models.JobStatusOpen,
	}
	if err := s.db.Create(&clone).Error; err != nil {
		return nil, err
	}
	return &clone, nil
}

// Get returns a job posting by id
func (s *JobService) Get(jobID uint) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := s.db.Preload("Category").First(&posting, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job posting %d", ErrNotFound, jobID)
		}
		return nil, err
	}
	return &posting, nil
}

// ListByCustomer returns all postings owned by a customer, newest first
func (s *JobService) ListByCustomer(customerID uint) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	err := s.db.Where("customer_id = ?", customerID).
		Preload("Category").
		Order("created_at DESC").
		Find(&postings).Error
	return postings, err
}

// ListNearby returns open postings within radius kilometers of the given
// point, optionally filtered by category. Distance filtering happens in
// memory over the haversine formula. Out-of-range radii fall back to the
// default or the maximum.
func (s *JobService) ListNearby(lat, lng, radius float64, categoryID uint) ([]models.JobPosting, error) {
	if !utils.IsLocationValid(lat, lng) {
		return nil, fmt.Errorf("%w: invalid location coordinates", ErrValidation)
	}
	if !utils.ValidateSearchRadius(radius) {
		if radius <= 0 {
			radius = utils.DefaultSearchRadius()
		} else {
			radius = utils.MaxSearchRadius()
		}
	}

	query := s.db.Where("status = ? AND location_lat IS NOT NULL AND location_lng IS NOT NULL", models.JobStatusOpen)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var postings []models.JobPosting
	if err := query.Preload("Category").Find(&postings).Error; err != nil {
		return nil, err
	}

	var nearby []models.JobPosting
	for _, posting := range postings {
		distance := utils.HaversineDistance(lat, lng, *posting.LocationLat, *posting.LocationLng)
		if distance <= radius {
			nearby = append(nearby, posting)
		}
	}
	return nearby, nil
}
