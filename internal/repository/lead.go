package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadRepository handles database operations for leads
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead
func (r *LeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByTenantID retrieves all leads for a tenant with pagination
func (r *LeadRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	if err := r.db.Model(&models.Lead{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at DESC").Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// GetByStatus retrieves leads in a given status for a tenant with pagination
func (r *LeadRepository) GetByStatus(tenantID uuid.UUID, status models.LeadStatus, limit, offset int) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	if err := r.db.Model(&models.Lead{}).Where("tenant_id = ? AND status = ?", tenantID, status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ? AND status = ?", tenantID, status).
		Limit(limit).Offset(offset).Order("created_at DESC").Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Update updates a lead using a map of updates
func (r *LeadRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Lead{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a lead
func (r *LeadRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Lead{}, "id = ?", id).Error
}
