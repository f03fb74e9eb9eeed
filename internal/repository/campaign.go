package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignRepository handles database operations for campaigns
type CampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetByName retrieves a campaign by name within a tenant
func (r *CampaignRepository) GetByName(tenantID uuid.UUID, name string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "tenant_id = ? AND name = ?", tenantID, name).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetByTenantID retrieves all campaigns for a tenant with pagination
func (r *CampaignRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	if err := r.db.Model(&models.Campaign{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at DESC").Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// Update updates a campaign using a map of updates
func (r *CampaignRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a campaign
func (r *CampaignRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Campaign{}, "id = ?", id).Error
}
