package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository handles database operations for assignment audit records
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create records an allocation decision
func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// GetByGroupID retrieves assignment history for a group, newest first
func (r *AssignmentRepository) GetByGroupID(groupID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment
	var total int64

	if err := r.db.Model(&models.Assignment{}).Where("group_id = ?", groupID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("group_id = ?", groupID).
		Limit(limit).Offset(offset).Order("assigned_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// GetByAssigneeID retrieves assignment history for a user within a tenant
func (r *AssignmentRepository) GetByAssigneeID(tenantID, assigneeID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment
	var total int64

	if err := r.db.Model(&models.Assignment{}).Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID).
		Limit(limit).Offset(offset).Order("assigned_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}
