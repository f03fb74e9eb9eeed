package repository

import (
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentGroupRepository handles database operations for assignment groups
type AssignmentGroupRepository struct {
	db *gorm.DB
}

// NewAssignmentGroupRepository creates a new assignment group repository
func NewAssignmentGroupRepository(db *gorm.DB) *AssignmentGroupRepository {
	return &AssignmentGroupRepository{db: db}
}

// Create creates a new assignment group
func (r *AssignmentGroupRepository) Create(group *models.AssignmentGroup) error {
	return r.db.Create(group).Error
}

// GetByID retrieves an assignment group by ID
func (r *AssignmentGroupRepository) GetByID(id uuid.UUID) (*models.AssignmentGroup, error) {
	var group models.AssignmentGroup
	err := r.db.First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByName retrieves an assignment group by name within a tenant
func (r *AssignmentGroupRepository) GetByName(tenantID uuid.UUID, name string) (*models.AssignmentGroup, error) {
	var group models.AssignmentGroup
	err := r.db.First(&group, "tenant_id = ? AND name = ?", tenantID, name).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByTenantID retrieves all assignment groups for a tenant with pagination
func (r *AssignmentGroupRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.AssignmentGroup, int64, error) {
	var groups []models.AssignmentGroup
	var total int64

	if err := r.db.Model(&models.AssignmentGroup{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at").Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

// CompareAndSwapCursor conditionally advances the rotation cursor. The write
// only lands when lock_version still equals expectedVersion; a zero
// RowsAffected means another writer got there first and the caller must
// re-read and retry.
func (r *AssignmentGroupRepository) CompareAndSwapCursor(id uuid.UUID, expectedVersion int64, newPosition int, lastAssignedAt *time.Time) error {
	result := r.db.Model(&models.AssignmentGroup{}).
		Where("id = ? AND lock_version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"current_position": newPosition,
			"last_assigned_at": lastAssignedAt,
			"lock_version":     expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAssignmentConflict
	}
	return nil
}

// Update updates an assignment group using a map of updates. Config updates
// also bump lock_version so an in-flight assignment cannot commit a cursor
// computed against the old member order.
func (r *AssignmentGroupRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	updates["lock_version"] = gorm.Expr("lock_version + 1")
	return r.db.Model(&models.AssignmentGroup{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete deletes an assignment group. Assignment history rows are kept; they
// reference the group by id only.
func (r *AssignmentGroupRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.AssignmentGroup{}, "id = ?", id).Error
}
