package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByTenantID retrieves all tasks for a tenant with pagination
func (r *TaskRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	if err := r.db.Model(&models.Task{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetByAssigneeID retrieves tasks assigned to a user within a tenant
func (r *TaskRepository) GetByAssigneeID(tenantID, assigneeID uuid.UUID, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	if err := r.db.Model(&models.Task{}).Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID).
		Limit(limit).Offset(offset).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// CountOpenByAssignee counts a user's open and in-progress tasks. This is
// the workload figure the load-balanced strategy ranks candidates by.
func (r *TaskRepository) CountOpenByAssignee(tenantID, assigneeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("tenant_id = ? AND assignee_id = ? AND status IN ?", tenantID, assigneeID,
			[]models.TaskStatus{models.TaskStatusOpen, models.TaskStatusInProgress}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates a task using a map of updates
func (r *TaskRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}
