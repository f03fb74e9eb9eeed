package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"
	"github.com/mycampushub/consulting-sub007/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks
type TaskService struct {
	repo      repository.TaskRepositoryInterface
	allocator AllocatorServiceInterface
	validator *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, allocator AllocatorServiceInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:      repo,
		allocator: allocator,
		validator: validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Details    string     `json:"details"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	LeadID     *uuid.UUID `json:"lead_id,omitempty"`
	StudentID  *uuid.UUID `json:"student_id,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`

	// When GroupID is set the task is routed through the allocator instead
	// of using AssigneeID.
	GroupID *uuid.UUID `json:"group_id,omitempty"`
}

// UpdateTaskRequest represents a partial update of a task
type UpdateTaskRequest struct {
	Title      *string            `json:"title,omitempty" validate:"omitempty,max=200"`
	Details    *string            `json:"details,omitempty"`
	Status     *models.TaskStatus `json:"status,omitempty"`
	AssigneeID *uuid.UUID         `json:"assignee_id,omitempty"`
	DueAt      *time.Time         `json:"due_at,omitempty"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID         uuid.UUID         `json:"id"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	Title      string            `json:"title"`
	Details    string            `json:"details"`
	Status     models.TaskStatus `json:"status"`
	AssigneeID *uuid.UUID        `json:"assignee_id,omitempty"`
	LeadID     *uuid.UUID        `json:"lead_id,omitempty"`
	StudentID  *uuid.UUID        `json:"student_id,omitempty"`
	DueAt      *time.Time        `json:"due_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Assignment is set when the task was routed through an assignment group
	Assignment *AssignmentResult `json:"assignment,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new task. With a group id present the assignee comes from
// the round-robin allocator; otherwise the caller's assignee (if any) is
// used as-is.
func (s *TaskService) Create(tenantID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task := &models.Task{
		BaseModel: models.BaseModel{ID: uuid.New()},
		TenantID:  tenantID,
		Title:     req.Title,
		Details:   req.Details,
		Status:    models.TaskStatusOpen,
		LeadID:    req.LeadID,
		StudentID: req.StudentID,
		DueAt:     req.DueAt,
	}

	var assignment *AssignmentResult
	if req.GroupID != nil {
		result, err := s.allocator.AssignNext(tenantID, *req.GroupID, task.ID)
		if err != nil {
			return nil, err
		}
		assignment = result
		task.AssigneeID = &result.AssigneeID
	} else {
		task.AssigneeID = req.AssigneeID
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	resp := s.toResponse(task)
	resp.Assignment = assignment
	return resp, nil
}

// GetByID retrieves a task by ID within a tenant
func (s *TaskService) GetByID(tenantID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.getTenantTask(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(task), nil
}

// GetByTenant retrieves tasks of a tenant with pagination, optionally
// filtered by assignee
func (s *TaskService) GetByTenant(tenantID uuid.UUID, assigneeID *uuid.UUID, page, pageSize int) (*TaskListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	var tasks []models.Task
	var total int64
	var err error
	if assigneeID != nil {
		tasks, total, err = s.repo.GetByAssigneeID(tenantID, *assigneeID, pageSize, offset)
	} else {
		tasks, total, err = s.repo.GetByTenantID(tenantID, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *s.toResponse(&task)
	}

	return &TaskListResponse{
		Tasks:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(tenantID, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getTenantTask(tenantID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}
	if req.DueAt != nil {
		updates["due_at"] = *req.DueAt
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	task, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return s.toResponse(task), nil
}

// Delete deletes a task
func (s *TaskService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantTask(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) getTenantTask(tenantID, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.TenantID != tenantID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:         task.ID,
		TenantID:   task.TenantID,
		Title:      task.Title,
		Details:    task.Details,
		Status:     task.Status,
		AssigneeID: task.AssigneeID,
		LeadID:     task.LeadID,
		StudentID:  task.StudentID,
		DueAt:      task.DueAt,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}
