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

// AssignmentGroupService handles configuration of assignment groups
type AssignmentGroupService struct {
	repo           repository.AssignmentGroupRepositoryInterface
	userRepo       repository.UserRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
	validator      *validator.Validate
}

// NewAssignmentGroupService creates a new assignment group service
func NewAssignmentGroupService(
	repo repository.AssignmentGroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	assignmentRepo repository.AssignmentRepositoryInterface,
	validator *validator.Validate,
) *AssignmentGroupService {
	return &AssignmentGroupService{
		repo:           repo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		validator:      validator,
	}
}

// CreateAssignmentGroupRequest represents the request to create an assignment group
type CreateAssignmentGroupRequest struct {
	Name            string                    `json:"name" validate:"required,min=1,max=150"`
	Description     string                    `json:"description"`
	Strategy        models.AssignmentStrategy `json:"strategy"`
	SkipUnavailable bool                      `json:"skip_unavailable"`
	ResetDaily      bool                      `json:"reset_daily"`
	MemberOrder     []uuid.UUID               `json:"member_order"`
}

// UpdateAssignmentGroupRequest represents a partial update of an assignment
// group; nil fields are left unchanged
type UpdateAssignmentGroupRequest struct {
	Name            *string                    `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description     *string                    `json:"description,omitempty"`
	Strategy        *models.AssignmentStrategy `json:"strategy,omitempty"`
	SkipUnavailable *bool                      `json:"skip_unavailable,omitempty"`
	ResetDaily      *bool                      `json:"reset_daily,omitempty"`
	IsActive        *bool                      `json:"is_active,omitempty"`
	MemberOrder     *[]uuid.UUID               `json:"member_order,omitempty"`
}

// AssignmentGroupResponse represents the response for assignment group operations
type AssignmentGroupResponse struct {
	ID              uuid.UUID                 `json:"id"`
	TenantID        uuid.UUID                 `json:"tenant_id"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description"`
	Strategy        models.AssignmentStrategy `json:"strategy"`
	SkipUnavailable bool                      `json:"skip_unavailable"`
	ResetDaily      bool                      `json:"reset_daily"`
	MemberOrder     []uuid.UUID               `json:"member_order"`
	CurrentPosition int                       `json:"current_position"`
	LastAssignedAt  *time.Time                `json:"last_assigned_at,omitempty"`
	IsActive        bool                      `json:"is_active"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// AssignmentGroupListResponse represents a paginated list of assignment groups
type AssignmentGroupListResponse struct {
	Groups   []AssignmentGroupResponse `json:"groups"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
}

// AssignmentHistoryResponse represents a paginated assignment audit trail
type AssignmentHistoryResponse struct {
	Assignments []models.Assignment `json:"assignments"`
	Total       int64               `json:"total"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
}

// Create creates a new assignment group
func (s *AssignmentGroupService) Create(tenantID uuid.UUID, req *CreateAssignmentGroupRequest) (*AssignmentGroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Strategy == "" {
		req.Strategy = models.StrategySequential
	}
	if !req.Strategy.IsValid() {
		return nil, apperrors.ErrInvalidStrategy
	}

	if err := s.validateMemberOrder(tenantID, req.MemberOrder); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(tenantID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment group: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAssignmentGroupExists
	}

	group := &models.AssignmentGroup{
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		Strategy:        req.Strategy,
		SkipUnavailable: req.SkipUnavailable,
		ResetDaily:      req.ResetDaily,
		MemberOrder:     models.UUIDSlice(req.MemberOrder),
		CurrentPosition: 0,
		IsActive:        true,
	}

	if err := s.repo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create assignment group: %w", err)
	}

	return s.toResponse(group), nil
}

// GetByID retrieves an assignment group by ID
func (s *AssignmentGroupService) GetByID(tenantID, id uuid.UUID) (*AssignmentGroupResponse, error) {
	group, err := s.getTenantGroup(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(group), nil
}

// GetByTenant retrieves all assignment groups for a tenant with pagination
func (s *AssignmentGroupService) GetByTenant(tenantID uuid.UUID, page, pageSize int) (*AssignmentGroupListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	groups, total, err := s.repo.GetByTenantID(tenantID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment groups: %w", err)
	}

	responses := make([]AssignmentGroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = *s.toResponse(&group)
	}

	return &AssignmentGroupListResponse{
		Groups:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to an assignment group. A shrinking member
// list clamps the cursor by modulo so it always indexes the new list.
func (s *AssignmentGroupService) Update(tenantID, id uuid.UUID, req *UpdateAssignmentGroupRequest) (*AssignmentGroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	group, err := s.getTenantGroup(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != nil && *req.Name != group.Name {
		existing, err := s.repo.GetByName(tenantID, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing assignment group: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrAssignmentGroupExists
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Strategy != nil {
		if !req.Strategy.IsValid() {
			return nil, apperrors.ErrInvalidStrategy
		}
		updates["strategy"] = *req.Strategy
	}
	if req.SkipUnavailable != nil {
		updates["skip_unavailable"] = *req.SkipUnavailable
	}
	if req.ResetDaily != nil {
		updates["reset_daily"] = *req.ResetDaily
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.MemberOrder != nil {
		newOrder := *req.MemberOrder
		if err := s.validateMemberOrder(tenantID, newOrder); err != nil {
			return nil, err
		}
		updates["member_order"] = models.UUIDSlice(newOrder)

		newLen := len(newOrder)
		if newLen == 0 {
			updates["current_position"] = 0
		} else if group.CurrentPosition >= newLen {
			updates["current_position"] = group.CurrentPosition % newLen
		}
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update assignment group: %w", err)
		}
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignment group: %w", err)
	}
	return s.toResponse(updated), nil
}

// Delete deletes an assignment group. Assignment history is preserved.
func (s *AssignmentGroupService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantGroup(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete assignment group: %w", err)
	}
	return nil
}

// History retrieves the assignment audit trail for a group
func (s *AssignmentGroupService) History(tenantID, id uuid.UUID, page, pageSize int) (*AssignmentHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	if _, err := s.getTenantGroup(tenantID, id); err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	assignments, total, err := s.assignmentRepo.GetByGroupID(id, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment history: %w", err)
	}

	return &AssignmentHistoryResponse{
		Assignments: assignments,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// validateMemberOrder rejects duplicate members and members that do not
// resolve to users of the tenant
func (s *AssignmentGroupService) validateMemberOrder(tenantID uuid.UUID, order []uuid.UUID) error {
	if len(order) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(order))
	for _, id := range order {
		if _, ok := seen[id]; ok {
			return apperrors.NewValidationError("member_order", "duplicate member "+id.String())
		}
		seen[id] = struct{}{}
	}

	users, err := s.userRepo.GetByIDs(tenantID, order)
	if err != nil {
		return apperrors.NewDependencyError("directory", err)
	}
	if len(users) != len(order) {
		found := make(map[uuid.UUID]struct{}, len(users))
		for _, u := range users {
			found[u.ID] = struct{}{}
		}
		for _, id := range order {
			if _, ok := found[id]; !ok {
				return apperrors.NewValidationError("member_order", "member "+id.String()+" does not belong to the tenant")
			}
		}
	}
	return nil
}

func (s *AssignmentGroupService) getTenantGroup(tenantID, id uuid.UUID) (*models.AssignmentGroup, error) {
	group, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignmentGroupNotFound
		}
		return nil, fmt.Errorf("failed to get assignment group: %w", err)
	}
	if group.TenantID != tenantID {
		return nil, apperrors.ErrAssignmentGroupNotFound
	}
	return group, nil
}

func (s *AssignmentGroupService) toResponse(group *models.AssignmentGroup) *AssignmentGroupResponse {
	return &AssignmentGroupResponse{
		ID:              group.ID,
		TenantID:        group.TenantID,
		Name:            group.Name,
		Description:     group.Description,
		Strategy:        group.Strategy,
		SkipUnavailable: group.SkipUnavailable,
		ResetDaily:      group.ResetDaily,
		MemberOrder:     group.MemberOrder,
		CurrentPosition: group.CurrentPosition,
		LastAssignedAt:  group.LastAssignedAt,
		IsActive:        group.IsActive,
		CreatedAt:       group.CreatedAt,
		UpdatedAt:       group.UpdatedAt,
	}
}
