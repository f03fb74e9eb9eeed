package service

import (
	"encoding/json"
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

// LeadService handles business logic for leads, including routing a lead's
// follow-up work through the round-robin allocator
type LeadService struct {
	repo      repository.LeadRepositoryInterface
	taskRepo  repository.TaskRepositoryInterface
	allocator AllocatorServiceInterface
	validator *validator.Validate
}

// NewLeadService creates a new lead service
func NewLeadService(
	repo repository.LeadRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
	allocator AllocatorServiceInterface,
	validator *validator.Validate,
) *LeadService {
	return &LeadService{
		repo:      repo,
		taskRepo:  taskRepo,
		allocator: allocator,
		validator: validator,
	}
}

// CreateLeadRequest represents the request to create a lead
type CreateLeadRequest struct {
	FirstName  string          `json:"first_name" validate:"required,max=100"`
	LastName   string          `json:"last_name" validate:"max=100"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Phone      string          `json:"phone" validate:"max=40"`
	Source     string          `json:"source" validate:"max=100"`
	CampaignID *uuid.UUID      `json:"campaign_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateLeadRequest represents a partial update of a lead
type UpdateLeadRequest struct {
	FirstName  *string            `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName   *string            `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email      *string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string            `json:"phone,omitempty" validate:"omitempty,max=40"`
	Source     *string            `json:"source,omitempty" validate:"omitempty,max=100"`
	Status     *models.LeadStatus `json:"status,omitempty"`
	AssigneeID *uuid.UUID         `json:"assignee_id,omitempty"`
}

// DistributeLeadRequest asks the allocator to route a lead's follow-up task
type DistributeLeadRequest struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
}

// LeadResponse represents the response for lead operations
type LeadResponse struct {
	ID         uuid.UUID         `json:"id"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	CampaignID *uuid.UUID        `json:"campaign_id,omitempty"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Source     string            `json:"source"`
	Status     models.LeadStatus `json:"status"`
	AssigneeID *uuid.UUID        `json:"assignee_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// LeadListResponse represents a paginated list of leads
type LeadListResponse struct {
	Leads    []LeadResponse `json:"leads"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// DistributeLeadResponse reports the outcome of routing a lead
type DistributeLeadResponse struct {
	Lead       LeadResponse     `json:"lead"`
	Assignment AssignmentResult `json:"assignment"`
}

// Create creates a new lead within a tenant
func (s *LeadService) Create(tenantID uuid.UUID, req *CreateLeadRequest) (*LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lead := &models.Lead{
		TenantID:   tenantID,
		CampaignID: req.CampaignID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     models.LeadStatusNew,
		Metadata:   req.Metadata,
	}

	if err := s.repo.Create(lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return s.toResponse(lead), nil
}

// GetByID retrieves a lead by ID within a tenant
func (s *LeadService) GetByID(tenantID, id uuid.UUID) (*LeadResponse, error) {
	lead, err := s.getTenantLead(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(lead), nil
}

// GetByTenant retrieves leads of a tenant with pagination, optionally
// filtered by status
func (s *LeadService) GetByTenant(tenantID uuid.UUID, status string, page, pageSize int) (*LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	var leads []models.Lead
	var total int64
	var err error
	if status != "" {
		leadStatus := models.LeadStatus(status)
		if !leadStatus.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		leads, total, err = s.repo.GetByStatus(tenantID, leadStatus, pageSize, offset)
	} else {
		leads, total, err = s.repo.GetByTenantID(tenantID, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}

	responses := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = *s.toResponse(&lead)
	}

	return &LeadListResponse{
		Leads:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a lead
func (s *LeadService) Update(tenantID, id uuid.UUID, req *UpdateLeadRequest) (*LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getTenantLead(tenantID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Source != nil {
		updates["source"] = *req.Source
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

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update lead: %w", err)
		}
	}

	lead, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}
	return s.toResponse(lead), nil
}

// Distribute creates a follow-up task for the lead and routes it through the
// allocator. The task and the lead both end up pointing at the chosen agent.
func (s *LeadService) Distribute(tenantID, id uuid.UUID, req *DistributeLeadRequest) (*DistributeLeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lead, err := s.getTenantLead(tenantID, id)
	if err != nil {
		return nil, err
	}

	// Selection happens against a task id minted up front; the task row is
	// created right after the allocator commits, carrying the assignee.
	taskID := uuid.New()
	result, err := s.allocator.AssignNext(tenantID, req.GroupID, taskID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		BaseModel:  models.BaseModel{ID: taskID},
		TenantID:   tenantID,
		Title:      fmt.Sprintf("Follow up with %s %s", lead.FirstName, lead.LastName),
		Status:     models.TaskStatusOpen,
		AssigneeID: &result.AssigneeID,
		LeadID:     &lead.ID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create follow-up task: %w", err)
	}

	updates := map[string]interface{}{"assignee_id": result.AssigneeID}
	if lead.Status == models.LeadStatusNew {
		updates["status"] = models.LeadStatusContacted
	}
	if err := s.repo.Update(lead.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update lead assignee: %w", err)
	}

	updated, err := s.repo.GetByID(lead.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	return &DistributeLeadResponse{
		Lead:       *s.toResponse(updated),
		Assignment: *result,
	}, nil
}

// Delete deletes a lead
func (s *LeadService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantLead(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

func (s *LeadService) getTenantLead(tenantID, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if lead.TenantID != tenantID {
		return nil, apperrors.ErrLeadNotFound
	}
	return lead, nil
}

func (s *LeadService) toResponse(lead *models.Lead) *LeadResponse {
	return &LeadResponse{
		ID:         lead.ID,
		TenantID:   lead.TenantID,
		CampaignID: lead.CampaignID,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Source:     lead.Source,
		Status:     lead.Status,
		AssigneeID: lead.AssigneeID,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}
