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

// CampaignService handles business logic for campaigns
type CampaignService struct {
	repo      repository.CampaignRepositoryInterface
	validator *validator.Validate
}

// NewCampaignService creates a new campaign service
func NewCampaignService(repo repository.CampaignRepositoryInterface, validator *validator.Validate) *CampaignService {
	return &CampaignService{
		repo:      repo,
		validator: validator,
	}
}

// CreateCampaignRequest represents the request to create a campaign
type CreateCampaignRequest struct {
	Name        string          `json:"name" validate:"required,max=150"`
	Description string          `json:"description"`
	Channel     string          `json:"channel" validate:"max=100"`
	StartsAt    *time.Time      `json:"starts_at,omitempty"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateCampaignRequest represents a partial update of a campaign
type UpdateCampaignRequest struct {
	Name        *string                `json:"name,omitempty" validate:"omitempty,max=150"`
	Description *string                `json:"description,omitempty"`
	Channel     *string                `json:"channel,omitempty" validate:"omitempty,max=100"`
	Status      *models.CampaignStatus `json:"status,omitempty"`
	StartsAt    *time.Time             `json:"starts_at,omitempty"`
	EndsAt      *time.Time             `json:"ends_at,omitempty"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID          uuid.UUID             `json:"id"`
	TenantID    uuid.UUID             `json:"tenant_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Channel     string                `json:"channel"`
	Status      models.CampaignStatus `json:"status"`
	StartsAt    *time.Time            `json:"starts_at,omitempty"`
	EndsAt      *time.Time            `json:"ends_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CampaignListResponse represents a paginated list of campaigns
type CampaignListResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// Create creates a new campaign within a tenant
func (s *CampaignService) Create(tenantID uuid.UUID, req *CreateCampaignRequest) (*CampaignResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at", "campaign cannot end before it starts")
	}

	existing, err := s.repo.GetByName(tenantID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing campaign: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCampaignExists
	}

	campaign := &models.Campaign{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Channel:     req.Channel,
		Status:      models.CampaignStatusDraft,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Metadata:    req.Metadata,
	}

	if err := s.repo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.toResponse(campaign), nil
}

// GetByID retrieves a campaign by ID within a tenant
func (s *CampaignService) GetByID(tenantID, id uuid.UUID) (*CampaignResponse, error) {
	campaign, err := s.getTenantCampaign(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(campaign), nil
}

// GetByTenant retrieves all campaigns for a tenant with pagination
func (s *CampaignService) GetByTenant(tenantID uuid.UUID, page, pageSize int) (*CampaignListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	campaigns, total, err := s.repo.GetByTenantID(tenantID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = *s.toResponse(&campaign)
	}

	return &CampaignListResponse{
		Campaigns: responses,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Update applies a partial update to a campaign
func (s *CampaignService) Update(tenantID, id uuid.UUID, req *UpdateCampaignRequest) (*CampaignResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	campaign, err := s.getTenantCampaign(tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != campaign.Name {
		existing, err := s.repo.GetByName(tenantID, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing campaign: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrCampaignExists
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Channel != nil {
		updates["channel"] = *req.Channel
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update campaign: %w", err)
		}
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload campaign: %w", err)
	}
	return s.toResponse(updated), nil
}

// Delete deletes a campaign
func (s *CampaignService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantCampaign(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

func (s *CampaignService) getTenantCampaign(tenantID, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign.TenantID != tenantID {
		return nil, apperrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *CampaignService) toResponse(campaign *models.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:          campaign.ID,
		TenantID:    campaign.TenantID,
		Name:        campaign.Name,
		Description: campaign.Description,
		Channel:     campaign.Channel,
		Status:      campaign.Status,
		StartsAt:    campaign.StartsAt,
		EndsAt:      campaign.EndsAt,
		CreatedAt:   campaign.CreatedAt,
		UpdatedAt:   campaign.UpdatedAt,
	}
}
