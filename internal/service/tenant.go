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

// TenantService handles business logic for tenants
type TenantService struct {
	repo      repository.TenantRepositoryInterface
	validator *validator.Validate
}

// NewTenantService creates a new tenant service
func NewTenantService(repo repository.TenantRepositoryInterface, validator *validator.Validate) *TenantService {
	return &TenantService{
		repo:      repo,
		validator: validator,
	}
}

// CreateTenantRequest represents the request to create a tenant
type CreateTenantRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Subdomain string `json:"subdomain" validate:"required,min=1,max=63,hostname_rfc1123"`
	Timezone  string `json:"timezone"`
}

// UpdateTenantRequest represents a partial update of a tenant
type UpdateTenantRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Timezone *string `json:"timezone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// TenantResponse represents the response for tenant operations
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantListResponse represents a paginated list of tenants
type TenantListResponse struct {
	Tenants  []TenantResponse `json:"tenants"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new tenant
func (s *TenantService) Create(req *CreateTenantRequest) (*TenantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, apperrors.NewValidationError("timezone", "unknown timezone "+req.Timezone)
	}

	existing, err := s.repo.GetBySubdomain(req.Subdomain)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing tenant: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrTenantExists
	}

	tenant := &models.Tenant{
		Name:      req.Name,
		Subdomain: req.Subdomain,
		Timezone:  req.Timezone,
		IsActive:  true,
	}

	if err := s.repo.Create(tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return s.toResponse(tenant), nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return s.toResponse(tenant), nil
}

// GetAll retrieves all tenants with pagination
func (s *TenantService) GetAll(page, pageSize int) (*TenantListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	tenants, total, err := s.repo.GetAll(pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenants: %w", err)
	}

	responses := make([]TenantResponse, len(tenants))
	for i, tenant := range tenants {
		responses[i] = *s.toResponse(&tenant)
	}

	return &TenantListResponse{
		Tenants:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a tenant
func (s *TenantService) Update(id uuid.UUID, req *UpdateTenantRequest) (*TenantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, apperrors.NewValidationError("timezone", "unknown timezone "+*req.Timezone)
		}
		updates["timezone"] = *req.Timezone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update tenant: %w", err)
		}
	}

	tenant, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tenant: %w", err)
	}
	return s.toResponse(tenant), nil
}

// Delete deletes a tenant and, via FK cascade, all of its data
func (s *TenantService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (s *TenantService) toResponse(tenant *models.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Subdomain: tenant.Subdomain,
		Timezone:  tenant.Timezone,
		IsActive:  tenant.IsActive,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}
