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

// InvoiceService handles business logic for invoices
type InvoiceService struct {
	repo        repository.InvoiceRepositoryInterface
	studentRepo repository.StudentRepositoryInterface
	validator   *validator.Validate
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo repository.InvoiceRepositoryInterface, studentRepo repository.StudentRepositoryInterface, validator *validator.Validate) *InvoiceService {
	return &InvoiceService{
		repo:        repo,
		studentRepo: studentRepo,
		validator:   validator,
	}
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	StudentID   uuid.UUID  `json:"student_id" validate:"required"`
	Number      string     `json:"number" validate:"required,max=40"`
	AmountCents int64      `json:"amount_cents" validate:"required,min=0"`
	Currency    string     `json:"currency" validate:"required,len=3"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// UpdateInvoiceRequest represents a partial update of an invoice
type UpdateInvoiceRequest struct {
	Status *models.InvoiceStatus `json:"status,omitempty"`
	DueAt  *time.Time            `json:"due_at,omitempty"`
	PaidAt *time.Time            `json:"paid_at,omitempty"`
}

// InvoiceResponse represents the response for invoice operations
type InvoiceResponse struct {
	ID          uuid.UUID            `json:"id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	StudentID   uuid.UUID            `json:"student_id"`
	Number      string               `json:"number"`
	AmountCents int64                `json:"amount_cents"`
	Currency    string               `json:"currency"`
	Status      models.InvoiceStatus `json:"status"`
	IssuedAt    *time.Time           `json:"issued_at,omitempty"`
	DueAt       *time.Time           `json:"due_at,omitempty"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// InvoiceListResponse represents a paginated list of invoices
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new invoice for a student of the tenant
func (s *InvoiceService) Create(tenantID uuid.UUID, req *CreateInvoiceRequest) (*InvoiceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	student, err := s.studentRepo.GetByID(req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to verify student: %w", err)
	}
	if student.TenantID != tenantID {
		return nil, apperrors.ErrStudentNotFound
	}

	existing, err := s.repo.GetByNumber(tenantID, req.Number)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing invoice: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrInvoiceExists
	}

	invoice := &models.Invoice{
		TenantID:    tenantID,
		StudentID:   req.StudentID,
		Number:      req.Number,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      models.InvoiceStatusDraft,
		IssuedAt:    req.IssuedAt,
		DueAt:       req.DueAt,
	}

	if err := s.repo.Create(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return s.toResponse(invoice), nil
}

// GetByID retrieves an invoice by ID within a tenant
func (s *InvoiceService) GetByID(tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.getTenantInvoice(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(invoice), nil
}

// GetByTenant retrieves invoices for a tenant with pagination, optionally
// filtered by student
func (s *InvoiceService) GetByTenant(tenantID uuid.UUID, studentID *uuid.UUID, page, pageSize int) (*InvoiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	var invoices []models.Invoice
	var total int64
	var err error
	if studentID != nil {
		invoices, total, err = s.repo.GetByStudentID(tenantID, *studentID, pageSize, offset)
	} else {
		invoices, total, err = s.repo.GetByTenantID(tenantID, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = *s.toResponse(&invoice)
	}

	return &InvoiceListResponse{
		Invoices: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to an invoice
func (s *InvoiceService) Update(tenantID, id uuid.UUID, req *UpdateInvoiceRequest) (*InvoiceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getTenantInvoice(tenantID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["status"] = *req.Status
		if *req.Status == models.InvoiceStatusPaid && req.PaidAt == nil {
			now := time.Now().UTC()
			updates["paid_at"] = now
		}
	}
	if req.DueAt != nil {
		updates["due_at"] = *req.DueAt
	}
	if req.PaidAt != nil {
		updates["paid_at"] = *req.PaidAt
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
	}

	invoice, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return s.toResponse(invoice), nil
}

// Delete deletes an invoice
func (s *InvoiceService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantInvoice(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *InvoiceService) getTenantInvoice(tenantID, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.TenantID != tenantID {
		return nil, apperrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *InvoiceService) toResponse(invoice *models.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          invoice.ID,
		TenantID:    invoice.TenantID,
		StudentID:   invoice.StudentID,
		Number:      invoice.Number,
		AmountCents: invoice.AmountCents,
		Currency:    invoice.Currency,
		Status:      invoice.Status,
		IssuedAt:    invoice.IssuedAt,
		DueAt:       invoice.DueAt,
		PaidAt:      invoice.PaidAt,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}
