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

// StudentService handles business logic for students
type StudentService struct {
	repo      repository.StudentRepositoryInterface
	validator *validator.Validate
}

// NewStudentService creates a new student service
func NewStudentService(repo repository.StudentRepositoryInterface, validator *validator.Validate) *StudentService {
	return &StudentService{
		repo:      repo,
		validator: validator,
	}
}

// CreateStudentRequest represents the request to create a student
type CreateStudentRequest struct {
	FirstName   string          `json:"first_name" validate:"required,max=100"`
	LastName    string          `json:"last_name" validate:"required,max=100"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone" validate:"max=40"`
	Nationality string          `json:"nationality" validate:"max=100"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty"`
	Notes       string          `json:"notes"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateStudentRequest represents a partial update of a student
type UpdateStudentRequest struct {
	FirstName   *string         `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string         `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email       *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string         `json:"phone,omitempty" validate:"omitempty,max=40"`
	Nationality *string         `json:"nationality,omitempty" validate:"omitempty,max=100"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// StudentResponse represents the response for student operations
type StudentResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Nationality string          `json:"nationality"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty"`
	Notes       string          `json:"notes"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StudentListResponse represents a paginated list of students
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new student within a tenant
func (s *StudentService) Create(tenantID uuid.UUID, req *CreateStudentRequest) (*StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	student := &models.Student{
		TenantID:    tenantID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Nationality: req.Nationality,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
		Metadata:    req.Metadata,
	}

	if err := s.repo.Create(student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return s.toResponse(student), nil
}

// GetByID retrieves a student by ID within a tenant
func (s *StudentService) GetByID(tenantID, id uuid.UUID) (*StudentResponse, error) {
	student, err := s.getTenantStudent(tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(student), nil
}

// GetByTenant retrieves students of a tenant with pagination; a non-empty
// query searches name and email
func (s *StudentService) GetByTenant(tenantID uuid.UUID, query string, page, pageSize int) (*StudentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	var students []models.Student
	var total int64
	var err error
	if query != "" {
		students, total, err = s.repo.Search(tenantID, query, pageSize, offset)
	} else {
		students, total, err = s.repo.GetByTenantID(tenantID, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}

	responses := make([]StudentResponse, len(students))
	for i, student := range students {
		responses[i] = *s.toResponse(&student)
	}

	return &StudentListResponse{
		Students: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a partial update to a student
func (s *StudentService) Update(tenantID, id uuid.UUID, req *UpdateStudentRequest) (*StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getTenantStudent(tenantID, id); err != nil {
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
	if req.Nationality != nil {
		updates["nationality"] = *req.Nationality
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Metadata != nil {
		updates["metadata"] = req.Metadata
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update student: %w", err)
		}
	}

	student, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload student: %w", err)
	}
	return s.toResponse(student), nil
}

// Delete deletes a student
func (s *StudentService) Delete(tenantID, id uuid.UUID) error {
	if _, err := s.getTenantStudent(tenantID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

func (s *StudentService) getTenantStudent(tenantID, id uuid.UUID) (*models.Student, error) {
	student, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student.TenantID != tenantID {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *StudentService) toResponse(student *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:          student.ID,
		TenantID:    student.TenantID,
		FirstName:   student.FirstName,
		LastName:    student.LastName,
		Email:       student.Email,
		Phone:       student.Phone,
		Nationality: student.Nationality,
		DateOfBirth: student.DateOfBirth,
		Notes:       student.Notes,
		Metadata:    student.Metadata,
		CreatedAt:   student.CreatedAt,
		UpdatedAt:   student.UpdatedAt,
	}
}
