package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create creates a new student
func (r *StudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByTenantID retrieves all students for a tenant with pagination
func (r *StudentRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	if err := r.db.Model(&models.Student{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at").Find(&students).Error
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Search searches for students by name or email within a tenant
func (r *StudentRepository) Search(tenantID uuid.UUID, query string, limit, offset int) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	searchQuery := "%" + query + "%"
	whereClause := "tenant_id = ? AND (first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)"

	if err := r.db.Model(&models.Student{}).Where(whereClause, tenantID, searchQuery, searchQuery, searchQuery).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where(whereClause, tenantID, searchQuery, searchQuery, searchQuery).
		Limit(limit).Offset(offset).Find(&students).Error
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update updates a student using a map of updates
func (r *StudentRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Student{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a student
func (r *StudentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Student{}, "id = ?", id).Error
}
