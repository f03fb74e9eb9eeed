package repository

import (
	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceRepository handles database operations for invoices
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new invoice
func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber retrieves an invoice by number within a tenant
func (r *InvoiceRepository) GetByNumber(tenantID uuid.UUID, number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "tenant_id = ? AND number = ?", tenantID, number).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByTenantID retrieves all invoices for a tenant with pagination
func (r *InvoiceRepository) GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	if err := r.db.Model(&models.Invoice{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ?", tenantID).Limit(limit).Offset(offset).Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// GetByStudentID retrieves a student's invoices within a tenant
func (r *InvoiceRepository) GetByStudentID(tenantID, studentID uuid.UUID, limit, offset int) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	if err := r.db.Model(&models.Invoice{}).Where("tenant_id = ? AND student_id = ?", tenantID, studentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("tenant_id = ? AND student_id = ?", tenantID, studentID).
		Limit(limit).Offset(offset).Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Update updates an invoice using a map of updates
func (r *InvoiceRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes an invoice
func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Invoice{}, "id = ?", id).Error
}
