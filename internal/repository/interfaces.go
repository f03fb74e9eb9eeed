package repository

import (
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TenantRepositoryInterface defines the interface for tenant repository operations
type TenantRepositoryInterface interface {
	Create(tenant *models.Tenant) error
	GetByID(id uuid.UUID) (*models.Tenant, error)
	GetBySubdomain(subdomain string) (*models.Tenant, error)
	GetAll(limit, offset int) ([]models.Tenant, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(tenantID uuid.UUID, email string) (*models.User, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	GetByIDs(tenantID uuid.UUID, ids []uuid.UUID) ([]models.User, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// StudentRepositoryInterface defines the interface for student repository operations
type StudentRepositoryInterface interface {
	Create(student *models.Student) error
	GetByID(id uuid.UUID) (*models.Student, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Student, int64, error)
	Search(tenantID uuid.UUID, query string, limit, offset int) ([]models.Student, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// LeadRepositoryInterface defines the interface for lead repository operations
type LeadRepositoryInterface interface {
	Create(lead *models.Lead) error
	GetByID(id uuid.UUID) (*models.Lead, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Lead, int64, error)
	GetByStatus(tenantID uuid.UUID, status models.LeadStatus, limit, offset int) ([]models.Lead, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Task, int64, error)
	GetByAssigneeID(tenantID, assigneeID uuid.UUID, limit, offset int) ([]models.Task, int64, error)
	CountOpenByAssignee(tenantID, assigneeID uuid.UUID) (int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// CampaignRepositoryInterface defines the interface for campaign repository operations
type CampaignRepositoryInterface interface {
	Create(campaign *models.Campaign) error
	GetByID(id uuid.UUID) (*models.Campaign, error)
	GetByName(tenantID uuid.UUID, name string) (*models.Campaign, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Campaign, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// InvoiceRepositoryInterface defines the interface for invoice repository operations
type InvoiceRepositoryInterface interface {
	Create(invoice *models.Invoice) error
	GetByID(id uuid.UUID) (*models.Invoice, error)
	GetByNumber(tenantID uuid.UUID, number string) (*models.Invoice, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.Invoice, int64, error)
	GetByStudentID(tenantID, studentID uuid.UUID, limit, offset int) ([]models.Invoice, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// AssignmentGroupRepositoryInterface is the durable store for rotation state.
// CompareAndSwapCursor is the only way cursor state changes outside explicit
// config updates; it succeeds only when lockVersion still matches.
type AssignmentGroupRepositoryInterface interface {
	Create(group *models.AssignmentGroup) error
	GetByID(id uuid.UUID) (*models.AssignmentGroup, error)
	GetByName(tenantID uuid.UUID, name string) (*models.AssignmentGroup, error)
	GetByTenantID(tenantID uuid.UUID, limit, offset int) ([]models.AssignmentGroup, int64, error)
	CompareAndSwapCursor(id uuid.UUID, expectedVersion int64, newPosition int, lastAssignedAt *time.Time) error
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// AssignmentRepositoryInterface defines the interface for assignment audit records
type AssignmentRepositoryInterface interface {
	Create(assignment *models.Assignment) error
	GetByGroupID(groupID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error)
	GetByAssigneeID(tenantID, assigneeID uuid.UUID, limit, offset int) ([]models.Assignment, int64, error)
}
