package testutils

import (
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"

	"github.com/google/uuid"
)

// TenantFactory provides methods to create test Tenant data
type TenantFactory struct{}

// NewTenantFactory creates a new TenantFactory
func NewTenantFactory() *TenantFactory {
	return &TenantFactory{}
}

// Create creates a test Tenant with default values
func (f *TenantFactory) Create() *models.Tenant {
	id := uuid.New()
	return &models.Tenant{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:      "Test Agency",
		Subdomain: "agency-" + id.String()[:8],
		Timezone:  "UTC",
		IsActive:  true,
	}
}

// WithTimezone sets a custom IANA timezone for the tenant
func (f *TenantFactory) WithTimezone(tz string) *models.Tenant {
	tenant := f.Create()
	tenant.Timezone = tz
	return tenant
}

// WithSubdomain sets a custom subdomain for the tenant
func (f *TenantFactory) WithSubdomain(subdomain string) *models.Tenant {
	tenant := f.Create()
	tenant.Subdomain = subdomain
	return tenant
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Email is derived from the
// id so users from one factory never collide inside a tenant.
func (f *UserFactory) Create(tenantID uuid.UUID) *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TenantID:     tenantID,
		FirstName:    "Jane",
		LastName:     "Agent",
		Email:        "agent-" + id.String()[:8] + "@test.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         models.RoleAgent,
		IsActive:     true,
		IsAvailable:  true,
	}
}

// Unavailable creates a user that skip-aware groups must pass over
func (f *UserFactory) Unavailable(tenantID uuid.UUID) *models.User {
	user := f.Create(tenantID)
	user.IsAvailable = false
	return user
}

// StudentFactory provides methods to create test Student data
type StudentFactory struct{}

// NewStudentFactory creates a new StudentFactory
func NewStudentFactory() *StudentFactory {
	return &StudentFactory{}
}

// Create creates a test Student with default values
func (f *StudentFactory) Create(tenantID uuid.UUID) *models.Student {
	id := uuid.New()
	return &models.Student{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TenantID:    tenantID,
		FirstName:   "Sam",
		LastName:    "Student",
		Email:       "student-" + id.String()[:8] + "@test.com",
		Nationality: "BR",
	}
}

// AssignmentGroupFactory provides methods to create test AssignmentGroup data
type AssignmentGroupFactory struct{}

// NewAssignmentGroupFactory creates a new AssignmentGroupFactory
func NewAssignmentGroupFactory() *AssignmentGroupFactory {
	return &AssignmentGroupFactory{}
}

// Create creates a sequential test group over the given members
func (f *AssignmentGroupFactory) Create(tenantID uuid.UUID, members ...uuid.UUID) *models.AssignmentGroup {
	id := uuid.New()
	return &models.AssignmentGroup{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TenantID:        tenantID,
		Name:            "group-" + id.String()[:8],
		Strategy:        models.StrategySequential,
		MemberOrder:     models.UUIDSlice(members),
		CurrentPosition: 0,
		IsActive:        true,
	}
}

// LoadBalanced creates a load-balanced test group over the given members
func (f *AssignmentGroupFactory) LoadBalanced(tenantID uuid.UUID, members ...uuid.UUID) *models.AssignmentGroup {
	group := f.Create(tenantID, members...)
	group.Strategy = models.StrategyLoadBalanced
	return group
}
