package models

import (
	"github.com/google/uuid"
)

// User represents an agency staff member (agent, manager or admin)
type User struct {
	BaseModel
	TenantID     uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	FirstName    string    `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName     string    `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex:idx_tenant_user_email,composite:tenant_id;not null;size:255" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'agent'"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`

	// Relationships
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
