package models

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentGroup is the rotation state for round-robin task distribution.
// MemberOrder defines the rotation; CurrentPosition points at the next
// candidate. LockVersion backs the optimistic compare-and-swap that keeps
// concurrent assignments from reusing the same cursor value.
type AssignmentGroup struct {
	BaseModel
	TenantID        uuid.UUID          `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name            string             `json:"name" gorm:"uniqueIndex:idx_tenant_group_name,composite:tenant_id;not null;size:150" validate:"required,max=150"`
	Description     string             `json:"description" gorm:"type:text"`
	Strategy        AssignmentStrategy `json:"strategy" gorm:"type:varchar(20);not null;default:'sequential'"`
	SkipUnavailable bool               `json:"skip_unavailable" gorm:"default:false"`
	ResetDaily      bool               `json:"reset_daily" gorm:"default:false"`
	MemberOrder     UUIDSlice          `json:"member_order" gorm:"type:jsonb"`
	CurrentPosition int                `json:"current_position" gorm:"not null;default:0"`
	LastAssignedAt  *time.Time         `json:"last_assigned_at,omitempty"`
	IsActive        bool               `json:"is_active" gorm:"default:true"`
	LockVersion     int64              `json:"lock_version" gorm:"not null;default:0"`

	// Relationships
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for AssignmentGroup
func (AssignmentGroup) TableName() string {
	return "assignment_groups"
}
