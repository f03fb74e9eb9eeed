package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a unit of follow-up work, usually routed to an agent by
// the round-robin allocator
type Task struct {
	BaseModel
	TenantID   uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Title      string     `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Details    string     `json:"details" gorm:"type:text"`
	Status     TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	LeadID     *uuid.UUID `json:"lead_id,omitempty" gorm:"type:uuid;index"`
	StudentID  *uuid.UUID `json:"student_id,omitempty" gorm:"type:uuid;index"`
	DueAt      *time.Time `json:"due_at,omitempty"`

	// Relationships
	Tenant   Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Lead     *Lead    `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	Student  *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
