package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is the audit record of one allocation decision. Rows reference
// their group by id only so history survives group deletion.
type Assignment struct {
	BaseModel
	TenantID                  uuid.UUID          `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	GroupID                   uuid.UUID          `json:"group_id" gorm:"type:uuid;not null;index" validate:"required"`
	AssigneeID                uuid.UUID          `json:"assignee_id" gorm:"type:uuid;not null;index" validate:"required"`
	TaskID                    uuid.UUID          `json:"task_id" gorm:"type:uuid;not null;index" validate:"required"`
	Strategy                  AssignmentStrategy `json:"strategy" gorm:"type:varchar(20);not null"`
	OrderPositionAtAssignment int                `json:"order_position_at_assignment" gorm:"not null"`
	AssignedAt                time.Time          `json:"assigned_at" gorm:"not null;index"`
}

// TableName returns the table name for Assignment
func (Assignment) TableName() string {
	return "assignments"
}
