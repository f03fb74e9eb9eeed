package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Student represents a student managed by an agency
type Student struct {
	BaseModel
	TenantID    uuid.UUID       `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	FirstName   string          `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName    string          `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email       string          `json:"email" gorm:"size:255;index" validate:"omitempty,email"`
	Phone       string          `json:"phone" gorm:"size:40"`
	Nationality string          `json:"nationality" gorm:"size:100"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty" gorm:"type:date"`
	Notes       string          `json:"notes" gorm:"type:text"`
	Metadata    json.RawMessage `json:"metadata" gorm:"type:jsonb"`

	// Relationships
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Student
func (Student) TableName() string {
	return "students"
}
