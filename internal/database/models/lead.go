package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Lead represents an inbound prospect, typically generated by a campaign
type Lead struct {
	BaseModel
	TenantID   uuid.UUID       `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	CampaignID *uuid.UUID      `json:"campaign_id,omitempty" gorm:"type:uuid;index"`
	FirstName  string          `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName   string          `json:"last_name" gorm:"size:100" validate:"max=100"`
	Email      string          `json:"email" gorm:"size:255;index" validate:"omitempty,email"`
	Phone      string          `json:"phone" gorm:"size:40"`
	Source     string          `json:"source" gorm:"size:100"`
	Status     LeadStatus      `json:"status" gorm:"type:varchar(20);not null;default:'new'"`
	AssigneeID *uuid.UUID      `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	Metadata   json.RawMessage `json:"metadata" gorm:"type:jsonb"`

	// Relationships
	Tenant   Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	Assignee *User     `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
}

// TableName returns the table name for Lead
func (Lead) TableName() string {
	return "leads"
}
