package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Campaign represents a marketing campaign that generates leads
type Campaign struct {
	BaseModel
	TenantID    uuid.UUID       `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name        string          `json:"name" gorm:"uniqueIndex:idx_tenant_campaign_name,composite:tenant_id;not null;size:150" validate:"required,max=150"`
	Description string          `json:"description" gorm:"type:text"`
	Channel     string          `json:"channel" gorm:"size:100"`
	Status      CampaignStatus  `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	StartsAt    *time.Time      `json:"starts_at,omitempty"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"`
	Metadata    json.RawMessage `json:"metadata" gorm:"type:jsonb"`

	// Relationships
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Leads  []Lead `json:"leads,omitempty" gorm:"foreignKey:CampaignID"`
}

// TableName returns the table name for Campaign
func (Campaign) TableName() string {
	return "campaigns"
}
