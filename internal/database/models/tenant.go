package models

import "encoding/json"

// Tenant represents a single agency. Every other entity is scoped to a
// tenant; subdomain resolution happens upstream and handlers only ever see
// the resolved tenant id.
type Tenant struct {
	BaseModel
	Name      string          `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Subdomain string          `json:"subdomain" gorm:"uniqueIndex;not null;size:63" validate:"required,min=1,max=63"`
	Timezone  string          `json:"timezone" gorm:"size:64;default:'UTC'"`
	IsActive  bool            `json:"is_active" gorm:"default:true"`
	Metadata  json.RawMessage `json:"metadata" gorm:"type:jsonb"`
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
