package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice represents a billing document issued to a student
type Invoice struct {
	BaseModel
	TenantID    uuid.UUID     `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	StudentID   uuid.UUID     `json:"student_id" gorm:"type:uuid;not null;index" validate:"required"`
	Number      string        `json:"number" gorm:"uniqueIndex:idx_tenant_invoice_number,composite:tenant_id;not null;size:40" validate:"required,max=40"`
	AmountCents int64         `json:"amount_cents" gorm:"not null" validate:"required,min=0"`
	Currency    string        `json:"currency" gorm:"size:3;not null;default:'USD'" validate:"required,len=3"`
	Status      InvoiceStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	IssuedAt    *time.Time    `json:"issued_at,omitempty"`
	DueAt       *time.Time    `json:"due_at,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`

	// Relationships
	Tenant  Tenant  `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}
