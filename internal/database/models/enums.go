package models

// AssignmentStrategy defines how an assignment group picks the next assignee
type AssignmentStrategy string

const (
	StrategySequential   AssignmentStrategy = "sequential"
	StrategyLoadBalanced AssignmentStrategy = "load_balanced"
)

// UserRole defines the roles a user can have within an agency
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAgent   UserRole = "agent"
)

// LeadStatus defines the pipeline states of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// TaskStatus defines the lifecycle states of a task
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// CampaignStatus defines the lifecycle states of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// InvoiceStatus defines the payment states of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// IsValid checks if the AssignmentStrategy is valid
func (s AssignmentStrategy) IsValid() bool {
	switch s {
	case StrategySequential, StrategyLoadBalanced:
		return true
	}
	return false
}

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent:
		return true
	}
	return false
}

// IsValid checks if the LeadStatus is valid
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether a task in this status still counts toward an
// assignee's workload
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusOpen || s == TaskStatusInProgress
}

// IsValid checks if the CampaignStatus is valid
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	}
	return false
}

// IsValid checks if the InvoiceStatus is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid:
		return true
	}
	return false
}
