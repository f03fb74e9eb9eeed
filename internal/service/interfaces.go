package service

import (
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AllocatorServiceInterface defines the round-robin allocator operations
type AllocatorServiceInterface interface {
	AssignNext(tenantID, groupID, taskID uuid.UUID) (*AssignmentResult, error)
	ResetGroup(tenantID, groupID uuid.UUID) error
}

// AssignmentGroupServiceInterface defines the assignment group config operations
type AssignmentGroupServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateAssignmentGroupRequest) (*AssignmentGroupResponse, error)
	GetByID(tenantID, id uuid.UUID) (*AssignmentGroupResponse, error)
	GetByTenant(tenantID uuid.UUID, page, pageSize int) (*AssignmentGroupListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateAssignmentGroupRequest) (*AssignmentGroupResponse, error)
	Delete(tenantID, id uuid.UUID) error
	History(tenantID, id uuid.UUID, page, pageSize int) (*AssignmentHistoryResponse, error)
}

// TenantServiceInterface defines the tenant operations
type TenantServiceInterface interface {
	Create(req *CreateTenantRequest) (*TenantResponse, error)
	GetByID(id uuid.UUID) (*TenantResponse, error)
	GetAll(page, pageSize int) (*TenantListResponse, error)
	Update(id uuid.UUID, req *UpdateTenantRequest) (*TenantResponse, error)
	Delete(id uuid.UUID) error
}

// UserServiceInterface defines the user operations
type UserServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateUserRequest) (*UserResponse, error)
	GetByID(tenantID, id uuid.UUID) (*UserResponse, error)
	GetByTenant(tenantID uuid.UUID, page, pageSize int) (*UserListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(tenantID, id uuid.UUID) error
}

// StudentServiceInterface defines the student operations
type StudentServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateStudentRequest) (*StudentResponse, error)
	GetByID(tenantID, id uuid.UUID) (*StudentResponse, error)
	GetByTenant(tenantID uuid.UUID, query string, page, pageSize int) (*StudentListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateStudentRequest) (*StudentResponse, error)
	Delete(tenantID, id uuid.UUID) error
}

// LeadServiceInterface defines the lead operations
type LeadServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateLeadRequest) (*LeadResponse, error)
	GetByID(tenantID, id uuid.UUID) (*LeadResponse, error)
	GetByTenant(tenantID uuid.UUID, status string, page, pageSize int) (*LeadListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateLeadRequest) (*LeadResponse, error)
	Distribute(tenantID, id uuid.UUID, req *DistributeLeadRequest) (*DistributeLeadResponse, error)
	Delete(tenantID, id uuid.UUID) error
}

// TaskServiceInterface defines the task operations
type TaskServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error)
	GetByID(tenantID, id uuid.UUID) (*TaskResponse, error)
	GetByTenant(tenantID uuid.UUID, assigneeID *uuid.UUID, page, pageSize int) (*TaskListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(tenantID, id uuid.UUID) error
}

// CampaignServiceInterface defines the campaign operations
type CampaignServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateCampaignRequest) (*CampaignResponse, error)
	GetByID(tenantID, id uuid.UUID) (*CampaignResponse, error)
	GetByTenant(tenantID uuid.UUID, page, pageSize int) (*CampaignListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateCampaignRequest) (*CampaignResponse, error)
	Delete(tenantID, id uuid.UUID) error
}

// InvoiceServiceInterface defines the invoice operations
type InvoiceServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateInvoiceRequest) (*InvoiceResponse, error)
	GetByID(tenantID, id uuid.UUID) (*InvoiceResponse, error)
	GetByTenant(tenantID uuid.UUID, studentID *uuid.UUID, page, pageSize int) (*InvoiceListResponse, error)
	Update(tenantID, id uuid.UUID, req *UpdateInvoiceRequest) (*InvoiceResponse, error)
	Delete(tenantID, id uuid.UUID) error
}
