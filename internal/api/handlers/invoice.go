package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	invoiceService service.InvoiceServiceInterface
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice creates a new invoice
// @Summary Create a new invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body service.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} service.InvoiceResponse "Successfully created invoice"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 409 {object} ErrorResponse "Invoice number already taken"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.invoiceService.Create(tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice retrieves an invoice by ID
// @Summary Get invoice by ID
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} service.InvoiceResponse "Successfully retrieved invoice"
// @Failure 400 {object} ErrorResponse "Invalid invoice ID"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invoice ID")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListInvoices lists invoices of the tenant
// @Summary List invoices
// @Description Get invoices of the tenant with pagination and optional student filter
// @Tags invoices
// @Accept json
// @Produce json
// @Param student_id query string false "Filter by student ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.InvoiceListResponse "Successfully retrieved invoices"
// @Failure 400 {object} ErrorResponse "Invalid student ID"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	var studentID *uuid.UUID
	if studentStr := c.Query("student_id"); studentStr != "" {
		id, err := uuid.Parse(studentStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid student ID"})
			return
		}
		studentID = &id
	}

	invoices, err := h.invoiceService.GetByTenant(tenant, studentID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoice updates an existing invoice
// @Summary Update invoice
// @Description Update an invoice. Setting status to 'paid' without paid_at
// @Description stamps the payment time automatically.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param invoice body service.UpdateInvoiceRequest true "Updated invoice data"
// @Success 200 {object} service.InvoiceResponse "Successfully updated invoice"
// @Failure 400 {object} ErrorResponse "Invalid request body or invoice ID"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invoice ID")
	if !ok {
		return
	}

	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.invoiceService.Update(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice deletes an invoice
// @Summary Delete invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 204 "Successfully deleted invoice"
// @Failure 400 {object} ErrorResponse "Invalid invoice ID"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invoice ID")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
