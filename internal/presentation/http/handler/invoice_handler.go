package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/request"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/response"
	"github.com/tulipbilling/invoicing-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles invoice creation from the billing counter form
// @Summary Create Invoice
// @Description Create an invoice, append it to the ledger and return the printable document reference
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Billing form"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]entity.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.LineItem{
			Name:            item.Name,
			UnitPrice:       item.Price,
			Quantity:        item.Qty,
			DiscountPercent: item.DiscountPercent,
		})
	}

	output, err := h.invoiceService.CreateInvoice(c.Request.Context(), identity, &service.CreateInvoiceInput{
		InvoiceHeader: entity.InvoiceHeader{
			Counter:       req.Counter,
			StallNo:       req.StallNo,
			ArtisanCode:   req.ArtisanCode,
			Date:          req.Date,
			PhoneNo:       req.PhoneNo,
			PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
			Corporation:   req.Corporation,
			GSTPercent:    enum.GSTRate(req.GSTPercent),
		},
		Items: items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", gin.H{
		"invoice_no": output.InvoiceNo,
		"totals": gin.H{
			"subtotal":       output.Totals.SubtotalBeforeDiscount.StringFixed(2),
			"total_discount": output.Totals.TotalDiscount.StringFixed(2),
			"gst_amount":     output.Totals.GSTAmount.StringFixed(2),
			"grand_total":    output.Totals.GrandTotal.StringFixed(2),
		},
		"records": output.Records,
		"pdf_url": fmt.Sprintf("/api/v1/invoices/%s/pdf", output.InvoiceNo),
	})
}

// List handles browsing ledger records with filters
// @Summary List Records
// @Description List ledger records with optional stall, payment, status and date filters
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var query request.LedgerFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}
	filter, err := parseLedgerFilter(&query)
	if err != nil {
		response.BadRequest(c, "Dates must be DD-MM-YYYY")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.invoiceService.ListRecords(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Records retrieved successfully", result)
}

// Get handles fetching one invoice with all of its rows
// @Summary Get Invoice
// @Description Get all ledger rows of one invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices/{number} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	total := decimal.Zero
	if len(invoice.Records) > 0 {
		total = invoice.Records[0].FinalTotalInvoice
	}
	response.OK(c, "Invoice retrieved successfully", gin.H{
		"invoice_no":  invoice.InvoiceNo,
		"status":      invoice.Status,
		"grand_total": total.StringFixed(2),
		"records":     invoice.Records,
	})
}

// PDF streams the printable document for an invoice
// @Summary Reprint Invoice
// @Description Regenerate and download the invoice PDF
// @Tags invoices
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 404 {object} response.APIResponse
// @Router /invoices/{number}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	invoiceNo := c.Param("number")

	document, err := h.invoiceService.ReprintInvoice(c.Request.Context(), invoiceNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoiceNo))
	c.Data(http.StatusOK, "application/pdf", document)
}

// Cancel marks every row of an invoice as Cancelled
// @Summary Cancel Invoice
// @Description Mark an invoice as Cancelled; rows stay in the ledger
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices/{number}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.setStatus(c, enum.InvoiceStatusCancelled, "Invoice cancelled")
}

// Restore marks every row of a cancelled invoice as Active again
// @Summary Restore Invoice
// @Description Mark a cancelled invoice as Active
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices/{number}/restore [post]
func (h *InvoiceHandler) Restore(c *gin.Context) {
	h.setStatus(c, enum.InvoiceStatusActive, "Invoice restored")
}

func (h *InvoiceHandler) setStatus(c *gin.Context, status enum.InvoiceStatus, message string) {
	invoiceNo := c.Param("number")

	updated, err := h.invoiceService.SetStatus(c.Request.Context(), invoiceNo, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, gin.H{
		"invoice_no":   invoiceNo,
		"status":       status,
		"rows_updated": updated,
	})
}
