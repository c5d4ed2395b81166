package request

import (
	"github.com/shopspring/decimal"
)

// LineItemRequest is one row of the billing form's item table.
type LineItemRequest struct {
	Name            string          `json:"name" binding:"required"`
	Price           decimal.Decimal `json:"price"`
	Qty             int             `json:"qty" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateInvoiceRequest represents the billing counter form. Location is
// deliberately absent; it comes from the authenticated user's profile.
type CreateInvoiceRequest struct {
	Counter       string            `json:"counter" binding:"required"`
	StallNo       string            `json:"stall_no" binding:"required"`
	ArtisanCode   string            `json:"artisan_code"`
	Date          string            `json:"date"` // DD-MM-YYYY, defaults to today
	PhoneNo       string            `json:"phone_no"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	Corporation   string            `json:"corporation"`
	GSTPercent    float64           `json:"gst_percent"`
	Items         []LineItemRequest `json:"items" binding:"required"`
}

// LedgerFilterQuery carries the browse and export filters. Comma-separated
// values select multiple buckets per dimension; dates are DD-MM-YYYY.
type LedgerFilterQuery struct {
	Stalls         string `form:"stall_no"`
	PaymentMethods string `form:"payment_method"`
	Statuses       string `form:"status"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
}
