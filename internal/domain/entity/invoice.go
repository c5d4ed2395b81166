package entity

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

// LineItem is a single raw item entry on an invoice, as collected from the
// billing form. Inputs are validated before they reach the calculator.
type LineItem struct {
	Sequence        int             `json:"sequence"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// LineTotals carries the derived amounts for one line item.
type LineTotals struct {
	Total         decimal.Decimal `json:"total"`
	FinalTotal    decimal.Decimal `json:"final_total"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// InvoiceTotals carries the invoice-level aggregates. Rounding to two
// decimals happens only at presentation time, never before aggregation.
type InvoiceTotals struct {
	SubtotalBeforeDiscount decimal.Decimal `json:"subtotal_before_discount"`
	TotalDiscount          decimal.Decimal `json:"total_discount"`
	SubtotalAfterDiscount  decimal.Decimal `json:"subtotal_after_discount"`
	GSTAmount              decimal.Decimal `json:"gst_amount"`
	GrandTotal             decimal.Decimal `json:"grand_total"`
}

// InvoiceHeader holds the invoice-level fields entered at the billing
// counter. Counter and StallNo must be present before a number is assigned
// or a record persisted.
type InvoiceHeader struct {
	Counter       string             `json:"counter"`
	StallNo       string             `json:"stall_no"`
	ArtisanCode   string             `json:"artisan_code"`
	Date          string             `json:"date"` // DD-MM-YYYY
	PhoneNo       string             `json:"phone_no"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Corporation   string             `json:"corporation,omitempty"`
	GSTPercent    enum.GSTRate       `json:"gst_percent,omitempty"`
}

// InvoiceRecord is one ledger row. The ledger is denormalized: every row of
// an invoice repeats the header fields and the invoice-level aggregates so
// each row is self-describing without a join.
type InvoiceRecord struct {
	StallNo           string             `json:"stall_no"`
	InvoiceNo         string             `json:"invoice_no"`
	Date              string             `json:"date"`
	PhoneNo           string             `json:"phone_no"`
	PaymentMethod     enum.PaymentMethod `json:"payment_method"`
	ArtisanCode       string             `json:"artisan_code"`
	Item              string             `json:"item"`
	Qty               int                `json:"qty"`
	Price             decimal.Decimal    `json:"price"`
	TotalItem         decimal.Decimal    `json:"total_item"`
	DiscountPercent   decimal.Decimal    `json:"discount_percent"`
	FinalTotalItem    decimal.Decimal    `json:"final_total_item"`
	FinalTotalInvoice decimal.Decimal    `json:"final_total_invoice"`
	GSTPercent        decimal.Decimal    `json:"gst_percent"`
	GSTAmount         decimal.Decimal    `json:"gst_amount"`
	Status            enum.InvoiceStatus `json:"status"`
	Corporation       string             `json:"corporation"`
	Location          string             `json:"location"`
}

// ToRow flattens the record into the evolved column order. Monetary cells
// are rendered with two decimals; percentages keep their natural form.
func (r *InvoiceRecord) ToRow() []string {
	return []string{
		r.StallNo,
		r.InvoiceNo,
		r.Date,
		r.PhoneNo,
		r.PaymentMethod.String(),
		r.ArtisanCode,
		r.Item,
		strconv.Itoa(r.Qty),
		r.Price.StringFixed(2),
		r.TotalItem.StringFixed(2),
		r.DiscountPercent.String(),
		r.FinalTotalItem.StringFixed(2),
		r.FinalTotalInvoice.StringFixed(2),
		r.GSTPercent.String(),
		r.GSTAmount.StringFixed(2),
		r.Status.String(),
		r.Corporation,
		r.Location,
	}
}

// RecordFromRow rehydrates a ledger row into a typed record. Rows written
// before the GST and corporation columns existed are shorter than the
// evolved schema; missing trailing cells read as empty. Unparseable numeric
// cells read as zero rather than failing the whole row.
func RecordFromRow(row []string) InvoiceRecord {
	cell := func(col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return row[col]
	}

	qty, _ := strconv.Atoi(cell(ColQty))

	status := enum.InvoiceStatus(cell(ColStatus))
	if !status.Valid() {
		status = enum.InvoiceStatusActive
	}

	return InvoiceRecord{
		StallNo:           cell(ColStallNo),
		InvoiceNo:         cell(ColInvoiceNo),
		Date:              cell(ColDate),
		PhoneNo:           cell(ColPhoneNo),
		PaymentMethod:     enum.PaymentMethod(cell(ColPaymentMethod)),
		ArtisanCode:       cell(ColArtisanCode),
		Item:              cell(ColItem),
		Qty:               qty,
		Price:             parseDecimal(cell(ColPrice)),
		TotalItem:         parseDecimal(cell(ColTotalItem)),
		DiscountPercent:   parseDecimal(cell(ColDiscountPercent)),
		FinalTotalItem:    parseDecimal(cell(ColFinalTotalItem)),
		FinalTotalInvoice: parseDecimal(cell(ColFinalTotalInvoice)),
		GSTPercent:        parseDecimal(cell(ColGSTPercent)),
		GSTAmount:         parseDecimal(cell(ColGSTAmount)),
		Status:            status,
		Corporation:       cell(ColCorporation),
		Location:          cell(ColLocation),
	}
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
