package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
	"github.com/tulipbilling/invoicing-api/pkg/pagination"
	"github.com/tulipbilling/invoicing-api/pkg/pdf"
)

// ledgerDateLayout is the DD-MM-YYYY format used in the Date column.
const ledgerDateLayout = "02-01-2006"

// InvoiceService handles invoice creation, browsing, reprinting and status
// mutation against the shared ledger.
type InvoiceService struct {
	gateway   repository.LedgerGateway
	snapshots repository.SnapshotProvider
	logger    *logrus.Logger

	// Serializes number generation and append within this process so two
	// concurrent requests cannot read the same snapshot and derive the same
	// sequence. Requests served by other instances can still collide; the
	// store offers no locking to close that gap.
	writeMu sync.Mutex
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	gateway repository.LedgerGateway,
	snapshots repository.SnapshotProvider,
	logger *logrus.Logger,
) *InvoiceService {
	return &InvoiceService{
		gateway:   gateway,
		snapshots: snapshots,
		logger:    logger,
	}
}

// CreateInvoiceInput represents the billing form contents.
type CreateInvoiceInput struct {
	entity.InvoiceHeader
	Items []entity.LineItem
}

// CreateInvoiceOutput carries the persisted invoice plus its printable form.
type CreateInvoiceOutput struct {
	InvoiceNo string                 `json:"invoice_no"`
	Totals    entity.InvoiceTotals   `json:"totals"`
	Records   []entity.InvoiceRecord `json:"records"`
	PDF       []byte                 `json:"-"`
}

// CreateInvoice validates the form, assigns the next invoice number for the
// counter, appends one ledger row per line item and renders the printable
// document. The ledger write and the PDF derive from the same computed
// totals.
func (s *InvoiceService) CreateInvoice(ctx context.Context, identity entity.Identity, input *CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	if err := validateCreateInvoice(input); err != nil {
		return nil, err
	}

	input.Counter = strings.ToUpper(strings.TrimSpace(input.Counter))
	if input.Date == "" {
		input.Date = time.Now().Format(ledgerDateLayout)
	}
	for i := range input.Items {
		input.Items[i].Sequence = i + 1
	}

	totals := ComputeInvoiceTotals(input.Items, input.GSTPercent)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, apperror.NewLedgerError(err)
	}
	invoiceNo := NextInvoiceNumber(input.Counter, snap)

	records := buildRows(input, invoiceNo, totals, enum.InvoiceStatusActive, identity.Location)
	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].ToRow())
	}

	if err := s.gateway.EnsureHeader(ctx, entity.LedgerHeader); err != nil {
		return nil, apperror.NewLedgerError(err)
	}
	if err := s.gateway.AppendRows(ctx, rows); err != nil {
		return nil, apperror.NewLedgerError(err)
	}

	// Read-after-write: the next numbering or listing must see these rows.
	if _, err := s.snapshots.Refresh(ctx); err != nil {
		s.logger.WithField("invoice_no", invoiceNo).Warnf("snapshot refresh after append failed: %v", err)
	}

	document, err := pdf.Render(documentFromRecords(invoiceNo, records, totals.SubtotalBeforeDiscount, totals.TotalDiscount, totals.GSTAmount, totals.GrandTotal))
	if err != nil {
		// The invoice is already persisted; reprint can regenerate the PDF.
		s.logger.WithField("invoice_no", invoiceNo).Warnf("pdf render failed: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_no": invoiceNo,
		"rows":       len(rows),
		"user":       identity.Username,
	}).Info("invoice created")

	return &CreateInvoiceOutput{
		InvoiceNo: invoiceNo,
		Totals:    totals,
		Records:   records,
		PDF:       document,
	}, nil
}

func validateCreateInvoice(input *CreateInvoiceInput) error {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.Counter) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "counter", Message: "Billing counter is required"})
	}
	if strings.TrimSpace(input.StallNo) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stall_no", Message: "Stall number is required"})
	}
	if !input.PaymentMethod.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "Payment method must be Cash, UPI or Card"})
	}
	if !input.GSTPercent.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gst_percent", Message: "GST% must be one of 0, 3, 5, 12, 18, 28"})
	}
	if input.Date != "" {
		if _, err := time.Parse(ledgerDateLayout, input.Date); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "Date must be DD-MM-YYYY"})
		}
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	for _, item := range input.Items {
		if item.UnitPrice.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "Item price cannot be negative"})
			break
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "Item quantity must be at least 1"})
			break
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "Discount% must be between 0 and 100"})
			break
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// buildRows produces one self-describing ledger record per line item. The
// invoice-level aggregates repeat on every row, and the location comes from
// the authenticated user's stored profile, never from the form.
func buildRows(input *CreateInvoiceInput, invoiceNo string, totals entity.InvoiceTotals, status enum.InvoiceStatus, location string) []entity.InvoiceRecord {
	records := make([]entity.InvoiceRecord, 0, len(input.Items))
	for _, item := range input.Items {
		line := ComputeLine(item)
		records = append(records, entity.InvoiceRecord{
			StallNo:           input.StallNo,
			InvoiceNo:         invoiceNo,
			Date:              input.Date,
			PhoneNo:           input.PhoneNo,
			PaymentMethod:     input.PaymentMethod,
			ArtisanCode:       input.ArtisanCode,
			Item:              item.Name,
			Qty:               item.Quantity,
			Price:             item.UnitPrice,
			TotalItem:         line.Total,
			DiscountPercent:   item.DiscountPercent,
			FinalTotalItem:    line.FinalTotal,
			FinalTotalInvoice: totals.GrandTotal,
			GSTPercent:        decimal.NewFromFloat(float64(input.GSTPercent)),
			GSTAmount:         totals.GSTAmount,
			Status:            status,
			Corporation:       input.Corporation,
			Location:          location,
		})
	}
	return records
}

// Invoice groups all ledger records belonging to one invoice number.
type Invoice struct {
	InvoiceNo string                 `json:"invoice_no"`
	Status    enum.InvoiceStatus     `json:"status"`
	Records   []entity.InvoiceRecord `json:"records"`
}

// GetInvoice returns the records for one invoice from the cached snapshot.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceNo string) (*Invoice, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, apperror.NewLedgerError(err)
	}
	return invoiceFromSnapshot(snap, invoiceNo)
}

func invoiceFromSnapshot(snap *entity.LedgerSnapshot, invoiceNo string) (*Invoice, error) {
	_, rows := snap.RowsFor(invoiceNo)
	if len(rows) == 0 {
		return nil, apperror.ErrInvoiceNotFound
	}

	invoice := &Invoice{InvoiceNo: invoiceNo}
	for _, row := range rows {
		invoice.Records = append(invoice.Records, entity.RecordFromRow(row))
	}
	// The toggle flow keys off the first row's status.
	invoice.Status = invoice.Records[0].Status
	return invoice, nil
}

// ListRecords returns filtered ledger records, newest append order last,
// paginated in memory.
func (s *InvoiceService) ListRecords(ctx context.Context, filter *LedgerFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.InvoiceRecord], error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, apperror.NewLedgerError(err)
	}

	records := make([]entity.InvoiceRecord, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		records = append(records, entity.RecordFromRow(row))
	}
	records = filter.Apply(records)

	return pagination.Paginate(records, params), nil
}

// ReprintInvoice regenerates the printable document for a stored invoice.
// Header fields rehydrate from the invoice's first ledger row.
func (s *InvoiceService) ReprintInvoice(ctx context.Context, invoiceNo string) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, record := range invoice.Records {
		subtotal = subtotal.Add(record.TotalItem)
		discount = discount.Add(record.TotalItem.Sub(record.FinalTotalItem))
	}
	first := invoice.Records[0]

	return pdf.Render(documentFromRecords(invoiceNo, invoice.Records, subtotal, discount, first.GSTAmount, first.FinalTotalInvoice))
}

func documentFromRecords(invoiceNo string, records []entity.InvoiceRecord, subtotal, discount, gstAmount, grandTotal decimal.Decimal) *pdf.Document {
	first := records[0]
	doc := &pdf.Document{
		InvoiceNo:     invoiceNo,
		StallNo:       first.StallNo,
		ArtisanCode:   first.ArtisanCode,
		Date:          first.Date,
		PhoneNo:       first.PhoneNo,
		PaymentMethod: first.PaymentMethod.String(),
		Subtotal:      subtotal.StringFixed(2),
		TotalDiscount: discount.StringFixed(2),
		GrandTotal:    grandTotal.StringFixed(2),
	}
	if !gstAmount.IsZero() {
		doc.GSTAmount = gstAmount.StringFixed(2)
	}
	for i, record := range records {
		doc.Items = append(doc.Items, pdf.Line{
			SNo:   strconv.Itoa(i + 1),
			Name:  record.Item,
			Price: record.Price.StringFixed(2),
			Qty:   strconv.Itoa(record.Qty),
			Total: record.TotalItem.StringFixed(2),
		})
	}
	return doc
}

// SetStatus rewrites the Status cell of every row belonging to the invoice
// and returns how many rows were updated. The loop is not atomic: a failure
// mid-way leaves a partially updated invoice, which is reported alongside
// the count rather than rolled back.
func (s *InvoiceService) SetStatus(ctx context.Context, invoiceNo string, status enum.InvoiceStatus) (int, error) {
	if !status.Valid() {
		return 0, apperror.NewBadRequestError("Status must be Active or Cancelled")
	}

	// Always act on a fresh snapshot so row offsets are current.
	snap, err := s.snapshots.Refresh(ctx)
	if err != nil {
		return 0, apperror.NewLedgerError(err)
	}

	indices, rows := snap.RowsFor(invoiceNo)
	if len(indices) == 0 {
		return 0, apperror.ErrInvoiceNotFound
	}

	current := enum.InvoiceStatus(snap.Cell(rows[0], entity.ColStatus))
	if current == status {
		return 0, nil
	}

	updated := 0
	for _, idx := range indices {
		if err := s.gateway.UpdateCell(ctx, entity.SheetRow(idx), entity.ColStatus+1, status.String()); err != nil {
			s.snapshots.Invalidate()
			return updated, apperror.NewLedgerError(err)
		}
		updated++
	}

	if _, err := s.snapshots.Refresh(ctx); err != nil {
		s.logger.WithField("invoice_no", invoiceNo).Warnf("snapshot refresh after status change failed: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_no": invoiceNo,
		"status":     status,
		"rows":       updated,
	}).Info("invoice status changed")

	return updated, nil
}
