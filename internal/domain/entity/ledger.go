package entity

import (
	"time"
)

// LedgerHeader is the expected header row of the remote ledger in its most
// evolved form. Column order matters: status mutation updates cells by
// position, so the header must match exactly or be rewritten forward.
var LedgerHeader = []string{
	"Stall No",
	"Invoice No",
	"Date",
	"Phone No",
	"Payment Method",
	"Artisan Code",
	"Item",
	"Qty",
	"Price",
	"Total (Item)",
	"Discount%",
	"Final Total (Item)",
	"Final Total (Invoice)",
	"GST%",
	"GST Amt",
	"Status",
	"Corporation",
	"Location",
}

// Zero-based column offsets into LedgerHeader.
const (
	ColStallNo = iota
	ColInvoiceNo
	ColDate
	ColPhoneNo
	ColPaymentMethod
	ColArtisanCode
	ColItem
	ColQty
	ColPrice
	ColTotalItem
	ColDiscountPercent
	ColFinalTotalItem
	ColFinalTotalInvoice
	ColGSTPercent
	ColGSTAmount
	ColStatus
	ColCorporation
	ColLocation
)

// LedgerSnapshot is an in-memory copy of every row currently in the remote
// store. Staleness is acceptable for numbering and analytics; callers that
// must see their own writes go through a forced refresh first.
type LedgerSnapshot struct {
	Header    []string
	Rows      [][]string
	FetchedAt time.Time
}

// Cell returns the value at the given data row and column, or "" when the
// row is shorter than the evolved schema (legacy rows lack trailing columns).
func (s *LedgerSnapshot) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// InvoiceNumbers returns the Invoice No cell of every data row, in order.
func (s *LedgerSnapshot) InvoiceNumbers() []string {
	numbers := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		numbers = append(numbers, s.Cell(row, ColInvoiceNo))
	}
	return numbers
}

// RowsFor returns the zero-based data-row indices and rows whose Invoice No
// column equals invoiceNo.
func (s *LedgerSnapshot) RowsFor(invoiceNo string) ([]int, [][]string) {
	var indices []int
	var rows [][]string
	for i, row := range s.Rows {
		if s.Cell(row, ColInvoiceNo) == invoiceNo {
			indices = append(indices, i)
			rows = append(rows, row)
		}
	}
	return indices, rows
}

// SheetRow converts a zero-based data-row index to its 1-based sheet row,
// accounting for the header row.
func SheetRow(dataIndex int) int {
	return dataIndex + 2
}
