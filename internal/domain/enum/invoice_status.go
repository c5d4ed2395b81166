package enum

// InvoiceStatus represents the lifecycle state of an invoice in the ledger.
// Rows are never deleted; cancelling an invoice rewrites the Status cell of
// every row belonging to it.
type InvoiceStatus string

const (
	InvoiceStatusActive    InvoiceStatus = "Active"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known states.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusActive || s == InvoiceStatusCancelled
}
