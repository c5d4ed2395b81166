package service

import (
	"time"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

// LedgerFilter narrows ledger records for browsing and export. Empty slices
// and zero dates mean "no restriction on that dimension".
type LedgerFilter struct {
	Stalls         []string
	PaymentMethods []enum.PaymentMethod
	Statuses       []enum.InvoiceStatus
	StartDate      time.Time
	EndDate        time.Time
}

// Apply returns the records matching every set dimension, preserving ledger
// order. Rows whose Date cell does not parse are excluded only when a date
// bound is set.
func (f *LedgerFilter) Apply(records []entity.InvoiceRecord) []entity.InvoiceRecord {
	if f == nil {
		return records
	}

	out := make([]entity.InvoiceRecord, 0, len(records))
	for _, record := range records {
		if !matchString(f.Stalls, record.StallNo) {
			continue
		}
		if !matchPayment(f.PaymentMethods, record.PaymentMethod) {
			continue
		}
		if !matchStatus(f.Statuses, record.Status) {
			continue
		}
		if !f.matchDate(record.Date) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (f *LedgerFilter) matchDate(raw string) bool {
	if f.StartDate.IsZero() && f.EndDate.IsZero() {
		return true
	}
	date, err := time.Parse(ledgerDateLayout, raw)
	if err != nil {
		return false
	}
	if !f.StartDate.IsZero() && date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && date.After(f.EndDate) {
		return false
	}
	return true
}

func matchString(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func matchPayment(allowed []enum.PaymentMethod, value enum.PaymentMethod) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func matchStatus(allowed []enum.InvoiceStatus, value enum.InvoiceStatus) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
