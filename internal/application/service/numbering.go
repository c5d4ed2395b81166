package service

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
)

// ExtractSequences pulls the numeric suffix out of every invoice number
// beginning with "{counter}_INV". Values that do not match the pattern are
// skipped, not errors: the ledger column is free text and has accumulated
// malformed entries over time.
func ExtractSequences(counter string, invoiceNos []string) []int {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(counter) + `_INV(\d+)`)

	var sequences []int
	for _, invoiceNo := range invoiceNos {
		match := pattern.FindStringSubmatch(invoiceNo)
		if match == nil {
			continue
		}
		seq, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		sequences = append(sequences, seq)
	}
	return sequences
}

// NextInvoiceNumber derives the next invoice number for a billing counter
// from the snapshot read at generation time: one greater than the highest
// sequence already used by that counter, starting at 1, zero-padded to two
// digits. Pure function of the snapshot; the caller normalizes the counter
// to uppercase and guarantees it is non-empty.
func NextInvoiceNumber(counter string, snapshot *entity.LedgerSnapshot) string {
	max := 0
	for _, seq := range ExtractSequences(counter, snapshot.InvoiceNumbers()) {
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s_INV%02d", counter, max+1)
}
