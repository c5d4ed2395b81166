package service

import (
	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

var hundred = decimal.NewFromInt(100)

// ComputeLine derives the per-item amounts for one line item. Inputs are
// validated before they reach the calculator; no re-validation here.
func ComputeLine(item entity.LineItem) entity.LineTotals {
	total := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	finalTotal := total.Mul(hundred.Sub(item.DiscountPercent)).Div(hundred)

	return entity.LineTotals{
		Total:         total,
		FinalTotal:    finalTotal,
		DiscountValue: total.Sub(finalTotal),
	}
}

// ComputeInvoiceTotals aggregates line totals into the invoice-level
// amounts. GST applies to the post-discount subtotal; a zero rate yields a
// zero GST amount. Amounts stay unrounded here so aggregation does not
// compound rounding error; two-decimal rounding happens at presentation.
func ComputeInvoiceTotals(items []entity.LineItem, gstPercent enum.GSTRate) entity.InvoiceTotals {
	totals := entity.InvoiceTotals{
		SubtotalBeforeDiscount: decimal.Zero,
		TotalDiscount:          decimal.Zero,
		SubtotalAfterDiscount:  decimal.Zero,
		GSTAmount:              decimal.Zero,
		GrandTotal:             decimal.Zero,
	}

	for _, item := range items {
		line := ComputeLine(item)
		totals.SubtotalBeforeDiscount = totals.SubtotalBeforeDiscount.Add(line.Total)
		totals.TotalDiscount = totals.TotalDiscount.Add(line.DiscountValue)
		totals.SubtotalAfterDiscount = totals.SubtotalAfterDiscount.Add(line.FinalTotal)
	}

	rate := decimal.NewFromFloat(float64(gstPercent))
	totals.GSTAmount = totals.SubtotalAfterDiscount.Mul(rate).Div(hundred)
	totals.GrandTotal = totals.SubtotalAfterDiscount.Add(totals.GSTAmount)

	return totals
}
