package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

func lineItem(price float64, qty int, discount float64) entity.LineItem {
	return entity.LineItem{
		Name:            "item",
		UnitPrice:       decimal.NewFromFloat(price),
		Quantity:        qty,
		DiscountPercent: decimal.NewFromFloat(discount),
	}
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name         string
		item         entity.LineItem
		wantTotal    string
		wantFinal    string
		wantDiscount string
	}{
		{
			name:         "no discount keeps final equal to total",
			item:         lineItem(100, 2, 0),
			wantTotal:    "200",
			wantFinal:    "200",
			wantDiscount: "0",
		},
		{
			name:         "ten percent discount",
			item:         lineItem(100, 2, 10),
			wantTotal:    "200",
			wantFinal:    "180",
			wantDiscount: "20",
		},
		{
			name:         "full discount zeroes the line",
			item:         lineItem(59.99, 3, 100),
			wantTotal:    "179.97",
			wantFinal:    "0",
			wantDiscount: "179.97",
		},
		{
			name:         "fractional discount",
			item:         lineItem(33.33, 1, 2.5),
			wantTotal:    "33.33",
			wantFinal:    "32.49675",
			wantDiscount: "0.83325",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLine(tt.item)
			if got.Total.String() != tt.wantTotal {
				t.Errorf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
			if got.FinalTotal.String() != tt.wantFinal {
				t.Errorf("FinalTotal = %s, want %s", got.FinalTotal, tt.wantFinal)
			}
			if got.DiscountValue.String() != tt.wantDiscount {
				t.Errorf("DiscountValue = %s, want %s", got.DiscountValue, tt.wantDiscount)
			}
			if got.FinalTotal.GreaterThan(got.Total) {
				t.Error("final total may never exceed the undiscounted total")
			}
		})
	}
}

func TestComputeInvoiceTotalsScenario(t *testing.T) {
	// items = [{100 x2, 10% off}, {50 x1, no discount}], GST 18%
	items := []entity.LineItem{
		lineItem(100, 2, 10),
		lineItem(50, 1, 0),
	}

	totals := ComputeInvoiceTotals(items, enum.GSTRateEighteen)

	if got := totals.SubtotalBeforeDiscount.StringFixed(2); got != "250.00" {
		t.Errorf("SubtotalBeforeDiscount = %s, want 250.00", got)
	}
	if got := totals.TotalDiscount.StringFixed(2); got != "20.00" {
		t.Errorf("TotalDiscount = %s, want 20.00", got)
	}
	if got := totals.SubtotalAfterDiscount.StringFixed(2); got != "230.00" {
		t.Errorf("SubtotalAfterDiscount = %s, want 230.00", got)
	}
	if got := totals.GSTAmount.StringFixed(2); got != "41.40" {
		t.Errorf("GSTAmount = %s, want 41.40", got)
	}
	if got := totals.GrandTotal.StringFixed(2); got != "271.40" {
		t.Errorf("GrandTotal = %s, want 271.40", got)
	}
}

func TestComputeInvoiceTotalsProperties(t *testing.T) {
	items := []entity.LineItem{
		lineItem(12.75, 4, 0),
		lineItem(99.99, 1, 33.3),
		lineItem(5, 20, 100),
		lineItem(0, 5, 50),
	}

	totals := ComputeInvoiceTotals(items, enum.GSTRateNone)

	// Sum of parts equals the whole, exactly.
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(ComputeLine(item).FinalTotal)
	}
	if !totals.SubtotalAfterDiscount.Equal(sum) {
		t.Errorf("SubtotalAfterDiscount = %s, sum of line finals = %s", totals.SubtotalAfterDiscount, sum)
	}

	if !totals.GSTAmount.IsZero() {
		t.Errorf("GSTAmount = %s, want 0 when GST does not apply", totals.GSTAmount)
	}
	if !totals.GrandTotal.Equal(totals.SubtotalAfterDiscount.Add(totals.GSTAmount)) {
		t.Error("GrandTotal must equal SubtotalAfterDiscount + GSTAmount")
	}
	if !totals.SubtotalBeforeDiscount.Equal(totals.SubtotalAfterDiscount.Add(totals.TotalDiscount)) {
		t.Error("discount accounting must balance: before = after + discount")
	}
}

func TestComputeInvoiceTotalsEmpty(t *testing.T) {
	totals := ComputeInvoiceTotals(nil, enum.GSTRateEighteen)
	if !totals.GrandTotal.IsZero() {
		t.Errorf("GrandTotal = %s, want 0 for an empty item list", totals.GrandTotal)
	}
}
