package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

func ledgerRow(invoiceNo, stall, date, item string, qty int, price, discountPct float64, status enum.InvoiceStatus) []string {
	record := entity.InvoiceRecord{
		StallNo:         stall,
		InvoiceNo:       invoiceNo,
		Date:            date,
		PaymentMethod:   enum.PaymentMethodCash,
		Item:            item,
		Qty:             qty,
		Price:           decimal.NewFromFloat(price),
		DiscountPercent: decimal.NewFromFloat(discountPct),
		Status:          status,
		Location:        "Jaipur",
	}
	record.TotalItem = record.Price.Mul(decimal.NewFromInt(int64(qty)))
	record.FinalTotalItem = record.TotalItem.Mul(decimal.NewFromFloat(1 - discountPct/100))
	record.FinalTotalInvoice = record.FinalTotalItem
	return record.ToRow()
}

func TestDashboardAggregates(t *testing.T) {
	ledger := &memoryLedger{
		header: entity.LedgerHeader,
		rows: [][]string{
			ledgerRow("MAIN_INV01", "S-1", "10-08-2026", "Brass Lamp", 2, 100, 0, enum.InvoiceStatusActive),
			ledgerRow("MAIN_INV01", "S-1", "10-08-2026", "Clay Pot", 1, 50, 0, enum.InvoiceStatusActive),
			ledgerRow("MAIN_INV02", "S-2", "11-08-2026", "Brass Lamp", 4, 100, 50, enum.InvoiceStatusActive),
			ledgerRow("MAIN_INV03", "S-1", "11-08-2026", "Silk Scarf", 9, 10, 0, enum.InvoiceStatusCancelled),
		},
	}
	svc := NewDashboardService(ledger)

	dash, err := svc.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 200 + 50 + 200; the cancelled invoice contributes nothing.
	if got := dash.TotalRevenue.StringFixed(2); got != "450.00" {
		t.Errorf("total revenue = %s, want 450.00", got)
	}
	if dash.ItemsSold != 7 {
		t.Errorf("items sold = %d, want 7", dash.ItemsSold)
	}
	if dash.InvoiceCount != 2 {
		t.Errorf("invoice count = %d, want 2", dash.InvoiceCount)
	}

	if len(dash.RevenueByDate) != 2 {
		t.Fatalf("revenue by date buckets = %d, want 2", len(dash.RevenueByDate))
	}
	if dash.RevenueByDate[0].Name != "10-08-2026" || dash.RevenueByDate[0].Amount.StringFixed(2) != "250.00" {
		t.Errorf("first date bucket = %+v, want 10-08-2026 / 250.00", dash.RevenueByDate[0])
	}

	if len(dash.TopItems) == 0 || dash.TopItems[0].Item != "Brass Lamp" || dash.TopItems[0].Quantity != 6 {
		t.Errorf("top item = %+v, want Brass Lamp x6", dash.TopItems)
	}

	var s2 *StallDiscount
	for i := range dash.DiscountByStall {
		if dash.DiscountByStall[i].StallNo == "S-2" {
			s2 = &dash.DiscountByStall[i]
		}
	}
	if s2 == nil {
		t.Fatal("missing discount bucket for S-2")
	}
	if s2.AvgDiscountPercent.StringFixed(2) != "50.00" {
		t.Errorf("S-2 avg discount = %s, want 50.00", s2.AvgDiscountPercent.StringFixed(2))
	}
	if s2.DiscountAmount.StringFixed(2) != "200.00" {
		t.Errorf("S-2 discount amount = %s, want 200.00", s2.DiscountAmount.StringFixed(2))
	}

	if len(dash.RevenueShareItem) != 2 {
		t.Fatalf("revenue share buckets = %d, want 2", len(dash.RevenueShareItem))
	}
	var total decimal.Decimal
	for _, share := range dash.RevenueShareItem {
		total = total.Add(share.SharePercent)
	}
	if total.StringFixed(0) != "100" {
		t.Errorf("revenue shares sum to %s, want 100", total.StringFixed(0))
	}
}

func TestDashboardWithFilter(t *testing.T) {
	ledger := &memoryLedger{
		header: entity.LedgerHeader,
		rows: [][]string{
			ledgerRow("MAIN_INV01", "S-1", "10-08-2026", "Brass Lamp", 1, 100, 0, enum.InvoiceStatusActive),
			ledgerRow("MAIN_INV02", "S-2", "10-08-2026", "Clay Pot", 1, 80, 0, enum.InvoiceStatusActive),
		},
	}
	svc := NewDashboardService(ledger)

	dash, err := svc.Build(context.Background(), &LedgerFilter{Stalls: []string{"S-2"}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := dash.TotalRevenue.StringFixed(2); got != "80.00" {
		t.Errorf("filtered revenue = %s, want 80.00", got)
	}
	if dash.InvoiceCount != 1 {
		t.Errorf("filtered invoice count = %d, want 1", dash.InvoiceCount)
	}
}

func TestDashboardEmptyLedger(t *testing.T) {
	ledger := &memoryLedger{header: entity.LedgerHeader}
	svc := NewDashboardService(ledger)

	dash, err := svc.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !dash.TotalRevenue.IsZero() || dash.ItemsSold != 0 || dash.InvoiceCount != 0 {
		t.Errorf("empty ledger produced non-zero dashboard: %+v", dash)
	}
}
