package entity

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

func TestRecordFromRowLegacyShapes(t *testing.T) {
	// Rows written before the GST, Corporation and Location columns existed
	// stop after Final Total (Invoice).
	preGSTRow := []string{
		"S-1", "MAIN_INV07", "12-03-2024", "9876543210", "Cash",
		"AR-2", "Brass Lamp", "2", "100.00", "200.00",
		"10", "180.00", "180.00",
	}

	tests := []struct {
		name string
		row  []string
		want InvoiceRecord
	}{
		{
			name: "pre-gst row pads trailing columns",
			row:  preGSTRow,
			want: InvoiceRecord{
				StallNo:           "S-1",
				InvoiceNo:         "MAIN_INV07",
				Date:              "12-03-2024",
				PhoneNo:           "9876543210",
				PaymentMethod:     enum.PaymentMethodCash,
				ArtisanCode:       "AR-2",
				Item:              "Brass Lamp",
				Qty:               2,
				Price:             decimal.RequireFromString("100.00"),
				TotalItem:         decimal.RequireFromString("200.00"),
				DiscountPercent:   decimal.NewFromInt(10),
				FinalTotalItem:    decimal.RequireFromString("180.00"),
				FinalTotalInvoice: decimal.RequireFromString("180.00"),
				GSTPercent:        decimal.Zero,
				GSTAmount:         decimal.Zero,
				Status:            enum.InvoiceStatusActive,
				Corporation:       "",
				Location:          "",
			},
		},
		{
			name: "row from before the status column defaults to active",
			row: append(append([]string(nil), preGSTRow...),
				"18", "32.40"),
			want: InvoiceRecord{
				StallNo:           "S-1",
				InvoiceNo:         "MAIN_INV07",
				Date:              "12-03-2024",
				PhoneNo:           "9876543210",
				PaymentMethod:     enum.PaymentMethodCash,
				ArtisanCode:       "AR-2",
				Item:              "Brass Lamp",
				Qty:               2,
				Price:             decimal.RequireFromString("100.00"),
				TotalItem:         decimal.RequireFromString("200.00"),
				DiscountPercent:   decimal.NewFromInt(10),
				FinalTotalItem:    decimal.RequireFromString("180.00"),
				FinalTotalInvoice: decimal.RequireFromString("180.00"),
				GSTPercent:        decimal.NewFromInt(18),
				GSTAmount:         decimal.RequireFromString("32.40"),
				Status:            enum.InvoiceStatusActive,
				Corporation:       "",
				Location:          "",
			},
		},
		{
			name: "unparseable numeric cells read as zero",
			row: []string{
				"S-1", "MAIN_INV08", "12-03-2024", "", "UPI",
				"", "Clay Pot", "not-a-qty", "abc", "--",
				"", "50.00", "50.00",
			},
			want: InvoiceRecord{
				StallNo:           "S-1",
				InvoiceNo:         "MAIN_INV08",
				Date:              "12-03-2024",
				PaymentMethod:     enum.PaymentMethodUPI,
				Item:              "Clay Pot",
				Qty:               0,
				Price:             decimal.Zero,
				TotalItem:         decimal.Zero,
				DiscountPercent:   decimal.Zero,
				FinalTotalItem:    decimal.RequireFromString("50.00"),
				FinalTotalInvoice: decimal.RequireFromString("50.00"),
				GSTPercent:        decimal.Zero,
				GSTAmount:         decimal.Zero,
				Status:            enum.InvoiceStatusActive,
			},
		},
		{
			name: "unknown status cell defaults to active",
			row: append(append([]string(nil), preGSTRow...),
				"18", "32.40", "Pending", "Corp", "Jaipur"),
			want: InvoiceRecord{
				StallNo:           "S-1",
				InvoiceNo:         "MAIN_INV07",
				Date:              "12-03-2024",
				PhoneNo:           "9876543210",
				PaymentMethod:     enum.PaymentMethodCash,
				ArtisanCode:       "AR-2",
				Item:              "Brass Lamp",
				Qty:               2,
				Price:             decimal.RequireFromString("100.00"),
				TotalItem:         decimal.RequireFromString("200.00"),
				DiscountPercent:   decimal.NewFromInt(10),
				FinalTotalItem:    decimal.RequireFromString("180.00"),
				FinalTotalInvoice: decimal.RequireFromString("180.00"),
				GSTPercent:        decimal.NewFromInt(18),
				GSTAmount:         decimal.RequireFromString("32.40"),
				Status:            enum.InvoiceStatusActive,
				Corporation:       "Corp",
				Location:          "Jaipur",
			},
		},
		{
			name: "empty row reads as zero record",
			row:  []string{},
			want: InvoiceRecord{
				Price:             decimal.Zero,
				TotalItem:         decimal.Zero,
				DiscountPercent:   decimal.Zero,
				FinalTotalItem:    decimal.Zero,
				FinalTotalInvoice: decimal.Zero,
				GSTPercent:        decimal.Zero,
				GSTAmount:         decimal.Zero,
				Status:            enum.InvoiceStatusActive,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecordFromRow(tt.row)
			assertRecordEqual(t, got, tt.want)
		})
	}
}

func TestToRowRoundTrip(t *testing.T) {
	record := InvoiceRecord{
		StallNo:           "S-9",
		InvoiceNo:         "MAIN_INV12",
		Date:              "15-08-2026",
		PhoneNo:           "9876543210",
		PaymentMethod:     enum.PaymentMethodCard,
		ArtisanCode:       "AR-4",
		Item:              "Silk Scarf",
		Qty:               3,
		Price:             decimal.RequireFromString("49.50"),
		TotalItem:         decimal.RequireFromString("148.50"),
		DiscountPercent:   decimal.RequireFromString("12.5"),
		FinalTotalItem:    decimal.RequireFromString("129.94"),
		FinalTotalInvoice: decimal.RequireFromString("129.94"),
		GSTPercent:        decimal.NewFromInt(5),
		GSTAmount:         decimal.RequireFromString("6.50"),
		Status:            enum.InvoiceStatusCancelled,
		Corporation:       "Corp",
		Location:          "Udaipur",
	}

	row := record.ToRow()
	if len(row) != len(LedgerHeader) {
		t.Fatalf("row has %d cells, want %d", len(row), len(LedgerHeader))
	}

	assertRecordEqual(t, RecordFromRow(row), record)
}

func assertRecordEqual(t *testing.T, got, want InvoiceRecord) {
	t.Helper()

	if got.StallNo != want.StallNo || got.InvoiceNo != want.InvoiceNo ||
		got.Date != want.Date || got.PhoneNo != want.PhoneNo ||
		got.PaymentMethod != want.PaymentMethod || got.ArtisanCode != want.ArtisanCode ||
		got.Item != want.Item || got.Qty != want.Qty ||
		got.Status != want.Status || got.Corporation != want.Corporation ||
		got.Location != want.Location {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", got, want)
	}

	decimals := []struct {
		name      string
		got, want decimal.Decimal
	}{
		{"Price", got.Price, want.Price},
		{"TotalItem", got.TotalItem, want.TotalItem},
		{"DiscountPercent", got.DiscountPercent, want.DiscountPercent},
		{"FinalTotalItem", got.FinalTotalItem, want.FinalTotalItem},
		{"FinalTotalInvoice", got.FinalTotalInvoice, want.FinalTotalInvoice},
		{"GSTPercent", got.GSTPercent, want.GSTPercent},
		{"GSTAmount", got.GSTAmount, want.GSTAmount},
	}
	for _, d := range decimals {
		if !d.got.Equal(d.want) {
			t.Errorf("%s = %s, want %s", d.name, d.got, d.want)
		}
	}
}
