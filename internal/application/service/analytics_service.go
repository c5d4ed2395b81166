package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
)

const topItemLimit = 10

// DashboardService aggregates sales figures from the cached ledger snapshot.
type DashboardService struct {
	snapshots repository.SnapshotProvider
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(snapshots repository.SnapshotProvider) *DashboardService {
	return &DashboardService{snapshots: snapshots}
}

// NamedAmount is one bucket of a grouped monetary aggregate.
type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ItemQuantity is one bucket of a grouped quantity aggregate.
type ItemQuantity struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// StallDiscount pairs a stall with its average discount percentage and the
// discount amount it has granted.
type StallDiscount struct {
	StallNo            string          `json:"stall_no"`
	AvgDiscountPercent decimal.Decimal `json:"avg_discount_percent"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
}

// ItemShare pairs an item with its share of total revenue.
type ItemShare struct {
	Item         string          `json:"item"`
	Revenue      decimal.Decimal `json:"revenue"`
	SharePercent decimal.Decimal `json:"share_percent"`
}

// Dashboard is the full analytics payload. Cancelled invoices are excluded
// from every figure.
type Dashboard struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	ItemsSold        int             `json:"items_sold"`
	InvoiceCount     int             `json:"invoice_count"`
	RevenueByDate    []NamedAmount   `json:"revenue_by_date"`
	RevenueByStall   []NamedAmount   `json:"revenue_by_stall"`
	TopItems         []ItemQuantity  `json:"top_items"`
	DiscountByStall  []StallDiscount `json:"discount_by_stall"`
	RevenueShareItem []ItemShare     `json:"revenue_share_by_item"`
}

// Build computes the dashboard over records passing the filter. Revenue is
// the sum of Final Total (Item), so per-line discounts are already applied.
func (s *DashboardService) Build(ctx context.Context, filter *LedgerFilter) (*Dashboard, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, apperror.NewLedgerError(err)
	}

	records := make([]entity.InvoiceRecord, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		record := entity.RecordFromRow(row)
		if record.Status != enum.InvoiceStatusActive {
			continue
		}
		records = append(records, record)
	}
	records = filter.Apply(records)

	dash := &Dashboard{TotalRevenue: decimal.Zero}
	invoices := map[string]struct{}{}
	byDate := map[string]decimal.Decimal{}
	byStall := map[string]decimal.Decimal{}
	itemQty := map[string]int{}
	itemRevenue := map[string]decimal.Decimal{}
	stallDiscountSum := map[string]decimal.Decimal{}
	stallDiscountAmt := map[string]decimal.Decimal{}
	stallLines := map[string]int{}

	for _, record := range records {
		dash.TotalRevenue = dash.TotalRevenue.Add(record.FinalTotalItem)
		dash.ItemsSold += record.Qty
		invoices[record.InvoiceNo] = struct{}{}

		byDate[record.Date] = byDate[record.Date].Add(record.FinalTotalItem)
		byStall[record.StallNo] = byStall[record.StallNo].Add(record.FinalTotalItem)
		itemQty[record.Item] += record.Qty
		itemRevenue[record.Item] = itemRevenue[record.Item].Add(record.FinalTotalItem)

		stallDiscountSum[record.StallNo] = stallDiscountSum[record.StallNo].Add(record.DiscountPercent)
		stallDiscountAmt[record.StallNo] = stallDiscountAmt[record.StallNo].Add(record.TotalItem.Sub(record.FinalTotalItem))
		stallLines[record.StallNo]++
	}
	dash.InvoiceCount = len(invoices)

	dash.RevenueByDate = sortedAmounts(byDate)
	dash.RevenueByStall = sortedAmounts(byStall)

	for item, qty := range itemQty {
		dash.TopItems = append(dash.TopItems, ItemQuantity{Item: item, Quantity: qty})
	}
	sort.Slice(dash.TopItems, func(i, j int) bool {
		if dash.TopItems[i].Quantity != dash.TopItems[j].Quantity {
			return dash.TopItems[i].Quantity > dash.TopItems[j].Quantity
		}
		return dash.TopItems[i].Item < dash.TopItems[j].Item
	})
	if len(dash.TopItems) > topItemLimit {
		dash.TopItems = dash.TopItems[:topItemLimit]
	}

	for stall, lines := range stallLines {
		dash.DiscountByStall = append(dash.DiscountByStall, StallDiscount{
			StallNo:            stall,
			AvgDiscountPercent: stallDiscountSum[stall].Div(decimal.NewFromInt(int64(lines))),
			DiscountAmount:     stallDiscountAmt[stall],
		})
	}
	sort.Slice(dash.DiscountByStall, func(i, j int) bool {
		return dash.DiscountByStall[i].StallNo < dash.DiscountByStall[j].StallNo
	})

	for item, revenue := range itemRevenue {
		share := decimal.Zero
		if dash.TotalRevenue.IsPositive() {
			share = revenue.Mul(hundred).Div(dash.TotalRevenue)
		}
		dash.RevenueShareItem = append(dash.RevenueShareItem, ItemShare{
			Item:         item,
			Revenue:      revenue,
			SharePercent: share.Round(2),
		})
	}
	sort.Slice(dash.RevenueShareItem, func(i, j int) bool {
		return dash.RevenueShareItem[i].Revenue.GreaterThan(dash.RevenueShareItem[j].Revenue)
	})
	if len(dash.RevenueShareItem) > topItemLimit {
		dash.RevenueShareItem = dash.RevenueShareItem[:topItemLimit]
	}

	return dash, nil
}

func sortedAmounts(buckets map[string]decimal.Decimal) []NamedAmount {
	out := make([]NamedAmount, 0, len(buckets))
	for name, amount := range buckets {
		out = append(out, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
