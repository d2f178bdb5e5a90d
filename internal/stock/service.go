package stock

import (
	"context"
	"slices"
	"sort"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/risk"
)

const doctype = "Bin"

// DefaultLedgerLimit is the ledger page size when the caller does not set one.
const DefaultLedgerLimit = 100

// DefaultLowStockLimit is the upstream fetch size for the low-stock scan.
const DefaultLowStockLimit = 500

// Low-stock classification bounds on the raw per-warehouse quantity.
const (
	lowStockMediumMin = 30
	lowStockMediumMax = 60
	lowStockResultCap = 50
)

// lowStockWarehouses is the fixed allow-list for the low-stock report. Any
// other warehouse filter short-circuits to an empty result.
var lowStockWarehouses = []string{"Finished Goods - SD", "Stores - SD"}

var listFields = []string{"name", "item_code", "warehouse", "actual_qty"}

// ERPClient is the subset of the ERPNext client used by the service.
type ERPClient interface {
	List(ctx context.Context, doctype string, q erpnext.Query, out any) error
}

// Service prepares stock ledger listings and the low-stock risk report.
type Service struct {
	client ERPClient
}

// NewService constructs a Service instance.
func NewService(client ERPClient) *Service {
	return &Service{client: client}
}

// LedgerFilters selects bin entries for the ledger listing.
type LedgerFilters struct {
	Limit     int
	ItemCode  string
	Warehouse string
	Aggregate bool
}

// Ledger fetches bin entries ordered by quantity ascending. With Aggregate
// set and no single-item filter the rows are grouped per item code, summing
// quantities across warehouses; otherwise raw rows pass through unmodified.
func (s *Service) Ledger(ctx context.Context, f LedgerFilters) (LedgerResult, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLedgerLimit
	}
	var filters []erpnext.Filter
	if f.ItemCode != "" {
		filters = append(filters, erpnext.Filter{Field: "item_code", Op: "=", Value: f.ItemCode})
	}
	if f.Warehouse != "" {
		filters = append(filters, erpnext.Filter{Field: "warehouse", Op: "=", Value: f.Warehouse})
	}

	var rows []BinEntry
	q := erpnext.Query{
		Fields:  listFields,
		Filters: filters,
		OrderBy: "actual_qty asc",
		Limit:   f.Limit,
	}
	if err := s.client.List(ctx, doctype, q, &rows); err != nil {
		return LedgerResult{}, err
	}

	if !f.Aggregate || f.ItemCode != "" {
		if rows == nil {
			rows = []BinEntry{}
		}
		return LedgerResult{Count: len(rows), Data: rows}, nil
	}

	index := make(map[string]int)
	items := []ItemStock{}
	for _, entry := range rows {
		if i, ok := index[entry.ItemCode]; ok {
			items[i].TotalQty += entry.ActualQty
			items[i].Warehouses = append(items[i].Warehouses, WarehouseQty{
				Warehouse: entry.Warehouse,
				ActualQty: entry.ActualQty,
			})
			continue
		}
		index[entry.ItemCode] = len(items)
		items = append(items, ItemStock{
			ItemCode: entry.ItemCode,
			TotalQty: entry.ActualQty,
			Warehouses: []WarehouseQty{{
				Warehouse: entry.Warehouse,
				ActualQty: entry.ActualQty,
			}},
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].TotalQty < items[j].TotalQty })
	return LedgerResult{Count: len(items), Data: items}, nil
}

// LowStockFilters selects bin entries for the low-stock report.
type LowStockFilters struct {
	Limit     int
	Warehouse string
	ItemCode  string
}

// LowStock flags bin entries from the allow-listed warehouses by raw
// per-warehouse quantity: negative stock is High, 30-60 is Medium, anything
// else is dropped. The result is sorted ascending by quantity and capped at
// the top 50 rows; counts cover the capped set.
func (s *Service) LowStock(ctx context.Context, f LowStockFilters) (LowStockResult, error) {
	result := LowStockResult{Data: []LowStockItem{}}
	if f.Limit <= 0 {
		f.Limit = DefaultLowStockLimit
	}

	var filters []erpnext.Filter
	if f.Warehouse != "" {
		if !slices.Contains(lowStockWarehouses, f.Warehouse) {
			return result, nil
		}
		filters = append(filters, erpnext.Filter{Field: "warehouse", Op: "=", Value: f.Warehouse})
	} else {
		filters = append(filters, erpnext.Filter{Field: "warehouse", Op: "in", Value: lowStockWarehouses})
	}
	if f.ItemCode != "" {
		filters = append(filters, erpnext.Filter{Field: "item_code", Op: "=", Value: f.ItemCode})
	}

	var rows []BinEntry
	q := erpnext.Query{
		Fields:  listFields,
		Filters: filters,
		OrderBy: "actual_qty asc",
		Limit:   f.Limit,
	}
	if err := s.client.List(ctx, doctype, q, &rows); err != nil {
		return LowStockResult{}, err
	}

	items := []LowStockItem{}
	for _, entry := range rows {
		var level risk.Level
		switch {
		case entry.ActualQty < 0:
			// TODO: confirm whether 0-29 should also be High. The dashboard
			// copy promises "High below 30" but only negative stock has ever
			// been flagged; 0-29 falls through and is dropped.
			level = risk.High
		case entry.ActualQty >= lowStockMediumMin && entry.ActualQty <= lowStockMediumMax:
			level = risk.Medium
		default:
			continue
		}
		items = append(items, LowStockItem{
			ItemCode:  entry.ItemCode,
			Warehouse: entry.Warehouse,
			ActualQty: entry.ActualQty,
			RiskLevel: level,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].ActualQty < items[j].ActualQty })
	if len(items) > lowStockResultCap {
		items = items[:lowStockResultCap]
	}
	for _, item := range items {
		switch item.RiskLevel {
		case risk.High:
			result.HighCount++
		case risk.Medium:
			result.MediumCount++
		}
	}
	result.Count = len(items)
	result.Data = items
	return result, nil
}
