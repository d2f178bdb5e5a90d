package stock

import "github.com/risk-radar/risk-radar/internal/risk"

// BinEntry is one item/warehouse stock record from the ERPNext Bin DocType.
// Negative quantities are valid and represent over-allocated stock.
type BinEntry struct {
	Name      string  `json:"name"`
	ItemCode  string  `json:"item_code"`
	Warehouse string  `json:"warehouse"`
	ActualQty float64 `json:"actual_qty"`
}

// WarehouseQty is one warehouse's share of an item's stock.
type WarehouseQty struct {
	Warehouse string  `json:"warehouse"`
	ActualQty float64 `json:"actual_qty"`
}

// ItemStock is the aggregated ledger row for one item across warehouses.
// Warehouses keeps the order in which the entries were encountered.
type ItemStock struct {
	ItemCode   string         `json:"item_code"`
	TotalQty   float64        `json:"total_qty"`
	Warehouses []WarehouseQty `json:"warehouses"`
}

// LedgerResult wraps the stock ledger rows. Data holds either raw BinEntry
// rows or aggregated ItemStock rows depending on the request.
type LedgerResult struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}

// LowStockItem is a bin entry flagged by the low-stock rules.
type LowStockItem struct {
	ItemCode  string     `json:"item_code"`
	Warehouse string     `json:"warehouse"`
	ActualQty float64    `json:"actual_qty"`
	RiskLevel risk.Level `json:"risk_level"`
}

// LowStockResult is the payload of the low-stock endpoint. Counts cover the
// truncated result set, not everything the query matched.
type LowStockResult struct {
	Count       int            `json:"count"`
	HighCount   int            `json:"high_count"`
	MediumCount int            `json:"medium_count"`
	Data        []LowStockItem `json:"data"`
}
