package procurement

import "github.com/risk-radar/risk-radar/internal/risk"

// Purchase order statuses that indicate goods are still outstanding.
const (
	StatusToReceive        = "To Receive"
	StatusToReceiveAndBill = "To Receive and Bill"
)

// PurchaseOrder is a submitted Purchase Order as returned by ERPNext.
// PerReceived is the percentage of ordered goods already receipted.
type PurchaseOrder struct {
	Name            string  `json:"name"`
	Supplier        string  `json:"supplier"`
	TransactionDate string  `json:"transaction_date"`
	Status          string  `json:"status"`
	GrandTotal      float64 `json:"grand_total"`
	Currency        string  `json:"currency"`
	PerReceived     float64 `json:"per_received"`
}

// DelayedPurchaseOrder is a purchase order stuck past the delay threshold.
type DelayedPurchaseOrder struct {
	PO              string     `json:"po"`
	Supplier        string     `json:"supplier"`
	TransactionDate string     `json:"transaction_date"`
	StuckDays       int        `json:"stuck_days"`
	Status          string     `json:"status"`
	GrandTotal      float64    `json:"grand_total"`
	Currency        string     `json:"currency"`
	RiskLevel       risk.Level `json:"risk_level"`
}

// DelayedResult is the payload of the delayed purchase order endpoint.
type DelayedResult struct {
	Count       int                    `json:"count"`
	HighCount   int                    `json:"high_count"`
	MediumCount int                    `json:"medium_count"`
	Data        []DelayedPurchaseOrder `json:"data"`
}
