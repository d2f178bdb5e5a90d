package invoices

import "github.com/risk-radar/risk-radar/internal/risk"

// Invoice is a submitted Sales Invoice as returned by ERPNext. Dates stay in
// their wire form (YYYY-MM-DD); the service parses them only when it needs
// day arithmetic.
type Invoice struct {
	Name              string  `json:"name"`
	Customer          string  `json:"customer"`
	PostingDate       string  `json:"posting_date"`
	DueDate           string  `json:"due_date"`
	Status            string  `json:"status"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	GrandTotal        float64 `json:"grand_total"`
	Currency          string  `json:"currency"`
}

// OverdueInvoice is an overdue invoice annotated with risk scoring.
type OverdueInvoice struct {
	InvoiceID         string     `json:"invoice_id"`
	Customer          string     `json:"customer"`
	PostingDate       string     `json:"posting_date"`
	DueDate           string     `json:"due_date"`
	DaysOverdue       int        `json:"days_overdue"`
	Status            string     `json:"status"`
	OutstandingAmount float64    `json:"outstanding_amount"`
	GrandTotal        float64    `json:"grand_total"`
	Currency          string     `json:"currency"`
	RiskLevel         risk.Level `json:"risk_level"`
}

// OverdueKPIs summarizes the returned overdue set. The most-overdue fields
// are null when the report is empty.
type OverdueKPIs struct {
	OverdueInvoicesCount          int     `json:"overdue_invoices_count"`
	TotalOutstandingOverdueAmount float64 `json:"total_outstanding_overdue_amount"`
	MostOverdueDays               int     `json:"most_overdue_days"`
	MostOverdueInvoiceID          *string `json:"most_overdue_invoice_id"`
	MostOverdueCustomer           *string `json:"most_overdue_customer"`
}

// OverdueReport is the payload of the overdue invoice endpoint.
type OverdueReport struct {
	KPIs        OverdueKPIs      `json:"kpis"`
	Count       int              `json:"count"`
	MediumCount int              `json:"medium_count"`
	HighCount   int              `json:"high_count"`
	Data        []OverdueInvoice `json:"data"`
}

// ListResult wraps the passthrough invoice listing.
type ListResult struct {
	Count int       `json:"count"`
	Data  []Invoice `json:"data"`
}
