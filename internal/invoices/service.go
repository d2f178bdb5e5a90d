package invoices

import (
	"context"
	"time"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/risk"
)

const doctype = "Sales Invoice"

const dateLayout = "2006-01-02"

// DefaultLimit is the page size applied when the caller does not set one.
const DefaultLimit = 50

// Service-level threshold defaults, applied when a filter value is unset.
// Entry points usually supply their own medium-max/high-min pair; the
// medium lower bound is never exposed as a request parameter.
const (
	defaultDaysMediumMin = 8
	defaultDaysMediumMax = 14
	defaultDaysHighMin   = 15
)

var listFields = []string{
	"name",
	"customer",
	"posting_date",
	"due_date",
	"status",
	"outstanding_amount",
	"grand_total",
	"currency",
}

// ERPClient is the subset of the ERPNext client used by the service.
type ERPClient interface {
	List(ctx context.Context, doctype string, q erpnext.Query, out any) error
}

// Service prepares invoice listings and overdue risk reports.
type Service struct {
	client ERPClient
	now    func() time.Time
}

// NewService constructs a Service instance.
func NewService(client ERPClient) *Service {
	return &Service{client: client, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// List fetches submitted invoices ordered by due date, oldest first.
func (s *Service) List(ctx context.Context, limit int) (ListResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var rows []Invoice
	q := erpnext.Query{
		Fields:  listFields,
		Filters: []erpnext.Filter{{Field: "docstatus", Op: "=", Value: 1}},
		OrderBy: "due_date asc",
		Limit:   limit,
	}
	if err := s.client.List(ctx, doctype, q, &rows); err != nil {
		return ListResult{}, err
	}
	if rows == nil {
		rows = []Invoice{}
	}
	return ListResult{Count: len(rows), Data: rows}, nil
}

// OverdueFilters selects and scores overdue invoices.
type OverdueFilters struct {
	Limit    int
	Customer string

	// Risk thresholds in whole days overdue. Zero values fall back to the
	// service defaults.
	DaysMediumMin int
	DaysMediumMax int
	DaysHighMin   int
}

// Overdue fetches overdue invoices (submitted, unpaid, past due, with a
// positive outstanding amount — the predicate runs inside the ERPNext query)
// and classifies each by days overdue. Invoices below the medium band are
// dropped from the report. The result keeps the ERP's due-date ordering.
func (s *Service) Overdue(ctx context.Context, f OverdueFilters) (OverdueReport, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.DaysMediumMin <= 0 {
		f.DaysMediumMin = defaultDaysMediumMin
	}
	if f.DaysMediumMax <= 0 {
		f.DaysMediumMax = defaultDaysMediumMax
	}
	if f.DaysHighMin <= 0 {
		f.DaysHighMin = defaultDaysHighMin
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	filters := []erpnext.Filter{
		{Field: "docstatus", Op: "=", Value: 1},
		{Field: "status", Op: "!=", Value: "Paid"},
		{Field: "due_date", Op: "<", Value: today.Format(dateLayout)},
		{Field: "outstanding_amount", Op: ">", Value: 0},
	}
	if f.Customer != "" {
		filters = append(filters, erpnext.Filter{Field: "customer", Op: "=", Value: f.Customer})
	}

	var rows []Invoice
	q := erpnext.Query{
		Fields:  listFields,
		Filters: filters,
		OrderBy: "due_date asc",
		Limit:   f.Limit,
	}
	if err := s.client.List(ctx, doctype, q, &rows); err != nil {
		return OverdueReport{}, err
	}

	report := OverdueReport{Data: []OverdueInvoice{}}
	for _, inv := range rows {
		if inv.DueDate == "" {
			continue
		}
		due, err := time.ParseInLocation(dateLayout, inv.DueDate, time.UTC)
		if err != nil {
			continue
		}
		daysOverdue := int(today.Sub(due).Hours() / 24)

		var level risk.Level
		switch {
		case daysOverdue >= f.DaysHighMin:
			level = risk.High
			report.HighCount++
		case daysOverdue >= f.DaysMediumMin && daysOverdue <= f.DaysMediumMax:
			level = risk.Medium
			report.MediumCount++
		default:
			continue
		}

		report.Data = append(report.Data, OverdueInvoice{
			InvoiceID:         inv.Name,
			Customer:          inv.Customer,
			PostingDate:       inv.PostingDate,
			DueDate:           inv.DueDate,
			DaysOverdue:       daysOverdue,
			Status:            inv.Status,
			OutstandingAmount: inv.OutstandingAmount,
			GrandTotal:        inv.GrandTotal,
			Currency:          inv.Currency,
			RiskLevel:         level,
		})
	}

	report.Count = len(report.Data)
	report.KPIs.OverdueInvoicesCount = report.Count

	var mostOverdue *OverdueInvoice
	for i := range report.Data {
		report.KPIs.TotalOutstandingOverdueAmount += report.Data[i].OutstandingAmount
		// First record wins a tie on days overdue.
		if mostOverdue == nil || report.Data[i].DaysOverdue > mostOverdue.DaysOverdue {
			mostOverdue = &report.Data[i]
		}
	}
	if mostOverdue != nil {
		report.KPIs.MostOverdueDays = mostOverdue.DaysOverdue
		report.KPIs.MostOverdueInvoiceID = &mostOverdue.InvoiceID
		report.KPIs.MostOverdueCustomer = &mostOverdue.Customer
	}
	return report, nil
}
