package procurement

import (
	"context"
	"sort"
	"time"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/risk"
)

const doctype = "Purchase Order"

const dateLayout = "2006-01-02"

// DefaultLimit is the upstream fetch size when the caller does not set one.
const DefaultLimit = 100

// Delay thresholds in whole days since the order's transaction date.
const (
	delayMediumMin = 7
	delayHighMin   = 15
)

var listFields = []string{
	"name",
	"supplier",
	"transaction_date",
	"status",
	"grand_total",
	"currency",
	"per_received",
}

// ERPClient is the subset of the ERPNext client used by the service.
type ERPClient interface {
	List(ctx context.Context, doctype string, q erpnext.Query, out any) error
}

// Service prepares the delayed purchase order report.
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

// Delayed fetches submitted purchase orders still waiting on goods and flags
// those stuck for a week or more: 7-14 days is Medium, above 14 High. Fully
// received orders are skipped even when their status lags behind. The result
// is sorted most-delayed first.
func (s *Service) Delayed(ctx context.Context, limit int) (DelayedResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var rows []PurchaseOrder
	q := erpnext.Query{
		Fields: listFields,
		Filters: []erpnext.Filter{
			{Field: "docstatus", Op: "=", Value: 1},
			{Field: "status", Op: "in", Value: []string{StatusToReceive, StatusToReceiveAndBill}},
		},
		OrderBy: "transaction_date asc",
		Limit:   limit,
	}
	if err := s.client.List(ctx, doctype, q, &rows); err != nil {
		return DelayedResult{}, err
	}

	result := DelayedResult{Data: []DelayedPurchaseOrder{}}
	for _, po := range rows {
		if po.PerReceived >= 100 {
			continue
		}
		if po.TransactionDate == "" {
			continue
		}
		placed, err := time.ParseInLocation(dateLayout, po.TransactionDate, time.UTC)
		if err != nil {
			continue
		}
		stuckDays := int(today.Sub(placed).Hours() / 24)
		if stuckDays < delayMediumMin {
			continue
		}

		var level risk.Level
		if stuckDays >= delayHighMin {
			level = risk.High
			result.HighCount++
		} else {
			level = risk.Medium
			result.MediumCount++
		}

		result.Data = append(result.Data, DelayedPurchaseOrder{
			PO:              po.Name,
			Supplier:        po.Supplier,
			TransactionDate: po.TransactionDate,
			StuckDays:       stuckDays,
			Status:          po.Status,
			GrandTotal:      po.GrandTotal,
			Currency:        po.Currency,
			RiskLevel:       level,
		})
	}

	sort.SliceStable(result.Data, func(i, j int) bool {
		return result.Data[i].StuckDays > result.Data[j].StuckDays
	})
	result.Count = len(result.Data)
	return result, nil
}
