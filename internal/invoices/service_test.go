package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/risk"
)

type fakeClient struct {
	lastDoctype string
	lastQuery   erpnext.Query
	rows        []Invoice
	err         error
}

func (f *fakeClient) List(_ context.Context, doctype string, q erpnext.Query, out any) error {
	f.lastDoctype = doctype
	f.lastQuery = q
	if f.err != nil {
		return f.err
	}
	*(out.(*[]Invoice)) = f.rows
	return nil
}

func frozen(t *testing.T, svc *Service) time.Time {
	t.Helper()
	today := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return today })
	return today
}

func dueDaysAgo(today time.Time, days int) string {
	return today.AddDate(0, 0, -days).Format(dateLayout)
}

func TestListQueriesSubmittedInvoices(t *testing.T) {
	client := &fakeClient{rows: []Invoice{
		{Name: "SINV-0001", Customer: "Acme", DueDate: "2026-01-15"},
		{Name: "SINV-0002", Customer: "Globex", DueDate: "2026-02-01"},
	}}
	svc := NewService(client)

	result, err := svc.List(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Sales Invoice", client.lastDoctype)
	assert.Equal(t, DefaultLimit, client.lastQuery.Limit)
	assert.Equal(t, "due_date asc", client.lastQuery.OrderBy)
	require.Len(t, client.lastQuery.Filters, 1)
	assert.Equal(t, erpnext.Filter{Field: "docstatus", Op: "=", Value: 1}, client.lastQuery.Filters[0])

	assert.Equal(t, 2, result.Count)
	assert.Len(t, result.Data, 2)
}

func TestListEmptyResultIsNotNil(t *testing.T) {
	svc := NewService(&fakeClient{})
	result, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Data)
}

func TestOverduePushesPredicateToERP(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)
	frozen(t, svc)

	_, err := svc.Overdue(context.Background(), OverdueFilters{Customer: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, []erpnext.Filter{
		{Field: "docstatus", Op: "=", Value: 1},
		{Field: "status", Op: "!=", Value: "Paid"},
		{Field: "due_date", Op: "<", Value: "2026-03-10"},
		{Field: "outstanding_amount", Op: ">", Value: 0},
		{Field: "customer", Op: "=", Value: "Acme"},
	}, client.lastQuery.Filters)
}

func TestOverdueClassification(t *testing.T) {
	cases := []struct {
		name      string
		days      int
		wantLevel risk.Level
		wantKept  bool
	}{
		{name: "below medium band dropped", days: 7, wantKept: false},
		{name: "medium lower bound", days: 8, wantLevel: risk.Medium, wantKept: true},
		{name: "medium upper bound", days: 14, wantLevel: risk.Medium, wantKept: true},
		{name: "high lower bound", days: 15, wantLevel: risk.High, wantKept: true},
		{name: "deep overdue", days: 90, wantLevel: risk.High, wantKept: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{}
			svc := NewService(client)
			today := frozen(t, svc)
			client.rows = []Invoice{{
				Name:              "SINV-0001",
				Customer:          "Acme",
				DueDate:           dueDaysAgo(today, tc.days),
				OutstandingAmount: 100,
			}}

			report, err := svc.Overdue(context.Background(), OverdueFilters{})
			require.NoError(t, err)

			if !tc.wantKept {
				assert.Empty(t, report.Data)
				assert.Equal(t, 0, report.Count)
				return
			}
			require.Len(t, report.Data, 1)
			assert.Equal(t, tc.days, report.Data[0].DaysOverdue)
			assert.Equal(t, tc.wantLevel, report.Data[0].RiskLevel)
		})
	}
}

func TestOverdueCustomThresholds(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)
	today := frozen(t, svc)
	client.rows = []Invoice{
		{Name: "SINV-0001", DueDate: dueDaysAgo(today, 8), OutstandingAmount: 10},
		{Name: "SINV-0002", DueDate: dueDaysAgo(today, 30), OutstandingAmount: 20},
	}

	// With the 7/8 deployment pair the medium band (8..7) is empty: everything
	// at eight days or more is High.
	report, err := svc.Overdue(context.Background(), OverdueFilters{DaysMediumMax: 7, DaysHighMin: 8})
	require.NoError(t, err)

	require.Len(t, report.Data, 2)
	assert.Equal(t, risk.High, report.Data[0].RiskLevel)
	assert.Equal(t, risk.High, report.Data[1].RiskLevel)
	assert.Equal(t, 2, report.HighCount)
	assert.Equal(t, 0, report.MediumCount)
}

func TestOverdueSkipsUnparseableDueDates(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)
	today := frozen(t, svc)
	client.rows = []Invoice{
		{Name: "SINV-0001", DueDate: "", OutstandingAmount: 10},
		{Name: "SINV-0002", DueDate: "not-a-date", OutstandingAmount: 20},
		{Name: "SINV-0003", DueDate: dueDaysAgo(today, 20), OutstandingAmount: 30},
	}

	report, err := svc.Overdue(context.Background(), OverdueFilters{})
	require.NoError(t, err)
	require.Len(t, report.Data, 1)
	assert.Equal(t, "SINV-0003", report.Data[0].InvoiceID)
}

func TestOverdueKPIs(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client)
	today := frozen(t, svc)
	client.rows = []Invoice{
		{Name: "SINV-0001", Customer: "Acme", DueDate: dueDaysAgo(today, 10), OutstandingAmount: 100},
		{Name: "SINV-0002", Customer: "Globex", DueDate: dueDaysAgo(today, 42), OutstandingAmount: 250.5},
		{Name: "SINV-0003", Customer: "Initech", DueDate: dueDaysAgo(today, 42), OutstandingAmount: 75},
	}

	report, err := svc.Overdue(context.Background(), OverdueFilters{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.KPIs.OverdueInvoicesCount)
	assert.Equal(t, 425.5, report.KPIs.TotalOutstandingOverdueAmount)
	assert.Equal(t, 42, report.KPIs.MostOverdueDays)
	// Ties keep the first record in due-date order.
	require.NotNil(t, report.KPIs.MostOverdueInvoiceID)
	assert.Equal(t, "SINV-0002", *report.KPIs.MostOverdueInvoiceID)
	require.NotNil(t, report.KPIs.MostOverdueCustomer)
	assert.Equal(t, "Globex", *report.KPIs.MostOverdueCustomer)
}

func TestOverdueEmptyReportKPIs(t *testing.T) {
	svc := NewService(&fakeClient{})
	frozen(t, svc)

	report, err := svc.Overdue(context.Background(), OverdueFilters{})
	require.NoError(t, err)

	assert.Equal(t, 0, report.KPIs.OverdueInvoicesCount)
	assert.Equal(t, 0.0, report.KPIs.TotalOutstandingOverdueAmount)
	assert.Equal(t, 0, report.KPIs.MostOverdueDays)
	assert.Nil(t, report.KPIs.MostOverdueInvoiceID)
	assert.Nil(t, report.KPIs.MostOverdueCustomer)
	assert.NotNil(t, report.Data)
}

func TestOverduePropagatesClientError(t *testing.T) {
	svc := NewService(&fakeClient{err: erpnext.ErrUnreachable})
	frozen(t, svc)

	_, err := svc.Overdue(context.Background(), OverdueFilters{})
	require.ErrorIs(t, err, erpnext.ErrUnreachable)
}
