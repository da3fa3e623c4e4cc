package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type stubSource struct {
	st  *rental.State
	err error
}

func (s stubSource) Snapshot(context.Context) (*rental.State, error) {
	return s.st, s.err
}

func id(v int64) *int64 { return &v }

func date(y int, m time.Month, d int) *rental.Date {
	v := rental.NewDate(y, m, d)
	return &v
}

func fixtureState() *rental.State {
	st := rental.NewState()

	st.Users = []rental.User{
		{ID: 1, Email: "admin@example.com", Role: rental.RoleAdmin},
		{ID: 2, Email: "owner@example.com", Role: rental.RoleOwner},
		{ID: 3, Email: "tina@example.com", Role: rental.RoleTenant},
		{ID: 4, Email: "vic@example.com", Role: rental.RoleVendor},
	}

	st.Data.Properties = []rental.Property{
		{ID: 1, Name: "Maple Court", Address: "1 Maple", OwnerID: id(2)},
		{ID: 2, Name: "Oak House", Address: "2 Oak"},
	}
	st.Data.Units = []rental.Unit{
		{ID: 1, PropertyID: 1, Number: "1A", Occupied: true, TenantID: id(3)},
		{ID: 2, PropertyID: 1, Number: "1B"},
		{ID: 3, PropertyID: 1, Number: "1C"},
		{ID: 4, PropertyID: 2, Number: "2A", Occupied: true},
	}
	st.Data.Tenants = []rental.Tenant{
		{ID: 1, UserID: 3, Name: "Tina", Email: "tina@example.com", PropertyID: 1, UnitID: 1},
		{ID: 2, UserID: 9, Name: "Other", Email: "other@example.com", PropertyID: 2, UnitID: 4},
	}
	st.Data.Payments = []rental.Payment{
		{ID: 1, TenantID: 1, PropertyID: 1, Amount: 1000, DueDate: rental.NewDate(2024, 1, 1), Status: rental.PaymentPaid, PaidDate: date(2024, 2, 3)},
		{ID: 2, TenantID: 1, PropertyID: 1, Amount: 1000, DueDate: rental.NewDate(2024, 3, 1), Status: rental.PaymentDue},
		{ID: 3, TenantID: 2, PropertyID: 2, Amount: 500, DueDate: rental.NewDate(2023, 12, 1), Status: rental.PaymentPaid, PaidDate: date(2023, 12, 5)},
	}
	st.Data.MaintenanceRequests = []rental.MaintenanceRequest{
		{ID: 1, TenantID: 1, Status: rental.MaintenanceNew},
		{ID: 2, TenantID: 2, Status: rental.MaintenanceAssigned, VendorID: id(4)},
		{ID: 3, TenantID: 1, Status: rental.MaintenanceCompleted},
	}
	st.Data.Expenses = []rental.LedgerEntry{
		{ID: 1, Date: rental.NewDate(2024, 2, 3), Description: "Rent Payment", Amount: 1000, Type: rental.LedgerIncome},
		{ID: 2, Date: rental.NewDate(2024, 3, 9), Description: "Roof", Amount: 1500, Type: rental.LedgerExpense},
		{ID: 3, Date: rental.NewDate(2024, 1, 9), Description: "Paint", Amount: 200, Type: rental.LedgerExpense},
	}

	return st
}

func TestBuildDashboard(t *testing.T) {
	st := fixtureState()

	tests := []struct {
		name        string
		actor       rental.User
		wantRevenue int64
		wantOpen    int
		wantFeb     int64
	}{
		{name: "Admin", actor: st.Users[0], wantRevenue: 1500, wantOpen: 2, wantFeb: 1000},
		{name: "Tenant", actor: st.Users[2], wantRevenue: 1000, wantOpen: 1, wantFeb: 1000},
		{name: "Vendor", actor: st.Users[3], wantRevenue: 0, wantOpen: 1, wantFeb: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDashboard(st, tt.actor, 2024)

			assert.Equal(t, 2, d.Properties)
			assert.Equal(t, 4, d.Units)
			assert.Equal(t, 2, d.OccupiedUnits)
			assert.Equal(t, 2, d.VacantUnits)
			assert.Equal(t, tt.wantRevenue, d.Revenue)
			assert.Equal(t, tt.wantOpen, d.OpenRequests)
			assert.Equal(t, tt.wantFeb, d.MonthlyRevenue[time.February-1])
			assert.Zero(t, d.MonthlyRevenue[time.December-1], "other years stay out of the buckets")
		})
	}
}

func TestBuildOccupancy(t *testing.T) {
	got := BuildOccupancy(fixtureState())
	require.Len(t, got, 2)

	assert.Equal(t, Occupancy{PropertyID: 1, Property: "Maple Court", Units: 3, Occupied: 1, Vacant: 2, Rate: 33}, got[0])
	assert.Equal(t, 100, got[1].Rate)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, rate(0, 0))
	assert.Equal(t, 67, rate(2, 3))
	assert.Equal(t, 50, rate(1, 2))
	assert.Equal(t, 13, rate(1, 8))
}

func TestBuildRevenue(t *testing.T) {
	st := fixtureState()

	all := BuildRevenue(st, st.Users[0])
	require.Len(t, all, 2)
	assert.Equal(t, int64(1000), all[0].Revenue)
	assert.Equal(t, int64(500), all[1].Revenue)

	own := BuildRevenue(st, st.Users[2])
	assert.Equal(t, int64(1000), own[0].Revenue)
	assert.Zero(t, own[1].Revenue)
}

func TestBuildExpensesAndProfit(t *testing.T) {
	st := fixtureState()

	exp := BuildExpenses(st)
	require.Len(t, exp, 2)
	assert.Equal(t, "Paint", exp[0].Description)

	assert.Equal(t, &ProfitLoss{Income: 1000, Expense: 1700, Net: -700}, BuildProfitLoss(st))
}

func TestBuildOwner(t *testing.T) {
	st := fixtureState()

	got := BuildOwner(st, st.Users[1])
	require.Len(t, got, 1)
	assert.Equal(t, OwnerProperty{PropertyID: 1, Property: "Maple Court", Address: "1 Maple", Units: 3, Occupied: 1, Revenue: 1000}, got[0])

	assert.Empty(t, BuildOwner(st, st.Users[0]))
}

func TestService(t *testing.T) {
	ctx := context.Background()

	svc := NewService(stubSource{st: fixtureState()})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	d, err := svc.Dashboard(ctx, rental.User{ID: 1, Role: rental.RoleAdmin}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year)

	failing := NewService(stubSource{err: errors.New("boom")})

	_, err = failing.ProfitLoss(ctx)
	assert.ErrorContains(t, err, "loading snapshot")
}
