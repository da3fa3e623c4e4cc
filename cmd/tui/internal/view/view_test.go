package view

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
)

func TestExportKinds(t *testing.T) {
	tests := []struct {
		role rental.Role
		want []export.Kind
	}{
		{rental.RoleAdmin, export.Kinds},
		{rental.RoleManager, export.Kinds},
		{rental.RoleOwner, []export.Kind{export.KindPayments, export.KindMaintenance}},
		{rental.RoleTenant, []export.Kind{export.KindPayments, export.KindMaintenance}},
		{rental.RoleVendor, []export.Kind{export.KindMaintenance}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, ExportKinds(tt.role))
		})
	}
}

func TestUnitRows(t *testing.T) {
	userID := int64(7)

	st := rental.NewState()
	st.Data.Properties = []rental.Property{{ID: 1, Name: "Elm Court"}}
	st.Data.Tenants = []rental.Tenant{{ID: 3, UserID: userID, Name: "Ada"}}
	st.Data.Units = []rental.Unit{
		{ID: 1, PropertyID: 1, Number: "1A", Rent: 100000, Occupied: true, TenantID: &userID},
		{ID: 2, PropertyID: 1, Number: "1B", Rent: 95050},
		{ID: 3, PropertyID: 9, Number: "X"},
	}

	assert.Equal(t, []table.Row{
		{"Elm Court", "1A", "1000.00", "Occupied", "Ada"},
		{"Elm Court", "1B", "950.50", "Vacant", ""},
		{"", "X", "0.00", "Vacant", ""},
	}, unitRows(st))
}

func TestRenderDashboard(t *testing.T) {
	d := &report.Dashboard{
		Year:          2024,
		Properties:    2,
		Units:         4,
		OccupiedUnits: 3,
		Revenue:       250000,
	}
	d.MonthlyRevenue[time.February-1] = 250000

	out := RenderDashboard(d)

	assert.Contains(t, out, "3 / 4 occupied")
	assert.Contains(t, out, "Paid revenue 2024")
	assert.Contains(t, out, "2500.00")
	assert.Contains(t, out, "Feb")
	assert.Contains(t, out, "Dec")
}

func TestRenderDashboard_NoRevenue(t *testing.T) {
	out := RenderDashboard(&report.Dashboard{Year: 2023})

	assert.Contains(t, out, "Paid revenue 2023")
	assert.NotContains(t, out, "█")
}
