package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type UnitsModel struct {
	CommonModel
	svc *rental.Service

	table   table.Model
	loading bool
	err     error
}

func NewUnitsModel(svc *rental.Service) UnitsModel {
	return UnitsModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Property", Width: 24},
			{Title: "Unit", Width: 8},
			{Title: "Rent", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Tenant", Width: 24},
		}),
		loading: true,
	}
}

func (m UnitsModel) Title() string     { return "Units" }
func (m UnitsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m UnitsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UnitsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUnitsMsg:
		m.loading = false
		m.err = msg.err
		m.table.SetRows(msg.rows)

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UnitsModel) View() string {
	if m.loading {
		return padded("Loading units...")
	}

	if m.err != nil {
		return padded(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(boxed(m.table.View()))
}

type loadUnitsMsg struct {
	rows []table.Row
	err  error
}

func (m UnitsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.svc.Snapshot(ctx)
		if err != nil {
			return loadUnitsMsg{err: err}
		}

		return loadUnitsMsg{rows: unitRows(st)}
	}
}

func unitRows(st *rental.State) []table.Row {
	rows := make([]table.Row, 0, len(st.Data.Units))

	for _, u := range st.Data.Units {
		property := ""
		if p, ok := st.Data.Property(u.PropertyID); ok {
			property = p.Name
		}

		status, tenant := "Vacant", ""
		if u.Occupied {
			status = "Occupied"
		}

		if u.TenantID != nil {
			if t, ok := st.Data.TenantByUser(*u.TenantID); ok {
				tenant = t.Name
			}
		}

		rows = append(rows, table.Row{property, u.Number, FormatAmount(u.Rent), status, tenant})
	}

	return rows
}
