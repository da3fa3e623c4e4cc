package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type PaymentsModel struct {
	CommonModel
	svc   *rental.Service
	actor rental.User

	table    table.Model
	payments []rental.Payment
	names    map[int64]string
	loading  bool
	err      error
	status   string
}

func NewPaymentsModel(svc *rental.Service, actor rental.User) PaymentsModel {
	return PaymentsModel{
		svc:   svc,
		actor: actor,
		table: newTable([]table.Column{
			{Title: "Due", Width: 12},
			{Title: "Tenant", Width: 24},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 8},
			{Title: "Paid", Width: 12},
		}),
		loading: true,
	}
}

func (m PaymentsModel) Title() string     { return "Payments" }
func (m PaymentsModel) ShortHelp() string { return "Esc: back | p: mark paid | r: refresh" }

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.payments = msg.payments
		m.names = msg.names
		m.refreshTable()

		return m, nil

	case settleMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Payment of %s marked paid", FormatAmount(msg.payment.Amount))

		return m, m.loadCmd()

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
		case "p":
			return m, m.settleCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PaymentsModel) View() string {
	if m.loading {
		return padded("Loading payments...")
	}

	if m.err != nil {
		return padded(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PaymentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.payments))
	for _, p := range m.payments {
		paid := ""
		if p.PaidDate != nil {
			paid = p.PaidDate.String()
		}

		rows = append(rows, table.Row{
			p.DueDate.String(),
			m.names[p.TenantID],
			FormatAmount(p.Amount),
			string(p.Status),
			paid,
		})
	}

	m.table.SetRows(rows)
}

type loadPaymentsMsg struct {
	payments []rental.Payment
	names    map[int64]string
	err      error
}

func (m PaymentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.svc.Snapshot(ctx)
		if err != nil {
			return loadPaymentsMsg{err: err}
		}

		payments := slices.Clone(rental.VisiblePayments(m.actor, st.Data.Tenants, st.Data.Payments))
		rental.SortPayments(payments)

		names := make(map[int64]string, len(st.Data.Tenants))
		for _, t := range st.Data.Tenants {
			names[t.ID] = t.Name
		}

		return loadPaymentsMsg{payments: payments, names: names}
	}
}

type settleMsg struct {
	payment rental.Payment
	err     error
}

func (m PaymentsModel) settleCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.payments) {
		return nil
	}

	id := m.payments[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, _, err := m.svc.SettlePayment(ctx, m.actor, id)
		if err != nil {
			return settleMsg{err: err}
		}

		return settleMsg{payment: *p}
	}
}
