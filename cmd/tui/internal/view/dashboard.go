package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
)

const barWidth = 40

type DashboardModel struct {
	CommonModel
	reports *report.Service
	actor   rental.User

	year      int
	dashboard *report.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(reports *report.Service, actor rental.User) DashboardModel {
	return DashboardModel{
		reports: reports,
		actor:   actor,
		year:    time.Now().Year(),
		loading: true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | ←/→: year | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.dashboard = msg.dashboard
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left", "h":
			m.year--
			return m, m.loadCmd()
		case "right", "l":
			m.year++
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return padded("Loading dashboard...")
	}

	if m.err != nil {
		return padded(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(RenderDashboard(m.dashboard))
}

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 2).
	MarginRight(1)

func card(label, value string) string {
	return cardStyle.Render(label + "\n" + activeStyle(value))
}

// RenderDashboard draws the summary cards and one revenue bar per month.
func RenderDashboard(d *report.Dashboard) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Properties", fmt.Sprint(d.Properties)),
		card("Units", fmt.Sprintf("%d / %d occupied", d.OccupiedUnits, d.Units)),
		card("Tenants", fmt.Sprint(d.Tenants)),
		card("Leases", fmt.Sprint(d.Leases)),
		card("Open requests", fmt.Sprint(d.OpenRequests)),
		card("Revenue", FormatAmount(d.Revenue)),
	)

	var peak int64
	for _, cents := range d.MonthlyRevenue {
		peak = max(peak, cents)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Paid revenue %d\n\n", d.Year)

	for i, cents := range d.MonthlyRevenue {
		width := 0
		if peak > 0 {
			width = int(cents * barWidth / peak)
		}

		bar := lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Render(strings.Repeat("█", width))
		fmt.Fprintf(&b, "%s %s %s\n", time.Month(i+1).String()[:3], bar, FormatAmount(cents))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", b.String())
}

type loadDashboardMsg struct {
	dashboard *report.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	year := m.year

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.reports.Dashboard(ctx, m.actor, year)

		return loadDashboardMsg{dashboard: d, err: err}
	}
}
