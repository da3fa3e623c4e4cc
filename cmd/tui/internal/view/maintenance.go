package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type maintenanceState int

const (
	maintenanceStateBrowse maintenanceState = iota
	maintenanceStateAssign
)

type MaintenanceModel struct {
	CommonModel
	svc   *rental.Service
	actor rental.User

	state    maintenanceState
	table    table.Model
	requests []rental.MaintenanceRequest
	vendors  []rental.User
	form     *huh.Form

	loading bool
	err     error
	status  string
}

func NewMaintenanceModel(svc *rental.Service, actor rental.User) MaintenanceModel {
	return MaintenanceModel{
		svc:   svc,
		actor: actor,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Priority", Width: 8},
			{Title: "Status", Width: 10},
			{Title: "Description", Width: 36},
			{Title: "Vendor", Width: 20},
		}),
		loading: true,
	}
}

func (m MaintenanceModel) Title() string { return "Maintenance" }
func (m MaintenanceModel) ShortHelp() string {
	if m.state == maintenanceStateAssign {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: assign vendor | c: complete | r: refresh"
}

func (m MaintenanceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMaintenanceMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.requests = msg.requests
		m.vendors = msg.vendors
		m.refreshTable()

		return m, nil

	case requestSavedMsg:
		m.state = maintenanceStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Request %d is now %s", msg.request.ID, msg.request.Status)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case maintenanceStateBrowse:
		return m.updateBrowse(msg)
	case maintenanceStateAssign:
		return m.updateAssign(msg)
	}

	return m, nil
}

func (m MaintenanceModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAssignMode()
		case "c":
			return m, m.completeCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MaintenanceModel) selected() (rental.MaintenanceRequest, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.requests) {
		return rental.MaintenanceRequest{}, false
	}

	return m.requests[idx], true
}

func (m MaintenanceModel) enterAssignMode() (tea.Model, tea.Cmd) {
	if _, ok := m.selected(); !ok {
		return m, nil
	}

	if len(m.vendors) == 0 {
		m.status = "No vendor accounts to assign"
		return m, nil
	}

	options := make([]huh.Option[int64], 0, len(m.vendors))
	for _, v := range m.vendors {
		options = append(options, huh.NewOption(fmt.Sprintf("%s <%s>", v.Name, v.Email), v.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("vendor").
				Title("Assign to vendor").
				Options(options...),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = maintenanceStateAssign
	m.table.Blur()

	return m, m.form.Init()
}

func (m MaintenanceModel) updateAssign(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = maintenanceStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	vendorID, _ := m.form.Get("vendor").(int64)
	assign := m.assignCmd(vendorID)

	m.state = maintenanceStateBrowse
	m.form = nil
	m.table.Focus()

	return m, assign
}

func (m MaintenanceModel) View() string {
	if m.loading {
		return padded("Loading requests...")
	}

	if m.err != nil {
		return padded(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state == maintenanceStateAssign && m.form != nil {
		r, _ := m.selected()

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Assign Request\n\n%s\n\n%s", r.Description, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MaintenanceModel) refreshTable() {
	names := make(map[int64]string, len(m.vendors))
	for _, v := range m.vendors {
		names[v.ID] = v.Name
	}

	rows := make([]table.Row, 0, len(m.requests))
	for _, r := range m.requests {
		vendor := ""
		if r.VendorID != nil {
			vendor = names[*r.VendorID]
		}

		rows = append(rows, table.Row{
			r.Date.String(),
			string(r.Priority),
			string(r.Status),
			r.Description,
			vendor,
		})
	}

	m.table.SetRows(rows)
}

type loadMaintenanceMsg struct {
	requests []rental.MaintenanceRequest
	vendors  []rental.User
	err      error
}

func (m MaintenanceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		requests, err := m.svc.Requests(ctx, m.actor)
		if err != nil {
			return loadMaintenanceMsg{err: err}
		}

		vendors, err := m.svc.Users(ctx, new(rental.RoleVendor))
		if err != nil {
			return loadMaintenanceMsg{err: err}
		}

		return loadMaintenanceMsg{requests: requests, vendors: vendors}
	}
}

type requestSavedMsg struct {
	request rental.MaintenanceRequest
	err     error
}

func (m MaintenanceModel) assignCmd(vendorID int64) tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.svc.AssignRequest(ctx, m.actor, r.ID, vendorID)
		if err != nil {
			return requestSavedMsg{err: err}
		}

		return requestSavedMsg{request: *updated}
	}
}

func (m MaintenanceModel) completeCmd() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.svc.CompleteRequest(ctx, m.actor, r.ID)
		if err != nil {
			return requestSavedMsg{err: err}
		}

		return requestSavedMsg{request: *updated}
	}
}
