package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type messagesState int

const (
	messagesStateBrowse messagesState = iota
	messagesStateCompose
)

type MessagesModel struct {
	CommonModel
	svc   *rental.Service
	actor rental.User

	state    messagesState
	table    table.Model
	messages []rental.Message
	form     *huh.Form

	loading bool
	err     error
	status  string
}

func NewMessagesModel(svc *rental.Service, actor rental.User) MessagesModel {
	return MessagesModel{
		svc:   svc,
		actor: actor,
		table: newTable([]table.Column{
			{Title: "Date", Width: 17},
			{Title: "To", Width: 18},
			{Title: "Subject", Width: 48},
		}),
		loading: true,
	}
}

func (m MessagesModel) Title() string { return "Messages" }
func (m MessagesModel) ShortHelp() string {
	if m.state == messagesStateCompose {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new message | r: refresh"
}

func (m MessagesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MessagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMessagesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.messages = msg.messages
		m.refreshTable()

		return m, nil

	case messageSentMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = "Message sent"

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 14)
		return m, nil
	}

	if m.state == messagesStateCompose {
		return m.updateCompose(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterComposeMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func recipientOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Everyone", rental.RecipientAll)}
	for _, r := range rental.Roles {
		options = append(options, huh.NewOption(strings.ToUpper(r.Plural()[:1])+r.Plural()[1:], r.Plural()))
	}

	return options
}

func (m MessagesModel) enterComposeMode() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("subject").
				Title("Subject").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("subject cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Key("body").
				Title("Body"),
			huh.NewMultiSelect[string]().
				Key("recipients").
				Title("Send to").
				Options(recipientOptions()...).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("pick at least one recipient")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = messagesStateCompose
	m.table.Blur()

	return m, m.form.Init()
}

func (m MessagesModel) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = messagesStateBrowse
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

	recipients, _ := m.form.Get("recipients").([]string)
	send := m.sendCmd(rental.MessageParams{
		Subject:    m.form.GetString("subject"),
		Body:       m.form.GetString("body"),
		Recipients: recipients,
	})

	m.state = messagesStateBrowse
	m.form = nil
	m.table.Focus()

	return m, send
}

func (m MessagesModel) View() string {
	if m.loading {
		return padded("Loading messages...")
	}

	if m.err != nil {
		return padded(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state == messagesStateCompose && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("New Message\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	} else if idx := m.table.Cursor(); idx >= 0 && idx < len(m.messages) {
		body := lipgloss.NewStyle().Padding(1, 1).Width(88).Render(m.messages[idx].Body)
		content = lipgloss.JoinVertical(lipgloss.Left, content, body)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MessagesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.messages))
	for _, msg := range m.messages {
		rows = append(rows, table.Row{
			msg.Date.Local().Format("2006-01-02 15:04"),
			strings.Join(msg.Recipients, ", "),
			msg.Subject,
		})
	}

	m.table.SetRows(rows)
}

type loadMessagesMsg struct {
	messages []rental.Message
	err      error
}

func (m MessagesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		messages, err := m.svc.Messages(ctx, m.actor)

		return loadMessagesMsg{messages: messages, err: err}
	}
}

type messageSentMsg struct {
	err error
}

func (m MessagesModel) sendCmd(params rental.MessageParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.SendMessage(ctx, m.actor, params)

		return messageSentMsg{err: err}
	}
}
