package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rentbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/database"
	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/importer"
	"github.com/MrJamesThe3rd/rentbook/internal/logger"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
)

type model struct {
	rentalService *rental.Service
	reportService *report.Service
	importService *importer.Service
	exportService *export.Service

	user        *rental.User
	currentView View
	active      view.View
	loginView   view.LoginModel
	status      string
}

func initialModel(closers *[]func() error) model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile("rentbook-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(cfg.App.Env, logFile)
	slog.SetDefault(log)

	repo, closeRepo, err := database.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	*closers = append(*closers, closeRepo, logFile.Close)

	svc := rental.NewService(repo, log)

	return model{
		rentalService: svc,
		reportService: report.NewService(svc),
		importService: importer.NewService(),
		exportService: export.NewService(svc),
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(view.ResumeSession(m.rentalService), m.loginView.Init())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}

	case view.LoggedInMsg:
		m.user = &msg.User
		m.currentView = ViewMenu
		m.status = ""

		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Logout failed: %v", msg.err)
			return m, nil
		}

		m.user = nil
		m.active = nil
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.rentalService)

		return m, m.loginView.Init()

	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewScreen:
		if m.active != nil {
			var newModel tea.Model
			newModel, cmd = m.active.Update(msg)
			m.active = newModel.(view.View)
		}
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, item := range menuFor(m.user.Role) {
		if item.key != msg.String() {
			continue
		}

		if item.screen == ScreenLogout {
			return m, m.logoutCmd()
		}

		m.active = m.newScreen(item.screen)
		m.currentView = ViewScreen

		return m, m.active.Init()
	}

	return m, nil
}

func (m model) newScreen(s Screen) view.View {
	actor := *m.user

	switch s {
	case ScreenDashboard:
		return view.NewDashboardModel(m.reportService, actor)
	case ScreenUnits:
		return view.NewUnitsModel(m.rentalService)
	case ScreenPayments:
		return view.NewPaymentsModel(m.rentalService, actor)
	case ScreenMaintenance:
		return view.NewMaintenanceModel(m.rentalService, actor)
	case ScreenMessages:
		return view.NewMessagesModel(m.rentalService, actor)
	case ScreenImport:
		return view.NewImportModel(m.rentalService, m.importService)
	case ScreenExport:
		return view.NewExportModel(m.exportService, actor)
	}

	return view.NewDashboardModel(m.reportService, actor)
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewScreen:
		if m.active != nil {
			help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.ShortHelp())
			return lipgloss.JoinVertical(lipgloss.Left, m.active.View(), help)
		}
	}

	return "Unknown View"
}

func (m model) menuView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rentbook\n%s (%s)\n\n", m.user.Name, m.user.Role)

	for _, item := range menuFor(m.user.Role) {
		fmt.Fprintf(&b, "%s. %s\n", item.key, item.label)
	}

	b.WriteString("\nq. Quit")

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

type loggedOutMsg struct {
	err error
}

func (m model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		return loggedOutMsg{err: m.rentalService.Logout(ctx)}
	}
}

func main() {
	var closers []func() error

	p := tea.NewProgram(initialModel(&closers), tea.WithAltScreen())
	_, err := p.Run()

	for _, c := range closers {
		_ = c()
	}

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
