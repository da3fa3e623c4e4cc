package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/importer"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateParsing
	importStatePreview
	importStateResult
)

var formatOptions = []struct {
	label  string
	format importer.Format
}{
	{"Detect automatically", importer.FormatAuto},
	{"Rentbook ledger export", importer.FormatRentbook},
	{"Bank statement, signed amount", importer.FormatSigned},
	{"Bank statement, debit and credit columns", importer.FormatSplit},
}

// ImportModel books the rows of a ledger CSV after showing a preview.
type ImportModel struct {
	CommonModel
	svc           *rental.Service
	importService *importer.Service

	state        importState
	filePicker   filepicker.Model
	formatCursor int

	parsed  *importer.Result
	preview list.Model

	status string
	err    error
}

func NewImportModel(svc *rental.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:           svc,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Ledger" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Enter: book entries | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateFormatSelect:
			return m.updateFormatSelect(msg)
		case importStatePreview:
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.parsed = msg.result
		m.state = importStatePreview

		items := make([]list.Item, len(msg.result.Entries))
		for i, e := range msg.result.Entries {
			items[i] = entryItem{entry: e}
		}

		m.preview = list.New(items, entryDelegate{}, 80, 20)
		m.preview.Title = fmt.Sprintf("%d entries (%s, %s, %d rows skipped)",
			len(items), msg.result.Format, msg.result.Charset, msg.result.Skipped)
		m.preview.SetShowStatusBar(false)
		m.preview.SetFilteringEnabled(false)
		m.preview.SetShowHelp(false)

		return m, nil

	case bookResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Booked %d ledger entries.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path, formatOptions[m.formatCursor].format)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStatePreview:
		m.state = importStateFormatSelect
		m.parsed = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(formatOptions)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m, m.bookCmd()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", formatOptions[m.formatCursor].label, m.filePicker.View()),
		)
	case importStateParsing:
		return padded(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.preview.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	s := "Select file layout:\n\n"

	for i, opt := range formatOptions {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, opt.label)
	}

	return padded(s)
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return padded(lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to go back)")
}

// Messages

type parseResultMsg struct {
	result *importer.Result
	err    error
}

type bookResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string, format importer.Format) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Parse(f, format)

		return parseResultMsg{result: result, err: err}
	}
}

func (m ImportModel) bookCmd() tea.Cmd {
	if m.parsed == nil {
		return nil
	}

	params := m.parsed.Entries

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		entries, err := m.svc.AddLedgerEntries(ctx, params)
		if err != nil {
			return bookResultMsg{err: err}
		}

		return bookResultMsg{count: len(entries)}
	}
}

// Preview list item

type entryItem struct {
	entry rental.LedgerParams
}

func (i entryItem) Title() string       { return i.entry.Description }
func (i entryItem) Description() string { return "" }
func (i entryItem) FilterValue() string { return i.entry.Description }

type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(entryItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	e := item.entry
	fmt.Fprintf(w, "%s%s  %-7s %12s  %s", cursor, e.Date, e.Type, FormatAmount(e.Amount), e.Description)
}
