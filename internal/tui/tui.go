// Package tui provides a Bubble Tea terminal user interface for listing-renamer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/listing-renamer/internal/app"
	"github.com/handiism/listing-renamer/internal/clipboard"
	"github.com/handiism/listing-renamer/internal/config"
	"github.com/handiism/listing-renamer/internal/export"
	ioutils "github.com/handiism/listing-renamer/internal/io"
	"github.com/handiism/listing-renamer/internal/model"
	"github.com/handiism/listing-renamer/internal/slots"
	"go.uber.org/zap"
)

// State represents the current UI state.
type State int

const (
	StateGrid State = iota
	StateAddPaths
	StateEditFields
	StateExporting
)

const gridColumns = 5

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   export.ProgressLevel
}

// Message types
type (
	// ChangeMsg is sent when slot state changes.
	ChangeMsg struct{}

	// ProgressMsg is sent for export progress.
	ProgressMsg struct {
		Event export.ProgressEvent
	}

	// ExportDoneMsg is sent when an export run completes.
	ExportDoneMsg struct {
		Report export.Report
	}
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	session *app.Session
	events  chan tea.Msg
	spinner spinner.Model

	// Path entry
	pathInput  textinput.Model
	pathTarget int

	// Naming fields: product, date, differentiator
	fields     [3]textinput.Model
	fieldFocus int

	cursor int
	status LogEntry
	logs   []LogEntry

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model around a session. The session must
// have been created with OnChange and OnProgress from Hooks.
func NewModel(session *app.Session, events chan tea.Msg) Model {
	pi := textinput.New()
	pi.Placeholder = "/photos/listing, /extra/*.png"
	pi.CharLimit = 2000
	pi.Width = 60

	labels := [3]string{"Product", "Date (YYYYMM)", "Differentiator"}
	var fields [3]textinput.Model
	for i := range fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-16s", labels[i]+":")
		ti.CharLimit = 80
		ti.Width = 40
		fields[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:      StateGrid,
		session:    session,
		events:     events,
		spinner:    sp,
		pathInput:  pi,
		pathTarget: -1,
		fields:     fields,
		ctx:        ctx,
		cancel:     cancel,
	}
	m.loadFields()
	return m
}

// Hooks returns session callbacks that forward changes and progress into
// the events channel without ever blocking the caller.
func Hooks(events chan tea.Msg) (onChange func(), onProgress func(export.ProgressEvent)) {
	onChange = func() {
		select {
		case events <- ChangeMsg{}:
		default:
		}
	}
	onProgress = func(e export.ProgressEvent) {
		select {
		case events <- ProgressMsg{Event: e}:
		default:
		}
	}
	return onChange, onProgress
}

// warnIfNoClipboard flags up front that copying names will fail.
func (m Model) warnIfNoClipboard(available bool) Model {
	if !available {
		m.setStatus("No system clipboard found (install xclip, xsel or wl-clipboard); copying names will fail", export.LevelWarning)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		switch m.state {
		case StateGrid:
			return m.updateGrid(msg)
		case StateAddPaths:
			return m.updateAddPaths(msg)
		case StateEditFields:
			return m.updateFields(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ChangeMsg:
		cmds = append(cmds, m.waitForEvent())

	case ProgressMsg:
		if msg.Event.Level != export.LevelVerbose {
			m.addLog(LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		}
		cmds = append(cmds, m.waitForEvent())

	case ExportDoneMsg:
		m.state = StateGrid
		m.status = LogEntry{Message: msg.Report.Message, Level: reportLevel(msg.Report.Status)}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.session.Store

	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit

	case "left", "h":
		if m.cursor%gridColumns > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%gridColumns < gridColumns-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= gridColumns {
			m.cursor -= gridColumns
		}
	case "down", "j":
		if m.cursor+gridColumns < model.SlotCount {
			m.cursor += gridColumns
		}

	case "a":
		return m.startAddPaths(-1)
	case "r":
		return m.startAddPaths(m.cursor)

	case "x", "delete", "backspace":
		if store.Remove(m.cursor) {
			m.setStatus(fmt.Sprintf("Cleared slot %d", m.cursor+1), export.LevelInfo)
		}

	case " ", "space":
		if store.DragSource() < 0 {
			if store.DragStart(m.cursor) {
				m.setStatus(fmt.Sprintf("Picked slot %d. Move and press space to drop, esc to cancel.", m.cursor+1), export.LevelInfo)
			}
			break
		}
		if out, _ := store.Drop(m.cursor, nil); out == slots.DropSwapped {
			m.setStatus("Slots swapped", export.LevelInfo)
		}

	case "esc":
		store.CancelDrag()

	case "C":
		store.Clear()
		m.setStatus("All slots cleared", export.LevelInfo)

	case "tab":
		m.state = StateEditFields
		m.fieldFocus = 0
		return m, m.fields[0].Focus()

	case "c":
		n, err := m.session.CopyNames()
		switch {
		case errors.Is(err, app.ErrNoNames):
			m.setStatus("No images yet, nothing to copy", export.LevelWarning)
		case err != nil:
			m.setStatus(err.Error(), export.LevelError)
		default:
			m.setStatus(fmt.Sprintf("Copied %d filenames to the clipboard", n), export.LevelSuccess)
		}

	case "L":
		m.session.Engine.ClearLinks()
		m.setStatus("Manual links cleared", export.LevelInfo)

	case "z":
		m.state = StateExporting
		return m, m.runExport(export.ModeArchive)
	case "i":
		m.state = StateExporting
		return m, m.runExport(export.ModeIndividual)
	}

	return m, nil
}

func (m Model) startAddPaths(target int) (tea.Model, tea.Cmd) {
	m.state = StateAddPaths
	m.pathTarget = target
	m.pathInput.SetValue("")
	return m, m.pathInput.Focus()
}

func (m Model) updateAddPaths(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateGrid
		m.pathInput.Blur()
		return m, nil

	case "enter":
		paths := ioutils.SplitPaths(m.pathInput.Value())
		m.state = StateGrid
		m.pathInput.Blur()
		if len(paths) == 0 {
			return m, nil
		}

		var res slots.AddResult
		var err error
		if m.pathTarget >= 0 {
			res, err = m.session.OpenAt(m.pathTarget, paths)
		} else {
			res, err = m.session.Open(paths)
		}
		m.reportAdd(res, err)
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.loadFields()
		m.blurFields()
		m.state = StateGrid
		return m, nil

	case "enter":
		m.session.SetParams(model.Params{
			Product:        m.fields[0].Value(),
			Date:           m.fields[1].Value(),
			Differentiator: m.fields[2].Value(),
		})
		m.blurFields()
		m.state = StateGrid
		if w := m.session.DateWarning(); w != "" {
			m.setStatus(w, export.LevelWarning)
		} else {
			m.setStatus("Naming updated", export.LevelInfo)
		}
		return m, nil

	case "tab", "down":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % len(m.fields)
		return m, m.fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + len(m.fields) - 1) % len(m.fields)
		return m, m.fields[m.fieldFocus].Focus()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *Model) loadFields() {
	p := m.session.Params()
	m.fields[0].SetValue(p.Product)
	m.fields[1].SetValue(p.Date)
	m.fields[2].SetValue(p.Differentiator)
}

func (m *Model) blurFields() {
	for i := range m.fields {
		m.fields[i].Blur()
	}
}

func (m *Model) reportAdd(res slots.AddResult, err error) {
	msg := fmt.Sprintf("Added %d image(s)", len(res.Placed))
	if res.Rejected > 0 {
		msg += fmt.Sprintf(", skipped %d non-image file(s)", res.Rejected)
	}
	if res.Dropped > 0 {
		msg += fmt.Sprintf(", %d did not fit", res.Dropped)
	}
	level := export.LevelSuccess
	if err != nil {
		msg += ": " + err.Error()
		level = export.LevelWarning
	}
	if len(res.Placed) == 0 {
		level = export.LevelWarning
	}
	m.setStatus(msg, level)
}

func (m *Model) setStatus(msg string, level export.ProgressLevel) {
	m.status = LogEntry{Message: msg, Level: level}
}

func (m *Model) addLog(e LogEntry) {
	m.logs = append(m.logs, e)
	// Keep only last 6 logs
	if len(m.logs) > 6 {
		m.logs = m.logs[len(m.logs)-6:]
	}
}

// runExport runs an export in the background.
func (m Model) runExport(mode export.Mode) tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		if mode == export.ModeArchive {
			return ExportDoneMsg{Report: session.ExportArchive(ctx)}
		}
		return ExportDoneMsg{Report: session.ExportIndividual(ctx)}
	}
}

func reportLevel(s export.Status) export.ProgressLevel {
	switch s {
	case export.StatusTriggered, export.StatusAllTriggered:
		return export.LevelSuccess
	case export.StatusFailed:
		return export.LevelError
	default:
		return export.LevelWarning
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🖼  Listing Image Renamer"))
	b.WriteString("\n")
	b.WriteString(m.viewParams())
	b.WriteString("\n\n")

	switch m.state {
	case StateAddPaths:
		target := "first empty slots"
		if m.pathTarget >= 0 {
			target = fmt.Sprintf("slot %d", m.pathTarget+1)
		}
		b.WriteString(subtitleStyle.Render("Files, folders or globs for " + target + ":"))
		b.WriteString("\n")
		b.WriteString(m.pathInput.View())
		b.WriteString("\n\n")
	case StateEditFields:
		for _, f := range m.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewGrid())
	b.WriteString("\n")

	if m.state == StateExporting {
		b.WriteString(m.spinner.View() + " " + subtitleStyle.Render("Exporting..."))
		b.WriteString("\n")
	} else if m.status.Message != "" {
		style, prefix := levelStyle(m.status.Level)
		b.WriteString(style.Render(prefix + " " + m.status.Message))
		b.WriteString("\n")
	}

	b.WriteString(m.viewLinks())
	b.WriteString(m.renderLogs())

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewParams() string {
	prefix := m.session.Params().Prefix()
	line := dimStyle.Render("Names: ") + infoStyle.Render(prefix+"_MAIN.<ext>")
	if w := m.session.DateWarning(); w != "" {
		line += "\n" + warningStyle.Render("! "+w)
	}
	return line
}

func (m Model) viewGrid() string {
	snap := m.session.Store.Snapshot()

	var rows []string
	for r := 0; r < model.SlotCount/gridColumns; r++ {
		var cells []string
		for c := 0; c < gridColumns; c++ {
			i := r*gridColumns + c
			cells = append(cells, m.renderCell(snap[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(v slots.SlotView) string {
	style := cellStyle
	if v.Dragging {
		style = dragCellStyle
	} else if v.Index == m.cursor {
		style = cursorCellStyle
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("#%d ", v.Index+1)))
	if !v.Filled() {
		b.WriteString(dimStyle.Render("empty"))
		return style.Render(b.String())
	}

	b.WriteString(tokenStyle.Render(v.TypeToken()))
	b.WriteString("\n")
	b.WriteString(truncate(v.Entry.File.Name(), cellWidth-2))
	b.WriteString("\n")
	switch {
	case v.Entry.PreviewPending:
		b.WriteString(m.spinner.View() + dimStyle.Render(" preview"))
	case v.Entry.PreviewErr:
		b.WriteString(warningStyle.Render("preview failed, file ok"))
	default:
		b.WriteString(successStyle.Render("✓ preview"))
	}
	return style.Render(b.String())
}

func (m Model) viewLinks() string {
	links := m.session.Engine.Links()
	if len(links) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Manual links (open or copy these files):"))
	b.WriteString("\n")
	for _, l := range links {
		b.WriteString(fmt.Sprintf("  %s  %s\n", l.Name, dimStyle.Render(filepath.Dir(l.Handle.Path()))))
	}
	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	if len(m.logs) > 0 {
		b.WriteString("\n")
	}
	for _, log := range m.logs {
		style, prefix := levelStyle(log.Level)
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateGrid:
		return "arrows: move • a: add • r: replace • x: remove • space: pick/drop • tab: naming\n" +
			"z: export zip • i: export files • c: copy names • L: clear links • C: clear all • q: quit"
	case StateAddPaths:
		return "enter: add • esc: cancel"
	case StateEditFields:
		return "tab: next field • enter: save • esc: cancel"
	case StateExporting:
		return "ctrl+c: quit"
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	events := make(chan tea.Msg, 64)
	onChange, onProgress := Hooks(events)

	session, err := app.NewSession(settings, app.Deps{
		Logger:     logger,
		OnChange:   onChange,
		OnProgress: onProgress,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	m := NewModel(session, events).warnIfNoClipboard(clipboard.Available())
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
