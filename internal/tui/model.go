package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-labs/inkwell/internal/service"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// KeyMap defines key bindings for the tree browser.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Pin     key.Binding
	MoveUp  key.Binding
	MoveDn  key.Binding
	Divider key.Binding
	Remove  key.Binding
	Save    key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

// DefaultKeys is the standard browser key map.
var DefaultKeys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "open/close folder"),
	),
	Pin: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pin/unpin"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDn: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Divider: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "insert divider"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove divider"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save order"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type styleSet struct {
	cursor  lipgloss.Style
	folder  lipgloss.Style
	page    lipgloss.Style
	divider lipgloss.Style
	pinned  lipgloss.Style
	status  lipgloss.Style
	stale   lipgloss.Style
	help    lipgloss.Style
}

func defaultStyles() styleSet {
	return styleSet{
		cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		folder:  lipgloss.NewStyle().Bold(true),
		page:    lipgloss.NewStyle(),
		divider: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		pinned:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		stale:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Model is the bubbletea model for the tree browser.
type Model struct {
	svc    *service.Service
	keys   KeyMap
	styles styleSet

	tree   nav.Tree
	open   nav.OpenState
	rows   []Row
	cursor int
	dirty  bool
	stale  bool
	status string
	err    error
	height int
}

// NewModel creates a browser model backed by the given service.
func NewModel(svc *service.Service) Model {
	return Model{
		svc:    svc,
		keys:   DefaultKeys,
		styles: defaultStyles(),
		open:   nav.NewOpenState(),
		height: 24,
	}
}

type loadedMsg struct {
	tree  nav.Tree
	stale bool
}

type loadErrMsg struct{ err error }

type savedMsg struct{ tree nav.Tree }

type saveErrMsg struct{ err error }

// Init loads the tree.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		res, err := svc.DisplayTree(context.Background())
		if err != nil {
			return loadErrMsg{err: err}
		}
		return loadedMsg{tree: res.Tree, stale: res.Stale}
	}
}

func (m Model) save() tea.Cmd {
	svc := m.svc
	tree := m.tree.Clone()
	return func() tea.Msg {
		if err := svc.SaveConfiguredTree(context.Background(), tree); err != nil {
			return saveErrMsg{err: err}
		}
		res, err := svc.DisplayTree(context.Background())
		if err != nil {
			return saveErrMsg{err: err}
		}
		return savedMsg{tree: res.Tree}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.tree = msg.tree
		m.stale = msg.stale
		m.dirty = false
		m.err = nil
		m.reflow()
		return m, nil

	case loadErrMsg:
		m.err = msg.err
		return m, nil

	case savedMsg:
		m.tree = msg.tree
		m.dirty = false
		m.err = nil
		m.status = "saved"
		m.reflow()
		return m, nil

	case saveErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.current(); ok && row.Node.Kind == nav.KindFolder {
			m.open.Toggle(m.tree, row.Node.Path)
			m.reflow()
		}

	case key.Matches(msg, m.keys.Pin):
		if row, ok := m.current(); ok && row.Depth > 0 && row.Node.Kind != nav.KindDivider {
			row.Node.Pinned = !row.Node.Pinned
			m.dirty = true
			m.reflow()
		}

	case key.Matches(msg, m.keys.MoveUp):
		m.moveCursorRow(-1)

	case key.Matches(msg, m.keys.MoveDn):
		m.moveCursorRow(1)

	case key.Matches(msg, m.keys.Divider):
		if row, ok := m.current(); ok {
			updated := InsertDivider(row.Siblings, row.Index)
			m.setSiblings(row, updated)
			m.dirty = true
			m.reflow()
		}

	case key.Matches(msg, m.keys.Remove):
		if row, ok := m.current(); ok && row.Node.Kind == nav.KindDivider {
			updated := RemoveAt(row.Siblings, row.Index)
			m.setSiblings(row, updated)
			m.dirty = true
			m.reflow()
		}

	case key.Matches(msg, m.keys.Save):
		if m.dirty {
			return m, m.save()
		}
		m.status = "nothing to save"

	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	}
	return m, nil
}

func (m *Model) moveCursorRow(delta int) {
	row, ok := m.current()
	if !ok || !nav.CanReorder(row.Node, row.Depth) {
		m.status = "only pinned entries and dividers can be reordered here"
		return
	}
	if MoveSibling(row.Siblings, row.Index, delta) {
		m.dirty = true
		m.reflow()
		// Keep the cursor on the moved node.
		for i, r := range m.rows {
			if r.Node == row.Node {
				m.cursor = i
				break
			}
		}
	}
}

func (m *Model) setSiblings(row Row, updated nav.Tree) {
	if row.Parent == nil {
		m.tree = updated
	} else {
		row.Parent.Children = updated
	}
}

func (m *Model) reflow() {
	m.rows = Flatten(m.tree, m.open)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) current() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	title := "inkwell"
	if m.dirty {
		title += " *"
	}
	if m.stale {
		title += " " + m.styles.stale.Render("[stale]")
	}
	b.WriteString(m.styles.folder.Render(title) + "\n\n")

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	// Derive the viewport offset from the cursor so it always stays visible.
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}

	for i := offset; i < len(m.rows) && i < offset+visible; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.stale.Render("error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status) + "\n")
	}
	b.WriteString(m.styles.help.Render("j/k move · enter toggle · p pin · J/K reorder · d divider · s save · q quit"))
	return b.String()
}

func (m Model) renderRow(i int) string {
	row := m.rows[i]
	indent := strings.Repeat("  ", row.Depth)

	var label string
	switch row.Node.Kind {
	case nav.KindDivider:
		label = m.styles.divider.Render("────────")
	case nav.KindFolder:
		marker := "▸"
		if m.open.IsOpen(row.Node.Path) {
			marker = "▾"
		}
		label = m.styles.folder.Render(fmt.Sprintf("%s %s", marker, row.Node.Name()))
	default:
		label = m.styles.page.Render(row.Node.Name())
	}
	if row.Node.Pinned {
		label = m.styles.pinned.Render("⦿ ") + label
	}

	prefix := "  "
	if i == m.cursor {
		prefix = m.styles.cursor.Render("> ")
	}
	return prefix + indent + label
}

// Run starts the interactive browser and blocks until it exits.
func Run(svc *service.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
