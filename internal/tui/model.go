package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
)

// ErrSetup reports a view that cannot present the catalog, such as an
// entry with no key binding.
var ErrSetup = errors.New("view setup")

type Exporter interface {
	Export(snap engine.Snapshot, name string) (string, error)
}

type exportDoneMsg struct {
	path string
	err  error
}

type Model struct {
	engine   *engine.Engine
	keys     map[string]int
	labels   []string
	exporter Exporter
	log      *zap.Logger

	prompting bool
	filename  []rune
	status    string
	statusErr bool
	exporting bool
}

// New binds keyMap[i] to catalog entry i. Every entry needs a distinct key.
func New(entries []catalog.Entry, keyMap string, exp Exporter, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	keys := []rune(strings.ToLower(keyMap))
	if len(keys) < len(entries) {
		return Model{}, fmt.Errorf("%w: %d catalog entries but only %d key bindings", ErrSetup, len(entries), len(keys))
	}
	m := Model{
		engine:   engine.New(entries),
		keys:     make(map[string]int, len(entries)),
		labels:   make([]string, len(entries)),
		exporter: exp,
		log:      log,
		status:   "Ready",
	}
	for i := range entries {
		k := string(keys[i])
		if _, dup := m.keys[k]; dup {
			return Model{}, fmt.Errorf("%w: key %q bound twice", ErrSetup, k)
		}
		m.keys[k] = i
		m.labels[i] = strings.ToUpper(k)
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Snapshot() engine.Snapshot { return m.engine.Snapshot() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updatePicker(msg)

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.log.Error("export failed", zap.Error(msg.err))
			m.status = "Export failed: " + msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.log.Info("exported", zap.String("path", msg.path))
		m.status = "Saved " + msg.path
		m.statusErr = false
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyBackspace:
		m.engine.Undo()
		return m, nil
	case tea.KeyCtrlR:
		m.engine.Reset()
		m.status = "Reset"
		m.statusErr = false
		return m, nil
	case tea.KeyCtrlS:
		if m.exporter == nil {
			m.status = "Export unavailable"
			m.statusErr = true
			return m, nil
		}
		if m.exporting {
			m.status = "Export in progress"
			m.statusErr = false
			return m, nil
		}
		m.prompting = true
		m.filename = m.filename[:0]
		return m, nil
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return m, nil
		}
		idx, ok := m.keys[strings.ToLower(string(msg.Runes))]
		if !ok {
			return m, nil
		}
		if err := m.engine.CanSelect(idx); err != nil {
			m.log.Debug("select ignored", zap.Int("index", idx), zap.Error(err))
			return m, nil
		}
		m.engine.Select(idx)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		return m, nil
	case tea.KeyEnter:
		m.prompting = false
		m.exporting = true
		m.status = "Exporting..."
		m.statusErr = false
		return m, exportCmd(m.exporter, m.engine.Snapshot(), string(m.filename))
	case tea.KeyBackspace:
		if n := len(m.filename); n > 0 {
			m.filename = m.filename[:n-1]
		}
	case tea.KeySpace:
		m.filename = append(m.filename, ' ')
	case tea.KeyRunes:
		m.filename = append(m.filename, msg.Runes...)
	}
	return m, nil
}

// exportCmd renders off the update loop; snap is a value copy.
func exportCmd(x Exporter, snap engine.Snapshot, name string) tea.Cmd {
	return func() tea.Msg {
		path, err := x.Export(snap, name)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) View() string {
	snap := m.engine.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("象棋 picker"))
	b.WriteString("\n")
	b.WriteString(m.viewCatalog(snap, catalog.TeamRed))
	b.WriteString("\n")
	b.WriteString(m.viewCatalog(snap, catalog.TeamBlack))
	b.WriteString("\n\n")
	b.WriteString(viewSlots(snap))
	b.WriteString("\n")

	if m.prompting {
		b.WriteString(promptStyle.Render("Save as: ") + string(m.filename) + "█\n")
	}
	if m.statusErr {
		b.WriteString(statusErrStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString(helpStyle.Render("\nkeys select · backspace undo · ctrl+r reset · ctrl+s save · ctrl+c quit"))
	return b.String()
}

func (m Model) viewCatalog(snap engine.Snapshot, team catalog.Team) string {
	cells := make([]string, 0, len(snap.Catalog))
	for _, ev := range snap.Catalog {
		if ev.Team != team {
			continue
		}
		cell := keyStyle.Render(m.labels[ev.Index]) + " " + teamStyle(ev.Team).Render(ev.Glyph) +
			keyStyle.Render(fmt.Sprintf(" ×%d", ev.Remaining))
		if ev.Exhausted {
			// keep the grid stable while hiding the piece
			cell = strings.Repeat(" ", lipgloss.Width(cell))
		}
		cells = append(cells, pieceStyle.Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func viewSlots(snap engine.Snapshot) string {
	box := func(s engine.Slot) string {
		sv := snap.Slots[s]
		if !sv.Occupied {
			return slotStyle.Render(" ")
		}
		return slotStyle.Render(teamStyle(sv.Team).Render(sv.Glyph))
	}
	pad := strings.Repeat(" ", lipgloss.Width(box(engine.SlotCenter)))

	top := lipgloss.JoinHorizontal(lipgloss.Top, pad, box(engine.SlotTop))
	mid := lipgloss.JoinHorizontal(lipgloss.Top, box(engine.SlotLeft), box(engine.SlotCenter), box(engine.SlotRight))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, pad, box(engine.SlotBottom))
	return lipgloss.JoinVertical(lipgloss.Left, top, mid, bottom)
}
