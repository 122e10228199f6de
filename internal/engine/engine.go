package engine

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
)

// ErrInvalidSelection marks commands that are ignored rather than failed.
// Callers treat it as routine UI contention and never show it to the user.
var ErrInvalidSelection = errors.New("invalid selection")

var ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidSelection)
var ErrExhausted = fmt.Errorf("%w: token exhausted", ErrInvalidSelection)
var ErrSelectionFull = fmt.Errorf("%w: selection full", ErrInvalidSelection)
var ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", ErrInvalidSelection)
var ErrUnsupportedCommand = errors.New("unsupported command")

// MaxSlots is the number of display slots and the selection capacity.
const MaxSlots = 5

type Slot int

const (
	SlotCenter Slot = iota
	SlotLeft
	SlotRight
	SlotTop
	SlotBottom
)

var slotNames = [MaxSlots]string{"center", "left", "right", "top", "bottom"}

func (s Slot) String() string {
	if s < 0 || int(s) >= MaxSlots {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

type CommandType string

const (
	CmdSelect CommandType = "Select"
	CmdUndo   CommandType = "Undo"
	CmdReset  CommandType = "Reset"
)

type Command struct {
	Type  CommandType
	Index int
}

type EventType string

const (
	EvtTokenSelected   EventType = "TokenSelected"
	EvtSelectionUndone EventType = "SelectionUndone"
	EvtSelectionReset  EventType = "SelectionReset"
)

type Event struct {
	Type         EventType
	Slot         Slot
	CatalogIndex int
}

// Engine tracks catalog availability and the ordered selection for one
// picker session. It is not safe for concurrent use.
type Engine struct {
	entries   []catalog.Entry
	remaining []int
	// picks[i] is the catalog index consumed by the i-th selection.
	picks []int
}

func New(entries []catalog.Entry) *Engine {
	e := &Engine{
		entries:   append([]catalog.Entry(nil), entries...),
		remaining: make([]int, len(entries)),
		picks:     make([]int, 0, MaxSlots),
	}
	e.Reset()
	return e
}

// CanSelect reports why Select(index) would be ignored, or nil if it would apply.
func (e *Engine) CanSelect(index int) error {
	if index < 0 || index >= len(e.entries) {
		return ErrIndexOutOfRange
	}
	if len(e.picks) >= MaxSlots {
		return ErrSelectionFull
	}
	if e.remaining[index] <= 0 {
		return ErrExhausted
	}
	return nil
}

// Select places the token at index into the next free slot. Out-of-range,
// exhausted and full-selection requests are no-ops.
func (e *Engine) Select(index int) bool {
	if e.CanSelect(index) != nil {
		return false
	}
	e.remaining[index]--
	e.picks = append(e.picks, index)
	return true
}

// Undo removes the most recent selection and returns its token to the exact
// catalog entry it was drawn from.
func (e *Engine) Undo() bool {
	n := len(e.picks)
	if n == 0 {
		return false
	}
	e.remaining[e.picks[n-1]]++
	e.picks = e.picks[:n-1]
	return true
}

func (e *Engine) Reset() {
	for i, entry := range e.entries {
		e.remaining[i] = entry.Limit
	}
	e.picks = e.picks[:0]
}

func (e *Engine) Apply(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdSelect:
		if err := e.CanSelect(cmd.Index); err != nil {
			return nil, err
		}
		slot := Slot(len(e.picks))
		e.Select(cmd.Index)
		return []Event{{Type: EvtTokenSelected, Slot: slot, CatalogIndex: cmd.Index}}, nil

	case CmdUndo:
		n := len(e.picks)
		if n == 0 {
			return nil, ErrNothingToUndo
		}
		idx := e.picks[n-1]
		e.Undo()
		return []Event{{Type: EvtSelectionUndone, Slot: Slot(n - 1), CatalogIndex: idx}}, nil

	case CmdReset:
		e.Reset()
		return []Event{{Type: EvtSelectionReset}}, nil

	default:
		return nil, ErrUnsupportedCommand
	}
}
