package engine

import "github.com/DoyleJ11/xiangqi-picker/internal/catalog"

type SlotView struct {
	Slot         Slot
	Occupied     bool
	Glyph        string
	Team         catalog.Team
	CatalogIndex int
}

type EntryView struct {
	Index     int
	Glyph     string
	Team      catalog.Team
	Limit     int
	Remaining int
	Exhausted bool
}

// Snapshot is a value copy of engine state. Later engine mutations never
// show through it.
type Snapshot struct {
	Slots   [MaxSlots]SlotView
	Catalog []EntryView
}

func (e *Engine) Snapshot() Snapshot {
	var s Snapshot
	for i := range s.Slots {
		s.Slots[i] = SlotView{Slot: Slot(i), CatalogIndex: -1}
	}
	for i, idx := range e.picks {
		tok := e.entries[idx].Token
		s.Slots[i] = SlotView{
			Slot:         Slot(i),
			Occupied:     true,
			Glyph:        tok.Glyph,
			Team:         tok.Team,
			CatalogIndex: idx,
		}
	}

	s.Catalog = make([]EntryView, len(e.entries))
	for i, entry := range e.entries {
		s.Catalog[i] = EntryView{
			Index:     i,
			Glyph:     entry.Token.Glyph,
			Team:      entry.Token.Team,
			Limit:     entry.Limit,
			Remaining: e.remaining[i],
			Exhausted: e.remaining[i] == 0,
		}
	}
	return s
}

// Selected returns the occupied slots in insertion order.
func (s Snapshot) Selected() []SlotView {
	out := make([]SlotView, 0, MaxSlots)
	for _, sv := range s.Slots {
		if sv.Occupied {
			out = append(out, sv)
		}
	}
	return out
}

func (s Snapshot) Len() int { return len(s.Selected()) }
