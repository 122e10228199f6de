package types

import (
	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
)

// Snapshot is the JSON projection of a session sent to views.
//
//	version: number
//	slots:   [{slot, occupied, glyph, team, catalog_index}] x 5, center/left/right/top/bottom
//	catalog: [{index, glyph, team, key, limit, remaining, exhausted}]
type Snapshot struct {
	Version int     `json:"version"`
	Slots   []Slot  `json:"slots"`
	Catalog []Entry `json:"catalog"`
}

type Slot struct {
	Slot         string `json:"slot"`
	Occupied     bool   `json:"occupied"`
	Glyph        string `json:"glyph,omitempty"`
	Team         string `json:"team,omitempty"`
	CatalogIndex int    `json:"catalog_index"`
}

type Entry struct {
	Index     int    `json:"index"`
	Glyph     string `json:"glyph"`
	Team      string `json:"team"`
	Key       string `json:"key,omitempty"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Exhausted bool   `json:"exhausted"`
}

func FromSnapshot(version int, s engine.Snapshot) Snapshot {
	out := Snapshot{
		Version: version,
		Slots:   make([]Slot, len(s.Slots)),
		Catalog: make([]Entry, len(s.Catalog)),
	}
	for i, sv := range s.Slots {
		out.Slots[i] = Slot{
			Slot:         sv.Slot.String(),
			Occupied:     sv.Occupied,
			Glyph:        sv.Glyph,
			Team:         string(sv.Team),
			CatalogIndex: sv.CatalogIndex,
		}
	}
	for i, ev := range s.Catalog {
		key, _ := catalog.Key(ev.Index)
		out.Catalog[i] = Entry{
			Index:     ev.Index,
			Glyph:     ev.Glyph,
			Team:      string(ev.Team),
			Key:       key,
			Limit:     ev.Limit,
			Remaining: ev.Remaining,
			Exhausted: ev.Exhausted,
		}
	}
	return out
}
