package types

import (
	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
	wire "github.com/DoyleJ11/xiangqi-picker/pkg/types"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
	Key   string `json:"key,omitempty"`
}

type ServerMessage struct {
	Type  string         `json:"type"` // "StateSnapshot" | "Error"
	State *wire.Snapshot `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

// ToCommand maps a client message to an engine command. A select carries
// either an index or a key binding.
func (m ClientMessage) ToCommand() (engine.Command, bool) {
	switch m.Type {
	case wire.MsgSelect:
		if m.Index != nil {
			return engine.Command{Type: engine.CmdSelect, Index: *m.Index}, true
		}
		if i, ok := catalog.IndexForKey(m.Key); ok {
			return engine.Command{Type: engine.CmdSelect, Index: i}, true
		}
		return engine.Command{}, false
	case wire.MsgUndo:
		return engine.Command{Type: engine.CmdUndo}, true
	case wire.MsgReset:
		return engine.Command{Type: engine.CmdReset}, true
	default:
		return engine.Command{}, false
	}
}
