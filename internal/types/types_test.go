package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
)

func TestClientMessage_ToCommand(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   engine.Command
		wantOK bool
	}{
		{name: "select by index", raw: `{"type":"select","index":4}`, want: engine.Command{Type: engine.CmdSelect, Index: 4}, wantOK: true},
		{name: "select index zero", raw: `{"type":"select","index":0}`, want: engine.Command{Type: engine.CmdSelect, Index: 0}, wantOK: true},
		{name: "select by key", raw: `{"type":"select","key":"j"}`, want: engine.Command{Type: engine.CmdSelect, Index: 13}, wantOK: true},
		{name: "select unknown key", raw: `{"type":"select","key":"z"}`},
		{name: "select without target", raw: `{"type":"select"}`},
		{name: "undo", raw: `{"type":"undo"}`, want: engine.Command{Type: engine.CmdUndo}, wantOK: true},
		{name: "reset", raw: `{"type":"reset"}`, want: engine.Command{Type: engine.CmdReset}, wantOK: true},
		{name: "unknown", raw: `{"type":"shuffle"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ClientMessage
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			got, ok := m.ToCommand()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
