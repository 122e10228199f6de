package types

// Client -> Server
//
//	{"type": "select", "index": 3}
//	{"type": "select", "key": "R"}
//	{"type": "undo"}
//	{"type": "reset"}
const (
	MsgSelect = "select"
	MsgUndo   = "undo"
	MsgReset  = "reset"
)

// Server -> Client
//
//	{"type": "StateSnapshot", "state": Snapshot}
//	{"type": "Error", "error": "..."}
const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)
