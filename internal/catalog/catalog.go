package catalog

import "strings"

type Team string

const (
	TeamRed   Team = "red"
	TeamBlack Team = "black"
)

// Token is one kind of piece. Index is its position in the catalog.
type Token struct {
	Glyph string `json:"glyph"`
	Team  Team   `json:"team"`
	Index int    `json:"index"`
}

type Entry struct {
	Token Token
	Limit int
}

// KeyMap binds one keyboard key to each entry of the default catalog, in order.
const KeyMap = "QWERTYUASDFGHJ"

var defaultPieces = []struct {
	glyph string
	team  Team
	limit int
}{
	{"帥", TeamRed, 1}, {"仕", TeamRed, 2}, {"相", TeamRed, 2}, {"俥", TeamRed, 2},
	{"傌", TeamRed, 2}, {"炮", TeamRed, 2}, {"兵", TeamRed, 5},
	{"將", TeamBlack, 1}, {"士", TeamBlack, 2}, {"象", TeamBlack, 2}, {"車", TeamBlack, 2},
	{"馬", TeamBlack, 2}, {"包", TeamBlack, 2}, {"卒", TeamBlack, 5},
}

// Default returns a fresh copy of the xiangqi catalog: seven red and seven black pieces.
func Default() []Entry {
	entries := make([]Entry, len(defaultPieces))
	for i, p := range defaultPieces {
		entries[i] = Entry{
			Token: Token{Glyph: p.glyph, Team: p.team, Index: i},
			Limit: p.limit,
		}
	}
	return entries
}

// IndexForKey maps a key (case-insensitive) to a catalog index.
func IndexForKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	i := strings.Index(KeyMap, strings.ToUpper(key))
	if i < 0 {
		return 0, false
	}
	return i, true
}

func Key(index int) (string, bool) {
	if index < 0 || index >= len(KeyMap) {
		return "", false
	}
	return KeyMap[index : index+1], true
}
