package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LimitsAndTeams(t *testing.T) {
	entries := Default()
	require.Len(t, entries, 14)

	limits := map[int]int{0: 1, 6: 5, 7: 1, 13: 5}
	for i, e := range entries {
		assert.Equal(t, i, e.Token.Index)
		if want, ok := limits[i]; ok {
			assert.Equal(t, want, e.Limit, "entry %d", i)
		} else {
			assert.Equal(t, 2, e.Limit, "entry %d", i)
		}
		if i < 7 {
			assert.Equal(t, TeamRed, e.Token.Team)
		} else {
			assert.Equal(t, TeamBlack, e.Token.Team)
		}
	}
	assert.Equal(t, "帥", entries[0].Token.Glyph)
	assert.Equal(t, "將", entries[7].Token.Glyph)
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a[0].Limit = 99
	assert.Equal(t, 1, Default()[0].Limit)
}

func TestIndexForKey(t *testing.T) {
	cases := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"Q", 0, true},
		{"q", 0, true},
		{"u", 6, true},
		{"A", 7, true},
		{"j", 13, true},
		{"Z", 0, false},
		{"", 0, false},
		{"QW", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := IndexForKey(tc.key)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestKey(t *testing.T) {
	k, ok := Key(7)
	require.True(t, ok)
	assert.Equal(t, "A", k)

	_, ok = Key(len(KeyMap))
	assert.False(t, ok)
	_, ok = Key(-1)
	assert.False(t, ok)
}
