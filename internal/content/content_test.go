package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"WILL", "YOU", "BE", "MY", "VALENTINE"}, c.Words)
	assert.Equal(t, "YES", c.Confirm)
	assert.Len(t, c.RetryMessages, 7)
	assert.Len(t, c.Letters, 16)
	for _, w := range c.Words {
		assert.Len(t, c.Hints[w], 3, w)
		assert.True(t, Spellable(w, c.Letters), w)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	d, _ := Default()
	assert.Same(t, d, c)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
words: [hi, you]
hints:
  hi: [a greeting]
  You: [the reader]
confirm: ok
retry_messages: [try again]
letters: [h, i, y, o, u, k]
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HI", "YOU"}, c.Words)
	assert.Equal(t, "OK", c.Confirm)
	assert.Equal(t, []string{"the reader"}, c.Hints["YOU"])
	assert.Equal(t, []string{"H", "I", "Y", "O", "U", "K"}, c.Letters)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no words", `confirm: YES
retry_messages: [x]`},
		{"missing hints", `words: [AB]
letters: [A, B]
confirm: YES
retry_messages: [x]`},
		{"unspellable", `words: [ALL]
hints: {ALL: [x]}
letters: [A, L]
confirm: YES
retry_messages: [x]`},
		{"non letters", `words: [A1]
hints: {A1: [x]}
letters: [A, "1"]
confirm: YES
retry_messages: [x]`},
		{"accented word", `words: [ÉTÉ]
hints: {ÉTÉ: [x]}
letters: [É, T, É]
confirm: YES
retry_messages: [x]`},
		{"duplicate word", `words: [AB, ab]
hints: {AB: [x]}
letters: [A, B]
confirm: YES
retry_messages: [x]`},
		{"no retry messages", `words: [AB]
hints: {AB: [x]}
letters: [A, B]
confirm: YES`},
		{"no confirm", `words: [AB]
hints: {AB: [x]}
letters: [A, B]
retry_messages: [x]`},
		{"multi-char glyph", `words: [AB]
hints: {AB: [x]}
letters: [AB]
confirm: YES
retry_messages: [x]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("words: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestSpellable(t *testing.T) {
	letters := []string{"W", "I", "L", "L"}
	assert.True(t, Spellable("WILL", letters))
	assert.True(t, Spellable("", letters))
	assert.False(t, Spellable("WILLL", letters))
	assert.False(t, Spellable("WALL", letters))
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, []string{"Y", "E", "S"}, Glyphs("YES"))
	assert.Empty(t, Glyphs(""))
}
