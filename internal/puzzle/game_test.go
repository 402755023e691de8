package puzzle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() *Content {
	return &Content{
		Words: []string{"WILL", "YOU", "BE", "MY", "VALENTINE"},
		Hints: map[string][]string{
			"WILL":      {"Used to express the future.", "It shows determination."},
			"YOU":       {"Refers to the person being addressed."},
			"BE":        {"To exist.", "A simple verb."},
			"MY":        {"Shows possession."},
			"VALENTINE": {"Associated with February 14.", "9 letters. Starts with V."},
		},
		Confirm:       "YES",
		RetryMessages: []string{"Come on... just type Y-E-S!", "Just say YES already!"},
		Letters:       []string{"W", "I", "L", "L", "Y", "O", "U", "B", "E", "E", "M", "V", "A", "N", "N", "T"},
	}
}

func newTestGame(seed int64) *Game {
	return New(testContent(), WithRand(rand.New(rand.NewSource(seed))))
}

func hintPool(c *Content, words ...string) []string {
	var out []string
	for _, w := range words {
		out = append(out, c.Hints[w]...)
	}
	return out
}

func TestSubmitWord_EndToEnd(t *testing.T) {
	g := newTestGame(1)
	c := g.Content()

	assert.True(t, g.SubmitWord("WILL"))
	assert.Equal(t, []string{"WILL"}, g.Snapshot().Solved)

	assert.False(t, g.SubmitWord("ZZZZ"))
	s := g.Snapshot()
	assert.Equal(t, []string{"WILL"}, s.Solved)
	assert.Equal(t, 1, s.WrongAttempts)
	assert.True(t, s.Incorrect)
	assert.Contains(t, hintPool(c, "YOU", "BE", "MY", "VALENTINE"), s.Hint)

	for i, w := range []string{"YOU", "BE", "MY"} {
		require.True(t, g.SubmitWord(w), "word %d", i)
		assert.False(t, g.Snapshot().ConfirmOpen)
	}
	require.True(t, g.SubmitWord("VALENTINE"))

	s = g.Snapshot()
	assert.True(t, s.AllSolved)
	assert.True(t, s.ConfirmOpen)
	assert.Equal(t, PhaseAllSolved, s.Phase)
	assert.Equal(t, c.Words, s.Solved)

	g.UpdateConfirmationInput("NO")
	assert.False(t, g.SubmitConfirmation())
	s = g.Snapshot()
	assert.True(t, s.ConfirmError)
	assert.Empty(t, s.ConfirmInput)
	assert.Contains(t, c.RetryMessages, s.ConfirmMessage)
	assert.Equal(t, PhaseConfirming, s.Phase)

	g.UpdateConfirmationInput("YES")
	assert.True(t, g.SubmitConfirmation())
	s = g.Snapshot()
	assert.True(t, s.Confirmed)
	assert.False(t, s.ConfirmError)
	assert.Equal(t, PhaseConfirmed, s.Phase)
}

func TestSubmitWord_WrongNeverChangesSolved(t *testing.T) {
	for _, cand := range []string{"", "Z", "WIL", "VALENTINES", "LIVE", "you ", "ÉTÉ"} {
		g := newTestGame(3)
		g.SubmitWord("BE")
		before := g.Snapshot()

		assert.Equal(t, ResultWrong, g.Submit(cand), "candidate %q", cand)
		after := g.Snapshot()
		assert.Equal(t, before.Solved, after.Solved)
		assert.Equal(t, before.WrongAttempts+1, after.WrongAttempts)
	}
}

func TestSubmitWord_CaseInsensitive(t *testing.T) {
	g := newTestGame(1)
	assert.Equal(t, ResultSolved, g.Submit("valentine"))
	assert.True(t, g.IsSolved("VALENTINE"))
	assert.True(t, g.IsSolved("Valentine"))
	assert.Zero(t, g.WrongAttempts())

	assert.Equal(t, ResultSolved, g.Submit("mY"))
	assert.Equal(t, []string{"MY", "VALENTINE"}, g.Snapshot().Solved)
}

func TestSubmitWord_Repeat(t *testing.T) {
	g := newTestGame(1)
	require.True(t, g.SubmitWord("YOU"))
	g.ResetIncorrect()

	assert.Equal(t, ResultRepeat, g.Submit("you"))
	s := g.Snapshot()
	assert.Equal(t, []string{"YOU"}, s.Solved)
	assert.Zero(t, s.WrongAttempts)
	assert.True(t, s.Incorrect)
	assert.Empty(t, s.Hint)
	require.NotNil(t, s.LastCorrect)
	assert.False(t, *s.LastCorrect)
}

func TestSubmitWord_ClearsSelection(t *testing.T) {
	g := newTestGame(1)
	g.UpdateSelection("WI")
	assert.Equal(t, "WI", g.Snapshot().Selection)
	g.SubmitWord("WIL")
	assert.Empty(t, g.Snapshot().Selection)

	g.UpdateSelection("B")
	assert.False(t, g.Snapshot().Incorrect, "a new selection hides the banner")
	g.SubmitWord("BE")
	assert.Empty(t, g.Snapshot().Selection)
}

func TestGiveUpGate(t *testing.T) {
	g := newTestGame(1)
	for i := 1; i <= 3; i++ {
		g.SubmitWord("NOPE")
		assert.False(t, g.Snapshot().GiveUpAvailable, "after %d wrong", i)
	}
	g.SubmitWord("NOPE")
	assert.True(t, g.Snapshot().GiveUpAvailable)
	assert.Equal(t, 4, g.WrongAttempts())

	g.SubmitWord("NOPE")
	g.SubmitWord("WILL")
	s := g.Snapshot()
	assert.True(t, s.GiveUpAvailable)
	assert.Equal(t, 5, s.WrongAttempts)
}

func TestGiveUp(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
	}{
		{"fresh", func(g *Game) {}},
		{"partial progress", func(g *Game) { g.SubmitWord("BE"); g.SubmitWord("xx") }},
		{"all solved", func(g *Game) {
			for _, w := range g.Content().Words {
				g.SubmitWord(w)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(9)
			tt.setup(g)
			assert.True(t, g.GiveUp())
			s := g.Snapshot()
			assert.Equal(t, g.Content().Words, s.Solved)
			assert.True(t, s.GaveUp)
			assert.True(t, s.ConfirmOpen)
			assert.Equal(t, PhaseConfirming, s.Phase)
		})
	}
}

func TestGiveUpAfterConfirmed(t *testing.T) {
	g := newTestGame(1)
	g.GiveUp()
	g.UpdateConfirmationInput("yes")
	require.True(t, g.SubmitConfirmation())

	assert.False(t, g.GiveUp())
	assert.True(t, g.Confirmed())
}

func TestUpdateConfirmationInput(t *testing.T) {
	g := newTestGame(1)
	g.GiveUp()

	g.UpdateConfirmationInput("yesss")
	assert.Equal(t, "YES", g.Snapshot().ConfirmInput)

	g.UpdateConfirmationInput("y")
	assert.Equal(t, "Y", g.Snapshot().ConfirmInput)

	g.SubmitConfirmation()
	require.True(t, g.Snapshot().ConfirmError)
	g.UpdateConfirmationInput("ye")
	assert.False(t, g.Snapshot().ConfirmError, "typing clears the error")
}

func TestSubmitConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"YES", true},
		{"yes", true},
		{"Yes", true},
		{"", false},
		{"Y", false},
		{"YE", false},
		{"NO", false},
		{"SEY", false},
		{"YEP", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g := newTestGame(5)
			g.GiveUp()
			g.UpdateConfirmationInput(tt.input)
			assert.Equal(t, tt.want, g.SubmitConfirmation())
			s := g.Snapshot()
			assert.Equal(t, tt.want, s.Confirmed)
			if !tt.want {
				assert.Empty(t, s.ConfirmInput)
				assert.Contains(t, g.Content().RetryMessages, s.ConfirmMessage)
				assert.Equal(t, 1, s.ConfirmAttempts)
			}
		})
	}
}

func TestSubmitConfirmation_ClosedAndTerminal(t *testing.T) {
	g := newTestGame(1)
	g.UpdateConfirmationInput("YES")
	assert.False(t, g.SubmitConfirmation(), "closed until all words are solved")
	assert.False(t, g.Snapshot().ConfirmError)

	g.GiveUp()
	g.UpdateConfirmationInput("YES")
	require.True(t, g.SubmitConfirmation())

	g.UpdateConfirmationInput("NO")
	assert.Equal(t, "YES", g.Snapshot().ConfirmInput, "input is frozen once confirmed")
	assert.True(t, g.SubmitConfirmation())
	assert.False(t, g.ConfirmOpen())
}

func TestResetIncorrect(t *testing.T) {
	g := newTestGame(1)
	g.SubmitWord("XYZ")
	require.True(t, g.Incorrect())
	g.ResetIncorrect()
	s := g.Snapshot()
	assert.False(t, s.Incorrect)
	assert.Equal(t, 1, s.WrongAttempts)
	assert.NotEmpty(t, s.Hint)

	g.ResetIncorrect()
	assert.False(t, g.Incorrect())
}

func TestHintsAreDeterministicWithSeed(t *testing.T) {
	a, b := newTestGame(42), newTestGame(42)
	for i := 0; i < 5; i++ {
		a.SubmitWord("NOPE")
		b.SubmitWord("NOPE")
		assert.Equal(t, a.Snapshot().Hint, b.Snapshot().Hint)
	}
}

func TestHintOnlyFromUnsolved(t *testing.T) {
	g := newTestGame(11)
	for _, w := range []string{"WILL", "YOU", "BE", "MY"} {
		g.SubmitWord(w)
	}
	for i := 0; i < 10; i++ {
		g.SubmitWord("NOPE")
		assert.Contains(t, g.Content().Hints["VALENTINE"], g.Snapshot().Hint)
	}
}

func TestSnapshotWords(t *testing.T) {
	s := newTestGame(1).Snapshot()
	assert.Equal(t, []int{4, 3, 2, 2, 9}, s.Words)
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Nil(t, s.LastCorrect)
	assert.Empty(t, s.Solved)
}
