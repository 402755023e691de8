// internal/puzzle/game.go
//
// Puzzle state machine for a single page session.
// Responsibilities:
//   - Validate submitted words against the fixed vocabulary (case-insensitive).
//   - Track the solved set, wrong attempts, and the give-up gate (opens at 4).
//   - Surface hints drawn from an unsolved word's hint pool.
//   - Gate and run the confirmation puzzle ("YES").
//
// State is a composite of independent flags:
//   playing → all_solved → confirming → confirmed, with an orthogonal gaveUp flag
//   that short-circuits from playing straight to confirming.
//
// Notes:
//   - Wrong words and wrong confirmations are gameplay outcomes, not errors.
//   - Hint and retry-message picks come from the injected *rand.Rand.

package puzzle

import (
	"math/rand"
	"strings"
	"time"
)

// Game holds the mutable progress of one puzzle.
type Game struct {
	content *Content
	rng     *rand.Rand
	vocab   map[string]struct{}

	solved          map[string]struct{}
	selection       string
	wrongAttempts   int
	giveUpAvailable bool
	gaveUp          bool
	lastCorrect     *bool
	incorrect       bool
	hint            string

	confirmOpen     bool
	confirmInput    string
	confirmError    bool
	confirmMessage  string
	confirmAttempts int
	confirmed       bool
}

// Option configures a Game.
type Option func(*Game)

// WithRand pins the random source used for hints and retry messages.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New starts a game against c. Content is not copied and must not be mutated afterwards.
func New(c *Content, opts ...Option) *Game {
	g := &Game{
		content: c,
		vocab:   make(map[string]struct{}, len(c.Words)),
		solved:  make(map[string]struct{}, len(c.Words)),
	}
	for _, w := range c.Words {
		g.vocab[w] = struct{}{}
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Content returns the content the game is played against.
func (g *Game) Content() *Content { return g.content }

// UpdateSelection records the partial string of the gesture in progress and
// hides the incorrect banner.
func (g *Game) UpdateSelection(s string) {
	g.selection = s
	g.incorrect = false
}

// SubmitWord validates a candidate and reports whether it solved a new word.
func (g *Game) SubmitWord(candidate string) bool {
	return g.Submit(candidate) == ResultSolved
}

// Submit validates a candidate and returns the detailed result.
//
// Transitions:
//   - Not in vocabulary → wrong attempts +1, give-up gate at ≥4, new hint, incorrect flag.
//   - Already solved    → incorrect flag only.
//   - New word          → added to the solved set; the last one opens the confirmation.
func (g *Game) Submit(candidate string) Result {
	word := strings.ToUpper(candidate)
	g.selection = ""

	if _, ok := g.vocab[word]; !ok {
		g.wrongAttempts++
		if g.wrongAttempts >= GiveUpThreshold {
			g.giveUpAvailable = true
		}
		g.hint = g.pickHint()
		g.markCorrect(false)
		g.incorrect = true
		return ResultWrong
	}

	if _, ok := g.solved[word]; ok {
		g.markCorrect(false)
		g.incorrect = true
		return ResultRepeat
	}

	g.solved[word] = struct{}{}
	g.markCorrect(true)
	g.incorrect = false
	if g.AllSolved() {
		g.confirmOpen = true
	}
	return ResultSolved
}

// GiveUp solves every word and opens the confirmation puzzle. It is a no-op once
// the game is confirmed and reports whether it changed anything.
func (g *Game) GiveUp() bool {
	if g.confirmed {
		return false
	}
	for _, w := range g.content.Words {
		g.solved[w] = struct{}{}
	}
	g.gaveUp = true
	g.confirmOpen = true
	g.selection = ""
	return true
}

// UpdateConfirmationInput buffers raw, uppercased and truncated to the target length.
func (g *Game) UpdateConfirmationInput(raw string) {
	if g.confirmed {
		return
	}
	in := []rune(strings.ToUpper(raw))
	if limit := len([]rune(g.content.Confirm)); len(in) > limit {
		in = in[:limit]
	}
	g.confirmInput = string(in)
	g.confirmError = false
}

// SubmitConfirmation compares the buffer to the confirmation target.
// A match is terminal; a mismatch picks a retry message and clears the buffer.
// It does nothing (and returns false) while the confirmation puzzle is closed.
func (g *Game) SubmitConfirmation() bool {
	if g.confirmed {
		return true
	}
	if !g.confirmOpen {
		return false
	}
	if g.confirmInput == g.content.Confirm {
		g.confirmed = true
		g.confirmError = false
		return true
	}
	g.confirmAttempts++
	g.confirmError = true
	g.confirmMessage = pick(g.rng, g.content.RetryMessages)
	g.confirmInput = ""
	return false
}

// ResetIncorrect clears the incorrect banner. Counters are untouched, so a late
// call is harmless.
func (g *Game) ResetIncorrect() { g.incorrect = false }

// AllSolved reports whether every vocabulary word is solved.
func (g *Game) AllSolved() bool {
	for _, w := range g.content.Words {
		if _, ok := g.solved[w]; !ok {
			return false
		}
	}
	return true
}

// IsSolved reports whether word (any case) is solved.
func (g *Game) IsSolved(word string) bool {
	_, ok := g.solved[strings.ToUpper(word)]
	return ok
}

// Incorrect reports whether the incorrect banner is up.
func (g *Game) Incorrect() bool { return g.incorrect }

// ConfirmOpen reports whether the confirmation puzzle is active.
func (g *Game) ConfirmOpen() bool { return g.confirmOpen && !g.confirmed }

// Confirmed reports whether the game reached its terminal state.
func (g *Game) Confirmed() bool { return g.confirmed }

// WrongAttempts returns the number of wrong word submissions.
func (g *Game) WrongAttempts() int { return g.wrongAttempts }

// GaveUp reports whether the player gave up.
func (g *Game) GaveUp() bool { return g.gaveUp }

// ConfirmAttempts returns the number of failed confirmations.
func (g *Game) ConfirmAttempts() int { return g.confirmAttempts }

// Phase derives the coarse state.
func (g *Game) Phase() Phase {
	switch {
	case g.confirmed:
		return PhaseConfirmed
	case g.confirmOpen && (g.gaveUp || g.confirmInput != "" || g.confirmAttempts > 0):
		return PhaseConfirming
	case g.confirmOpen:
		return PhaseAllSolved
	default:
		return PhasePlaying
	}
}

// Snapshot copies the derived state for a rendering surface.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:           g.Phase(),
		Words:           make([]int, len(g.content.Words)),
		Solved:          make([]string, 0, len(g.solved)),
		Selection:       g.selection,
		WrongAttempts:   g.wrongAttempts,
		GiveUpAvailable: g.giveUpAvailable,
		GaveUp:          g.gaveUp,
		AllSolved:       g.AllSolved(),
		Incorrect:       g.incorrect,
		Hint:            g.hint,
		ConfirmOpen:     g.confirmOpen,
		ConfirmInput:    g.confirmInput,
		ConfirmError:    g.confirmError,
		ConfirmMessage:  g.confirmMessage,
		ConfirmAttempts: g.confirmAttempts,
		Confirmed:       g.confirmed,
	}
	for i, w := range g.content.Words {
		s.Words[i] = len([]rune(w))
		if _, ok := g.solved[w]; ok {
			s.Solved = append(s.Solved, w)
		}
	}
	if g.lastCorrect != nil {
		v := *g.lastCorrect
		s.LastCorrect = &v
	}
	return s
}

// pickHint chooses an unsolved word uniformly, then one of its hints uniformly.
func (g *Game) pickHint() string {
	var unsolved []string
	for _, w := range g.content.Words {
		if _, ok := g.solved[w]; !ok {
			unsolved = append(unsolved, w)
		}
	}
	if len(unsolved) == 0 {
		return ""
	}
	w := unsolved[g.rng.Intn(len(unsolved))]
	return pick(g.rng, g.content.Hints[w])
}

func (g *Game) markCorrect(v bool) { g.lastCorrect = &v }

// pick returns a uniformly chosen element, or "" for an empty pool.
func pick(rng *rand.Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}
