// internal/puzzle/types.go
//
// Core type definitions for the puzzle state machine.
// Defines:
//   - Content: the static vocabulary, hints, confirmation target and wheel letters.
//   - Phase:   the coarse composite state derived from the game's flags.
//   - Result:  the outcome of one word submission.
//   - Snapshot: everything a rendering surface reads back after a change.

package puzzle

import "time"

// IncorrectDisplay is how long the incorrect banner stays up before it is auto-cleared.
const IncorrectDisplay = 2000 * time.Millisecond

// GiveUpThreshold is the wrong-attempt count that reveals the give-up option.
const GiveUpThreshold = 4

// Content is the static data a game is played against. It is immutable for a session.
type Content struct {
	Words         []string            `yaml:"words"`          // ordered target vocabulary (uppercase)
	Hints         map[string][]string `yaml:"hints"`          // hint lines per word
	Confirm       string              `yaml:"confirm"`        // confirmation target, e.g. "YES"
	RetryMessages []string            `yaml:"retry_messages"` // taunts for a wrong confirmation
	Letters       []string            `yaml:"letters"`        // wheel glyphs, duplicates included
}

// Phase is the coarse state of a game.
type Phase string

const (
	PhasePlaying    Phase = "playing"
	PhaseAllSolved  Phase = "all_solved"
	PhaseConfirming Phase = "confirming"
	PhaseConfirmed  Phase = "confirmed"
)

// Result is the outcome of submitting one candidate word.
type Result string

const (
	ResultSolved Result = "solved" // a new vocabulary word
	ResultRepeat Result = "repeat" // a vocabulary word that was already solved
	ResultWrong  Result = "wrong"  // not in the vocabulary
)

// Snapshot is a copy of the game's derived state.
type Snapshot struct {
	Phase           Phase    `json:"phase"`
	Words           []int    `json:"words"`  // letter count of each target word, in order
	Solved          []string `json:"solved"` // solved words, in vocabulary order
	Selection       string   `json:"selection"`
	WrongAttempts   int      `json:"wrongAttempts"`
	GiveUpAvailable bool     `json:"giveUpAvailable"`
	GaveUp          bool     `json:"gaveUp"`
	AllSolved       bool     `json:"allSolved"`
	LastCorrect     *bool    `json:"lastCorrect"`
	Incorrect       bool     `json:"incorrect"`
	Hint            string   `json:"hint"`
	ConfirmOpen     bool     `json:"confirmOpen"`
	ConfirmInput    string   `json:"confirmInput"`
	ConfirmError    bool     `json:"confirmError"`
	ConfirmMessage  string   `json:"confirmMessage"`
	ConfirmAttempts int      `json:"confirmAttempts"`
	Confirmed       bool     `json:"confirmed"`
}
