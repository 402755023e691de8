// internal/session/session.go
//
// One page session: the puzzle state machine wired to its two letter wheels.
// Responsibilities:
//   - Route pointer events to the main wheel or the "YES" wheel.
//   - Submit finalized main-wheel words; feed YES-wheel selections into the
//     confirmation buffer and submit a full-length one.
//   - Freeze the main wheel once every word is solved; enable the YES wheel only
//     while the confirmation puzzle is open.
//   - Schedule the deferred clear of the incorrect banner.
//   - Report the outcome once, on the first transition to confirmed.
//
// Notes:
//   - Every operation runs under one mutex, so a session behaves as a single-threaded
//     event loop even when requests arrive concurrently.
//   - A superseded auto-clear callback is a no-op (generation check).

package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/content"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/puzzle"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/wheel"
)

var (
	// ErrUnknownWheel is returned for a wheel id other than main or yes.
	ErrUnknownWheel = errors.New("unknown wheel")
	// ErrUnknownPointer is returned for a pointer kind other than down, move or up.
	ErrUnknownPointer = errors.New("unknown pointer kind")
	// ErrNotConfirming is returned when the confirmation puzzle is not open.
	ErrNotConfirming = errors.New("confirmation is not open")
)

// WheelID names one of the session's wheels.
type WheelID string

const (
	MainWheel WheelID = "main"
	YesWheel  WheelID = "yes"
)

// PointerKind is the phase of a pointer event.
type PointerKind string

const (
	PointerDown PointerKind = "down"
	PointerMove PointerKind = "move"
	PointerUp   PointerKind = "up"
)

// Scheduler runs f once after d. Callbacks may fire after the state they were
// scheduled for has changed.
type Scheduler func(d time.Duration, f func())

// AfterFunc is the default Scheduler.
func AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Outcome summarizes a confirmed session.
type Outcome struct {
	SessionID       string
	WrongAttempts   int
	GaveUp          bool
	ConfirmAttempts int
	StartedAt       time.Time
	ConfirmedAt     time.Time
}

// Elapsed is the time from session start to confirmation.
func (o Outcome) Elapsed() time.Duration { return o.ConfirmedAt.Sub(o.StartedAt) }

// Update describes what one event did.
type Update struct {
	Changed   bool          `json:"changed"`          // the selection path changed
	Selection string        `json:"selection"`        // partial string after the event
	Word      string        `json:"word,omitempty"`   // finalized main-wheel word
	Result    puzzle.Result `json:"result,omitempty"` // outcome of submitting Word
	Confirmed *bool         `json:"confirmed,omitempty"`
}

// WheelView is what a rendering surface needs to draw one wheel.
type WheelView struct {
	Letters   []string      `json:"letters"`
	Layout    wheel.Layout  `json:"layout"`
	Positions []wheel.Point `json:"positions"`
	Path      []int         `json:"path"`
	Disabled  bool          `json:"disabled"`
	Rendered  int           `json:"rendered"` // slots with a reported center
}

// View is a full read-back of the session.
type View struct {
	ID string `json:"id"`
	puzzle.Snapshot
	Wheel WheelView `json:"wheel"`
	Yes   WheelView `json:"yes"`
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id      string
	started time.Time
	touched time.Time

	game *puzzle.Game
	rng  *rand.Rand
	main *wheel.Tracker
	yes  *wheel.Tracker

	now      func() time.Time
	after    Scheduler
	observer func(Outcome)
	radius   float64

	incorrectGen uint64
	reported     bool
	pending      Update
}

// Option configures a Session.
type Option func(*Session)

// WithRand pins the random source for shuffles, hints and retry messages.
func WithRand(r *rand.Rand) Option { return func(s *Session) { s.rng = r } }

// WithScheduler replaces AfterFunc, e.g. with a manual scheduler in tests.
func WithScheduler(f Scheduler) Option { return func(s *Session) { s.after = f } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// WithObserver is called once, outside the session lock, when the session is confirmed.
func WithObserver(f func(Outcome)) Option { return func(s *Session) { s.observer = f } }

// WithCaptureRadius sets the hit radius of both wheels.
func WithCaptureRadius(r float64) Option { return func(s *Session) { s.radius = r } }

// New creates a session over c with a freshly shuffled main wheel.
func New(id string, c *puzzle.Content, opts ...Option) *Session {
	s := &Session{
		id:     id,
		now:    time.Now,
		after:  AfterFunc,
		radius: wheel.DefaultCaptureRadius,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.started = s.now()
	s.touched = s.started
	s.game = puzzle.New(c, puzzle.WithRand(s.rng))

	s.main = wheel.NewTracker(wheel.Shuffle(c.Letters, s.rng),
		wheel.WithCaptureRadius(s.radius),
		wheel.OnChange(s.game.UpdateSelection),
		wheel.OnFinalize(s.submitLocked),
	)
	s.yes = wheel.NewTracker(content.Glyphs(c.Confirm),
		wheel.WithCaptureRadius(s.radius),
		wheel.OnChange(s.game.UpdateConfirmationInput),
		wheel.OnFinalize(s.confirmFromWheelLocked),
	)
	s.settleLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns the creation time.
func (s *Session) StartedAt() time.Time { return s.started }

// Touched returns the time of the last operation.
func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// View returns a consistent read-back of puzzle and wheel state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:       s.id,
		Snapshot: s.game.Snapshot(),
		Wheel:    viewOf(s.main),
		Yes:      viewOf(s.yes),
	}
}

// RegisterLayout records the rendered slot centers of a wheel; centers[i] belongs to slot i.
func (s *Session) RegisterLayout(w WheelID, centers []wheel.Point) error {
	var err error
	s.do(func() {
		var t *wheel.Tracker
		if t, err = s.tracker(w); err == nil {
			t.Registry().Replace(centers)
		}
	})
	return err
}

// Pointer feeds one pointer event into a wheel.
func (s *Session) Pointer(w WheelID, kind PointerKind, p wheel.Point) (Update, error) {
	var (
		u   Update
		err error
	)
	s.do(func() {
		var t *wheel.Tracker
		if t, err = s.tracker(w); err != nil {
			return
		}
		s.pending = Update{}
		switch kind {
		case PointerDown:
			s.pending.Changed = t.Begin(p)
		case PointerMove:
			s.pending.Changed = t.Extend(p)
		case PointerUp:
			_, s.pending.Changed = t.End()
		default:
			err = ErrUnknownPointer
			return
		}
		s.pending.Selection = t.Selection()
		u = s.pending
	})
	return u, err
}

// SubmitWord submits a word directly, bypassing the wheel. An empty word is a no-op.
func (s *Session) SubmitWord(word string) Update {
	var u Update
	s.do(func() {
		s.pending = Update{}
		s.submitLocked(word)
		u = s.pending
	})
	return u
}

// Shuffle rearranges the main wheel and returns the new arrangement. Rendered
// centers are dropped until the surface reports the new layout.
func (s *Session) Shuffle() []string {
	var letters []string
	s.do(func() {
		letters = wheel.Shuffle(s.main.Letters(), s.rng)
		s.main.SetLetters(letters)
	})
	return letters
}

// GiveUp solves every word and opens the confirmation puzzle.
func (s *Session) GiveUp() bool {
	var ok bool
	s.do(func() { ok = s.game.GiveUp() })
	return ok
}

// UpdateConfirmationInput replaces the confirmation buffer.
func (s *Session) UpdateConfirmationInput(raw string) error {
	var err error
	s.do(func() {
		if !s.game.ConfirmOpen() && !s.game.Confirmed() {
			err = ErrNotConfirming
			return
		}
		s.game.UpdateConfirmationInput(raw)
	})
	return err
}

// SubmitConfirmation submits the confirmation buffer.
func (s *Session) SubmitConfirmation() (bool, error) {
	var (
		ok  bool
		err error
	)
	s.do(func() {
		if !s.game.ConfirmOpen() && !s.game.Confirmed() {
			err = ErrNotConfirming
			return
		}
		ok = s.game.SubmitConfirmation()
	})
	return ok, err
}

// ResetIncorrect clears the incorrect banner.
func (s *Session) ResetIncorrect() {
	s.do(s.game.ResetIncorrect)
}

// do runs f under the lock, settles derived state, and reports a fresh outcome
// after unlocking.
func (s *Session) do(f func()) {
	s.mu.Lock()
	f()
	o := s.settleLocked()
	s.mu.Unlock()
	if o != nil && s.observer != nil {
		s.observer(*o)
	}
}

// settleLocked syncs wheel gates with the game and detects the confirmed transition.
func (s *Session) settleLocked() *Outcome {
	s.touched = s.now()
	s.main.SetDisabled(s.game.AllSolved())
	s.yes.SetDisabled(!s.game.ConfirmOpen())
	if !s.game.Confirmed() || s.reported {
		return nil
	}
	s.reported = true
	return &Outcome{
		SessionID:       s.id,
		WrongAttempts:   s.game.WrongAttempts(),
		GaveUp:          s.game.GaveUp(),
		ConfirmAttempts: s.game.ConfirmAttempts(),
		StartedAt:       s.started,
		ConfirmedAt:     s.touched,
	}
}

// submitLocked is the main wheel's finalize notification.
func (s *Session) submitLocked(word string) {
	if word == "" {
		return
	}
	res := s.game.Submit(word)
	s.pending.Word = word
	s.pending.Result = res
	if res != puzzle.ResultSolved {
		s.scheduleIncorrectClearLocked()
	}
}

// confirmFromWheelLocked is the YES wheel's finalize notification.
func (s *Session) confirmFromWheelLocked(word string) {
	s.game.UpdateConfirmationInput(word)
	if len([]rune(word)) != len([]rune(s.game.Content().Confirm)) {
		return
	}
	ok := s.game.SubmitConfirmation()
	s.pending.Confirmed = &ok
}

func (s *Session) scheduleIncorrectClearLocked() {
	s.incorrectGen++
	gen := s.incorrectGen
	s.after(puzzle.IncorrectDisplay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.incorrectGen == gen {
			s.game.ResetIncorrect()
		}
	})
}

func (s *Session) tracker(w WheelID) (*wheel.Tracker, error) {
	switch w {
	case MainWheel, "":
		return s.main, nil
	case YesWheel:
		return s.yes, nil
	default:
		return nil, ErrUnknownWheel
	}
}

func viewOf(t *wheel.Tracker) WheelView {
	letters := t.Letters()
	l := wheel.LayoutFor(len(letters))
	return WheelView{
		Letters:   letters,
		Layout:    l,
		Positions: l.Positions(len(letters)),
		Path:      t.Path(),
		Disabled:  t.Disabled(),
		Rendered:  t.Registry().Len(),
	}
}
