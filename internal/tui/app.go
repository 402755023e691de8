// internal/tui/app.go
//
// Terminal surface for one page session.
// Responsibilities:
//   - Draw the word slots, the active wheel and the status lines with tcell.
//   - Report the cells it drew each letter at as the wheel's rendered centers.
//   - Turn mouse press/drag/release into pointer down/move/up on the session.
//   - Keys: s shuffles, g gives up, Esc or Ctrl-C quits. While the confirmation
//     is open, letters, Backspace and Enter edit and submit the typed answer.
//
// Hit-testing happens in a space where x is halved, so a terminal cell (about
// twice as tall as wide) is roughly square.

package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/puzzle"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/wheel"
)

// CaptureRadius is the hit radius to create terminal sessions with.
const CaptureRadius = 1.2

const refreshEvery = 100 * time.Millisecond

// App drives one session on a tcell screen.
type App struct {
	screen  tcell.Screen
	sess    *session.Session
	content *puzzle.Content
	chime   Chimer

	width, height int
	dragging      bool
	dragWheel     session.WheelID

	// last centers reported per wheel, so a redraw only re-registers on change
	reported map[session.WheelID][]wheel.Point
}

// Option configures an App.
type Option func(*App)

// WithChimer sets the sound cues; the default is silent.
func WithChimer(c Chimer) Option { return func(a *App) { a.chime = c } }

// New wraps an initialized screen. The session should be created with
// session.WithCaptureRadius(CaptureRadius).
func New(screen tcell.Screen, sess *session.Session, c *puzzle.Content, opts ...Option) *App {
	a := &App{
		screen:   screen,
		sess:     sess,
		content:  c,
		chime:    silent{},
		reported: make(map[session.WheelID][]wheel.Point),
	}
	for _, o := range opts {
		o(a)
	}
	a.width, a.height = screen.Size()
	screen.EnableMouse()
	return a
}

// Run processes events until the player quits or ctx is cancelled. The ticker
// picks up state changed by deferred callbacks, such as the incorrect banner clearing.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(refreshEvery)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				return nil
			}
			a.draw()
		case <-ticker.C:
			a.draw()
		}
	}
}

// handle applies one event and reports whether the loop should continue.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	v := a.sess.View()
	if v.ConfirmOpen && !v.Confirmed {
		a.handleConfirmKey(ev, v)
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 's', 'S':
		if !v.AllSolved {
			a.sess.Shuffle()
		}
	case 'g', 'G':
		if v.GiveUpAvailable && a.sess.GiveUp() {
			log.Info().Str("session", a.sess.ID()).Msg("gave up")
		}
	}
	return true
}

func (a *App) handleConfirmKey(ev *tcell.EventKey, v session.View) {
	var err error
	switch ev.Key() {
	case tcell.KeyEnter:
		var ok bool
		if ok, err = a.sess.SubmitConfirmation(); err == nil {
			a.confirmed(ok)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(v.ConfirmInput); len(r) > 0 {
			err = a.sess.UpdateConfirmationInput(string(r[:len(r)-1]))
		}
	case tcell.KeyRune:
		err = a.sess.UpdateConfirmationInput(v.ConfirmInput + string(ev.Rune()))
	}
	if err != nil {
		log.Debug().Err(err).Msg("confirmation key")
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := toHitSpace(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0

	var (
		kind session.PointerKind
		w    = a.activeWheel()
	)
	switch {
	case pressed && !a.dragging:
		kind, a.dragging, a.dragWheel = session.PointerDown, true, w
	case pressed:
		kind, w = session.PointerMove, a.dragWheel
	case a.dragging:
		kind, w, a.dragging = session.PointerUp, a.dragWheel, false
	default:
		return
	}

	u, err := a.sess.Pointer(w, kind, p)
	if err != nil {
		log.Debug().Err(err).Msg("pointer")
		return
	}
	a.feedback(u)
}

// feedback plays the cue for what an update did.
func (a *App) feedback(u session.Update) {
	switch u.Result {
	case puzzle.ResultSolved:
		a.chime.Solved()
	case puzzle.ResultWrong, puzzle.ResultRepeat:
		a.chime.Wrong()
	}
	if u.Confirmed != nil {
		a.confirmed(*u.Confirmed)
	}
}

func (a *App) confirmed(ok bool) {
	if ok {
		a.chime.Accepted()
		return
	}
	a.chime.Wrong()
}

// activeWheel is the YES wheel while the confirmation is open, the main wheel otherwise.
func (a *App) activeWheel() session.WheelID {
	if v := a.sess.View(); v.ConfirmOpen {
		return session.YesWheel
	}
	return session.MainWheel
}

// toHitSpace maps a terminal cell to hit-test coordinates.
func toHitSpace(x, y int) wheel.Point {
	return wheel.Point{X: float64(x) / 2, Y: float64(y)}
}
