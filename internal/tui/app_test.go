package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/content"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
)

type recordingChimer struct {
	solved, wrong, accepted int
}

func (r *recordingChimer) Solved() { r.solved++ }
func (r *recordingChimer) Wrong() { r.wrong++ }
func (r *recordingChimer) Accepted() { r.accepted++ }
func (r *recordingChimer) Close() {}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *recordingChimer) {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	sess := session.New("tui-1", c,
		session.WithRand(rand.New(rand.NewSource(1))),
		session.WithScheduler(func(time.Duration, func()) {}),
		session.WithCaptureRadius(CaptureRadius),
	)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	ch := &recordingChimer{}
	a := New(screen, sess, c, WithChimer(ch))
	a.draw()
	return a, screen, ch
}

// row reads back one screen row as text.
func row(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mouse(x, y int, pressed bool) *tcell.EventMouse {
	btn := tcell.ButtonNone
	if pressed {
		btn = tcell.Button1
	}
	return tcell.NewEventMouse(x, y, btn, tcell.ModNone)
}

// drag presses on the first letter of word, moves over the rest, and releases.
func drag(t *testing.T, a *App, wv session.WheelView, word string) {
	t.Helper()
	cells := a.cells(wv)
	used := map[int]bool{}
	for i, g := range strings.Split(word, "") {
		idx := -1
		for j, l := range wv.Letters {
			if l == g && !used[j] {
				idx = j
				break
			}
		}
		require.GreaterOrEqual(t, idx, 0, "letter %q not on wheel", g)
		used[idx] = true
		c := cells[idx]
		a.handle(mouse(c[0], c[1], true))
		if i == 0 {
			require.True(t, a.dragging)
		}
	}
	last := cells[0]
	a.handle(mouse(last[0], last[1], false))
	a.draw()
}

func TestDrawRegistersWheel(t *testing.T) {
	a, screen, _ := newTestApp(t)
	v := a.sess.View()
	assert.Equal(t, 16, v.Wheel.Rendered)
	assert.Contains(t, row(screen, 1), "a little puzzle for you")
	assert.Contains(t, row(screen, 3), "_ _ _ _   _ _ _")

	for i, c := range a.cells(v.Wheel) {
		r, _, _, _ := screen.GetContent(c[0], c[1])
		assert.Equal(t, v.Wheel.Letters[i], string(r))
	}
}

func TestDragSpellsWord(t *testing.T) {
	a, screen, ch := newTestApp(t)
	drag(t, a, a.sess.View().Wheel, "BE")

	v := a.sess.View()
	assert.Equal(t, []string{"BE"}, v.Solved)
	assert.Equal(t, 1, ch.solved)
	assert.False(t, a.dragging)
	assert.Contains(t, row(screen, 3), "B E")
}

func TestDragWrongWordShowsHint(t *testing.T) {
	a, screen, ch := newTestApp(t)
	drag(t, a, a.sess.View().Wheel, "EM")

	v := a.sess.View()
	assert.True(t, v.Incorrect)
	assert.Equal(t, 1, ch.wrong)
	assert.Contains(t, row(screen, wheelTop-2), "Not quite!")
	assert.Contains(t, row(screen, wheelTop-1), "Hint: ")
}

func TestReleaseWithoutPressIsIgnored(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handle(mouse(0, 0, false))
	assert.False(t, a.dragging)
	assert.Empty(t, a.sess.View().Selection)
}

func TestShuffleReRegisters(t *testing.T) {
	a, _, _ := newTestApp(t)
	before := a.sess.View().Wheel.Letters
	a.handle(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	assert.Equal(t, 0, a.sess.View().Wheel.Rendered)

	a.draw()
	v := a.sess.View()
	assert.Equal(t, 16, v.Wheel.Rendered)
	assert.ElementsMatch(t, before, v.Wheel.Letters)
}

func TestGiveUpNeedsEnoughWrongAttempts(t *testing.T) {
	a, screen, _ := newTestApp(t)
	giveUp := tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)

	a.handle(giveUp)
	assert.False(t, a.sess.View().GaveUp)

	for i := 0; i < 4; i++ {
		a.sess.SubmitWord("NOPE")
	}
	a.draw()
	assert.Contains(t, row(screen, 23), "[g] give up")

	a.handle(giveUp)
	a.draw()
	v := a.sess.View()
	assert.True(t, v.GaveUp)
	assert.True(t, v.ConfirmOpen)
	assert.Equal(t, 3, v.Yes.Rendered)
	assert.Contains(t, row(screen, 3), "V A L E N T I N E")
}

func TestYesWheelConfirms(t *testing.T) {
	a, screen, ch := newTestApp(t)
	for _, w := range []string{"WILL", "YOU", "BE", "MY", "VALENTINE"} {
		a.sess.SubmitWord(w)
	}
	a.draw()
	require.True(t, a.sess.View().ConfirmOpen)
	assert.Equal(t, session.YesWheel, a.activeWheel())

	drag(t, a, a.sess.View().Yes, "YES")
	v := a.sess.View()
	assert.True(t, v.Confirmed)
	assert.Equal(t, 1, ch.accepted)
	assert.Contains(t, row(screen, 11), "Happy Valentine's Day")
}

func TestTypedConfirmation(t *testing.T) {
	a, _, ch := newTestApp(t)
	for i := 0; i < 4; i++ {
		a.sess.SubmitWord("NOPE")
	}
	require.True(t, a.sess.GiveUp())

	for _, r := range "nop" {
		a.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	assert.Equal(t, "NOP", a.sess.View().ConfirmInput)
	a.handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, "NO", a.sess.View().ConfirmInput)

	a.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	v := a.sess.View()
	assert.True(t, v.ConfirmError)
	assert.Equal(t, 1, ch.wrong)

	for _, r := range "yes" {
		a.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	a.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.True(t, a.sess.View().Confirmed)
	assert.Equal(t, 1, ch.accepted)
}

func TestRunQuitsOnEscape(t *testing.T) {
	a, screen, _ := newTestApp(t)
	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Esc")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Run(ctx), context.Canceled)
}
