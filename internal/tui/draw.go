package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/wheel"
)

// Layout units per terminal cell. Rows are twice the columns so the circle
// stays round on screen.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0

	wheelTop = 6
)

var (
	styleBase     = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorHotPink).Bold(true)
	styleSolved   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBlank    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLetter   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorPink)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// draw renders the current view and reports any moved letter cells.
func (a *App) draw() {
	v := a.sess.View()
	a.screen.Clear()

	if v.Confirmed {
		a.drawCelebration(v)
		a.screen.Show()
		return
	}

	a.centered(1, styleTitle, "♥ a little puzzle for you ♥")
	a.drawWords(3, v)

	if v.ConfirmOpen {
		a.drawConfirm(v)
	} else {
		a.drawStatus(v)
		a.drawWheel(session.MainWheel, v.Wheel)
	}
	a.drawHelp(v)
	a.screen.Show()
}

func (a *App) drawWords(y int, v session.View) {
	solved := make(map[string]bool, len(v.Solved))
	for _, w := range v.Solved {
		solved[w] = true
	}
	parts := make([]string, 0, len(a.content.Words))
	styles := make([]tcell.Style, 0, len(a.content.Words))
	for _, w := range a.content.Words {
		if solved[w] {
			parts = append(parts, spaced(w))
			styles = append(styles, styleSolved)
			continue
		}
		parts = append(parts, spaced(strings.Repeat("_", len([]rune(w)))))
		styles = append(styles, styleBlank)
	}

	total := len(parts) - 1
	for _, p := range parts {
		total += len([]rune(p))
	}
	x := (a.width - total) / 2
	for i, p := range parts {
		a.text(x, y, styles[i], p)
		x += len([]rune(p)) + 3
	}
}

func (a *App) drawStatus(v session.View) {
	switch {
	case v.Selection != "":
		a.centered(wheelTop-1, styleLetter, v.Selection)
	case v.Incorrect:
		a.centered(wheelTop-2, styleError, "Not quite!")
		if v.Hint != "" {
			a.centered(wheelTop-1, styleBase, "Hint: "+v.Hint)
		}
	case v.LastCorrect != nil && *v.LastCorrect:
		a.centered(wheelTop-1, styleSolved, "Nice!")
	}
}

func (a *App) drawConfirm(v session.View) {
	a.centered(wheelTop-2, styleTitle, "So... will you? Spell your answer.")
	typed := v.ConfirmInput + strings.Repeat("_", max(0, len([]rune(a.content.Confirm))-len([]rune(v.ConfirmInput))))
	a.centered(wheelTop-1, styleLetter, spaced(typed))
	a.drawWheel(session.YesWheel, v.Yes)
	if v.ConfirmError && v.ConfirmMessage != "" {
		a.centered(a.height-3, styleError, v.ConfirmMessage)
	}
}

func (a *App) drawHelp(v session.View) {
	help := "[drag] spell  [s] shuffle  [esc] quit"
	switch {
	case v.ConfirmOpen:
		help = "[drag] or type  [enter] submit  [esc] quit"
	case v.GiveUpAvailable:
		help = "[drag] spell  [s] shuffle  [g] give up  [esc] quit"
	}
	a.centered(a.height-1, styleHelp, help)
	if v.WrongAttempts > 0 {
		a.centered(a.height-2, styleHelp, fmt.Sprintf("wrong guesses: %d", v.WrongAttempts))
	}
}

func (a *App) drawCelebration(v session.View) {
	mid := a.height / 2
	for y := 0; y < a.height; y += 3 {
		for x := (y / 3 % 2) * 4; x < a.width; x += 8 {
			a.screen.SetContent(x, y, '♥', nil, stylePath)
		}
	}
	a.centered(mid-1, styleTitle, " YES! ♥ Happy Valentine's Day ♥ ")
	a.centered(mid+1, styleBase, fmt.Sprintf(" %d wrong guesses, %d tries at the answer ",
		v.WrongAttempts, v.ConfirmAttempts+1))
	a.centered(a.height-1, styleHelp, " [esc] quit ")
}

// drawWheel draws one wheel's letters and its selection path, then registers the
// drawn cells as the wheel's rendered centers when they moved.
func (a *App) drawWheel(id session.WheelID, wv session.WheelView) {
	cells := a.cells(wv)

	onPath := make(map[int]bool, len(wv.Path))
	for i, idx := range wv.Path {
		onPath[idx] = true
		if i > 0 {
			a.connect(cells[wv.Path[i-1]], cells[idx])
		}
	}
	for i, l := range wv.Letters {
		style := styleLetter
		switch {
		case wv.Disabled:
			style = styleDisabled
		case onPath[i]:
			style = styleSelected
		}
		c := cells[i]
		a.text(c[0]-1, c[1], style, " "+l+" ")
	}

	centers := make([]wheel.Point, len(cells))
	for i, c := range cells {
		centers[i] = toHitSpace(c[0], c[1])
	}
	if wv.Rendered == len(centers) && equalPoints(a.reported[id], centers) {
		return
	}
	if err := a.sess.RegisterLayout(id, centers); err == nil {
		a.reported[id] = centers
	}
}

// cells maps each slot's layout position to the terminal cell it is drawn at.
func (a *App) cells(wv session.WheelView) [][2]int {
	cols := int(wv.Layout.Size / unitsPerCol)
	originX := (a.width - cols) / 2
	out := make([][2]int, len(wv.Positions))
	for i, p := range wv.Positions {
		out[i] = [2]int{
			originX + int(math.Round(p.X/unitsPerCol)),
			wheelTop + int(math.Round(p.Y/unitsPerRow)),
		}
	}
	return out
}

// connect dots the straight line between two cells, leaving the ends alone.
func (a *App) connect(from, to [2]int) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	steps := max(abs(dx), abs(dy))
	for s := 1; s < steps; s++ {
		x := from[0] + int(math.Round(float64(dx*s)/float64(steps)))
		y := from[1] + int(math.Round(float64(dy*s)/float64(steps)))
		a.screen.SetContent(x, y, '·', nil, stylePath)
	}
}

func (a *App) centered(y int, style tcell.Style, s string) {
	a.text((a.width-len([]rune(s)))/2, y, style, s)
}

func (a *App) text(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

// spaced puts a space between glyphs: "YES" → "Y E S".
func spaced(s string) string {
	r := []rune(s)
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = string(c)
	}
	return strings.Join(out, " ")
}

func equalPoints(a, b []wheel.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
