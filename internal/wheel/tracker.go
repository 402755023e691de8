// internal/wheel/tracker.go
//
// Letter wheel input tracker.
// Converts raw pointer coordinates into an ordered path of slot indices and reports
// the spelled string:
//   - Begin:  pointer down. Starts a gesture; a hit slot seeds the path.
//   - Extend: pointer move. Appends newly hit, unvisited slots.
//   - End:    pointer up. Finalizes a non-empty path, then clears the gesture.
//
// Notes:
//   - The path and the active flag live in one gesture record, so both are always read
//     consistently when a pointer event is processed.
//   - Hit-testing uses rendered slot centers from the Registry. An unpopulated registry
//     simply never hits.

package wheel

import "strings"

// DefaultCaptureRadius is the maximum distance from a slot center that selects it.
const DefaultCaptureRadius = 30

// Registry holds the rendered on-screen center of each slot.
type Registry struct {
	centers map[int]Point
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{centers: make(map[int]Point)}
}

// Set records the rendered center of slot index.
func (r *Registry) Set(index int, p Point) {
	r.centers[index] = p
}

// Replace swaps in a full set of centers; centers[i] belongs to slot i.
func (r *Registry) Replace(centers []Point) {
	r.centers = make(map[int]Point, len(centers))
	for i, p := range centers {
		r.centers[i] = p
	}
}

// Reset forgets every center, e.g. after the arrangement changes.
func (r *Registry) Reset() {
	r.centers = make(map[int]Point)
}

// Len reports how many slots have a rendered center.
func (r *Registry) Len() int { return len(r.centers) }

// Center returns the rendered center of slot index, if known.
func (r *Registry) Center(index int) (Point, bool) {
	p, ok := r.centers[index]
	return p, ok
}

// gesture is the single record mirrored by every pointer event.
type gesture struct {
	active bool
	path   []int
}

// Tracker follows one pointer gesture at a time over a wheel of letters.
type Tracker struct {
	letters  []string
	registry *Registry
	radius   float64
	disabled bool
	g        gesture

	onChange   func(selection string)
	onFinalize func(word string)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCaptureRadius overrides DefaultCaptureRadius.
func WithCaptureRadius(r float64) Option {
	return func(t *Tracker) { t.radius = r }
}

// OnChange registers the selection-changed notification.
func OnChange(f func(selection string)) Option {
	return func(t *Tracker) { t.onChange = f }
}

// OnFinalize registers the selection-finalized notification.
func OnFinalize(f func(word string)) Option {
	return func(t *Tracker) { t.onFinalize = f }
}

// NewTracker builds a tracker over letters with an empty registry.
func NewTracker(letters []string, opts ...Option) *Tracker {
	t := &Tracker{
		letters:  append([]string(nil), letters...),
		registry: NewRegistry(),
		radius:   DefaultCaptureRadius,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Registry exposes the rendered slot centers for the rendering surface to fill.
func (t *Tracker) Registry() *Registry { return t.registry }

// Letters returns a copy of the current arrangement.
func (t *Tracker) Letters() []string { return append([]string(nil), t.letters...) }

// SetLetters installs a new arrangement. Rendered centers and any gesture are
// dropped; dropping a non-empty path notifies an empty selection.
func (t *Tracker) SetLetters(letters []string) {
	dropped := len(t.g.path) > 0
	t.letters = append([]string(nil), letters...)
	t.registry.Reset()
	t.g = gesture{}
	if dropped {
		t.notifyChange()
	}
}

// SetDisabled freezes (or unfreezes) input. A disabled tracker starts no gestures.
func (t *Tracker) SetDisabled(d bool) { t.disabled = d }

// Disabled reports whether input is frozen.
func (t *Tracker) Disabled() bool { return t.disabled }

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool { return t.g.active }

// Path returns a copy of the current selection path.
func (t *Tracker) Path() []int { return append([]int(nil), t.g.path...) }

// Selection returns the glyphs at the path's indices, in path order.
func (t *Tracker) Selection() string { return t.spell(t.g.path) }

// Begin handles pointer down. It reports whether the path changed.
func (t *Tracker) Begin(p Point) bool {
	if t.disabled {
		return false
	}
	t.g = gesture{active: true}
	idx, ok := t.hit(p)
	if !ok {
		return false
	}
	t.g.path = []int{idx}
	t.notifyChange()
	return true
}

// Extend handles pointer move. It reports whether the path changed.
func (t *Tracker) Extend(p Point) bool {
	if !t.g.active || t.disabled {
		return false
	}
	idx, ok := t.hit(p)
	if !ok || t.visited(idx) {
		return false
	}
	t.g.path = append(t.g.path, idx)
	t.notifyChange()
	return true
}

// End handles pointer up. It returns the finalized word and true when an active
// gesture had a non-empty path; the gesture is cleared either way.
func (t *Tracker) End() (string, bool) {
	var (
		word string
		ok   bool
	)
	if t.g.active && len(t.g.path) > 0 {
		word, ok = t.spell(t.g.path), true
	}
	t.g = gesture{}
	if ok && t.onFinalize != nil {
		t.onFinalize(word)
	}
	return word, ok
}

// hit returns the first slot, in index order, whose rendered center lies strictly
// inside the capture radius.
func (t *Tracker) hit(p Point) (int, bool) {
	for i := range t.letters {
		c, ok := t.registry.Center(i)
		if !ok {
			continue
		}
		if p.Dist(c) < t.radius {
			return i, true
		}
	}
	return 0, false
}

func (t *Tracker) visited(idx int) bool {
	for _, v := range t.g.path {
		if v == idx {
			return true
		}
	}
	return false
}

func (t *Tracker) spell(path []int) string {
	var b strings.Builder
	for _, i := range path {
		if i >= 0 && i < len(t.letters) {
			b.WriteString(t.letters[i])
		}
	}
	return b.String()
}

func (t *Tracker) notifyChange() {
	if t.onChange != nil {
		t.onChange(t.spell(t.g.path))
	}
}
