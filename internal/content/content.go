// internal/content/content.go
//
// Puzzle content loading.
//
// Responsibilities:
//   - Parse puzzle content (words, hints, confirmation target, retry messages, letters)
//     from YAML.
//   - Fall back to the compiled-in default from the assets package.
//   - Validate that the content is playable.
//
// Initialization behavior (Load):
//   1. If path is set (PUZZLE_FILE), read and validate that file.
//   2. Otherwise return the embedded default (parsed once via sync.Once).
//
// Constraints:
//   • Words and letters are normalized to uppercase.
//   • Every word has at least one hint.
//   • Every word can be spelled from the wheel letters without reusing a slot.

package content

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Kurt-jhaive/valentine-puzzle/assets"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/puzzle"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid puzzle content")

var (
	defaultOnce sync.Once
	defaultC    *puzzle.Content
	defaultErr  error
)

// Default returns the embedded content.
func Default() (*puzzle.Content, error) {
	defaultOnce.Do(func() {
		raw, err := assets.PuzzleYAML()
		if err != nil {
			defaultErr = fmt.Errorf("read embedded puzzle: %w", err)
			return
		}
		defaultC, defaultErr = Parse(raw)
	})
	return defaultC, defaultErr
}

// Load reads content from path, or returns the embedded default when path is empty.
func Load(path string) (*puzzle.Content, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML, normalizes case and validates the result.
func Parse(raw []byte) (*puzzle.Content, error) {
	var c puzzle.Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode puzzle yaml: %w", err)
	}
	normalize(&c)
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalize uppercases words, hint keys, letters and the confirmation target.
func normalize(c *puzzle.Content) {
	for i, w := range c.Words {
		c.Words[i] = strings.ToUpper(strings.TrimSpace(w))
	}
	for i, l := range c.Letters {
		c.Letters[i] = strings.ToUpper(strings.TrimSpace(l))
	}
	c.Confirm = strings.ToUpper(strings.TrimSpace(c.Confirm))
	hints := make(map[string][]string, len(c.Hints))
	for k, v := range c.Hints {
		hints[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	c.Hints = hints
}

// Validate checks that c is playable.
func Validate(c *puzzle.Content) error {
	if len(c.Words) == 0 {
		return fmt.Errorf("%w: no words", ErrInvalid)
	}
	seen := make(map[string]struct{}, len(c.Words))
	for _, w := range c.Words {
		if !isUpperAlpha(w) {
			return fmt.Errorf("%w: word %q must be letters only", ErrInvalid, w)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: duplicate word %q", ErrInvalid, w)
		}
		seen[w] = struct{}{}
		if len(c.Hints[w]) == 0 {
			return fmt.Errorf("%w: word %q has no hints", ErrInvalid, w)
		}
		if !Spellable(w, c.Letters) {
			return fmt.Errorf("%w: word %q cannot be spelled from the wheel", ErrInvalid, w)
		}
	}
	if c.Confirm == "" {
		return fmt.Errorf("%w: empty confirmation target", ErrInvalid)
	}
	if len(c.RetryMessages) == 0 {
		return fmt.Errorf("%w: no retry messages", ErrInvalid)
	}
	for _, l := range c.Letters {
		if len([]rune(l)) != 1 {
			return fmt.Errorf("%w: wheel glyph %q must be a single character", ErrInvalid, l)
		}
	}
	return nil
}

// Spellable reports whether word can be traced on a wheel of letters, using each
// slot at most once.
func Spellable(word string, letters []string) bool {
	avail := make(map[string]int, len(letters))
	for _, l := range letters {
		avail[l]++
	}
	for _, r := range word {
		k := string(r)
		if avail[k] == 0 {
			return false
		}
		avail[k]--
	}
	return true
}

// Glyphs splits s into single-character wheel glyphs.
func Glyphs(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func isUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
