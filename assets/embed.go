// assets/embed.go
//
// Compiled-in data files:
//   - puzzle.yaml:     default vocabulary, hints, retry messages and wheel letters.
//   - migrations/*.sql: schema for the outcome journal.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed puzzle.yaml migrations/*.sql
var FS embed.FS

// PuzzleYAML returns the raw default puzzle content.
func PuzzleYAML() ([]byte, error) {
	return FS.ReadFile("puzzle.yaml")
}

// Migrations returns the migrations directory as its own filesystem root.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
