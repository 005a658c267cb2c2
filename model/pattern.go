package model

import (
	"bufio"
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Pattern file glyphs.
//
// A pattern file is plain text, one row per line, top to bottom. AliveGlyph
// marks a live cell and DeadGlyph a dead one; any other character is a parse
// error. Lines starting with CommentPrefix are skipped. An empty line is a
// row with no cells, except at the end of the file where empty lines are
// dropped. Rows may differ in length.
const (
	AliveGlyph    = 'O'
	DeadGlyph     = '.'
	CommentPrefix = "!"
)

// Pattern is an immutable shape that can be stamped onto a Grid
type Pattern struct {
	name string
	rows [][]bool
}

// NewPattern builds a pattern from rows of cell states. The rows are copied.
func NewPattern(name string, rows [][]bool) *Pattern {
	cp := make([][]bool, len(rows))
	for i, row := range rows {
		cp[i] = append([]bool(nil), row...)
	}
	return &Pattern{name: name, rows: cp}
}

// ParsePattern interprets pattern text. It does no file I/O.
func ParsePattern(r io.Reader) (*Pattern, error) {
	var (
		rows    [][]bool
		scanner = bufio.NewScanner(r)
		lineNo  = 0
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		row := make([]bool, 0, len(line))
		for col, ch := range line {
			switch ch {
			case AliveGlyph:
				row = append(row, true)
			case DeadGlyph:
				row = append(row, false)
			default:
				return nil, errors.Wrapf(ErrParse,
					"[ParsePattern] line %d, column %d: unexpected character %q", lineNo, col+1, ch)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParsePattern] failed to read pattern")
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	return &Pattern{rows: rows}, nil
}

// LoadPattern reads and parses the pattern file at path. The pattern is named
// after the file, without its extension.
func LoadPattern(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] failed to read file: %+v", path)
	}

	p, err := ParsePattern(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] failed to parse file: %+v", path)
	}

	base := filepath.Base(path)
	p.name = strings.TrimSuffix(base, filepath.Ext(base))
	return p, nil
}

// Name returns the pattern name, empty for patterns parsed from a reader
func (p *Pattern) Name() string {
	return p.name
}

// Height returns the number of rows
func (p *Pattern) Height() int {
	return len(p.rows)
}

// Width returns the length of the longest row
func (p *Pattern) Width() (width int) {
	for _, row := range p.rows {
		width = max(width, len(row))
	}
	return
}

// Alive reports whether the pattern cell at (x, y) is alive. Positions past
// the end of a short row are dead.
func (p *Pattern) Alive(x, y int) bool {
	if y < 0 || y >= len(p.rows) || x < 0 || x >= len(p.rows[y]) {
		return false
	}
	return p.rows[y][x]
}

// LiveCells lists the live cells in row-major order
func (p *Pattern) LiveCells() []image.Point {
	var cells []image.Point
	for y, row := range p.rows {
		for x, alive := range row {
			if alive {
				cells = append(cells, image.Pt(x, y))
			}
		}
	}
	return cells
}
