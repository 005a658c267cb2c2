package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Placement pairs a pattern with the grid offset of its top-left corner
type Placement struct {
	Pattern *Pattern
	X, Y    int
}

// ParsePlacement parses "path,x,y" and loads the pattern file at path.
// Offsets must be non-negative integers.
func ParsePlacement(s string) (Placement, error) {
	path, x, y, err := splitPlacement(s)
	if err != nil {
		return Placement{}, err
	}

	p, err := LoadPattern(path)
	if err != nil {
		return Placement{}, errors.Wrapf(err, "[ParsePlacement] failed to load object %q", s)
	}

	return Placement{Pattern: p, X: x, Y: y}, nil
}

func splitPlacement(s string) (path string, x, y int, err error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return "", 0, 0, errors.Wrapf(ErrParse, "[ParsePlacement] expected path,x,y, got %q", s)
	}

	path = strings.TrimSpace(fields[0])
	if path == "" {
		return "", 0, 0, errors.Wrapf(ErrParse, "[ParsePlacement] missing path in %q", s)
	}
	if x, err = parseOffset(fields[1]); err != nil {
		return "", 0, 0, errors.Wrapf(err, "[ParsePlacement] invalid x offset in %q", s)
	}
	if y, err = parseOffset(fields[2]); err != nil {
		return "", 0, 0, errors.Wrapf(err, "[ParsePlacement] invalid y offset in %q", s)
	}
	return path, x, y, nil
}

func parseOffset(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrParse, "%q is not a non-negative integer", s)
	}
	return n, nil
}

// Apply stamps the placement onto g
func (pl Placement) Apply(g *Grid) error {
	return g.LoadObject(pl.Pattern, pl.X, pl.Y)
}
