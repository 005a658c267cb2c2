package model

import (
	"crypto/md5"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/conlife/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Cell is a single grid position
type Cell struct {
	Alive bool
}

// Grid is a fixed-size, dead-bordered Game of Life board.
//
// Cells live in a flat row-major buffer indexed by y*width + x. A second
// buffer of the same size receives each new generation, and the two are
// swapped once the whole generation has been computed.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	width      int
	height     int
	cur        []Cell
	nxt        []Cell
	generation int
	history    []string // Recent grid hashes for cycle detection
}

// NewGrid creates a new grid with all cells dead. Non-positive dimensions
// produce an empty grid that never has live cells.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &Grid{
		width:  width,
		height: height,
		cur:    make([]Cell, width*height),
		nxt:    make([]Cell, width*height),
	}
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Generation returns how many times Advance has run
func (g *Grid) Generation() int {
	return g.generation
}

// Row returns row y of the current generation. The slice aliases the grid's
// storage and is only valid until the next Advance; callers must not write to it.
// Row panics if y is outside [0, Height()).
func (g *Grid) Row(y int) []Cell {
	start := y * g.width
	return g.cur[start : start+g.width : start+g.width]
}

// Set sets a cell to alive (true) or dead (false). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if g.inBounds(x, y) {
		g.cur[g.index(x, y)].Alive = alive
	}
}

// Alive returns the state of a cell. Cells outside the grid are dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.cur[g.index(x, y)].Alive
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// LoadObject stamps the live cells of p onto the grid with the pattern's
// top-left corner at (xOffset, yOffset). Live cells are OR-ed in; dead pattern
// cells never clear grid cells.
//
// Every live cell is checked before anything is written, so a stamp that
// would leave the grid returns ErrOutOfBounds and changes nothing.
func (g *Grid) LoadObject(p *Pattern, xOffset, yOffset int) error {
	live := p.LiveCells()
	for _, c := range live {
		x, y := xOffset+c.X, yOffset+c.Y
		if !g.inBounds(x, y) {
			return errors.Wrapf(ErrOutOfBounds,
				"[LoadObject] pattern %q at (%d,%d): cell (%d,%d) lands on (%d,%d) outside %dx%d grid",
				p.Name(), xOffset, yOffset, c.X, c.Y, x, y, g.width, g.height)
		}
	}

	for _, c := range live {
		g.cur[g.index(xOffset+c.X, yOffset+c.Y)].Alive = true
	}
	return nil
}

// CountNeighbors counts living Moore neighbors of (x, y) in the current
// generation. Positions outside the grid count as dead.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		row := g.cur[ny*g.width:]
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if row[nx].Alive {
				count++
			}
		}
	}

	return count
}

// Advance replaces the grid with its next generation.
//
// Rows are split into bands computed in parallel. Each band reads only the
// current buffer and writes only its own rows of the next buffer, so every
// cell sees the same snapshot of the previous generation.
func (g *Grid) Advance() {
	defer func() { g.generation++ }()
	if len(g.cur) == 0 {
		return
	}

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.height)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := 0; x < g.width; x++ {
					idx := g.index(x, y)
					g.nxt[idx].Alive = rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cur[idx].Alive)
				}
			}
			return nil
		})
	}

	// bands never fail
	_ = eg.Wait()

	g.cur, g.nxt = g.nxt, g.cur
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cur {
		if c.Alive {
			count++
		}
	}
	return
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, len(g.cur))
	for i, c := range g.cur {
		if c.Alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory records the current state, keeping the most recent few
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state matches one of the last three
// recorded states, i.e. the board is a still life or an oscillator of period
// three or less. Call it before UpdateHistory for the current generation.
func (g *Grid) IsStagnant() bool {
	if len(g.history) == 0 {
		return false
	}

	current := g.Hash()
	for i := len(g.history) - 1; i >= max(0, len(g.history)-3); i-- {
		if g.history[i] == current {
			return true
		}
	}
	return false
}
