package model

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

// gridFromRows builds a grid from strings of 'O' and '.'.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			g.Set(x, y, ch == 'O')
		}
	}
	return g
}

func assertRows(t *testing.T, g *Grid, rows ...string) {
	t.Helper()
	for y, row := range rows {
		for x, ch := range row {
			if want := ch == 'O'; g.Alive(x, y) != want {
				t.Fatalf("generation %d: cell (%d,%d) alive=%v, expected %v", g.Generation(), x, y, !want, want)
			}
		}
	}
}

func TestNewGridAllDead(t *testing.T) {
	g := NewGrid(7, 4)
	if g.Width() != 7 || g.Height() != 4 {
		t.Fatalf("got %dx%d, expected 7x4", g.Width(), g.Height())
	}
	for y := range g.Height() {
		row := g.Row(y)
		if len(row) != 7 {
			t.Fatalf("row %d has %d cells, expected 7", y, len(row))
		}
		for x, c := range row {
			if c.Alive {
				t.Fatalf("cell (%d,%d) alive in new grid", x, y)
			}
		}
	}
}

func TestDegenerateGrid(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 3}} {
		g := NewGrid(dims[0], dims[1])
		g.Advance()
		if g.CountLivingCells() != 0 || g.Width() != 0 || g.Height() != 0 {
			t.Fatalf("NewGrid(%d,%d) should be empty", dims[0], dims[1])
		}
		if g.Alive(0, 0) {
			t.Fatalf("NewGrid(%d,%d) reports a live cell", dims[0], dims[1])
		}
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	g := NewGrid(10, 8)
	for range 5 {
		g.Advance()
		if n := g.CountLivingCells(); n != 0 {
			t.Fatalf("generation %d has %d living cells", g.Generation(), n)
		}
	}
	if g.Generation() != 5 {
		t.Fatalf("generation = %d, expected 5", g.Generation())
	}
}

func TestBlockStillLife(t *testing.T) {
	rows := []string{
		"......",
		"......",
		"..OO..",
		"..OO..",
		"......",
		"......",
	}
	g := gridFromRows(t, rows...)
	for range 4 {
		g.Advance()
		assertRows(t, g, rows...)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := []string{
		".....",
		".....",
		".OOO.",
		".....",
		".....",
	}
	vertical := []string{
		".....",
		"..O..",
		"..O..",
		"..O..",
		".....",
	}

	g := gridFromRows(t, horizontal...)
	g.Advance()
	assertRows(t, g, vertical...)
	g.Advance()
	assertRows(t, g, horizontal...)
}

func TestEdgesAreDead(t *testing.T) {
	// A blinker against the top edge loses the cell that would wrap
	g := gridFromRows(t,
		"OOO..",
		".....",
		".....",
		".....",
	)
	g.Advance()
	assertRows(t, g,
		".O...",
		".O...",
		".....",
		".....",
	)

	// A corner block stays put
	g = gridFromRows(t,
		"...OO",
		"...OO",
		".....",
	)
	g.Advance()
	assertRows(t, g,
		"...OO",
		"...OO",
		".....",
	)
}

func TestGliderTranslates(t *testing.T) {
	g := gridFromRows(t,
		".O......",
		"..O.....",
		"OOO.....",
		"........",
		"........",
		"........",
	)
	for range 4 {
		g.Advance()
	}
	assertRows(t, g,
		"........",
		"..O.....",
		"...O....",
		".OOO....",
		"........",
		"........",
	)
}

// naiveNext computes the next generation cell by cell from a copy of the grid.
func naiveNext(g *Grid) [][]bool {
	next := make([][]bool, g.Height())
	for y := range g.Height() {
		next[y] = make([]bool, g.Width())
		for x := range g.Width() {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && g.Alive(x+dx, y+dy) {
						n++
					}
				}
			}
			alive := g.Alive(x, y)
			next[y][x] = (alive && (n == 2 || n == 3)) || (!alive && n == 3)
		}
	}
	return next
}

func TestAdvanceUsesPreviousGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, dims := range [][2]int{{1, 1}, {3, 17}, {31, 2}, {64, 48}} {
		g := NewGrid(dims[0], dims[1])
		for y := range g.Height() {
			for x := range g.Width() {
				g.Set(x, y, rng.Intn(3) == 0)
			}
		}

		for gen := range 6 {
			want := naiveNext(g)
			g.Advance()
			for y := range g.Height() {
				for x := range g.Width() {
					if g.Alive(x, y) != want[y][x] {
						t.Fatalf("%dx%d gen %d: cell (%d,%d) alive=%v, expected %v",
							dims[0], dims[1], gen+1, x, y, g.Alive(x, y), want[y][x])
					}
				}
			}
		}
	}
}

func TestCountNeighbors(t *testing.T) {
	g := gridFromRows(t,
		"OOO",
		"OOO",
		"OOO",
	)
	tests := []struct {
		x, y int
		want int
	}{
		{1, 1, 8},
		{0, 0, 3},
		{1, 0, 5},
		{2, 2, 3},
	}
	for _, tt := range tests {
		if got := g.CountNeighbors(tt.x, tt.y); got != tt.want {
			t.Errorf("CountNeighbors(%d,%d) = %d, expected %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLoadObject(t *testing.T) {
	glider := NewPattern("glider", [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	})

	g := NewGrid(6, 6)
	g.Set(0, 0, true)
	if err := g.LoadObject(glider, 2, 1); err != nil {
		t.Fatalf("LoadObject: %v", err)
	}
	assertRows(t, g,
		"O.....",
		"...O..",
		"....O.",
		"..OOO.",
		"......",
		"......",
	)

	// Stamping again ORs in place and never clears
	if err := g.LoadObject(glider, 2, 1); err != nil {
		t.Fatalf("second LoadObject: %v", err)
	}
	if n := g.CountLivingCells(); n != 6 {
		t.Fatalf("living cells = %d, expected 6", n)
	}
}

func TestLoadObjectOutOfBoundsLeavesGridUntouched(t *testing.T) {
	block := NewPattern("block", [][]bool{{true, true}, {true, true}})

	tests := []struct {
		name string
		x, y int
	}{
		{"right edge", 4, 0},
		{"bottom edge", 0, 4},
		{"negative", -1, 2},
		{"far away", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(5, 5)
			g.Set(2, 2, true)
			before := g.Hash()

			err := g.LoadObject(block, tt.x, tt.y)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			if g.Hash() != before {
				t.Fatal("grid modified by failed stamp")
			}
		})
	}
}

func TestLoadObjectDeadCellsMayOverhang(t *testing.T) {
	// Only live cells are placed, so trailing dead columns may hang off the edge
	p := NewPattern("dot", [][]bool{{true, false, false}})
	g := NewGrid(2, 1)
	if err := g.LoadObject(p, 1, 0); err != nil {
		t.Fatalf("LoadObject: %v", err)
	}
	if !g.Alive(1, 0) {
		t.Fatal("expected (1,0) alive")
	}
}

func TestLoadObjectAllDeadIsNoop(t *testing.T) {
	empty := NewPattern("empty", [][]bool{{false, false}, {false, false}})
	g := gridFromRows(t,
		".O.",
		"O.O",
	)
	before := g.Hash()
	if err := g.LoadObject(empty, 0, 0); err != nil {
		t.Fatalf("LoadObject: %v", err)
	}
	if g.Hash() != before {
		t.Fatal("all-dead stamp changed the grid")
	}
}

func TestStagnationDetection(t *testing.T) {
	g := gridFromRows(t,
		".....",
		".....",
		".OOO.",
		".....",
		".....",
	)
	if g.IsStagnant() {
		t.Fatal("stagnant with empty history")
	}

	g.UpdateHistory()
	g.Advance()
	if g.IsStagnant() {
		t.Fatal("vertical phase should not match the horizontal one")
	}

	g.UpdateHistory()
	g.Advance()
	if !g.IsStagnant() {
		t.Fatal("period-2 blinker should be detected")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	g := NewGrid(3, 3)
	for range 20 {
		g.UpdateHistory()
	}
	if len(g.history) != historySize {
		t.Fatalf("history has %d entries, expected %d", len(g.history), historySize)
	}
}
