package model

import (
	"bufio"
	"io"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear homes the cursor and erases the screen
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws a grid as text, two columns per cell
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	for y := range g.Height() {
		for _, c := range g.Row(y) {
			if c.Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClear)
	return err
}
