package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRaggedText is returned when the rows of a text grid differ in length.
	ErrRaggedText = errors.New("text grid rows differ in length")
	// ErrUnknownGlyph is returned for characters outside the text grid alphabet.
	ErrUnknownGlyph = errors.New("unknown glyph in text grid")
)

const (
	glyphFree    = '.'
	glyphBarrier = '#'
	glyphStart   = 'S'
	glyphEnd     = 'E'
	glyphOpen    = 'o'
	glyphClosed  = 'x'
	glyphPath    = '*'
)

// ParseText builds a grid from its text form: one line per row, '.' for a
// free cell, '#' for a barrier, 'S' and 'E' for the start and end. Blank
// lines and surrounding whitespace are ignored. Neighbor lists are computed
// before returning.
func ParseText(src string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty text grid", ErrInvalidSize)
	}
	cols := len(lines[0])
	g, err := NewGrid(len(lines), cols)
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedText, r, len(line), cols)
		}
		for c := 0; c < cols; c++ {
			var role Role
			switch line[c] {
			case glyphFree, glyphOpen, glyphClosed, glyphPath:
				continue
			case glyphBarrier:
				role = RoleBarrier
			case glyphStart:
				role = RoleStart
			case glyphEnd:
				role = RoleEnd
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownGlyph, line[c], r, c)
			}
			if err := g.SetRole(CellRef{Row: r, Col: c}, role); err != nil {
				return nil, err
			}
		}
	}
	g.RecomputeNeighbors()
	return g, nil
}

// Text renders the grid one line per row. Roles other than free win over
// the search status of a cell.
func (g *Grid) Text() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for i := range g.cells {
		b.WriteByte(glyphFor(&g.cells[i]))
		if (i+1)%g.cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func glyphFor(c *Cell) byte {
	switch c.Role {
	case RoleStart:
		return glyphStart
	case RoleEnd:
		return glyphEnd
	case RoleBarrier:
		return glyphBarrier
	}
	switch c.Status {
	case StatusOpen:
		return glyphOpen
	case StatusClosed:
		return glyphClosed
	case StatusPath:
		return glyphPath
	default:
		return glyphFree
	}
}
