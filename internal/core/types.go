package core

import "fmt"

// CellRef identifies a cell by its row and column.
type CellRef struct {
	Row int
	Col int
}

// String formats the reference as (row,col).
func (r CellRef) String() string {
	return fmt.Sprintf("(%d,%d)", r.Row, r.Col)
}

// Role is the user-assigned classification of a cell.
type Role uint8

const (
	RoleFree Role = iota
	RoleStart
	RoleEnd
	RoleBarrier
)

func (r Role) String() string {
	switch r {
	case RoleFree:
		return "free"
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleBarrier:
		return "barrier"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Status is the per-run annotation written by the search engine.
type Status uint8

const (
	StatusUnvisited Status = iota
	StatusOpen
	StatusClosed
	StatusPath
)

func (s Status) String() string {
	switch s {
	case StatusUnvisited:
		return "unvisited"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusPath:
		return "path"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Cell is a single grid position. Role and Status are independent; the
// search engine only ever writes Status.
type Cell struct {
	Ref    CellRef
	Role   Role
	Status Status

	neighbors []CellRef
}
