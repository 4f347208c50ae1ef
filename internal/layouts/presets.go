package layouts

import (
	"pathviz/internal/core"
)

// WallConfig controls the single-wall layout.
type WallConfig struct {
	// Gap is the row of the opening in the wall; negative means no opening.
	Gap int
}

// WallFromMap reads the "gap" option. "none" closes the wall completely;
// the default opening is on the bottom row.
func WallFromMap(cfg map[string]string, rows int) WallConfig {
	if cfg["gap"] == "none" {
		return WallConfig{Gap: -1}
	}
	return WallConfig{Gap: intOption(cfg, "gap", rows-1)}
}

// ScatterConfig controls random barrier placement.
type ScatterConfig struct {
	Density float64
	Seed    int64
}

// DefaultScatterConfig returns the standard scatter settings.
func DefaultScatterConfig() ScatterConfig {
	return ScatterConfig{Density: 0.25, Seed: 42}
}

// ScatterFromMap populates a ScatterConfig from a string map.
func ScatterFromMap(cfg map[string]string) ScatterConfig {
	c := DefaultScatterConfig()
	c.Density = floatOption(cfg, "density", c.Density)
	c.Seed = int64Option(cfg, "seed", c.Seed)
	return c
}

// block turns ref into a barrier unless it holds the start or end.
func block(g *core.Grid, ref core.CellRef) error {
	if role := g.Cell(ref).Role; role == core.RoleStart || role == core.RoleEnd {
		return nil
	}
	return g.SetRole(ref, core.RoleBarrier)
}

func empty(map[string]string) Builder {
	return corners
}

func wall(cfg map[string]string) Builder {
	return func(g *core.Grid) error {
		c := WallFromMap(cfg, g.Rows())
		if err := corners(g); err != nil {
			return err
		}
		col := g.Cols() / 2
		for r := 0; r < g.Rows(); r++ {
			if r == c.Gap {
				continue
			}
			if err := block(g, core.CellRef{Row: r, Col: col}); err != nil {
				return err
			}
		}
		return nil
	}
}

func scatter(cfg map[string]string) Builder {
	c := ScatterFromMap(cfg)
	return func(g *core.Grid) error {
		if err := corners(g); err != nil {
			return err
		}
		core.ScatterBarriers(g, core.NewRNG(c.Seed), c.Density)
		return nil
	}
}

// rooms splits the grid into four rooms with a doorway in each wall
// segment.
func rooms(map[string]string) Builder {
	return func(g *core.Grid) error {
		if err := corners(g); err != nil {
			return err
		}
		midR, midC := g.Rows()/2, g.Cols()/2
		doors := map[core.CellRef]bool{}
		doors[core.CellRef{Row: midR / 2, Col: midC}] = true
		doors[core.CellRef{Row: midR + (g.Rows()-midR)/2, Col: midC}] = true
		doors[core.CellRef{Row: midR, Col: midC / 2}] = true
		doors[core.CellRef{Row: midR, Col: midC + (g.Cols()-midC)/2}] = true

		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				ref := core.CellRef{Row: r, Col: c}
				if (r != midR && c != midC) || doors[ref] {
					continue
				}
				if err := block(g, ref); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func init() {
	Register("empty", empty)
	Register("wall", wall)
	Register("scatter", scatter)
	Register("rooms", rooms)
}
