//go:build ebiten

package app

import (
	"pathviz/internal/core"
	"pathviz/internal/render"
	"pathviz/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

// HUDWidth is the width in pixels of the panel right of the grid.
const HUDWidth = 300

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	cellSize int
}

// New constructs a Game for the provided grid.
func New(g *core.Grid, cfg *Config, log logrus.FieldLogger) *Game {
	if cfg == nil {
		cfg = NewConfig()
	}
	s := NewSession(g, cfg, log)
	return &Game{
		session:  s,
		painter:  render.NewGridPainter(g.Rows(), g.Cols()),
		overlay:  ui.NewOverlay(g.Rows(), g.Cols(), cfg.CellSize),
		hud:      ui.NewHUD(s, HUDWidth),
		cellSize: cfg.CellSize,
	}
}

// Update handles per-frame input and advances the active run.
func (g *Game) Update() error {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Abort()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		_ = s.StartOrResume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Pause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Finish()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.Abort()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.ClearStatus()
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())
	g.handleMouse()

	s.Tick()
	return nil
}

func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= g.gridWidth() || my >= g.gridHeight() {
		return
	}
	ref := CellAt(mx, my, g.cellSize)
	if left {
		g.session.Primary(ref)
	} else {
		g.session.Secondary(ref)
	}
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Grid(), g.cellSize)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.gridHeight())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridWidth() + HUDWidth, g.gridHeight()
}

func (g *Game) gridWidth() int  { return g.session.Grid().Cols() * g.cellSize }
func (g *Game) gridHeight() int { return g.session.Grid().Rows() * g.cellSize }
