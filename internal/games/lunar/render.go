package lunar

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/terrain"
)

// Visual characters for rendering
const (
	GroundChar = '▒'
	PadChar    = '═'
	HullChar   = '█'
	LegChar    = '┃'
	FlameChar  = '▼'
	PuffChar   = '*'
)

// projection maps world pixels onto screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(dst *core.Screen, worldW, worldH int) projection {
	return projection{
		sx: float64(dst.Width()) / float64(worldW),
		sy: float64(dst.Height()) / float64(worldH),
	}
}

func (p projection) cell(x, y float64) core.Point {
	return core.Pt(x*p.sx, y*p.sy)
}

func (p projection) point(q core.Point) core.Point {
	return p.cell(float64(q.X), float64(q.Y))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.terrain == nil || g.lander == nil {
		return
	}
	proj := newProjection(dst, g.terrain.Width(), g.terrain.Height())

	drawTerrain(dst, g.terrain, proj)
	g.drawLander(dst, proj)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		title := "LANDED!"
		if g.outcome != lander.ReasonLanded {
			title = "FAILED: " + outcomeText(g.outcome)
		}
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// DrawTerrain draws the ground profile and pad scaled to fill dst.
func DrawTerrain(dst *core.Screen, t *terrain.Terrain) {
	drawTerrain(dst, t, newProjection(dst, t.Width(), t.Height()))
}

func drawTerrain(dst *core.Screen, t *terrain.Terrain, proj projection) {
	for _, s := range t.Segments() {
		dst.DrawLine(proj.cell(s.A.X, s.A.Y), proj.cell(s.B.X, s.B.Y), GroundChar, core.ColorTerrain)
	}
	ground := float64(t.GroundHeight())
	dst.DrawLine(proj.cell(t.PadLeft(), ground), proj.cell(t.PadRight(), ground), PadChar, core.ColorPad)
}

func (g *Game) drawLander(dst *core.Screen, proj projection) {
	l := g.lander
	for _, leg := range l.Legs() {
		dst.DrawLine(proj.point(leg.From), proj.point(leg.To), LegChar, core.ColorLegs)
	}

	v := l.Vertices()
	for i := range v {
		dst.DrawLine(proj.point(v[i]), proj.point(v[(i+1)%len(v)]), HullChar, core.ColorHull)
	}

	if !l.Active() {
		return
	}
	// Flames sit one cell outside the hull: below the bottom edge for the
	// main engine, beside the side edges for the thrusters.
	mid := func(a, b core.Point) core.Point {
		return proj.point(core.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
	}
	switch g.lastAction {
	case lander.Main:
		p := mid(v[2], v[3])
		dst.SetColored(p.X, p.Y+1, FlameChar, core.ColorFlame)
	case lander.Left:
		p := mid(v[0], v[3])
		dst.SetColored(p.X-1, p.Y, PuffChar, core.ColorFlame)
	case lander.Right:
		p := mid(v[1], v[2])
		dst.SetColored(p.X+1, p.Y, PuffChar, core.ColorFlame)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	l := g.lander
	altitude := float64(g.terrain.GroundHeight()) - l.Y()
	if h, ok := g.terrain.HeightAt(l.X()); ok {
		altitude = h - l.Y()
	}

	hud := fmt.Sprintf(" Score: %d  Fuel: %3.0f  Alt: %4.0f  VX: %+6.1f  VY: %+6.1f  Angle: %+4.0f° ",
		g.score, l.Fuel(), altitude, l.VelocityX(), l.VelocityY(), l.Angle()*180/math.Pi)
	dst.DrawTextColored(1, 0, hud, core.ColorHUD)

	var tags []string
	if g.autopilot {
		tags = append(tags, "[AUTO]")
	}
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		tags = append(tags, fmt.Sprintf("Lvl: %.0f%%", g.level*100))
	}
	x := dst.Width() - 1
	for i := len(tags) - 1; i >= 0; i-- {
		x -= utf8.RuneCountInString(tags[i]) + 1
		dst.DrawTextColored(x, 0, tags[i], core.ColorHUD)
	}

	if l.Active() {
		tc := g.terrain.Config()
		switch {
		case l.VelocityY() >= tc.SafeVelocity:
			dst.DrawTextColored(1, 1, " DESCENT TOO FAST ", core.ColorAlert)
		case math.Abs(l.Angle()) >= tc.SafeAngle:
			dst.DrawTextColored(1, 1, " LEVEL THE LANDER ", core.ColorAlert)
		case l.Fuel() < l.Config().InitialFuel*0.2:
			dst.DrawTextColored(1, 1, " LOW FUEL ", core.ColorAlert)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	titleColor := core.ColorHUD
	if g.gameOver && g.outcome != lander.ReasonLanded {
		titleColor = core.ColorAlert
	}
	dst.DrawTextCentered(box.Y+1, title, titleColor)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}

func outcomeText(r lander.TerminateReason) string {
	switch r {
	case lander.ReasonCrashed:
		return "crashed"
	case lander.ReasonOutOfBounds:
		return "lost in space"
	case lander.ReasonOutOfFuel:
		return "out of fuel"
	}
	return string(r)
}
