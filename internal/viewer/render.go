package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"sweeptide/internal/arena"
	"sweeptide/internal/combat"
	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

var (
	colorBackground = color.RGBA{18, 20, 28, 255}
	colorArena      = color.RGBA{32, 36, 48, 255}
	colorWall       = color.RGBA{90, 90, 110, 255}
	colorPlayer     = color.RGBA{80, 220, 120, 255}
	colorMagnet     = color.RGBA{80, 220, 120, 60}
	colorEnemy      = color.RGBA{220, 70, 70, 255}
	colorSuspended  = color.RGBA{120, 120, 240, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorWarning    = color.RGBA{250, 200, 80, 255}
)

var projectileColors = map[config.ProjectileKind]color.RGBA{
	config.KindSimple:    {240, 240, 160, 255},
	config.KindExplosive: {250, 140, 40, 255},
	config.KindOrbiting:  {120, 200, 250, 255},
	config.KindBoomerang: {200, 160, 100, 255},
	config.KindVacuumBag: {170, 120, 220, 255},
	config.KindFlame:     {255, 90, 20, 200},
}

const hudLine = 16

// Draw renders the arena, its entities and the HUD
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	scale := float32(v.settings.Window.Scale)
	w := v.world
	tuning := w.Tuning()

	vector.DrawFilledRect(screen, 0, 0, float32(tuning.Arena.Width)*scale, float32(tuning.Arena.Height)*scale, colorArena, false)
	for _, wall := range w.Grid().Walls() {
		minX, minY, maxX, maxY := wall.GetBounds()
		vector.DrawFilledRect(screen, float32(minX)*scale, float32(minY)*scale,
			float32(maxX-minX)*scale, float32(maxY-minY)*scale, colorWall, false)
	}

	w.Enemies(func(e *arena.Enemy) {
		c := colorEnemy
		if e.Suspended() {
			c = colorSuspended
		}
		drawCircle(screen, e.Pos, e.Radius, scale, c)
	})

	w.Engine().Projectiles().Each(func(p *combat.Projectile) {
		c, ok := projectileColors[p.Kind]
		if !ok {
			c = colorText
		}
		r := p.HitRadius
		if p.Kind == config.KindVacuumBag && p.Phase == combat.PhaseLanded {
			vector.StrokeCircle(screen, float32(p.Pos.X)*scale, float32(p.Pos.Y)*scale,
				float32(tuning.Combat.Vacuum.Radius)*scale, 1, c, true)
		}
		drawCircle(screen, p.Pos, r, scale, c)
	})

	player := w.Player()
	vector.StrokeCircle(screen, float32(player.Pos.X)*scale, float32(player.Pos.Y)*scale,
		float32(player.MagnetRadius())*scale, 1, colorMagnet, true)
	drawCircle(screen, player.Pos, 0.5, scale, colorPlayer)

	v.drawHUD(screen)
}

func drawCircle(screen *ebiten.Image, pos mathutil.Vec2, radius float64, scale float32, c color.Color) {
	vector.DrawFilledCircle(screen, float32(pos.X)*scale, float32(pos.Y)*scale, max(float32(radius)*scale, 2), c, true)
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	w := v.world
	stats := w.Stats()
	player := w.Player()
	face := basicfont.Face7x13

	x := int(float64(w.Tuning().Arena.Width)*v.settings.Window.Scale) + 12
	y := 20
	line := func(c color.Color, format string, args ...any) {
		ebitext.Draw(screen, fmt.Sprintf(format, args...), face, x, y, c)
		y += hudLine
	}

	line(colorText, "time %.1fs  wave %d  tps %.0f", w.Clock(), w.Wave(), ebiten.ActualTPS())
	line(colorText, "hp %.0f/%.0f  kills %d  score %d", player.Health(), player.MaxHealth(), stats.Kills(), stats.Score())
	line(colorText, "enemies %d  projectiles %d", w.EnemyCount(), w.Engine().Projectiles().Len())
	y += hudLine

	line(colorText, "weapons %d/%d", w.Inventory().Len(), w.Inventory().MaxSlots())
	for _, weapon := range w.Inventory().Weapons() {
		line(colorText, "  %s lv%d", weapon.Name(), weapon.Level())
	}
	y += hudLine

	line(colorText, "damage %.0f", stats.DamageDealt())
	for _, ws := range stats.TopWeapons(6) {
		line(colorText, "  %-24s %7.0f %5.1f%%", ws.Label, ws.Damage, ws.Percentage)
	}
	y += hudLine

	line(colorText, "perks")
	for _, p := range w.Perks().ActivePerks() {
		line(colorText, "  %s lv%d", p.Def.Name, p.Level)
	}
	y += hudLine

	if v.message != "" {
		line(colorWarning, "%s", v.message)
	}
	if w.Over() {
		line(colorWarning, "player down - R to restart")
	} else if v.paused {
		line(colorWarning, "paused")
	}
	line(colorText, "1-9 perk  shift+1-9 weapon  P pause  R reset")
}
