// Package viewer is the ebiten debug window around an arena run
package viewer

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"sweeptide/internal/arena"
	"sweeptide/internal/config"
)

// alertEvery is how often, in ticks, the tick monitor is checked
const alertEvery = 300

// Viewer implements ebiten.Game
type Viewer struct {
	world    *arena.World
	settings *config.Settings
	input    *InputHandler

	perkKeys   []string
	weaponKeys []string

	paused  bool
	ticks   int
	message string
}

func New(world *arena.World, data *config.Data, settings *config.Settings) *Viewer {
	v := &Viewer{
		world:      world,
		settings:   settings,
		perkKeys:   data.Perks.Keys(),
		weaponKeys: data.Weapons.Keys(),
	}
	v.input = NewInputHandler(v)
	return v
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	win := v.settings.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetTPS(v.settings.TPS)
	return ebiten.RunGame(v)
}

// Update runs one fixed simulation tick
func (v *Viewer) Update() error {
	v.input.HandleInput()
	if v.paused || v.world.Over() {
		return nil
	}

	v.world.Update(1 / float64(v.settings.TPS))
	v.ticks++
	if v.ticks%alertEvery == 0 {
		v.world.Monitor().LogAlerts(2000)
	}
	return nil
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.settings.Window.Width, v.settings.Window.Height
}

func (v *Viewer) grantPerk(slot int) {
	if slot >= len(v.perkKeys) {
		return
	}
	key := v.perkKeys[slot]
	level, err := v.world.GrantPerk(key)
	if err != nil {
		v.notify(fmt.Sprintf("%s: %v", key, err))
		slog.Debug("perk not granted", "perk", key, "error", err)
		return
	}
	v.notify(fmt.Sprintf("%s -> level %d", key, level))
}

func (v *Viewer) addWeapon(slot int) {
	if slot >= len(v.weaponKeys) {
		return
	}
	key := v.weaponKeys[slot]
	w, err := v.world.AddWeapon(key)
	if err != nil {
		v.notify(fmt.Sprintf("%s: %v", key, err))
		return
	}
	v.notify(fmt.Sprintf("%s -> level %d", w.Name(), w.Level()))
}

func (v *Viewer) reset() {
	v.world.Reset()
	v.ticks = 0
	v.notify("run reset")
}

func (v *Viewer) notify(msg string) {
	v.message = msg
}
