// Command nescore is the ebiten-based demo host: it loads a ROM, drives the
// core in a background goroutine, blits the framebuffer through palette.RGBA
// each frame, and polls ebiten's keyboard state into the controller ports.
// Grounded on gintendo.go's main() shape (flag.String for the ROM path, a
// goroutine driving the core while ebiten.RunGame blocks on the host loop)
// and console/bus.go's Draw/Layout methods plus console/controller.go's
// ebiten.IsKeyPressed polling table, moved here from the core per
// spec.md section 1's "windowing... out of scope" and "input device
// polling... out of scope" non-goals.
package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kestrelnes/nescore/emu"
	"github.com/kestrelnes/nescore/palette"
)

var (
	romPath = flag.String("rom", "", "path to an iNES ROM to run")
	scale   = flag.Int("scale", 2, "integer window scale factor")
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// keys is port 1's button-to-key table, in the A/B/Select/Start/Up/Down/
// Left/Right bit order the controller package expects.
var keys = [8]ebiten.Key{
	ebiten.KeyZ,
	ebiten.KeyX,
	ebiten.KeyShift,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

func pollButtons() byte {
	var b byte
	for i, k := range keys {
		if ebiten.IsKeyPressed(k) {
			b |= 1 << i
		}
	}
	return b
}

// game adapts EmulationState to ebiten.Game. It owns no emulation state
// itself beyond the pointer; Update/Draw/Layout are the only methods
// ebiten requires.
type game struct {
	state *emu.EmulationState
	image *ebiten.Image
}

func newGame(state *emu.EmulationState) *game {
	return &game{
		state: state,
		image: ebiten.NewImage(screenWidth, screenHeight),
	}
}

// Update polls this frame's button state; the emulation itself runs on
// its own goroutine (see run()), matching bdwalton's console.Bus.Update,
// which also defers all core driving to an external loop.
func (g *game) Update() error {
	g.state.Controller.UpdateButtons(pollButtons(), 0)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pix := make([]byte, screenWidth*screenHeight*4)
	for i, idx := range g.state.Framebuffer {
		c := palette.RGBA(idx)
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	g.image.WritePixels(pix)
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// run drives the core as fast as it will go, with no frame pacing, until ctx is cancelled,
// the goroutine gintendo.go's main() spawns generalized to call
// RunFrame() once per iteration rather than looping ppu.Tick()/cpu.Tick()
// inline, since emu.EmulationState.Tick() already encodes that ordering.
func run(ctx context.Context, state *emu.EmulationState) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			state.RunFrame()
		}
	}
}

func main() {
	flag.Parse()
	if *romPath == "" {
		glog.Fatal("nescore: -rom is required")
	}

	state, err := emu.LoadROM(*romPath)
	if err != nil {
		glog.Fatalf("nescore: couldn't load %q: %v", *romPath, err)
	}

	ebiten.SetWindowSize(screenWidth**scale, screenHeight**scale)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	g := newGame(state)
	go run(ctx, state)

	if err := ebiten.RunGame(g); err != nil {
		glog.Fatalf("nescore: %v", err)
	}
	cancel()
}
