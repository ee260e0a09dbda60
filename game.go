package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/input"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
	"github.com/milk9111/corgi/sim"
)

type Game struct {
	frames int
	debug  bool

	sim       *sim.Simulation
	sampler   *input.Sampler
	keys      []ebiten.Key
	codes     []int
	watcher   *prefabs.Watcher
	levelPath string

	menu *Menu
	ends []*endScreen
	ui   map[sim.State]*ebitenui.UI

	status string
}

func NewGame(s *sim.Simulation, watcher *prefabs.Watcher, levelPath string, debug bool) *Game {
	sampler := input.NewSampler()
	sampler.Bind(input.MoveLeft, int(ebiten.KeyArrowLeft), int(ebiten.KeyA))
	sampler.Bind(input.MoveRight, int(ebiten.KeyArrowRight), int(ebiten.KeyD))
	sampler.Bind(input.Jump, int(ebiten.KeySpace), int(ebiten.KeyArrowUp), int(ebiten.KeyW))
	sampler.Bind(input.Attack, int(ebiten.KeyZ), int(ebiten.KeyK))

	g := &Game{
		debug:     debug,
		sim:       s,
		sampler:   sampler,
		watcher:   watcher,
		levelPath: levelPath,
	}
	g.menu = NewMenu(g)
	gameOver := newEndScreen(g, "GAME OVER", "FINAL SCORE", "MAIN MENU", "TRY AGAIN")
	complete := newEndScreen(g, "LEVEL COMPLETE!", "SCORE", "NEW LEVEL", "REPLAY")
	g.ends = []*endScreen{gameOver, complete}
	g.ui = map[sim.State]*ebitenui.UI{
		sim.StateMenu:          g.menu.UI,
		sim.StateGenerating:    newGeneratingUI(),
		sim.StateGameOver:      gameOver.UI,
		sim.StateLevelComplete: complete.UI,
	}
	return g
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	if res, ok := g.sim.PollGeneration(); ok {
		g.status = "Loaded " + res.Level.ThemeName + " (" + res.Source + ")"
		if res.Err != nil {
			g.status += ": " + res.Err.Error()
		}
	}

	switch g.sim.State() {
	case sim.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.returnToMenu()
		}
	case sim.StateGameOver, sim.StateLevelComplete:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.start()
		}
	}

	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	g.codes = g.codes[:0]
	for _, k := range g.keys {
		g.codes = append(g.codes, int(k))
	}
	g.sampler.SetHeld(g.codes)

	for _, evt := range g.sim.Tick(g.sampler.Sample()) {
		if g.debug {
			log.Printf("event: %s %v", evt.Type, evt.Data)
		}
		if evt.Type == ecs.EventLevelComplete {
			g.status = ""
		}
	}

	if ui, ok := g.ui[g.sim.State()]; ok {
		g.refreshOverlay()
		ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	drawWorld(screen, snap)
	drawHUD(screen, snap, g.debug)

	if ui, ok := g.ui[snap.State]; ok {
		ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	t := g.sim.Tuning()
	return int(t.Camera.ViewWidth), int(t.Camera.ViewHeight)
}

func (g *Game) start() {
	var err error
	if g.sim.State() == sim.StateMenu {
		err = g.sim.Start()
	} else {
		err = g.sim.Restart()
	}
	if err != nil {
		log.Printf("start: %v", err)
	}
	g.sampler.Reset()
}

func (g *Game) returnToMenu() {
	if err := g.sim.ReturnToMenu(); err != nil {
		log.Printf("menu: %v", err)
	}
}

func (g *Game) generate() {
	p := g.menu.Params()
	if p.Theme == "" {
		g.status = "Describe a level first"
		return
	}
	if err := g.sim.RequestGeneration(context.Background(), p); err != nil {
		g.status = err.Error()
		return
	}
	g.status = ""
}

// useLevel installs a level that came from outside the generator, such as
// a pasted description.
func (g *Game) useLevel(d *levels.Description) {
	if err := g.sim.SetLevel(d); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "Loaded " + d.ThemeName
}

func (g *Game) refreshOverlay() {
	score := g.sim.Run().Score
	g.menu.SetStatus(g.status)
	for _, end := range g.ends {
		end.SetScore(score)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case g.levelPath != "" && filepath.Clean(name) == filepath.Clean(g.levelPath):
		d, err := levels.LoadFile(g.levelPath)
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		if err := g.sim.SetLevel(d); err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		log.Printf("reloaded level %s", name)
	case filepath.Base(name) == "tuning.yaml":
		data, err := prefabs.Load("tuning.yaml")
		if err == nil {
			err = prefabs.ParseTuning(data, g.sim.Tuning())
		}
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		log.Printf("reloaded tuning")
	}
}
