package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/levelgen"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
	"github.com/milk9111/corgi/sim"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelPath := flag.String("level", "", "level description JSON file (built-in level when empty)")
	seed := flag.Int64("seed", 0, "random seed (time-based when 0)")
	watch := flag.Bool("watch", false, "reload tuning, scripts and the -level file when they change")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}

	var level *levels.Description
	if *levelPath != "" {
		if level, err = levels.LoadFile(*levelPath); err != nil {
			log.Printf("failed to load level %s: %v", *levelPath, err)
		}
	}

	script := levelgen.NewScriptGenerator("", *seed)
	script.SetDebug(*debug)
	generator := levelgen.NewService(levelgen.NewGeminiGeneratorFromEnv(), script)

	simulation, err := sim.New(sim.Options{
		Seed:      *seed,
		Tuning:    tuning,
		Level:     level,
		Generator: generator,
		Debug:     *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if *levelPath != "" {
			dirs = append(dirs, filepath.Dir(*levelPath))
		}
		if watcher, err = prefabs.NewWatcher(dirs...); err != nil {
			log.Printf("watch: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(common.TicksPerSecond)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(tuning.Camera.ViewWidth), int(tuning.Camera.ViewHeight))
	ebiten.SetWindowTitle("Super Corgi Adventure")

	game := NewGame(simulation, watcher, *levelPath, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
