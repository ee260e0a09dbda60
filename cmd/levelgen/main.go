// Command levelgen produces a level description without opening a window.
// It runs the same generator chain as the game and can play the result
// headlessly as a smoke check.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/input"
	"github.com/milk9111/corgi/levelgen"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
	"github.com/milk9111/corgi/sim"
)

func main() {
	theme := flag.String("theme", levelgen.DefaultParams().Theme, "level theme")
	difficulty := flag.String("difficulty", string(levelgen.DifficultyMedium), "Easy, Medium or Hard")
	length := flag.String("length", string(levelgen.LengthShort), "Short, Medium or Long")
	density := flag.String("density", string(levelgen.DensityMedium), "Low, Medium or High")
	seed := flag.Int64("seed", 1, "script generator seed")
	offline := flag.Bool("offline", false, "skip the remote generator")
	out := flag.String("out", "", "write the level JSON here instead of stdout")
	simulate := flag.Int("simulate", 0, "play the level for this many ticks and print a summary")
	timeout := flag.Duration("timeout", 45*time.Second, "per-generator timeout")
	fallback := flag.String("fallback", "", "level JSON used when every generator fails (built-in level when empty)")
	flag.Parse()

	var generators []levelgen.Generator
	if !*offline {
		generators = append(generators, levelgen.NewGeminiGeneratorFromEnv())
	}
	generators = append(generators, levelgen.NewScriptGenerator("", *seed))
	service := levelgen.NewService(generators...)
	service.SetTimeout(*timeout)
	if *fallback != "" {
		d, err := levels.LoadFile(*fallback)
		if err != nil {
			log.Fatalf("load fallback %s: %v", *fallback, err)
		}
		service.SetFallback(d.Clone)
	}

	params := levelgen.Params{
		Theme:      *theme,
		Difficulty: levelgen.Difficulty(*difficulty),
		Length:     levelgen.Length(*length),
		Density:    levelgen.Density(*density),
	}
	res := service.Generate(context.Background(), params)
	if res.Err != nil {
		log.Printf("generation fell through: %v", res.Err)
	}
	log.Printf("level %q from %s", res.Level.ThemeName, res.Source)

	data, err := res.Level.Encode()
	if err != nil {
		log.Fatalf("encode level: %v", err)
	}
	if *out == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	if *simulate > 0 {
		if err := playthrough(res, *seed, *simulate); err != nil {
			log.Fatal(err)
		}
	}
}

// playthrough holds right and hops at a steady rhythm until the run ends
// or the tick budget runs out.
func playthrough(res levelgen.Result, seed int64, ticks int) error {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}
	s, err := sim.New(sim.Options{Seed: seed, Tuning: tuning, Level: res.Level})
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	events := map[ecs.EventType]int{}
	n := 0
	for ; n < ticks && s.State() == sim.StatePlaying; n++ {
		controls := input.Controls{Held: input.MoveRight}
		if n%45 == 0 {
			controls.Held |= input.Jump
			controls.Pressed |= input.Jump | input.Attack
		}
		for _, evt := range s.Tick(controls) {
			events[evt.Type]++
		}
	}

	run := s.Run()
	log.Printf("after %d ticks: state=%s score=%d lives=%d", n, s.State(), run.Score, run.Lives)
	for kind, count := range events {
		log.Printf("  %s x%d", kind, count)
	}
	return nil
}
