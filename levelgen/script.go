package levelgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

// DefaultScript is the procedural generator shipped under prefabs/scripts.
const DefaultScript = "level.tengo"

// ScriptGenerator runs a tengo script that builds the level as a map. The
// script sees theme, difficulty, length, density and seed, and must define
// `level`.
type ScriptGenerator struct {
	script string
	seed   int64
	debug  bool
}

func NewScriptGenerator(script string, seed int64) *ScriptGenerator {
	if script == "" {
		script = DefaultScript
	}
	return &ScriptGenerator{script: script, seed: seed}
}

func (g *ScriptGenerator) SetDebug(debug bool) { g.debug = debug }

func (g *ScriptGenerator) Name() string { return "script:" + g.script }

func (g *ScriptGenerator) Generate(ctx context.Context, p Params) (*levels.Description, error) {
	src, err := prefabs.LoadScript(g.script)
	if err != nil {
		return nil, fmt.Errorf("levelgen: load script %s: %w", g.script, err)
	}

	p = p.Normalized()
	script := tengo.NewScript(src)
	_ = script.Add("theme", p.Theme)
	_ = script.Add("difficulty", string(p.Difficulty))
	_ = script.Add("length", string(p.Length))
	_ = script.Add("density", string(p.Density))
	_ = script.Add("seed", g.seed^p.hash())
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("levelgen: run script %s: %w", g.script, err)
	}
	if !compiled.IsDefined("level") {
		return nil, fmt.Errorf("levelgen: script %s: %w", g.script, ErrEmptyResponse)
	}
	if g.debug && compiled.IsDefined("summary") {
		log.Printf("levelgen: %s", compiled.Get("summary").String())
	}

	raw := tengo.ToInterface(compiled.Get("level").Object())
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("levelgen: encode script result: %w", err)
	}
	d, err := levels.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levelgen: script %s: %w", g.script, err)
	}
	return d, nil
}
