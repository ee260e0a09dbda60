package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/milk9111/corgi/prefabs"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultName is the built-in level used whenever nothing better is available.
const DefaultName = "default.json"

type Surface string

const (
	SurfaceGrass Surface = "grass"
	SurfaceStone Surface = "stone"
	SurfaceCloud Surface = "cloud"
	SurfaceLava  Surface = "lava"
)

// Description is the declarative level format shared by the generators,
// level files on disk and the embedded fallback.
type Description struct {
	ThemeName       string         `json:"themeName"`
	BackgroundColor string         `json:"backgroundColor"`
	GroundColor     string         `json:"groundColor"`
	Platforms       []PlatformDecl `json:"platforms"`
	Enemies         []EnemyDecl    `json:"enemies"`
	Obstacles       []ObstacleDecl `json:"obstacles,omitempty"`
	Collectibles    []Point        `json:"collectibles"`
	TennisBalls     []Point        `json:"tennisBalls,omitempty"`
	Goal            *Point         `json:"goal,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PlatformDecl struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Type  Surface `json:"type"`
}

// EnemyDecl places an enemy by its feet point. Type is free text; unknown
// values become inert walkers at instantiation.
type EnemyDecl struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// ObstacleDecl places a hazard with (X, Y) on the surface it stands on.
type ObstacleDecl struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type,omitempty"`
}

const (
	defaultBackground = "#87CEEB"
	defaultGround     = "#4CAF50"
)

// Parse decodes and normalizes a level description.
func Parse(data []byte) (*Description, error) {
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	d.Normalize()
	return &d, nil
}

func LoadLevelFromFS(name string) (*Description, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads a level description from disk.
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", path, err)
	}
	return d, nil
}

// Default returns a fresh copy of the embedded fallback level.
func Default() *Description {
	d, err := LoadLevelFromFS(DefaultName)
	if err != nil {
		panic(err)
	}
	return d
}

// Encode writes the description as indented JSON.
func (d *Description) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Clone returns a deep copy.
func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}
	c := *d
	c.Platforms = append([]PlatformDecl(nil), d.Platforms...)
	c.Enemies = append([]EnemyDecl(nil), d.Enemies...)
	c.Obstacles = append([]ObstacleDecl(nil), d.Obstacles...)
	c.Collectibles = append([]Point(nil), d.Collectibles...)
	c.TennisBalls = append([]Point(nil), d.TennisBalls...)
	if d.Goal != nil {
		g := *d.Goal
		c.Goal = &g
	}
	return &c
}

// Normalize clamps or drops degenerate geometry and fills defaults in place.
// It returns a note per repaired entry, for logging.
func (d *Description) Normalize() []string {
	if d == nil {
		return nil
	}
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	d.ThemeName = strings.TrimSpace(d.ThemeName)
	if d.ThemeName == "" {
		d.ThemeName = "Unnamed Level"
	}
	if _, err := prefabs.ParseHexColor(d.BackgroundColor); err != nil {
		note("background color %q replaced", d.BackgroundColor)
		d.BackgroundColor = defaultBackground
	}
	if _, err := prefabs.ParseHexColor(d.GroundColor); err != nil {
		note("ground color %q replaced", d.GroundColor)
		d.GroundColor = defaultGround
	}

	platforms := d.Platforms[:0]
	for i, p := range d.Platforms {
		if !finite(p.X, p.Y, p.Width) || p.Width <= 0 {
			note("platform %d dropped: degenerate geometry", i)
			continue
		}
		switch p.Type {
		case SurfaceGrass, SurfaceStone, SurfaceCloud, SurfaceLava:
		default:
			note("platform %d surface %q treated as grass", i, p.Type)
			p.Type = SurfaceGrass
		}
		platforms = append(platforms, p)
	}
	d.Platforms = platforms

	enemies := d.Enemies[:0]
	for i, e := range d.Enemies {
		if !finite(e.X, e.Y) {
			note("enemy %d dropped: degenerate position", i)
			continue
		}
		e.Type = strings.ToLower(strings.TrimSpace(e.Type))
		enemies = append(enemies, e)
	}
	d.Enemies = enemies

	obstacles := d.Obstacles[:0]
	for i, o := range d.Obstacles {
		if !finite(o.X, o.Y) {
			note("obstacle %d dropped: degenerate position", i)
			continue
		}
		if o.Type == "" {
			o.Type = "spike"
		}
		obstacles = append(obstacles, o)
	}
	d.Obstacles = obstacles

	d.Collectibles = finitePoints(d.Collectibles, "collectible", note)
	d.TennisBalls = finitePoints(d.TennisBalls, "tennis ball", note)

	if d.Goal != nil && !finite(d.Goal.X, d.Goal.Y) {
		note("goal dropped: degenerate position")
		d.Goal = nil
	}
	return notes
}

// End is the rightmost x any declared platform or the goal reaches.
func (d *Description) End() float64 {
	end := 0.0
	for _, p := range d.Platforms {
		end = math.Max(end, p.X+p.Width)
	}
	if d.Goal != nil {
		end = math.Max(end, d.Goal.X)
	}
	return end
}

func finitePoints(points []Point, what string, note func(string, ...any)) []Point {
	out := points[:0]
	for i, p := range points {
		if !finite(p.X, p.Y) {
			note("%s %d dropped: degenerate position", what, i)
			continue
		}
		out = append(out, p)
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
