package levelgen

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/milk9111/corgi/levels"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator asks Gemini for a level laid out against a JSON response
// schema.
type GeminiGenerator struct {
	APIKey string
	Model  string
	// BaseURL overrides the API host, for tests and proxies.
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiGeneratorFromEnv reads GEMINI_API_KEY, falling back to API_KEY.
// A missing key is reported at generation time.
func NewGeminiGeneratorFromEnv() *GeminiGenerator {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("API_KEY")
	}
	return &GeminiGenerator{APIKey: key}
}

func (g *GeminiGenerator) Name() string { return "gemini:" + g.model() }

func (g *GeminiGenerator) model() string {
	if g.Model == "" {
		return DefaultGeminiModel
	}
	return g.Model
}

func (g *GeminiGenerator) client(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     g.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.HTTPClient,
	}
	if g.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = g.BaseURL
	}
	return genai.NewClient(ctx, cfg)
}

func (g *GeminiGenerator) Generate(ctx context.Context, p Params) (*levels.Description, error) {
	if strings.TrimSpace(g.APIKey) == "" {
		return nil, ErrMissingCredential
	}
	p = p.Normalized()

	client, err := g.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("levelgen: gemini client: %w", err)
	}
	resp, err := client.Models.GenerateContent(ctx, g.model(), genai.Text(Prompt(p)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   levelSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("levelgen: gemini request: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}
	d, err := levels.Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("levelgen: gemini level: %w", err)
	}
	if len(d.Platforms) == 0 {
		return nil, fmt.Errorf("levelgen: gemini level has no platforms: %w", ErrEmptyResponse)
	}
	return d, nil
}

// Prompt is the layout brief sent to the model.
func Prompt(p Params) string {
	width := p.Length.WorldWidth()

	enemies := "Very few enemies."
	switch p.Density {
	case DensityHigh:
		enemies = "Lots of enemies."
	case DensityMedium:
		enemies = "Moderate amount of enemies."
	}

	pacing := "Large platforms, easy jumps, safe falls."
	switch p.Difficulty {
	case DifficultyHard:
		pacing = "Challenging jumps, smaller platforms, more gaps."
	case DifficultyMedium:
		pacing = "Balanced platforming."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a 2D platformer level layout.\n")
	fmt.Fprintf(&b, "Theme: %q.\n", p.Theme)
	fmt.Fprintf(&b, "Total World Width: 0 to %d pixels.\n", width)
	fmt.Fprintf(&b, "Difficulty: %s (%s).\n", p.Difficulty, pacing)
	fmt.Fprintf(&b, "Enemies: %s\n\n", enemies)
	b.WriteString("Rules:\n")
	b.WriteString("1. Build uneven ground from wide platforms at heights between y=500 and y=580. Keep a safe path.\n")
	b.WriteString("2. The player starts at x=100, y=400. There must be ground below them.\n")
	fmt.Fprintf(&b, "3. Place the goal near x=%d on a ground platform (about y=550).\n", width-200)
	b.WriteString("4. Maximum jump height is about 150 pixels.\n")
	b.WriteString("5. Place exactly one tennisBall (extra life) somewhere hard to reach.\n")
	b.WriteString("6. Enemy types: cat (walks), rat (walks fast), bat (flies), squirrel (stationary, throws nuts).\n")
	b.WriteString("7. Return valid JSON.\n")
	return b.String()
}

func levelSchema() *genai.Schema {
	number := &genai.Schema{Type: genai.TypeNumber}
	point := func() *genai.Schema {
		return &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"x": number, "y": number},
			Required:   []string{"x", "y"},
		}
	}
	typed := func(values ...string) *genai.Schema {
		o := point()
		o.Properties["type"] = &genai.Schema{Type: genai.TypeString, Enum: values}
		o.Required = []string{"x", "y", "type"}
		return o
	}
	array := func(items *genai.Schema) *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Items: items}
	}

	platform := typed(string(levels.SurfaceGrass), string(levels.SurfaceStone), string(levels.SurfaceCloud), string(levels.SurfaceLava))
	platform.Properties["width"] = number
	platform.Required = []string{"x", "y", "width", "type"}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"themeName":       {Type: genai.TypeString},
			"backgroundColor": {Type: genai.TypeString, Description: "Hex color code for sky"},
			"groundColor":     {Type: genai.TypeString, Description: "Hex color code for ground"},
			"platforms":       array(platform),
			"enemies":         array(typed("cat", "bat", "squirrel", "rat")),
			"obstacles":       array(typed("spike")),
			"collectibles":    array(point()),
			"tennisBalls":     array(point()),
			"goal":            point(),
		},
		Required: []string{
			"themeName", "backgroundColor", "groundColor", "platforms", "enemies",
			"obstacles", "collectibles", "tennisBalls", "goal",
		},
	}
}
