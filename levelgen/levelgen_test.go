package levelgen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/milk9111/corgi/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name  string
	level *levels.Description
	err   error
	calls int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, p Params) (*levels.Description, error) {
	s.calls++
	return s.level, s.err
}

func TestServiceReturnsFirstSuccess(t *testing.T) {
	failing := &stubGenerator{name: "a", err: errors.New("boom")}
	level := &levels.Description{ThemeName: "ok"}
	working := &stubGenerator{name: "b", level: level}
	unused := &stubGenerator{name: "c", level: &levels.Description{}}

	res := NewService(failing, working, unused).Generate(context.Background(), DefaultParams())

	assert.Same(t, level, res.Level)
	assert.Equal(t, "b", res.Source)
	assert.ErrorContains(t, res.Err, "boom")
	assert.Zero(t, unused.calls)
}

func TestServiceFallsBackOnEveryFailure(t *testing.T) {
	cases := []struct {
		name string
		gen  Generator
	}{
		{name: "missing credential", gen: &GeminiGenerator{}},
		{name: "error", gen: &stubGenerator{name: "err", err: errors.New("malformed")}},
		{name: "nil level", gen: &stubGenerator{name: "nil"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewService(c.gen).Generate(context.Background(), DefaultParams())
			require.NotNil(t, res.Level)
			assert.Equal(t, FallbackSource, res.Source)
			assert.Equal(t, levels.Default(), res.Level)
			assert.Error(t, res.Err)
		})
	}
}

func TestServiceMissingCredentialIsReported(t *testing.T) {
	res := NewService(&GeminiGenerator{}).Generate(context.Background(), DefaultParams())
	assert.ErrorIs(t, res.Err, ErrMissingCredential)
}

func TestServiceHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &stubGenerator{name: "a", level: &levels.Description{}}

	res := NewService(gen).Generate(ctx, DefaultParams())

	assert.Equal(t, FallbackSource, res.Source)
	assert.Zero(t, gen.calls)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestParamsNormalizedAndCycling(t *testing.T) {
	p := Params{Theme: "x", Difficulty: "Brutal", Length: LengthLong}.Normalized()
	assert.Equal(t, DifficultyMedium, p.Difficulty)
	assert.Equal(t, LengthLong, p.Length)
	assert.Equal(t, DensityMedium, p.Density)

	assert.Equal(t, DifficultyEasy, DifficultyHard.Next())
	assert.Equal(t, LengthMedium, LengthShort.Next())
	assert.Equal(t, DensityHigh, DensityMedium.Next())

	assert.Equal(t, 3000, LengthShort.WorldWidth())
	assert.Equal(t, 6000, LengthMedium.WorldWidth())
	assert.Equal(t, 12000, LengthLong.WorldWidth())
}

func TestScriptGeneratorBuildsPlayableLevels(t *testing.T) {
	for _, length := range []Length{LengthShort, LengthMedium, LengthLong} {
		for _, diff := range []Difficulty{DifficultyEasy, DifficultyHard} {
			p := Params{Theme: "Snowy forest", Difficulty: diff, Length: length, Density: DensityHigh}
			t.Run(p.String(), func(t *testing.T) {
				d, err := NewScriptGenerator("", 7).Generate(context.Background(), p)
				require.NoError(t, err)

				assert.Equal(t, "Snowy forest", d.ThemeName)
				require.NotEmpty(t, d.Platforms)
				first := d.Platforms[0]
				assert.LessOrEqual(t, first.X, 100.0, "spawn needs ground")
				assert.Greater(t, first.X+first.Width, 100.0)
				require.NotNil(t, d.Goal)
				assert.Equal(t, float64(length.WorldWidth()-200), d.Goal.X)
				assert.Len(t, d.TennisBalls, 1)
				assert.GreaterOrEqual(t, d.End(), float64(length.WorldWidth()))

				onGround := false
				for _, pl := range d.Platforms {
					if d.Goal.X >= pl.X && d.Goal.X <= pl.X+pl.Width && d.Goal.Y == pl.Y {
						onGround = true
					}
				}
				assert.True(t, onGround, "goal rests on a platform")

				bears := 0
				for _, e := range d.Enemies {
					if e.Type == "bear" {
						bears++
					}
				}
				if diff == DifficultyHard {
					assert.Equal(t, 1, bears)
				} else {
					assert.Zero(t, bears)
				}
			})
		}
	}
}

func TestScriptGeneratorIsDeterministic(t *testing.T) {
	p := DefaultParams()
	a, err := NewScriptGenerator("", 42).Generate(context.Background(), p)
	require.NoError(t, err)
	b, err := NewScriptGenerator("", 42).Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScriptGeneratorMissingScript(t *testing.T) {
	_, err := NewScriptGenerator("nope.tengo", 1).Generate(context.Background(), DefaultParams())
	assert.Error(t, err)
}

// generateRequest is the part of the generateContent body the tests inspect.
type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
		ResponseSchema   struct {
			Type       string         `json:"type"`
			Properties map[string]any `json:"properties"`
		} `json:"responseSchema"`
	} `json:"generationConfig"`
}

func TestGeminiGenerator(t *testing.T) {
	level := `{"themeName":"Moon","backgroundColor":"#000000","groundColor":"#CCCCCC",` +
		`"platforms":[{"x":0,"y":500,"width":3000,"type":"stone"}],"enemies":[{"x":500,"y":500,"type":"rat"}],` +
		`"obstacles":[],"collectibles":[{"x":200,"y":460}],"tennisBalls":[{"x":900,"y":300}],"goal":{"x":2800,"y":500}}`

	var gotKey, gotPath string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": level}}},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	g := &GeminiGenerator{APIKey: "secret", BaseURL: srv.URL, HTTPClient: srv.Client()}
	d, err := g.Generate(context.Background(), Params{Theme: "Moon base", Difficulty: DifficultyHard, Length: LengthShort, Density: DensityLow})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.True(t, strings.HasSuffix(gotPath, "/models/"+DefaultGeminiModel+":generateContent"), gotPath)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "OBJECT", gotReq.GenerationConfig.ResponseSchema.Type)
	assert.Contains(t, gotReq.GenerationConfig.ResponseSchema.Properties, "platforms")
	require.Len(t, gotReq.Contents, 1)
	require.NotEmpty(t, gotReq.Contents[0].Parts)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, `"Moon base"`)
	assert.Contains(t, prompt, "x=2800")
	assert.Contains(t, prompt, "Very few enemies.")

	assert.Equal(t, "Moon", d.ThemeName)
	assert.Len(t, d.Enemies, 1)
	require.NotNil(t, d.Goal)
	assert.Equal(t, 2800.0, d.Goal.X)
}

func TestGeminiGeneratorFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "empty candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: ErrEmptyResponse},
		{name: "blank text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`, wantErr: ErrEmptyResponse},
		{name: "malformed level", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"{oops"}]}}]}`},
		{name: "no platforms", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"{\"themeName\":\"x\"}"}]}}]}`, wantErr: ErrEmptyResponse},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":{"code":500,"message":"quota"}}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(c.status)
				_, _ = io.Copy(w, strings.NewReader(c.body))
			}))
			defer srv.Close()

			g := &GeminiGenerator{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()}
			_, err := g.Generate(context.Background(), DefaultParams())
			require.Error(t, err)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
			}
		})
	}
}

func TestNewGeminiGeneratorFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "fallback-key")
	assert.Equal(t, "fallback-key", NewGeminiGeneratorFromEnv().APIKey)

	t.Setenv("GEMINI_API_KEY", "primary")
	assert.Equal(t, "primary", NewGeminiGeneratorFromEnv().APIKey)
}
