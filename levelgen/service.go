package levelgen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/corgi/levels"
)

// FallbackSource names the built-in level in a Result.
const FallbackSource = "builtin"

// Result is what a generation request resolves to. Level is never nil; Err
// carries the failures that were absorbed on the way to it.
type Result struct {
	Params Params
	Level  *levels.Description
	Source string
	Err    error
}

// Service tries each generator in order and settles on the built-in level
// when all of them fail.
type Service struct {
	generators []Generator
	fallback   func() *levels.Description
	timeout    time.Duration
}

func NewService(generators ...Generator) *Service {
	return &Service{
		generators: generators,
		fallback:   levels.Default,
		timeout:    45 * time.Second,
	}
}

// SetTimeout bounds each generator attempt. Zero disables the bound.
func (s *Service) SetTimeout(d time.Duration) { s.timeout = d }

// SetFallback replaces the built-in level.
func (s *Service) SetFallback(fn func() *levels.Description) {
	if fn != nil {
		s.fallback = fn
	}
}

func (s *Service) Generate(ctx context.Context, p Params) Result {
	p = p.Normalized()
	var errs []error
	for _, g := range s.generators {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		d, err := s.attempt(ctx, g, p)
		if err == nil {
			return Result{Params: p, Level: d, Source: g.Name(), Err: errors.Join(errs...)}
		}
		log.Printf("levelgen: %s failed for %s: %v", g.Name(), p, err)
		errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
	}

	if len(s.generators) > 0 {
		log.Printf("levelgen: using built-in level for %s", p)
	}
	return Result{Params: p, Level: s.fallback(), Source: FallbackSource, Err: errors.Join(errs...)}
}

func (s *Service) attempt(ctx context.Context, g Generator, p Params) (d *levels.Description, err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("levelgen: generator panic: %v", r)
		}
	}()

	d, err = g.Generate(ctx, p)
	if err == nil && d == nil {
		err = ErrEmptyResponse
	}
	return d, err
}
