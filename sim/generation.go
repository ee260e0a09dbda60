package sim

import (
	"context"
	"log"

	"github.com/milk9111/corgi/levelgen"
)

// RequestGeneration moves the menu into GENERATING and asks the generator
// for a level in the background. A second request before the first one is
// polled is rejected.
func (s *Simulation) RequestGeneration(ctx context.Context, p levelgen.Params) error {
	if s.state == StateGenerating {
		return ErrGenerationInProgress
	}
	if s.state != StateMenu {
		return ErrInvalidTransition
	}
	if s.generator == nil {
		return ErrNoGenerator
	}

	s.transition(StateGenerating)
	go func(gen *levelgen.Service, out chan<- levelgen.Result) {
		out <- gen.Generate(ctx, p)
	}(s.generator, s.results)
	return nil
}

// PollGeneration installs a finished generation result, if there is one,
// and returns to the menu. The result always carries a usable level.
func (s *Simulation) PollGeneration() (levelgen.Result, bool) {
	if s.state != StateGenerating {
		return levelgen.Result{}, false
	}
	var res levelgen.Result
	select {
	case res = <-s.results:
	default:
		return levelgen.Result{}, false
	}

	s.transition(StateMenu)
	if res.Level != nil {
		if err := s.SetLevel(res.Level); err != nil {
			log.Printf("sim: install generated level: %v", err)
		}
	}
	s.lastGen = &res
	return res, true
}

// LastGeneration returns the most recently installed generation result.
func (s *Simulation) LastGeneration() (levelgen.Result, bool) {
	if s.lastGen == nil {
		return levelgen.Result{}, false
	}
	return *s.lastGen, true
}
