package calibrate

import (
	"context"
	"errors"
	"fmt"

	"uma-scanner/internal/match"
	"uma-scanner/pkg/geometry"
)

// ErrNoMatch indicates an anchor search finished without any probe clearing
// the confidence threshold.
var ErrNoMatch = errors.New("anchor not found")

// Match is the best detection of one template in one source image.
type Match struct {
	Scale      float64
	Location   geometry.PointInt
	Confidence float64
}

// ScoreFunc evaluates match quality of a template at one scale.
type ScoreFunc func(scale float64) match.Score

// SearchOptions bounds the iterative scale search.
type SearchOptions struct {
	MinScale   float64
	MaxScale   float64
	Iterations int
	Threshold  float64
}

// DefaultSearchOptions covers roughly 0.3x-2.0x of reference size with a
// fixed probe budget and the standard acceptance threshold.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MinScale:   0.3,
		MaxScale:   2.0,
		Iterations: 8,
		Threshold:  0.7,
	}
}

// SearchScale runs a bounded derivative-free search for the scale with the
// highest match confidence. Each iteration probes the quartile, midpoint,
// and three-quarter point of the current interval and narrows toward the
// best probe; ties favor the midpoint region. The confidence surface is
// assumed roughly unimodal, and the iteration count is fixed rather than
// converged to a tolerance.
//
// The globally best probe seen across all iterations is returned, not the
// final interval's. Returns ErrNoMatch if that best does not clear
// opts.Threshold.
func SearchScale(ctx context.Context, score ScoreFunc, opts SearchOptions) (Match, error) {
	lo, hi := opts.MinScale, opts.MaxScale
	best := Match{Confidence: -1}

	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Match{}, err
		}

		span := hi - lo
		probes := [3]float64{lo + 0.25*span, lo + 0.5*span, lo + 0.75*span}

		bestProbe := 1 // midpoint wins ties
		bestConf := -1.0
		for j, s := range probes {
			sc := score(s)
			if sc.Confidence > best.Confidence {
				best = Match{Scale: s, Location: sc.Location, Confidence: sc.Confidence}
			}
			if sc.Confidence > bestConf || (sc.Confidence == bestConf && j == 1) {
				bestConf = sc.Confidence
				bestProbe = j
			}
		}

		switch bestProbe {
		case 0:
			hi = probes[1]
		case 2:
			lo = probes[1]
		default:
			lo, hi = probes[0], probes[2]
		}
	}

	if best.Confidence <= opts.Threshold {
		return Match{}, fmt.Errorf("best confidence %.3f at scale %.3f: %w",
			best.Confidence, best.Scale, ErrNoMatch)
	}
	return best, nil
}
