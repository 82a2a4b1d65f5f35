package calibrate

import (
	"context"
	"errors"
	"math"
	"testing"

	"uma-scanner/internal/match"
	"uma-scanner/pkg/geometry"
)

// peakedScorer builds a clean unimodal confidence surface with its maximum
// at the given scale.
func peakedScorer(peak float64, loc geometry.PointInt) ScoreFunc {
	return func(scale float64) match.Score {
		conf := 1.0 - math.Abs(scale-peak)
		if conf < 0 {
			conf = 0
		}
		return match.Score{Confidence: conf, Location: loc}
	}
}

func TestSearchScaleRecoversKnownScale(t *testing.T) {
	tests := []struct {
		name string
		peak float64
	}{
		{"below midpoint", 0.8},
		{"above midpoint", 1.4},
		{"near lower bound", 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := geometry.PointInt{X: 40, Y: 60}
			m, err := SearchScale(context.Background(), peakedScorer(tt.peak, loc), DefaultSearchOptions())
			if err != nil {
				t.Fatalf("SearchScale: %v", err)
			}
			if math.Abs(m.Scale-tt.peak) > 0.05 {
				t.Errorf("recovered scale %.4f, want within 0.05 of %.2f", m.Scale, tt.peak)
			}
			if m.Confidence <= 0.7 {
				t.Errorf("confidence %.3f, want above threshold", m.Confidence)
			}
			if m.Location != loc {
				t.Errorf("location %+v, want %+v", m.Location, loc)
			}
		})
	}
}

func TestSearchScaleBelowThreshold(t *testing.T) {
	flat := func(scale float64) match.Score {
		return match.Score{Confidence: 0.3}
	}

	_, err := SearchScale(context.Background(), flat, DefaultSearchOptions())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestSearchScaleKeepsGlobalBest(t *testing.T) {
	// A surface whose peak sits where early iterations probe but later
	// narrowed intervals do not. The returned match must be the best probe
	// seen overall, not the best of the final interval.
	calls := 0
	spiky := func(scale float64) match.Score {
		calls++
		if calls == 1 {
			return match.Score{Confidence: 0.95, Location: geometry.PointInt{X: 1, Y: 1}}
		}
		return match.Score{Confidence: 0.75}
	}

	m, err := SearchScale(context.Background(), spiky, DefaultSearchOptions())
	if err != nil {
		t.Fatalf("SearchScale: %v", err)
	}
	if m.Confidence != 0.95 {
		t.Errorf("confidence %.3f, want the globally best 0.95", m.Confidence)
	}
}

func TestSearchScaleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchScale(ctx, peakedScorer(1.0, geometry.PointInt{}), DefaultSearchOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSearchScaleCustomThreshold(t *testing.T) {
	opts := DefaultSearchOptions()
	opts.Threshold = 0.2

	flat := func(scale float64) match.Score {
		return match.Score{Confidence: 0.3}
	}
	if _, err := SearchScale(context.Background(), flat, opts); err != nil {
		t.Fatalf("SearchScale with lowered threshold: %v", err)
	}
}
