package calibrate

import (
	"context"
	"fmt"
	"math"
	"sync"

	"uma-scanner/internal/match"
	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Transform maps reference-image coordinates into source-image coordinates:
// x' = x*ScaleX + OffsetX, y' = y*ScaleY + OffsetY.
type Transform struct {
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Apply maps a reference point into source coordinates.
func (t Transform) Apply(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*t.ScaleX + t.OffsetX,
		Y: p.Y*t.ScaleY + t.OffsetY,
	}
}

// ProjectRect maps a reference rectangle into source coordinates, rounding
// each component to the nearest pixel.
func (t Transform) ProjectRect(r geometry.RectInt) geometry.RectInt {
	return geometry.RectInt{
		X:      int(math.Round(float64(r.X)*t.ScaleX + t.OffsetX)),
		Y:      int(math.Round(float64(r.Y)*t.ScaleY + t.OffsetY)),
		Width:  int(math.Round(float64(r.Width) * t.ScaleX)),
		Height: int(math.Round(float64(r.Height) * t.ScaleY)),
	}
}

// AnchorMatch pairs a template with its detection result.
type AnchorMatch struct {
	Template *Template
	Match    Match
}

// Calibrate searches for every template in src and fuses the detections
// into a single Transform. The per-template searches are independent and
// run concurrently. If any template cannot be located the whole calibration
// fails; there is no partial calibration.
func Calibrate(ctx context.Context, src gocv.Mat, templates []Template, opts SearchOptions) (Transform, error) {
	if len(templates) < 2 {
		return Transform{}, fmt.Errorf("need two anchor templates, have %d", len(templates))
	}

	matches := make([]Match, len(templates))
	errs := make([]error, len(templates))

	var wg sync.WaitGroup
	for i := range templates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tmpl := &templates[i]
			matches[i], errs[i] = SearchScale(ctx, func(scale float64) match.Score {
				return match.TemplateAt(src, tmpl.Image, scale)
			}, opts)
		}(i)
	}
	wg.Wait()

	anchors := make([]AnchorMatch, len(templates))
	for i := range templates {
		if errs[i] != nil {
			return Transform{}, fmt.Errorf("anchor %q: %w", templates[i].Name, errs[i])
		}
		anchors[i] = AnchorMatch{Template: &templates[i], Match: matches[i]}
	}

	return Combine(anchors)
}

// Combine fuses independent anchor detections into one Transform. The scale
// estimates are averaged (scale is assumed isotropic per template), and each
// template's implied offset is matchLocation - referenceAnchor*matchScale;
// the stacked offset equations are solved by least squares.
func Combine(anchors []AnchorMatch) (Transform, error) {
	if len(anchors) < 2 {
		return Transform{}, fmt.Errorf("need two anchor matches, have %d", len(anchors))
	}

	var scale float64
	for _, a := range anchors {
		scale += a.Match.Scale
	}
	scale /= float64(len(anchors))

	// Each anchor contributes one equation per axis: offset = loc - ref*scale.
	n := len(anchors)
	A := mat.NewDense(n*2, 2, nil)
	b := mat.NewVecDense(n*2, nil)
	for i, a := range anchors {
		ref := a.Template.Anchor.ToFloat()
		loc := a.Match.Location.ToFloat()
		s := a.Match.Scale

		A.Set(i*2, 0, 1)
		b.SetVec(i*2, loc.X-ref.X*s)
		A.Set(i*2+1, 1, 1)
		b.SetVec(i*2+1, loc.Y-ref.Y*s)
	}

	var qr mat.QR
	qr.Factorize(A)

	var off mat.VecDense
	if err := qr.SolveVecTo(&off, false, b); err != nil {
		return Transform{}, fmt.Errorf("solve offsets: %w", err)
	}

	return Transform{
		ScaleX:  scale,
		ScaleY:  scale,
		OffsetX: off.AtVec(0),
		OffsetY: off.AtVec(1),
	}, nil
}
