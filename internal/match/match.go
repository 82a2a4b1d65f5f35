// Package match scores template occurrences in a source image using
// normalized cross-correlation.
package match

import (
	"image"

	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// Score holds the best correlation response for one template probe.
type Score struct {
	Confidence float64           // Peak correlation value in [0,1]
	Location   geometry.PointInt // Top-left corner of the peak response
}

// TemplateAt resizes the template by scale and correlates it against the
// full source image. Scales that would make the resized template larger
// than the source in either dimension score zero.
//
// Confidence uses TM_CCOEFF_NORMED, so values are directly comparable
// across scales for the same template.
func TemplateAt(src, tmpl gocv.Mat, scale float64) Score {
	if src.Empty() || tmpl.Empty() || scale <= 0 {
		return Score{}
	}

	w := int(float64(tmpl.Cols()) * scale)
	h := int(float64(tmpl.Rows()) * scale)
	if w < 1 || h < 1 || w > src.Cols() || h > src.Rows() {
		return Score{}
	}

	// Each probe owns its resized raster; nothing is shared across calls.
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(tmpl, &resized, image.Point{X: w, Y: h}, 0, 0, gocv.InterpolationLinear)

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(src, resized, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	return Score{
		Confidence: float64(maxVal),
		Location:   geometry.PointInt{X: maxLoc.X, Y: maxLoc.Y},
	}
}
