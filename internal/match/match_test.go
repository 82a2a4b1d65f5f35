package match

import (
	"image"
	"testing"

	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// newPattern builds a textured single-channel Mat so the correlation
// surface has a distinct peak.
func newPattern(rows, cols int, f func(x, y int) uint8) gocv.Mat {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.SetUCharAt(y, x, f(x, y))
		}
	}
	return m
}

// paste copies src into dst with its top-left corner at (x, y).
func paste(dst, src gocv.Mat, x, y int) {
	region := dst.Region(image.Rect(x, y, x+src.Cols(), y+src.Rows()))
	defer region.Close()
	src.CopyTo(&region)
}

func TestTemplateAtFindsPastedTemplate(t *testing.T) {
	src := newPattern(160, 200, func(x, y int) uint8 { return uint8((x*3 + y*5) % 97) })
	defer src.Close()
	tmpl := newPattern(16, 24, func(x, y int) uint8 { return uint8((x*7 + y*13) % 251) })
	defer tmpl.Close()

	paste(src, tmpl, 60, 40)

	got := TemplateAt(src, tmpl, 1.0)
	if got.Confidence < 0.9 {
		t.Fatalf("confidence = %.3f, want >= 0.9", got.Confidence)
	}
	if want := (geometry.PointInt{X: 60, Y: 40}); got.Location != want {
		t.Errorf("location = %+v, want %+v", got.Location, want)
	}
}

func TestTemplateAtRecoversScaledTemplate(t *testing.T) {
	src := newPattern(160, 200, func(x, y int) uint8 { return uint8((x*3 + y*5) % 97) })
	defer src.Close()
	tmpl := newPattern(16, 24, func(x, y int) uint8 { return uint8((x*7 + y*13) % 251) })
	defer tmpl.Close()

	// Composite the template at 1.5x, then probe at the same scale.
	const scale = 1.5
	w := int(float64(tmpl.Cols()) * scale)
	h := int(float64(tmpl.Rows()) * scale)
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(tmpl, &resized, image.Point{X: w, Y: h}, 0, 0, gocv.InterpolationLinear)
	paste(src, resized, 100, 80)

	got := TemplateAt(src, tmpl, scale)
	if got.Confidence < 0.9 {
		t.Fatalf("confidence = %.3f, want >= 0.9", got.Confidence)
	}
	if want := (geometry.PointInt{X: 100, Y: 80}); got.Location != want {
		t.Errorf("location = %+v, want %+v", got.Location, want)
	}
}

func TestTemplateAtRejectsOversizedScale(t *testing.T) {
	src := newPattern(40, 40, func(x, y int) uint8 { return uint8(x + y) })
	defer src.Close()
	tmpl := newPattern(16, 24, func(x, y int) uint8 { return uint8(x * y) })
	defer tmpl.Close()

	// 24 * 2 > 40: the resized template would not fit the source.
	if got := TemplateAt(src, tmpl, 2.0); got.Confidence != 0 {
		t.Errorf("oversized scale scored %.3f, want 0", got.Confidence)
	}

	if got := TemplateAt(src, tmpl, 0); got.Confidence != 0 {
		t.Errorf("zero scale scored %.3f, want 0", got.Confidence)
	}
}
