// Package calibrate locates reference anchors in a screenshot and derives
// the scale and offset mapping reference-layout coordinates into it.
package calibrate

import (
	"fmt"
	"path/filepath"

	"uma-scanner/internal/imaging"
	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// Template is an immutable reference raster anchored at a known
// reference-image coordinate. Loaded once per run, read-only thereafter.
type Template struct {
	Name   string
	Image  gocv.Mat
	Anchor geometry.PointInt
}

// Close releases the template raster.
func (t *Template) Close() {
	if !t.Image.Empty() {
		t.Image.Close()
	}
}

// Reference anchor positions of the two landmark templates, in
// reference-image coordinates.
var anchorFiles = []struct {
	file   string
	anchor geometry.PointInt
}{
	{"change.png", geometry.PointInt{X: 840, Y: 144}},
	{"headers.png", geometry.PointInt{X: 48, Y: 746}},
}

// LoadTemplates reads both anchor templates from dir. Both must be present;
// calibration cannot run with a partial set.
func LoadTemplates(dir string) ([]Template, error) {
	templates := make([]Template, 0, len(anchorFiles))
	for _, af := range anchorFiles {
		path := filepath.Join(dir, af.file)
		img, err := imaging.LoadMat(path)
		if err != nil {
			for i := range templates {
				templates[i].Close()
			}
			return nil, fmt.Errorf("load template %s: %w", af.file, err)
		}
		name := af.file[:len(af.file)-len(filepath.Ext(af.file))]
		templates = append(templates, Template{Name: name, Image: img, Anchor: af.anchor})
	}
	return templates, nil
}
