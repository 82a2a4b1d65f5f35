// Package layout defines the named field regions of the character detail
// screen in reference-image coordinates and projects them onto a source
// image through a calibration transform.
package layout

import (
	"fmt"

	"uma-scanner/internal/calibrate"
	"uma-scanner/pkg/geometry"
)

// Kind classifies what a region's recognized text represents.
type Kind int

const (
	KindName Kind = iota
	KindStat
	KindAptitude
	KindSkill
)

// Region is a named rectangle in reference-image coordinates.
type Region struct {
	Name   string
	Kind   Kind
	Bounds geometry.RectInt
}

// Skill-row geometry in reference coordinates. Rows repeat downward in two
// columns until they run off the bottom of the source image.
const (
	skillRowStart  = 1180
	skillRowPitch  = 88
	skillColWidth  = 420
	skillRowHeight = 60
	skillLeftX     = 64
	skillRightX    = 560
)

// StaticRegions returns the fixed field catalog of the detail screen.
func StaticRegions() []Region {
	return []Region{
		{Name: "outfit", Kind: KindName, Bounds: geometry.NewRectInt(120, 235, 760, 46)},
		{Name: "name", Kind: KindName, Bounds: geometry.NewRectInt(120, 292, 760, 64)},

		{Name: "speed", Kind: KindStat, Bounds: geometry.NewRectInt(80, 800, 150, 52)},
		{Name: "stamina", Kind: KindStat, Bounds: geometry.NewRectInt(278, 800, 150, 52)},
		{Name: "power", Kind: KindStat, Bounds: geometry.NewRectInt(476, 800, 150, 52)},
		{Name: "guts", Kind: KindStat, Bounds: geometry.NewRectInt(674, 800, 150, 52)},
		{Name: "wisdom", Kind: KindStat, Bounds: geometry.NewRectInt(872, 800, 150, 52)},

		{Name: "turf", Kind: KindAptitude, Bounds: geometry.NewRectInt(300, 905, 72, 46)},
		{Name: "dirt", Kind: KindAptitude, Bounds: geometry.NewRectInt(470, 905, 72, 46)},
		{Name: "sprint", Kind: KindAptitude, Bounds: geometry.NewRectInt(300, 962, 72, 46)},
		{Name: "mile", Kind: KindAptitude, Bounds: geometry.NewRectInt(470, 962, 72, 46)},
		{Name: "medium", Kind: KindAptitude, Bounds: geometry.NewRectInt(640, 962, 72, 46)},
		{Name: "long", Kind: KindAptitude, Bounds: geometry.NewRectInt(810, 962, 72, 46)},
		{Name: "front", Kind: KindAptitude, Bounds: geometry.NewRectInt(300, 1019, 72, 46)},
		{Name: "pace", Kind: KindAptitude, Bounds: geometry.NewRectInt(470, 1019, 72, 46)},
		{Name: "late", Kind: KindAptitude, Bounds: geometry.NewRectInt(640, 1019, 72, 46)},
		{Name: "end", Kind: KindAptitude, Bounds: geometry.NewRectInt(810, 1019, 72, 46)},
	}
}

// SkillRegions generates the repeating two-column skill rows in reference
// coordinates. Generation stops before the first row whose projected bottom
// edge would exceed the source image height. Regions are emitted in reading
// order: per row, left column then right.
func SkillRegions(t calibrate.Transform, srcHeight int) []Region {
	var regions []Region
	for row := 0; ; row++ {
		y := skillRowStart + row*skillRowPitch
		left := geometry.NewRectInt(skillLeftX, y, skillColWidth, skillRowHeight)
		if t.ProjectRect(left).Bottom() > srcHeight {
			break
		}
		right := geometry.NewRectInt(skillRightX, y, skillColWidth, skillRowHeight)
		regions = append(regions,
			Region{Name: fmt.Sprintf("skill_%d_l", row), Kind: KindSkill, Bounds: left},
			Region{Name: fmt.Sprintf("skill_%d_r", row), Kind: KindSkill, Bounds: right},
		)
	}
	return regions
}

// Project maps regions through the transform into source coordinates.
// Regions whose projected bounds fall outside the source image are dropped;
// absence of the field downstream is the signal, not an error.
func Project(regions []Region, t calibrate.Transform, srcWidth, srcHeight int) []Region {
	projected := make([]Region, 0, len(regions))
	for _, r := range regions {
		b := t.ProjectRect(r.Bounds)
		if b.Empty() || !b.Inside(srcWidth, srcHeight) {
			continue
		}
		projected = append(projected, Region{Name: r.Name, Kind: r.Kind, Bounds: b})
	}
	return projected
}
