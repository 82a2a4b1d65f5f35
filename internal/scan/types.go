// Package scan runs the full extraction pipeline: anchor calibration,
// region projection, per-region recognition, and record assembly.
package scan

import (
	"uma-scanner/internal/parse"
	"uma-scanner/internal/roster"
)

// Stats holds the five numeric character stats.
type Stats struct {
	Speed   int `json:"speed"`
	Stamina int `json:"stamina"`
	Power   int `json:"power"`
	Guts    int `json:"guts"`
	Wisdom  int `json:"wisdom"`
}

// TrackAptitudes holds surface aptitude grades.
type TrackAptitudes struct {
	Turf parse.Grade `json:"turf"`
	Dirt parse.Grade `json:"dirt"`
}

// DistanceAptitudes holds distance aptitude grades.
type DistanceAptitudes struct {
	Sprint parse.Grade `json:"sprint"`
	Mile   parse.Grade `json:"mile"`
	Medium parse.Grade `json:"medium"`
	Long   parse.Grade `json:"long"`
}

// StyleAptitudes holds running style aptitude grades.
type StyleAptitudes struct {
	Front parse.Grade `json:"front"`
	Pace  parse.Grade `json:"pace"`
	Late  parse.Grade `json:"late"`
	End   parse.Grade `json:"end"`
}

// Aptitudes groups the three aptitude categories.
type Aptitudes struct {
	Track    TrackAptitudes    `json:"track"`
	Distance DistanceAptitudes `json:"distance"`
	Style    StyleAptitudes    `json:"style"`
}

// ParsedUmaData is the pipeline's output record. Ownership passes to the
// caller when the pipeline returns; the pipeline holds no reference to it.
type ParsedUmaData struct {
	Outfit    string          `json:"outfit"`
	Name      string          `json:"name"`
	Stats     Stats           `json:"stats"`
	Aptitudes Aptitudes       `json:"aptitudes"`
	Skills    []string        `json:"skills"`
	Strategy  roster.Strategy `json:"strategy"`
}
