// Package parse converts raw recognized field text into typed stat values
// and aptitude grades. OCR noise is expected; unparseable text yields a
// documented default, never an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Grade is an ordinal aptitude grade, S best through G worst.
type Grade string

// The 8-step grade scale.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
	GradeG Grade = "G"
)

const gradeOrder = "SABCDEFG"

// Ordinal returns the grade's rank, 0 for S through 7 for G.
func (g Grade) Ordinal() int {
	if i := strings.Index(gradeOrder, string(g)); i >= 0 {
		return i
	}
	return len(gradeOrder) - 1
}

// Better reports whether g outranks other.
func (g Grade) Better(other Grade) bool {
	return g.Ordinal() < other.Ordinal()
}

var statPattern = regexp.MustCompile(`[0-9]{3,4}`)

// Stat extracts the first run of 3-4 consecutive digits from recognized
// text. Absence of a digit run yields 0.
func Stat(text string) int {
	run := statPattern.FindString(text)
	if run == "" {
		return 0
	}
	v, err := strconv.Atoi(run)
	if err != nil {
		return 0
	}
	return v
}

// Aptitude extracts the first grade letter from recognized text. Absence
// yields GradeG, the lowest.
func Aptitude(text string) Grade {
	for _, r := range text {
		if strings.ContainsRune(gradeOrder, r) {
			return Grade(r)
		}
	}
	return GradeG
}
