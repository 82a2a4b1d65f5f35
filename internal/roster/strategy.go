package roster

import "uma-scanner/internal/parse"

// Strategy is the race strategy tag derived from style aptitudes.
type Strategy string

const (
	// StrategyRunner is raced by front and pace style characters.
	StrategyRunner Strategy = "runner"
	// StrategyCloser is raced by late and end style characters.
	StrategyCloser Strategy = "closer"
)

// DefaultStrategy is used when no style aptitude data is resolvable.
const DefaultStrategy = StrategyRunner

// StyleGrades holds the four style aptitude grades.
type StyleGrades struct {
	Front parse.Grade
	Pace  parse.Grade
	Late  parse.Grade
	End   parse.Grade
}

// DeriveStrategy picks the strategy of the best style grade. Ties resolve
// by axis priority: front, pace, late, end.
func DeriveStrategy(g StyleGrades) Strategy {
	axes := []struct {
		grade    parse.Grade
		strategy Strategy
	}{
		{g.Front, StrategyRunner},
		{g.Pace, StrategyRunner},
		{g.Late, StrategyCloser},
		{g.End, StrategyCloser},
	}

	best := axes[0]
	for _, a := range axes[1:] {
		if a.grade.Better(best.grade) {
			best = a
		}
	}
	return best.strategy
}
