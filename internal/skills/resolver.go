package skills

import "log/slog"

// Params holds the empirically tuned matching constants. They are exposed
// as configuration rather than hard-coded; see config defaults.
type Params struct {
	// Threshold is the minimum adjusted similarity to accept a match.
	Threshold float64
	// ExactBonus applies when the recognized line and candidate carry the
	// same tier glyph.
	ExactBonus float64
	// CompatBonus applies when both glyphs are in the circle confusion set.
	CompatBonus float64
	// MismatchPenalty is subtracted on any other tier disagreement.
	MismatchPenalty float64
}

// DefaultParams returns the tuned matching constants.
func DefaultParams() Params {
	return Params{
		Threshold:       0.6,
		ExactBonus:      0.5,
		CompatBonus:     0.3,
		MismatchPenalty: 0.2,
	}
}

// Resolver matches recognized skill lines against the catalog.
type Resolver struct {
	catalog *Catalog
	params  Params
	log     *slog.Logger
}

// NewResolver creates a resolver over a loaded catalog.
func NewResolver(catalog *Catalog, params Params, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{catalog: catalog, params: params, log: log}
}

// Resolve matches each recognized skill line, in input order, against the
// catalog. The first line is the primary slot and searches only the
// original-unique pool; every other line searches only the complementary
// pool. Lines whose best adjusted similarity does not clear the threshold
// are omitted; duplicates are possible.
func (r *Resolver) Resolve(lines []string) []string {
	var ids []string
	for i, line := range lines {
		partition := PartitionRegular
		if i == 0 {
			partition = PartitionUnique
		}

		id, score, ok := r.ResolveLine(line, partition)
		if !ok {
			r.log.Debug("skill line unmatched", "line", line, "best", score)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ResolveLine finds the best catalog match for one line within a partition.
// Returns the winning identifier and its adjusted similarity, or ok=false
// when nothing clears the threshold.
func (r *Resolver) ResolveLine(line string, partition Partition) (string, float64, bool) {
	lineTier := tierOf(line)

	bestID := ""
	bestScore := -1.0
	for _, skill := range r.catalog.InPartition(partition) {
		for _, name := range skill.Names {
			score := r.adjusted(line, lineTier, name)
			if score > bestScore {
				bestScore = score
				bestID = skill.ID
			}
		}
	}

	if bestID == "" || bestScore <= r.params.Threshold {
		return "", bestScore, false
	}
	return bestID, bestScore, true
}

// adjusted computes base similarity plus the tier bonus or penalty. The
// result floors at zero. The compatible-glyph bonus caps at 1.0; the
// exact-glyph bonus is uncapped, so an exact glyph match always outranks
// a merely compatible one even when both base similarities are full.
func (r *Resolver) adjusted(line string, lineTier Tier, name string) float64 {
	score := Similarity(line, name)

	nameTier := tierOf(name)
	switch {
	case nameTier == TierNone:
		// Untiered candidate, no adjustment.
	case nameTier == lineTier:
		score += r.params.ExactBonus
	case compatible(nameTier, lineTier):
		score += r.params.CompatBonus
		if score > 1.0 {
			score = 1.0
		}
	default:
		score -= r.params.MismatchPenalty
	}

	if score < 0.0 {
		score = 0.0
	}
	return score
}
