package skills

import "strings"

// Tier encodes the effectiveness glyph attached to a skill name variant.
// Several otherwise-identical skills differ only by this glyph.
type Tier int

const (
	TierNone   Tier = iota
	TierDouble      // ◎ most effective
	TierSingle      // ○ moderately effective
	TierCross       // × ineffective
	TierMark        // ©/®/™, common OCR confusions for the circle glyphs
)

// tierOf recovers the tier glyph from a raw string, accepting known OCR
// confusions: a trailing " O" reads as a single circle, and "©" as
// double-circle-like.
func tierOf(s string) Tier {
	switch {
	case strings.ContainsRune(s, '◎'):
		return TierDouble
	case strings.ContainsAny(s, "○◯"):
		return TierSingle
	case strings.ContainsAny(s, "×✕"):
		return TierCross
	case strings.ContainsRune(s, '©'):
		return TierDouble
	case strings.ContainsAny(s, "®™"):
		return TierMark
	}

	trimmed := strings.TrimRight(s, " ")
	if strings.HasSuffix(strings.ToUpper(trimmed), " O") {
		return TierSingle
	}
	return TierNone
}

// compatible reports whether two distinct tiers belong to the
// circle-glyph confusion set.
func compatible(a, b Tier) bool {
	in := func(t Tier) bool {
		return t == TierDouble || t == TierSingle || t == TierMark
	}
	return in(a) && in(b)
}
