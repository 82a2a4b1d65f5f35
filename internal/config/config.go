// Package config defines scanner configuration and its loading order.
package config

// Config contains process configuration. Matching constants are tuned
// empirically and deliberately kept adjustable rather than compiled in.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TemplateDir holds the two anchor template images.
	TemplateDir string `koanf:"template_dir"`

	// SkillCatalog and RosterCatalog are JSON catalog paths.
	SkillCatalog  string `koanf:"skill_catalog"`
	RosterCatalog string `koanf:"roster_catalog"`

	// Languages are the Tesseract language codes used for recognition.
	Languages []string `koanf:"languages"`

	// MatchThreshold is the minimum anchor confidence for calibration.
	MatchThreshold float64 `koanf:"match_threshold"`

	// ScaleMin/ScaleMax bound the anchor scale search; ScaleIterations
	// fixes its probe budget.
	ScaleMin        float64 `koanf:"scale_min"`
	ScaleMax        float64 `koanf:"scale_max"`
	ScaleIterations int     `koanf:"scale_iterations"`

	// SkillThreshold is the minimum adjusted similarity to accept a
	// skill match.
	SkillThreshold float64 `koanf:"skill_threshold"`

	// Tier glyph adjustments applied on top of base similarity.
	TierExactBonus      float64 `koanf:"tier_exact_bonus"`
	TierCompatBonus     float64 `koanf:"tier_compat_bonus"`
	TierMismatchPenalty float64 `koanf:"tier_mismatch_penalty"`

	// OutfitThreshold is the minimum similarity for roster name matching.
	OutfitThreshold float64 `koanf:"outfit_threshold"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		TemplateDir:         "templates",
		SkillCatalog:        "data/skills.json",
		RosterCatalog:       "data/roster.json",
		Languages:           []string{"jpn", "eng"},
		MatchThreshold:      0.7,
		ScaleMin:            0.3,
		ScaleMax:            2.0,
		ScaleIterations:     8,
		SkillThreshold:      0.6,
		TierExactBonus:      0.5,
		TierCompatBonus:     0.3,
		TierMismatchPenalty: 0.2,
		OutfitThreshold:     0.7,
	}
}
