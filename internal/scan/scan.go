package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"uma-scanner/internal/calibrate"
	"uma-scanner/internal/imaging"
	"uma-scanner/internal/layout"
	"uma-scanner/internal/parse"
	"uma-scanner/internal/roster"
	"uma-scanner/internal/skills"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// ErrCalibration indicates neither screen landmark could be located with
// enough confidence. It is the only error that aborts a scan; every other
// degradation yields a default value in the record.
var ErrCalibration = errors.New("could not locate known landmarks")

// Recognizer converts a cropped region raster into text. The engine is an
// external capability; the pipeline owns none of its internals.
type Recognizer interface {
	RecognizeRegion(ctx context.Context, img gocv.Mat, region layout.Region) (string, error)
}

// Calibrator locates the anchor templates in a source image.
type Calibrator interface {
	Calibrate(ctx context.Context, src gocv.Mat) (calibrate.Transform, error)
}

// TemplateCalibrator is the production Calibrator backed by template
// correlation search.
type TemplateCalibrator struct {
	Templates []calibrate.Template
	Options   calibrate.SearchOptions
}

// Calibrate implements Calibrator.
func (c *TemplateCalibrator) Calibrate(ctx context.Context, src gocv.Mat) (calibrate.Transform, error) {
	return calibrate.Calibrate(ctx, src, c.Templates, c.Options)
}

// ProgressFunc receives advisory stage labels with a monotonically
// non-decreasing percentage. Not part of the functional contract.
type ProgressFunc func(stage string, pct int)

// Scanner runs extraction over one image at a time. The catalogs it holds
// are read-only, so concurrent scans from separate Scanner values may share
// them freely.
type Scanner struct {
	calibrator      Calibrator
	recognizer      Recognizer
	resolver        *skills.Resolver
	roster          *roster.Roster
	outfitThreshold float64
	progress        ProgressFunc
	log             *slog.Logger
}

// New creates a Scanner.
func New(cal Calibrator, rec Recognizer, resolver *skills.Resolver, ros *roster.Roster, outfitThreshold float64, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		calibrator:      cal,
		recognizer:      rec,
		resolver:        resolver,
		roster:          ros,
		outfitThreshold: outfitThreshold,
		log:             log,
	}
}

// SetProgress installs an advisory progress callback.
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

func (s *Scanner) report(stage string, pct int) {
	if s.progress != nil {
		s.progress(stage, pct)
	}
}

// Scan extracts a record from one screenshot. Only calibration failure
// aborts; recognition and parsing problems degrade to field defaults so
// noisy input still yields a best-effort record. Cancelling ctx abandons
// the run; partial state is simply discarded.
func (s *Scanner) Scan(ctx context.Context, src gocv.Mat) (*ParsedUmaData, error) {
	if src.Empty() {
		return nil, fmt.Errorf("empty source image")
	}

	log := s.log.With("run", uuid.NewString())
	width, height := src.Cols(), src.Rows()

	s.report("calibrate", 0)
	tf, err := s.calibrator.Calibrate(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrCalibration, err)
	}
	log.Info("calibrated", "scale", tf.ScaleX, "offset_x", tf.OffsetX, "offset_y", tf.OffsetY)

	s.report("extract", 20)
	regions := layout.Project(layout.StaticRegions(), tf, width, height)
	skillRegions := layout.Project(layout.SkillRegions(tf, height), tf, width, height)
	regions = append(regions, skillRegions...)
	log.Debug("projected regions", "count", len(regions))

	fields := make(map[string]string, len(regions))
	var skillLines []string

	for i, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := s.recognizeRegion(ctx, src, region, log)
		if region.Kind == layout.KindSkill {
			// Skill lines keep their reading-order slots even when empty;
			// the first slot is the unique skill.
			skillLines = append(skillLines, text)
		} else {
			fields[region.Name] = text
		}

		s.report("recognize", 20+70*(i+1)/len(regions))
	}

	s.report("resolve", 90)
	record := s.assemble(fields, skillLines, log)

	s.report("done", 100)
	return record, nil
}

// recognizeRegion crops and recognizes one region. Recognition errors are
// treated as empty text; downstream parsing supplies the defaults.
func (s *Scanner) recognizeRegion(ctx context.Context, src gocv.Mat, region layout.Region, log *slog.Logger) string {
	crop, err := imaging.Crop(src, region.Bounds)
	if err != nil {
		log.Warn("crop failed", "region", region.Name, "err", err)
		return ""
	}
	defer crop.Close()

	text, err := s.recognizer.RecognizeRegion(ctx, crop, region)
	if err != nil {
		log.Warn("recognition failed", "region", region.Name, "err", err)
		return ""
	}
	return text
}

func (s *Scanner) assemble(fields map[string]string, skillLines []string, log *slog.Logger) *ParsedUmaData {
	record := &ParsedUmaData{
		Name: fields["name"],
		Stats: Stats{
			Speed:   parse.Stat(fields["speed"]),
			Stamina: parse.Stat(fields["stamina"]),
			Power:   parse.Stat(fields["power"]),
			Guts:    parse.Stat(fields["guts"]),
			Wisdom:  parse.Stat(fields["wisdom"]),
		},
		Aptitudes: Aptitudes{
			Track: TrackAptitudes{
				Turf: parse.Aptitude(fields["turf"]),
				Dirt: parse.Aptitude(fields["dirt"]),
			},
			Distance: DistanceAptitudes{
				Sprint: parse.Aptitude(fields["sprint"]),
				Mile:   parse.Aptitude(fields["mile"]),
				Medium: parse.Aptitude(fields["medium"]),
				Long:   parse.Aptitude(fields["long"]),
			},
			Style: StyleAptitudes{
				Front: parse.Aptitude(fields["front"]),
				Pace:  parse.Aptitude(fields["pace"]),
				Late:  parse.Aptitude(fields["late"]),
				End:   parse.Aptitude(fields["end"]),
			},
		},
		Skills: s.resolver.Resolve(skillLines),
	}

	if outfitID, charName, ok := s.roster.ResolveOutfit(fields["outfit"], fields["name"], s.outfitThreshold); ok {
		record.Outfit = outfitID
		record.Name = charName
	} else {
		log.Debug("no roster match", "outfit_text", fields["outfit"], "name_text", fields["name"])
	}

	record.Strategy = roster.DeriveStrategy(roster.StyleGrades{
		Front: record.Aptitudes.Style.Front,
		Pace:  record.Aptitudes.Style.Pace,
		Late:  record.Aptitudes.Style.Late,
		End:   record.Aptitudes.Style.End,
	})

	return record
}
