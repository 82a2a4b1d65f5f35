// Package ocr provides text recognition for cropped screen regions using
// Tesseract.
package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"uma-scanner/internal/layout"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Character sets for constrained fields. Restricting the whitelist keeps
// Tesseract from misreading stat digits as letters and grade letters as
// punctuation.
const (
	numericChars = "0123456789"
	gradeChars   = "SABCDEFG"
)

// Engine wraps a Tesseract client. A single client is not safe for
// concurrent use, so recognition calls are serialized.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates an OCR engine. languages are Tesseract language codes;
// the default is Japanese plus English, matching the skill catalog.
func NewEngine(languages ...string) (*Engine, error) {
	if len(languages) == 0 {
		languages = []string{"jpn", "eng"}
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR languages %v: %w", languages, err)
	}

	// Skill and character names are proper nouns; dictionary correction
	// hurts more than it helps.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// RecognizeRegion recognizes the text in a cropped region raster. The
// region's kind selects the character whitelist and segmentation mode.
func (e *Engine) RecognizeRegion(ctx context.Context, img gocv.Mat, region layout.Region) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img.Empty() {
		return "", fmt.Errorf("empty region image")
	}

	processed := preprocess(img)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}
	defer buf.Close()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("set page segmentation: %w", err)
	}

	whitelist := ""
	switch region.Kind {
	case layout.KindStat:
		whitelist = numericChars
	case layout.KindAptitude:
		whitelist = gradeChars
	}
	if err := e.client.SetWhitelist(whitelist); err != nil && whitelist != "" {
		return "", fmt.Errorf("set whitelist: %w", err)
	}

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", region.Name, err)
	}

	text = strings.TrimSpace(text)
	return strings.Join(strings.Fields(text), " "), nil
}

// preprocess prepares a cropped region for recognition: upscale small
// crops, equalize contrast, binarize, and normalize polarity to dark text
// on a light background.
func preprocess(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	var scaled gocv.Mat
	if minDim := min(h, w); minDim < 48 {
		scale := 48.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{X: 8, Y: 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// Mostly-dark result means light text on a dark panel; Tesseract wants
	// dark text on light background.
	whiteRatio := float64(gocv.CountNonZero(binary)) / float64(binary.Rows()*binary.Cols())
	if whiteRatio < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}
