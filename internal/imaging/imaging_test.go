package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// writeTestPNG writes a 12x8 image with a single red pixel at (5, 3).
func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	img.Set(5, 3, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "marker.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeToMatPreservesPixels(t *testing.T) {
	decoded, err := Decode(writeTestPNG(t))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	m, err := ToMat(decoded)
	if err != nil {
		t.Fatalf("ToMat: %v", err)
	}
	defer m.Close()

	if m.Cols() != 12 || m.Rows() != 8 {
		t.Fatalf("mat is %dx%d, want 12x8", m.Cols(), m.Rows())
	}
	// Red in BGR channel order.
	if b, r := m.GetUCharAt(3, 5*3), m.GetUCharAt(3, 5*3+2); b != 0 || r != 255 {
		t.Errorf("pixel (5,3) = B%d/R%d, want B0/R255", b, r)
	}
}

func TestLoadMatReadsEncodedImage(t *testing.T) {
	m, err := LoadMat(writeTestPNG(t))
	if err != nil {
		t.Fatalf("LoadMat: %v", err)
	}
	defer m.Close()

	if m.Cols() != 12 || m.Rows() != 8 {
		t.Errorf("mat is %dx%d, want 12x8", m.Cols(), m.Rows())
	}
}

func TestLoadMatRejectsUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMat(path); err == nil {
		t.Fatal("expected error for undecodable file")
	}
	if _, err := LoadMat(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCropReturnsIndependentRaster(t *testing.T) {
	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 10, 10, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer src.Close()

	crop, err := Crop(src, geometry.NewRectInt(20, 30, 40, 20))
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	defer crop.Close()

	if crop.Cols() != 40 || crop.Rows() != 20 {
		t.Fatalf("crop is %dx%d, want 40x20", crop.Cols(), crop.Rows())
	}

	// Writing into the crop must not touch the source.
	crop.SetUCharAt(0, 0, 255)
	if got := src.GetUCharAt(30, 20*3); got != 10 {
		t.Errorf("source modified through crop: %d", got)
	}
}

func TestCropRejectsOutOfBounds(t *testing.T) {
	src := gocv.NewMatWithSize(50, 50, gocv.MatTypeCV8UC3)
	defer src.Close()

	tests := []geometry.RectInt{
		geometry.NewRectInt(40, 40, 20, 20),
		geometry.NewRectInt(-1, 0, 10, 10),
		geometry.NewRectInt(0, 0, 0, 10),
	}
	for _, b := range tests {
		if _, err := Crop(src, b); err == nil {
			t.Errorf("Crop(%+v) should fail", b)
		}
	}
}
