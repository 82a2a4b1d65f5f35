// Package imaging provides image loading, conversion, and cropping helpers
// shared by the extraction pipeline.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"uma-scanner/pkg/geometry"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadMat reads an image file into a BGR Mat. Formats OpenCV's reader
// rejects fall back to the registered Go decoders, so webp screenshots
// load the same way as png or jpeg ones.
func LoadMat(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if !img.Empty() {
		return img, nil
	}
	img.Close()

	decoded, err := Decode(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("read image %s: %w", path, err)
	}
	return ToMat(decoded)
}

// Decode reads an image file using the registered Go decoders.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// ToMat converts a Go image into a BGR Mat.
func ToMat(src image.Image) (gocv.Mat, error) {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, src, b, draw.Src, nil)

	m, err := gocv.ImageToMatRGBA(rgba)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert image to mat: %w", err)
	}
	defer m.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(m, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// Crop copies the sub-raster addressed by bounds into an independent Mat.
// The caller owns the returned Mat. No scaling or filtering is applied.
func Crop(src gocv.Mat, bounds geometry.RectInt) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.Mat{}, fmt.Errorf("empty source image")
	}
	if bounds.Empty() || !bounds.Inside(src.Cols(), src.Rows()) {
		return gocv.Mat{}, fmt.Errorf("crop bounds %v outside %dx%d image",
			bounds, src.Cols(), src.Rows())
	}

	view := src.Region(bounds.ToImageRect())
	defer view.Close()
	return view.Clone(), nil
}
