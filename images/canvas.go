package images

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// FitToCanvas places an image on a square canvas of the given size.
//
// Images larger than the canvas in either dimension are shrunk with aspect
// ratio preserved. The (possibly shrunk) image is anchored at the canvas origin
// and the rest of the canvas is black, so box coordinates only need scaling.
//
// Arguments:
//   - img: The source image.
//   - size: The canvas width and height in pixels.
//
// Returns:
//   - image.Image: The padded canvas.
//   - Point: Per-axis scale applied to the source image (1 when it already fit).
//   - error: If size is not positive or the image is empty.
//
// @example
//
//	canvas, scale, err := FitToCanvas(frame, 640)
//	box := NewRect(x*scale.X, y*scale.Y, w*scale.X, h*scale.Y)
func FitToCanvas(img image.Image, size int) (image.Image, Point, error) {
	if size <= 0 {
		return nil, Point{}, errors.Errorf("canvas size must be positive, got %d", size)
	}
	if img == nil {
		return nil, Point{}, errors.New("nil image")
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil, Point{}, errors.Errorf("empty image %dx%d", width, height)
	}

	// Thumbnail returns the input untouched when it already fits.
	fitted := resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3)
	scale := Point{
		X: float32(fitted.Bounds().Dx()) / float32(width),
		Y: float32(fitted.Bounds().Dy()) / float32(height),
	}

	canvas := imaging.New(size, size, color.Black)
	canvas = imaging.Paste(canvas, fitted, image.Point{})

	return canvas, scale, nil
}
