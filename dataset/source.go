// Package dataset - Image and annotation sources feeding the label encoder.
package dataset

import (
	"image"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-labels/labels"
)

// ErrUnknownImage is returned (wrapped) when a source has no image or
// annotations for an id.
var ErrUnknownImage = errors.New("unknown image")

// Source provides images and their annotations by id. Any type with these
// two methods can feed a Generator.
type Source interface {
	// Image returns the raster for id, before it is fitted to the canvas.
	Image(id int) (image.Image, error)
	// Annotations returns the boxes on the image for id, in the image's own
	// pixel coordinates.
	Annotations(id int) ([]labels.Annotation, error)
}
