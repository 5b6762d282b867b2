package labels

import "github.com/nvr-ai/go-labels/images"

// Annotation is one labelled object on an image, in absolute pixels with the
// y axis pointing down.
type Annotation struct {
	// BBox is [x, y, width, height] of the box's upper-left corner and size.
	BBox [4]float32 `json:"bbox" yaml:"bbox"`
	// Score is the labeller's confidence, when the annotation was machine made.
	Score float32 `json:"score,omitempty" yaml:"score,omitempty"`
	// Index is the detection's position in the labeller's output.
	Index int `json:"index,omitempty" yaml:"index,omitempty"`
}

// NewAnnotation builds an annotation from x, y, width, height.
func NewAnnotation(x, y, width, height float32) Annotation {
	return Annotation{BBox: [4]float32{x, y, width, height}}
}

// Rect returns the bounding box as an images.Rect.
func (a Annotation) Rect() images.Rect {
	return images.NewRect(a.BBox[0], a.BBox[1], a.BBox[2], a.BBox[3])
}

// Scaled returns a copy with every bbox coordinate multiplied per axis.
func (a Annotation) Scaled(scale images.Point) Annotation {
	a.BBox = [4]float32{
		a.BBox[0] * scale.X,
		a.BBox[1] * scale.Y,
		a.BBox[2] * scale.X,
		a.BBox[3] * scale.Y,
	}
	return a
}
