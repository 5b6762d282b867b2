package labels

import (
	"github.com/chewxy/math32"
	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-labels/images"
)

// Encoder turns the annotations of one image into a Grid.
//
// An Encoder holds only its validated Config and a logger, so a single
// Encoder may be used from many goroutines at once. Every call to Encode
// allocates and owns its own Grid.
type Encoder struct {
	config Config
	log    logs.Log
}

// NewEncoder validates the configuration and creates an encoder.
//
// Arguments:
//   - config: Grid and scoring configuration.
//   - log: Receives warnings about annotation anomalies. If nil, a stdout
//     logger is created.
//
// Returns:
//   - *Encoder: The encoder.
//   - error: ErrInvalidConfig (wrapped) if the configuration is unusable.
//
// @example
//
//	encoder, err := NewEncoder(DefaultConfig(), logs.NewTestingLog(t))
//	grid := encoder.Encode(imageID, annotations)
func NewEncoder(config Config, log logs.Log) (*Encoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l, err := logs.NewLog()
		if err != nil {
			return nil, errors.Wrap(err, "creating encoder log")
		}
		log = l
	}

	return &Encoder{
		config: config,
		log:    log,
	}, nil
}

// Config returns the encoder's configuration.
func (e *Encoder) Config() Config {
	return e.config
}

// Encode builds the training grid for one image.
//
// Annotations are applied in order. The cell containing a box's center gets
// the box's geometry in cell-relative units; other cells the box reaches get
// a presence score according to how much of them it covers. When a box
// center falls in a cell that is already marked present, whether by another
// box's center or by its propagation, a warning is logged and the later box
// overwrites the cell, since a cell has room for only one box.
//
// Arguments:
//   - imageID: Identifies the image in log messages.
//   - annotations: Boxes in absolute canvas pixels.
//
// Returns:
//   - *Grid: A fresh grid owned by the caller.
func (e *Encoder) Encode(imageID int, annotations []Annotation) *Grid {
	rows, cols := e.config.GridShape()
	grid := NewGrid(rows, cols, e.config.NoObjectWeight)

	for _, annotation := range annotations {
		e.encodeAnnotation(grid, imageID, annotation)
	}

	return grid
}

func (e *Encoder) encodeAnnotation(grid *Grid, imageID int, annotation Annotation) {
	cellW := float32(e.config.CellWidth)
	cellH := float32(e.config.CellHeight)

	box := annotation.Rect()
	if !validSize(box.Dims) {
		e.log.Warnf("Image %d has a bounding box with invalid size %vx%v, skipping", imageID, box.Dims.X, box.Dims.Y)
		return
	}

	center := box.Center()
	// Comparisons are written so that NaN fails them.
	if !(center.X >= 0 && center.X < float32(grid.Cols())*cellW && center.Y >= 0 && center.Y < float32(grid.Rows())*cellH) {
		e.log.Warnf("Image %d has a bounding box centered outside the grid at (%v,%v), skipping", imageID, center.X, center.Y)
		return
	}

	col := int(math32.Floor(center.X / cellW))
	row := int(math32.Floor(center.Y / cellH))

	rel := Slot{
		Score:   e.config.HasObjectWeight,
		CenterX: (center.X - float32(col)*cellW) / cellW,
		CenterY: (center.Y - float32(row)*cellH) / cellH,
		Width:   box.Dims.X / cellW,
		Height:  box.Dims.Y / cellH,
	}

	// TODO: Store more than one box per cell once the model has SlotsPerCell > 1.
	if grid.Score(row, col) != e.config.NoObjectWeight {
		e.log.Warnf("Image %d has multiple bounding boxes in cell (%d,%d)", imageID, col, row)
	}
	grid.SetSlot(row, col, rel)

	e.propagate(grid, row, col, rel)
}

// propagate marks the cells around (row, col) that the box reaches.
//
// Coordinates here are relative to the owning cell, which spans [0,1]x[0,1],
// so the neighbour at offset (dx, dy) spans [dx,dx+1]x[dy,dy+1] and the box's
// overlap with it is directly the fraction of that cell it covers:
//   - 1 for cells the box covers completely, which are always marked;
//   - the protruding margin for border cells (one axis fully covered);
//   - the product of both margins for corner cells.
//
// Partially covered cells are marked only when the overlap is strictly
// greater than the threshold, and never lose an existing score.
func (e *Encoder) propagate(grid *Grid, row, col int, rel Slot) {
	span := images.NewRect(rel.CenterX-rel.Width/2, rel.CenterY-rel.Height/2, rel.Width, rel.Height)
	lowerRight := span.LowerRight()

	// Clamp the span to the grid before converting to ints.
	dxLo := int(math32.Max(math32.Floor(span.UpperLeft.X), float32(-col)))
	dxHi := int(math32.Min(math32.Ceil(lowerRight.X), float32(grid.Cols()-col)))
	dyLo := int(math32.Max(math32.Floor(span.UpperLeft.Y), float32(-row)))
	dyHi := int(math32.Min(math32.Ceil(lowerRight.Y), float32(grid.Rows()-row)))

	has := e.config.HasObjectWeight
	for dy := dyLo; dy < dyHi; dy++ {
		for dx := dxLo; dx < dxHi; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			r, c := row+dy, col+dx
			if !grid.Contains(r, c) {
				continue
			}

			coverage := images.IntersectionArea(span, images.NewRect(float32(dx), float32(dy), 1, 1))
			switch {
			case coverage >= 1:
				grid.SetScore(r, c, has)
			case coverage > e.config.IntersectionThreshold:
				grid.SetScore(r, c, math32.Max(grid.Score(r, c), has))
			}
		}
	}
}

func validSize(dims images.Point) bool {
	return dims.X >= 0 && dims.Y >= 0 && !math32.IsInf(dims.X, 0) && !math32.IsInf(dims.Y, 0)
}
