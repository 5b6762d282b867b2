package labels

import "github.com/nvr-ai/go-labels/images"

// Detection is a box recovered from a grid.
type Detection struct {
	// Row and Col identify the cell that owns the box.
	Row, Col int
	// Score is the cell's presence score.
	Score float32
	// Box is the absolute box on the padded canvas.
	Box images.Rect
}

// Decode recovers the boxes stored in a grid's owning cells.
//
// Only cells whose score equals config.HasObjectWeight and that carry
// geometry are returned. Cells marked present by propagation have no geometry
// and are skipped, which also skips zero-size boxes centered exactly on a
// cell corner.
//
// Arguments:
//   - grid: A grid produced by Encoder.Encode.
//   - config: The configuration the grid was encoded with.
//
// Returns:
//   - []Detection: Boxes in row-major cell order.
func Decode(grid *Grid, config Config) []Detection {
	cellW := float32(config.CellWidth)
	cellH := float32(config.CellHeight)

	var detections []Detection
	for _, cell := range grid.PresentCells(config.HasObjectWeight) {
		s := grid.Slot(cell.Y, cell.X)
		if s.CenterX == 0 && s.CenterY == 0 && s.Width == 0 && s.Height == 0 {
			continue
		}

		w := s.Width * cellW
		h := s.Height * cellH
		cx := (float32(cell.X) + s.CenterX) * cellW
		cy := (float32(cell.Y) + s.CenterY) * cellH
		detections = append(detections, Detection{
			Row:   cell.Y,
			Col:   cell.X,
			Score: s.Score,
			Box:   images.NewRect(cx-w/2, cy-h/2, w, h),
		})
	}

	return detections
}
