package labels

import (
	"image"

	"gorgonia.org/tensor"
)

const (
	// SlotSize is the number of values stored per bounding-box slot.
	SlotSize = 5
	// SlotsPerCell is the number of bounding-box slots in each cell.
	// Only one box can be encoded per cell.
	SlotsPerCell = 1
)

// Slot is the record stored for one bounding box in one cell. In the tensor
// it is laid out as [Score, CenterX, CenterY, Width, Height].
type Slot struct {
	// Score is NoObjectWeight or HasObjectWeight.
	Score float32
	// CenterX is the box center offset from the cell's left edge, in cell widths.
	CenterX float32
	// CenterY is the box center offset from the cell's top edge, in cell heights.
	CenterY float32
	// Width is the box width in cell widths.
	Width float32
	// Height is the box height in cell heights.
	Height float32
}

// Grid is a dense (rows, cols, SlotsPerCell*SlotSize) float32 training target.
type Grid struct {
	rows  int
	cols  int
	data  []float32
	dense *tensor.Dense
}

// NewGrid allocates a grid with every score set to noObjectWeight and every
// geometry field set to 0.
//
// Arguments:
//   - rows: Number of cell rows.
//   - cols: Number of cell columns.
//   - noObjectWeight: Initial score for every cell.
//
// Returns:
//   - *Grid: The initialized grid.
func NewGrid(rows, cols int, noObjectWeight float32) *Grid {
	data := make([]float32, rows*cols*SlotsPerCell*SlotSize)
	if noObjectWeight != 0 {
		for i := 0; i < len(data); i += SlotSize {
			data[i] = noObjectWeight
		}
	}

	return &Grid{
		rows: rows,
		cols: cols,
		data: data,
		dense: tensor.New(
			tensor.WithShape(rows, cols, SlotsPerCell*SlotSize),
			tensor.WithBacking(data),
		),
	}
}

// Rows returns the number of cell rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of cell columns.
func (g *Grid) Cols() int { return g.cols }

// Shape returns the tensor shape (rows, cols, SlotsPerCell*SlotSize).
func (g *Grid) Shape() tensor.Shape {
	return g.dense.Shape().Clone()
}

// Tensor returns the grid as a gorgonia tensor. The tensor shares memory with
// the grid.
func (g *Grid) Tensor() *tensor.Dense {
	return g.dense
}

// Data returns the row-major backing slice. It shares memory with the grid.
func (g *Grid) Data() []float32 {
	return g.data
}

// Contains reports whether (row, col) lies inside the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) offset(row, col int) int {
	return (row*g.cols + col) * SlotsPerCell * SlotSize
}

// Slot returns the record stored in cell (row, col). It panics if the cell is
// outside the grid.
func (g *Grid) Slot(row, col int) Slot {
	g.mustContain(row, col)
	v := g.data[g.offset(row, col):]
	return Slot{
		Score:   v[0],
		CenterX: v[1],
		CenterY: v[2],
		Width:   v[3],
		Height:  v[4],
	}
}

// SetSlot overwrites the record stored in cell (row, col).
func (g *Grid) SetSlot(row, col int, s Slot) {
	g.mustContain(row, col)
	v := g.data[g.offset(row, col):]
	v[0] = s.Score
	v[1] = s.CenterX
	v[2] = s.CenterY
	v[3] = s.Width
	v[4] = s.Height
}

// Score returns the presence score of cell (row, col).
func (g *Grid) Score(row, col int) float32 {
	g.mustContain(row, col)
	return g.data[g.offset(row, col)]
}

// SetScore sets the presence score of cell (row, col), leaving geometry alone.
func (g *Grid) SetScore(row, col int, score float32) {
	g.mustContain(row, col)
	g.data[g.offset(row, col)] = score
}

// PresentCells lists the cells whose score equals weight, in row-major order.
// Each point is (X: col, Y: row).
func (g *Grid) PresentCells(weight float32) []image.Point {
	var cells []image.Point
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.data[g.offset(row, col)] == weight {
				cells = append(cells, image.Point{X: col, Y: row})
			}
		}
	}
	return cells
}

func (g *Grid) mustContain(row, col int) {
	if !g.Contains(row, col) {
		panic("labels: cell outside grid")
	}
}
