package ttyview

import "math"

// Grid maps the arena's X/Z plane onto terminal cells, seen from above.
// Row 0 is reserved for the HUD. A cell is twice as tall as it is wide,
// so each world unit spans twice as many columns as rows.
type Grid struct {
	Left, Top   int
	Cols, Rows  int
	RowsPerUnit float64
	HalfSize    float64
}

// NewGrid fits an arena of the given half size into a width x height
// terminal, centered.
func NewGrid(width, height int, halfSize float64) Grid {
	rowsPerUnit := min(float64(height-1)/(2*halfSize), float64(width)/(4*halfSize))
	rowsPerUnit = max(rowsPerUnit, 0.1)

	cols := int(4 * halfSize * rowsPerUnit)
	rows := int(2 * halfSize * rowsPerUnit)
	return Grid{
		Left:        (width - cols) / 2,
		Top:         1 + (height-1-rows)/2,
		Cols:        cols,
		Rows:        rows,
		RowsPerUnit: rowsPerUnit,
		HalfSize:    halfSize,
	}
}

// Cell returns the column and row holding world point (x, z).
func (g Grid) Cell(x, z float64) (col, row int) {
	col = g.Left + int(math.Floor((x+g.HalfSize)*2*g.RowsPerUnit))
	row = g.Top + int(math.Floor((z+g.HalfSize)*g.RowsPerUnit))
	return col, row
}

// Pixels converts a cell into the pointer coordinates the input tracker
// expects, so that dragging by one cell moves the ball by one cell.
func (g Grid) Pixels(col, row int, dragScale float64) (x, y float64) {
	x = float64(col) / (2 * g.RowsPerUnit) / dragScale
	y = float64(row) / g.RowsPerUnit / dragScale
	return x, y
}

// Inside reports whether the cell lies within the arena.
func (g Grid) Inside(col, row int) bool {
	return col >= g.Left && col < g.Left+g.Cols && row >= g.Top && row < g.Top+g.Rows
}

// Border reports whether the cell is on the arena's outer ring.
func (g Grid) Border(col, row int) bool {
	return g.Inside(col, row) &&
		(col == g.Left || col == g.Left+g.Cols-1 || row == g.Top || row == g.Top+g.Rows-1)
}
