package geometry

// Photo-grid defaults: at most four rows of four.
const (
	DefaultMaxRows   = 4
	DefaultPerRowCap = 4
)

// DistributeIntoRows splits count items into rows. The row count is
// ceil(count/perRow) capped at maxRows, and count is clamped to
// maxRows*perRow (overflow items are dropped, never wrapped). Items are spread
// as evenly as possible; the remainder goes to the earliest rows one extra
// item each, so row sizes never increase from first to last.
func DistributeIntoRows(count, maxRows, perRow int) []int {
	if count <= 0 || maxRows <= 0 || perRow <= 0 {
		return nil
	}
	if limit := maxRows * perRow; count > limit {
		count = limit
	}

	rows := (count + perRow - 1) / perRow
	if rows > maxRows {
		rows = maxRows
	}

	base := count / rows
	extra := count % rows
	sizes := make([]int, rows)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// CellRect returns the cell at (row, col) relative to the grid origin. Each
// row divides gridWidth evenly among its own items; all rows share one
// height. Positions accumulate index*(size+gap) with no drift correction.
func CellRect(row, col int, rowSizes []int, gridWidth, gridHeight, gap float64) Rect {
	rows := len(rowSizes)
	if rows == 0 || row < 0 || row >= rows {
		return Rect{}
	}
	cols := rowSizes[row]
	if cols <= 0 || col < 0 || col >= cols {
		return Rect{}
	}

	w := (gridWidth - gap*float64(cols-1)) / float64(cols)
	h := (gridHeight - gap*float64(rows-1)) / float64(rows)
	return Rect{
		X: float64(col) * (w + gap),
		Y: float64(row) * (h + gap),
		W: w,
		H: h,
	}
}

// GridCells lays out every cell of rowSizes inside area, in row-major order,
// returning absolute rectangles.
func GridCells(rowSizes []int, area Rect, gap float64) []Rect {
	total := 0
	for _, n := range rowSizes {
		total += n
	}
	cells := make([]Rect, 0, total)
	for row, cols := range rowSizes {
		for col := 0; col < cols; col++ {
			cell := CellRect(row, col, rowSizes, area.W, area.H, gap)
			cells = append(cells, cell.Offset(Point{X: area.X, Y: area.Y}))
		}
	}
	return cells
}
