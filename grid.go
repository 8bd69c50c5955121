package skin

import (
	"math"
)

func init() {
	registerAttached("Grid.Row", 0)
	registerAttached("Grid.Column", 0)
	registerAttached("Grid.RowSpan", 1)
	registerAttached("Grid.ColumnSpan", 1)
}

// GridUnit selects how a row or column is sized.
type GridUnit int

const (
	// GridAuto sizes to the largest child that sits only in that track.
	GridAuto GridUnit = iota
	// GridPixel is a fixed size.
	GridPixel
	// GridStar shares the space left over by auto and pixel tracks, weighted by Value.
	GridStar
)

// GridLength is the size of one row or column.
type GridLength struct {
	Value float64
	Unit  GridUnit
}

// Auto returns an auto-sized track.
func Auto() GridLength { return GridLength{Unit: GridAuto} }

// Pixels returns a fixed track.
func Pixels(v float64) GridLength { return GridLength{Value: v, Unit: GridPixel} }

// Star returns a proportional track.
func Star(weight float64) GridLength { return GridLength{Value: weight, Unit: GridStar} }

// Grid lays children out in rows and columns. Children choose their cell with
// the Grid.Row, Grid.Column, Grid.RowSpan and Grid.ColumnSpan attached
// values. A grid without definitions has one star row and one star column.
type Grid struct {
	Panel

	// Rows and Columns hold the track definitions. Use SetDefinitions to
	// change them on a live grid.
	Rows    []GridLength
	Columns []GridLength

	rowSizes, colSizes []float64
}

// NewGrid creates a grid with the given definitions.
func NewGrid(rows, columns []GridLength) *Grid {
	g := &Grid{Rows: rows, Columns: columns}
	g.initPanel(g)
	return g
}

// SetDefinitions replaces the track definitions and invalidates the layout.
func (g *Grid) SetDefinitions(rows, columns []GridLength) {
	g.Rows, g.Columns = rows, columns
	g.Invalidate()
}

// Place adds el in the cell at row, column.
func (g *Grid) Place(el Element, row, column int) *Grid {
	SetCell(el, row, column, 1, 1)
	g.children.Add(el)
	return g
}

// SetCell sets the grid placement of el.
func SetCell(el Element, row, column, rowSpan, columnSpan int) {
	fe := el.Framework()
	attached(fe, "Grid.Row", 0).SetValue(row)
	attached(fe, "Grid.Column", 0).SetValue(column)
	attached(fe, "Grid.RowSpan", 1).SetValue(rowSpan)
	attached(fe, "Grid.ColumnSpan", 1).SetValue(columnSpan)
}

type gridCell struct {
	row, col, rowSpan, colSpan int
}

func (g *Grid) cell(el Element, rows, cols int) gridCell {
	c := gridCell{
		row:     attachedValue(el, "Grid.Row", 0),
		col:     attachedValue(el, "Grid.Column", 0),
		rowSpan: attachedValue(el, "Grid.RowSpan", 1),
		colSpan: attachedValue(el, "Grid.ColumnSpan", 1),
	}
	c.row = clampInt(c.row, 0, rows-1)
	c.col = clampInt(c.col, 0, cols-1)
	c.rowSpan = clampInt(c.rowSpan, 1, rows-c.row)
	c.colSpan = clampInt(c.colSpan, 1, cols-c.col)
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *Grid) definitions() (rows, cols []GridLength) {
	rows, cols = g.Rows, g.Columns
	if len(rows) == 0 {
		rows = []GridLength{Star(1)}
	}
	if len(cols) == 0 {
		cols = []GridLength{Star(1)}
	}
	return rows, cols
}

// MeasureOverride implements Element.
//
// Children in auto tracks are measured with unbounded space on that axis.
// Star tracks split what remains of a bounded axis; on an unbounded axis
// they size like auto tracks.
func (g *Grid) MeasureOverride(rc *RenderContext, available Size) Size {
	rows, cols := g.definitions()
	children := g.children.Items()

	for _, c := range children {
		cell := g.cell(c, len(rows), len(cols))
		avail := Size{
			Width:  trackSpan(cols, cell.col, cell.colSpan, available.Width),
			Height: trackSpan(rows, cell.row, cell.rowSpan, available.Height),
		}
		Measure(rc, c, avail)
	}

	g.colSizes = resolveTracks(cols, available.Width, func(i int) float64 {
		return largestInTrack(children, func(c Element) (int, int, float64) {
			cell := g.cell(c, len(rows), len(cols))
			return cell.col, cell.colSpan, c.Framework().DesiredSize().Width
		}, i)
	})
	g.rowSizes = resolveTracks(rows, available.Height, func(i int) float64 {
		return largestInTrack(children, func(c Element) (int, int, float64) {
			cell := g.cell(c, len(rows), len(cols))
			return cell.row, cell.rowSpan, c.Framework().DesiredSize().Height
		}, i)
	})

	// Children were measured before star tracks were known; measure them
	// again with their final cell size.
	for _, c := range children {
		cell := g.cell(c, len(rows), len(cols))
		Measure(rc, c, Size{
			Width:  sum(g.colSizes[cell.col : cell.col+cell.colSpan]),
			Height: sum(g.rowSizes[cell.row : cell.row+cell.rowSpan]),
		})
	}
	return Size{Width: sum(g.colSizes), Height: sum(g.rowSizes)}
}

// trackSpan returns the space a child spanning n tracks from start may use
// during the first measure: the sum of pixel tracks, or unbounded when any
// spanned track is auto or star.
func trackSpan(tracks []GridLength, start, n int, available float64) float64 {
	total := 0.0
	for _, t := range tracks[start : start+n] {
		if t.Unit != GridPixel {
			if len(tracks) == 1 {
				return available
			}
			return math.Inf(1)
		}
		total += t.Value
	}
	return total
}

func largestInTrack(children []Element, span func(Element) (int, int, float64), track int) float64 {
	largest := 0.0
	for _, c := range children {
		if start, n, size := span(c); start == track && n == 1 {
			largest = math.Max(largest, size)
		}
	}
	return largest
}

// resolveTracks sizes pixel and auto tracks, then gives star tracks their
// weighted share of what is left.
func resolveTracks(tracks []GridLength, available float64, content func(i int) float64) []float64 {
	sizes := make([]float64, len(tracks))
	used, stars := 0.0, 0.0
	for i, t := range tracks {
		switch t.Unit {
		case GridPixel:
			sizes[i] = t.Value
		case GridAuto:
			sizes[i] = content(i)
		case GridStar:
			stars += math.Max(t.Value, 0)
			continue
		}
		used += sizes[i]
	}
	for i, t := range tracks {
		if t.Unit != GridStar {
			continue
		}
		if isInf(available) || stars == 0 {
			sizes[i] = content(i)
			continue
		}
		sizes[i] = math.Max(0, available-used) * math.Max(t.Value, 0) / stars
	}
	return sizes
}

func sum(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

// ArrangeOverride implements Element.
func (g *Grid) ArrangeOverride(rc *RenderContext, final Rect) {
	rows, cols := g.definitions()
	if len(g.rowSizes) != len(rows) || len(g.colSizes) != len(cols) {
		// definitions changed since the last measure
		g.MeasureOverride(rc, Size{Width: final.Width, Height: final.Height})
	}
	rowSizes := resolveTracks(rows, final.Height, func(i int) float64 { return g.rowSizes[i] })
	colSizes := resolveTracks(cols, final.Width, func(i int) float64 { return g.colSizes[i] })

	for _, c := range g.children.Items() {
		cell := g.cell(c, len(rows), len(cols))
		Arrange(rc, c, Rect{
			X:      final.X + sum(colSizes[:cell.col]),
			Y:      final.Y + sum(rowSizes[:cell.row]),
			Width:  sum(colSizes[cell.col : cell.col+cell.colSpan]),
			Height: sum(rowSizes[cell.row : cell.row+cell.rowSpan]),
		})
	}
}

// Clone implements Element.
func (g *Grid) Clone() Element {
	n := NewGrid(append([]GridLength(nil), g.Rows...), append([]GridLength(nil), g.Columns...))
	g.clonePanel(&n.Panel)
	return n
}
