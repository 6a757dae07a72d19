package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/xvierd/pomodial/internal/domain"
)

// Half-block glyphs; each cell shows two vertical pixels.
const (
	glyphUpper = "▀"
	glyphLower = "▄"
	glyphFull  = "█"
)

type label struct {
	col, row int
	text     string
	style    TextStyle
}

// Raster is a Surface that paints into a grid of terminal cells. The canvas
// is scaled to cols × 2·rows pixels.
type Raster struct {
	cols, rows int

	// Mirror flips the painted pixels horizontally. Labels are not flipped.
	Mirror bool

	// Squeeze compresses the painting horizontally toward the center; 1
	// is the natural width, 0 collapses it to a line.
	Squeeze float64

	// Offset shifts the painted pixels by whole columns.
	Offset int

	pixels []Color
	labels []label
}

// NewRaster creates a raster of cols × rows cells.
func NewRaster(cols, rows int) *Raster {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Raster{
		cols:    cols,
		rows:    rows,
		Squeeze: 1,
		pixels:  make([]Color, cols*rows*2),
	}
}

// Size returns the raster size in cells.
func (r *Raster) Size() (cols, rows int) {
	return r.cols, r.rows
}

func (r *Raster) scale() (sx, sy float64) {
	return domain.CanvasSize / float64(r.cols), domain.CanvasSize / float64(r.rows*2)
}

// canvasPoint returns the canvas point sampled by pixel (px, py) once the
// cues are applied, and whether the pixel samples the canvas at all.
func (r *Raster) canvasPoint(px, py int) (float64, float64, bool) {
	px -= r.Offset
	if px < 0 || px >= r.cols {
		return 0, 0, false
	}
	if r.Mirror {
		px = r.cols - 1 - px
	}
	sx, sy := r.scale()
	x := (float64(px) + 0.5) * sx
	y := (float64(py) + 0.5) * sy

	if r.Squeeze < 1 {
		if r.Squeeze <= 0 {
			return 0, 0, false
		}
		x = domain.DialCenterX + (x-domain.DialCenterX)/r.Squeeze
		if x < 0 || x > domain.CanvasSize {
			return 0, 0, false
		}
	}
	return x, y, true
}

func (r *Raster) paint(fn func(x, y float64) (Color, bool)) {
	for py := 0; py < r.rows*2; py++ {
		for px := 0; px < r.cols; px++ {
			x, y, ok := r.canvasPoint(px, py)
			if !ok {
				continue
			}
			if c, hit := fn(x, y); hit {
				r.pixels[py*r.cols+px] = c
			}
		}
	}
}

// Clear wipes pixels and labels.
func (r *Raster) Clear() {
	for i := range r.pixels {
		r.pixels[i] = ""
	}
	r.labels = r.labels[:0]
}

// Disc paints a filled circle with its outline.
func (r *Raster) Disc(cx, cy, radius float64, fill, stroke Color, lineWidth float64) {
	inner := radius - lineWidth/2
	outer := radius + lineWidth/2
	r.paint(func(x, y float64) (Color, bool) {
		d := math.Hypot(x-cx, y-cy)
		switch {
		case d <= inner:
			return fill, true
		case d <= outer:
			return stroke, true
		default:
			return "", false
		}
	})
}

// Sector paints a pie slice starting at start and sweeping clockwise.
func (r *Raster) Sector(cx, cy, radius, start, sweep float64, fill Color) {
	if sweep <= 0 {
		return
	}
	r.paint(func(x, y float64) (Color, bool) {
		if math.Hypot(x-cx, y-cy) > radius {
			return "", false
		}
		if sweep >= 2*math.Pi {
			return fill, true
		}
		a := math.Mod(math.Atan2(y-cy, x-cx)-start+4*math.Pi, 2*math.Pi)
		return fill, a < sweep
	})
}

// Text places a label on the cell grid. Labels sit above the pixels and
// are never mirrored or squeezed.
func (r *Raster) Text(x, y float64, s string, style TextStyle) {
	sx, sy := r.scale()
	col := int(x / sx)
	row := int(y / (2 * sy))
	switch style.Align {
	case "center":
		col -= runewidth.StringWidth(s) / 2
	case "right", "end":
		col -= runewidth.StringWidth(s)
	}
	r.labels = append(r.labels, label{col: col, row: row, text: s, style: style})
}

// CellToCanvas maps the center of a cell to canvas coordinates. Cues do not
// affect the mapping: a click is read in screen space.
func (r *Raster) CellToCanvas(col, row int) (float64, float64) {
	sx, sy := r.scale()
	return (float64(col) + 0.5) * sx, (float64(row) + 0.5) * 2 * sy
}

// Contains reports whether a cell lies inside the raster.
func (r *Raster) Contains(col, row int) bool {
	return col >= 0 && col < r.cols && row >= 0 && row < r.rows
}

// PixelAt returns the color of pixel (px, py), empty when unpainted.
func (r *Raster) PixelAt(px, py int) Color {
	if px < 0 || px >= r.cols || py < 0 || py >= r.rows*2 {
		return ""
	}
	return r.pixels[py*r.cols+px]
}

type cell struct {
	glyph  string
	fg, bg Color
}

func (r *Raster) cellAt(col, row int) cell {
	top := r.pixels[(row*2)*r.cols+col]
	bottom := r.pixels[(row*2+1)*r.cols+col]
	switch {
	case top == "" && bottom == "":
		return cell{glyph: " "}
	case top == bottom:
		return cell{glyph: glyphFull, fg: top}
	case bottom == "":
		return cell{glyph: glyphUpper, fg: top}
	case top == "":
		return cell{glyph: glyphLower, fg: bottom}
	default:
		return cell{glyph: glyphUpper, fg: top, bg: bottom}
	}
}

// String renders the raster as rows of styled cells joined by newlines.
func (r *Raster) String() string {
	grid := make([][]cell, r.rows)
	for row := range grid {
		grid[row] = make([]cell, r.cols)
		for col := range grid[row] {
			grid[row][col] = r.cellAt(col, row)
		}
	}
	for _, l := range r.labels {
		if l.row < 0 || l.row >= r.rows {
			continue
		}
		col := l.col
		for _, ch := range l.text {
			if col >= 0 && col < r.cols {
				under := grid[l.row][col]
				bg := under.fg
				if under.glyph == glyphUpper && under.bg != "" {
					bg = under.bg
				}
				grid[l.row][col] = cell{glyph: string(ch), fg: l.style.Color, bg: bg}
			}
			col += runewidth.RuneWidth(ch)
		}
	}

	lines := make([]string, r.rows)
	for row, cells := range grid {
		lines[row] = renderRow(cells)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of cells that share colors in one pass.
func renderRow(cells []cell) string {
	var b strings.Builder
	var run strings.Builder
	var cur cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle()
		if cur.fg != "" {
			style = style.Foreground(lipgloss.Color(cur.fg))
		}
		if cur.bg != "" {
			style = style.Background(lipgloss.Color(cur.bg))
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}
	for i, c := range cells {
		if i == 0 || c.fg != cur.fg || c.bg != cur.bg {
			flush()
			cur = c
		}
		run.WriteString(c.glyph)
	}
	flush()
	return b.String()
}
