package render

// Op names a drawing command.
type Op string

const (
	OpClear  Op = "clear"
	OpDisc   Op = "disc"
	OpSector Op = "sector"
	OpText   Op = "text"
)

// Command is one recorded drawing call.
type Command struct {
	Op        Op
	X, Y, R   float64
	Start     float64
	Sweep     float64
	LineWidth float64
	Fill      Color
	Stroke    Color
	Text      string
	Style     TextStyle
}

// Recorder is a Surface that keeps every call for later inspection.
type Recorder struct {
	Commands []Command
}

// Clear records a clear.
func (r *Recorder) Clear() {
	r.Commands = append(r.Commands, Command{Op: OpClear})
}

// Disc records a disc.
func (r *Recorder) Disc(cx, cy, radius float64, fill, stroke Color, lineWidth float64) {
	r.Commands = append(r.Commands, Command{
		Op: OpDisc, X: cx, Y: cy, R: radius,
		Fill: fill, Stroke: stroke, LineWidth: lineWidth,
	})
}

// Sector records a sector.
func (r *Recorder) Sector(cx, cy, radius, start, sweep float64, fill Color) {
	r.Commands = append(r.Commands, Command{
		Op: OpSector, X: cx, Y: cy, R: radius,
		Start: start, Sweep: sweep, Fill: fill,
	})
}

// Text records a label.
func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.Commands = append(r.Commands, Command{Op: OpText, X: x, Y: y, Text: s, Style: style})
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}
