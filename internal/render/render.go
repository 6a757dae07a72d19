// Package render turns a timer snapshot into drawing commands. Draw is a
// pure function of the snapshot; the surface decides what the commands
// become (recorded calls in tests, terminal cells in the TUI).
package render

import (
	"math"

	"github.com/xvierd/pomodial/internal/domain"
)

// Color is a hex color such as "#ff6347".
type Color string

// Palette holds the dial colors.
type Palette struct {
	Track       Color
	TrackStroke Color
	Work        Color
	Break       Color
	Text        Color
}

// DefaultPalette returns the tomato-and-mint dial colors.
func DefaultPalette() Palette {
	return Palette{
		Track:       "#f4f4f4",
		TrackStroke: "#dddddd",
		Work:        "#ff6347",
		Break:       "#98fb98",
		Text:        "#333333",
	}
}

// SectorColor returns the progress color for a session kind.
func (p Palette) SectorColor(kind domain.SessionKind) Color {
	if kind == domain.SessionKindBreak {
		return p.Break
	}
	return p.Work
}

// TextStyle describes how a label is set.
type TextStyle struct {
	Font     string
	Color    Color
	Align    string
	Baseline string
}

// LabelStyle is the style of the remaining-time label.
func LabelStyle(p Palette) TextStyle {
	return TextStyle{
		Font:     "24px",
		Color:    p.Text,
		Align:    "center",
		Baseline: "middle",
	}
}

// StartAngle is 12 o'clock in canvas angle convention.
const StartAngle = -math.Pi / 2

// Surface receives drawing commands in canvas units.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()

	// Disc fills a circle and strokes its outline centered on radius r.
	Disc(cx, cy, r float64, fill, stroke Color, lineWidth float64)

	// Sector fills a pie slice from start sweeping clockwise by sweep.
	Sector(cx, cy, r, start, sweep float64, fill Color)

	// Text sets s anchored at (x, y).
	Text(x, y float64, s string, style TextStyle)
}

// Draw paints the dial for snap: track, progress sector, then the label.
func Draw(s Surface, snap domain.Snapshot, p Palette) {
	s.Clear()
	s.Disc(domain.DialCenterX, domain.DialCenterY, domain.DialRadius, p.Track, p.TrackStroke, domain.StrokeWidth)
	s.Sector(domain.DialCenterX, domain.DialCenterY, domain.DialRadius,
		StartAngle, domain.SweepAngle(snap.Remaining, snap.Total), p.SectorColor(snap.Kind))
	s.Text(domain.DialCenterX, domain.DialCenterY, domain.FormatClock(snap.Remaining), LabelStyle(p))
}
