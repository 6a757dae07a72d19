package domain

import "math"

// Dial geometry in canvas units.
const (
	CanvasSize  = 300.0
	DialCenterX = 150.0
	DialCenterY = 150.0
	DialRadius  = 140.0
	StrokeWidth = 10.0
)

// SweepAngle returns the angle of the progress sector, 2π·remaining/total.
// Values outside [0, total] are clamped and a non-positive total yields an
// empty sector.
func SweepAngle(remaining, total int) float64 {
	return 2 * math.Pi * Snapshot{Remaining: remaining, Total: total}.Progress()
}

// AngleFromPoint returns the clockwise angle of (x, y) around the dial
// center measured from 12 o'clock, normalized to [0, 2π).
func AngleFromPoint(x, y float64) float64 {
	angle := math.Atan2(y-DialCenterY, x-DialCenterX) + math.Pi/2
	return math.Mod(angle+2*math.Pi, 2*math.Pi)
}

// TimeFromAngle maps an angle proportionally onto [0, max) whole seconds.
func TimeFromAngle(angle float64, max int) int {
	return int(math.Floor(angle / (2 * math.Pi) * float64(max)))
}
