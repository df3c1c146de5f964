package charts

import "math"

const (
	arrowHeadLength = 8.0
	arrowHeadAngle  = 25 * math.Pi / 180
)

// arrowHead returns the two barb end points of an arrow ending at (tipX, tipY)
// and coming from (fromX, fromY). Works in any orthonormal coordinate system.
func arrowHead(fromX, fromY, tipX, tipY, length float64) (lx, ly, rx, ry float64) {
	angle := math.Atan2(fromY-tipY, fromX-tipX)
	lx = tipX + length*math.Cos(angle+arrowHeadAngle)
	ly = tipY + length*math.Sin(angle+arrowHeadAngle)
	rx = tipX + length*math.Cos(angle-arrowHeadAngle)
	ry = tipY + length*math.Sin(angle-arrowHeadAngle)
	return lx, ly, rx, ry
}

// clampSpan orders [a, b] and clips it to [min, max].
func clampSpan(a, b, min, max float64) (float64, float64) {
	if a > b {
		a, b = b, a
	}
	return math.Max(a, min), math.Min(b, max)
}

// pointsToPixels converts typographic points to pixels at dpi.
func pointsToPixels(pt, dpi float64) float64 { return pt * dpi / 72 }
