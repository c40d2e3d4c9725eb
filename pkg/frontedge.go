package digitizer

import "math"

// NoEdgeTime marks a channel with no measured arrival. Pure-noise
// digits carry it, and time aggregation ignores it. An explicit
// sentinel keeps a literal t=0 arrival meaningful: zero is a valid
// measurement, never a terminator.
const NoEdgeTime = math.MaxFloat64

func HasEdge(time float64) bool {
	return time != NoEdgeTime
}

// FrontEdgeTime reduces the arrival times presented to a channel to the
// front edge, the earliest measured one. With no measured entries the
// result is NoEdgeTime itself.
func FrontEdgeTime(times []float64) float64 {
	front := NoEdgeTime
	for _, t := range times {
		if t < front {
			front = t
		}
	}
	return front
}
