// Package gesture maps raw drag vectors onto board directions.
//
// A drag counts as a swipe when it is long enough and its angle falls inside
// a tolerance band around one of the four cardinal directions; diagonal drags
// classify as nothing, so a renderer can ignore them instead of guessing.
// Vectors use screen coordinates: x grows right, y grows down.
package gesture

import (
	"math"

	"github.com/jacobp100/Glass2048/game/engine"
)

const (
	// DefaultTolerance is the half-width, in radians, of the angular sector
	// accepted around each cardinal direction. It must stay below pi/4 or the
	// sectors would overlap.
	DefaultTolerance = math.Pi / 6

	// DefaultMinDistance is the smallest drag magnitude treated as a swipe
	// rather than a tap.
	DefaultMinDistance = 20.0
)

// Classifier holds the thresholds for swipe recognition.
type Classifier struct {
	Tolerance   float64
	MinDistance float64
}

// NewClassifier returns a classifier with the default thresholds.
func NewClassifier() Classifier {
	return Classifier{
		Tolerance:   DefaultTolerance,
		MinDistance: DefaultMinDistance,
	}
}

// Classify maps a drag vector to the direction whose sector contains it.
// The second return is false for taps and for drags outside every sector.
func (c Classifier) Classify(dx, dy float64) (engine.Direction, bool) {
	if math.Hypot(dx, dy) < c.MinDistance {
		return 0, false
	}

	angle := math.Atan2(dy, dx)
	switch {
	case math.Abs(angle) <= c.Tolerance:
		return engine.Right, true
	case math.Abs(angle-math.Pi/2) <= c.Tolerance:
		return engine.Down, true
	case math.Abs(angle+math.Pi/2) <= c.Tolerance:
		return engine.Up, true
	case math.Pi-math.Abs(angle) <= c.Tolerance:
		return engine.Left, true
	default:
		return 0, false
	}
}

// Classify applies the default classifier to a drag vector.
func Classify(dx, dy float64) (engine.Direction, bool) {
	return NewClassifier().Classify(dx, dy)
}
