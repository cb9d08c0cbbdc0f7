package timeline

import (
	"log"
	"math"
	"time"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
)

// DefaultDriverFreq is the tick rate a Driver uses when none is given.
const DefaultDriverFreq = 60 * Hz

// Period returns the wall time between two consecutive ticks
func (f Freq) Period() time.Duration {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}
	if math.IsNaN(float64(f)) || f < 0 {
		log.Panic("invalid frequency")
	}
	return time.Duration(float64(time.Second) / float64(f))
}
