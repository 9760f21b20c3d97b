// Package credential produces boarding numbers for issued tickets.
package credential

import (
	"fmt"

	"github.com/jonboulle/clockwork"
)

const (
	prefix     = "BP"
	timeLayout = "200601021504"
)

// Generator builds boarding numbers from a fixed prefix, a minute-resolution
// timestamp and the itinerary's numeric identity. Identity uniqueness makes
// the result unique; the DB unique index is the backstop for edge cases.
type Generator struct {
	clock clockwork.Clock
}

func NewGenerator(clock clockwork.Clock) *Generator {
	return &Generator{clock: clock}
}

// Generate returns the boarding number for an itinerary. attempt is the
// zero-based regeneration counter after a uniqueness violation; attempts
// beyond the first get a retry suffix so regeneration yields a new value even
// before the timestamp component rolls over.
func (g *Generator) Generate(itineraryID int64, attempt int) string {
	number := fmt.Sprintf("%s%s%06d", prefix, g.clock.Now().UTC().Format(timeLayout), itineraryID)
	if attempt > 0 {
		number = fmt.Sprintf("%sR%d", number, attempt)
	}
	return number
}
