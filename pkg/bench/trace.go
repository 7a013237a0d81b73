package bench

import (
	"github.com/google/uuid"

	"github.com/df07/go-optics-bench/pkg/core"
)

// StoppedOnEntry marks a record whose ray was already stopped before it
// reached the first element
const StoppedOnEntry = "(entry)"

// Trace records the path of a single ray through a bench
type Trace struct {
	ID        uuid.UUID
	Points    []core.Vec3 // Start of every segment, emission point first
	Rays      []core.Ray  // Emitted ray followed by the output of each element reached
	StoppedBy string      // Name of the element that stopped the ray, empty if transmitted
}

// NewTrace starts a record from the emitted ray
func NewTrace(emitted core.Ray) *Trace {
	t := &Trace{
		ID:     uuid.New(),
		Points: []core.Vec3{emitted.Start},
		Rays:   []core.Ray{emitted},
	}
	if emitted.Stopped {
		t.StoppedBy = StoppedOnEntry
	}
	return t
}

func (t *Trace) add(r core.Ray) {
	t.Points = append(t.Points, r.Start)
	t.Rays = append(t.Rays, r)
}

// Transmitted reports whether the ray left the bench unstopped
func (t *Trace) Transmitted() bool {
	return t.StoppedBy == ""
}

// Final returns the last recorded ray
func (t *Trace) Final() core.Ray {
	return t.Rays[len(t.Rays)-1]
}
