package bench

import (
	"fmt"
	"sort"
	"strings"
)

// Stats contains transmission statistics of a bench run
type Stats struct {
	Total       int            // Total number of rays traced
	Transmitted int            // Rays that passed every element
	Stopped     int            // Rays stopped by some element
	StoppedBy   map[string]int // Stopped rays per element name
}

func NewStats() *Stats {
	return &Stats{StoppedBy: make(map[string]int)}
}

// Add accumulates one finished trace
func (s *Stats) Add(rec *Trace) {
	s.Total++
	if rec.Transmitted() {
		s.Transmitted++
		return
	}
	s.Stopped++
	s.StoppedBy[rec.StoppedBy]++
}

// TransmissionRatio returns the fraction of rays that were transmitted
func (s *Stats) TransmissionRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Transmitted) / float64(s.Total)
}

func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rays, %d transmitted (%.2f%%), %d stopped",
		s.Total, s.Transmitted, 100*s.TransmissionRatio(), s.Stopped)

	names := make([]string, 0, len(s.StoppedBy))
	for name := range s.StoppedBy {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-8s %d", name, s.StoppedBy[name])
	}
	return b.String()
}
