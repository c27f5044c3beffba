// Package cycle schedules the looping day/night timeline. A single elapsed
// time is folded into a loop phase from which every animated quantity of the
// diorama is derived.
package cycle

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/diorama/pkg/math"
)

// smokeRamp is the half width of the smoke fade-in around the end of sunset.
const smokeRamp = 0.05

// Phases holds the loop duration and the breakpoints of the timeline, as
// fractions of the loop.
type Phases struct {
	Duration     float64
	CarInStart   float32
	CarInEnd     float32
	SunsetEnd    float32
	NightHoldEnd float32
	SunriseEnd   float32
	CarOutEnd    float32
}

// Default returns the standard 5.8 second loop.
func Default() Phases {
	return Phases{
		Duration:     5.8,
		CarInStart:   0.08,
		CarInEnd:     0.30,
		SunsetEnd:    0.50,
		NightHoldEnd: 0.70,
		SunriseEnd:   0.84,
		CarOutEnd:    0.97,
	}
}

// Validate checks that the duration is positive and the breakpoints are
// strictly increasing inside [0, 1].
func (p Phases) Validate() error {
	if !(p.Duration > 0) {
		return fmt.Errorf("cycle: duration must be positive, got %v", p.Duration)
	}
	points := []struct {
		name  string
		value float32
	}{
		{"car_in_start", p.CarInStart},
		{"car_in_end", p.CarInEnd},
		{"sunset_end", p.SunsetEnd},
		{"night_hold_end", p.NightHoldEnd},
		{"sunrise_end", p.SunriseEnd},
		{"car_out_end", p.CarOutEnd},
	}
	prev := float32(0)
	for i, pt := range points {
		if pt.value < 0 || pt.value > 1 {
			return fmt.Errorf("cycle: %s must be within [0, 1], got %v", pt.name, pt.value)
		}
		if i > 0 && pt.value <= prev {
			return fmt.Errorf("cycle: %s (%v) must be greater than %s (%v)",
				pt.name, pt.value, points[i-1].name, prev)
		}
		prev = pt.value
	}
	return nil
}

// At folds elapsed seconds into the loop phase in [0, 1).
func (p Phases) At(elapsed float64) float32 {
	m := gomath.Mod(elapsed, p.Duration)
	if m < 0 {
		m += p.Duration
	}
	phase := float32(m / p.Duration)
	if phase >= 1 {
		return 0
	}
	return phase
}

// NightMix is 0 during the day, eases to 1 over sunset, holds through the
// night and eases back to 0 over sunrise.
func (p Phases) NightMix(phase float32) float32 {
	switch {
	case phase < p.CarInEnd:
		return 0
	case phase < p.SunsetEnd:
		return math.SmoothProgress(phase, p.CarInEnd, p.SunsetEnd)
	case phase < p.NightHoldEnd:
		return 1
	case phase < p.SunriseEnd:
		return 1 - math.SmoothProgress(phase, p.NightHoldEnd, p.SunriseEnd)
	default:
		return 0
	}
}

// SmokeMix fades the chimney smoke in around the end of sunset, keeps it
// through the night and fades it out while the car leaves.
func (p Phases) SmokeMix(phase float32) float32 {
	start := p.SunsetEnd - smokeRamp
	full := p.SunsetEnd + smokeRamp
	switch {
	case phase < start:
		return 0
	case phase < full:
		return math.SmoothProgress(phase, start, full)
	case phase < p.SunriseEnd:
		return 1
	case phase < p.CarOutEnd:
		return 1 - math.SmoothProgress(phase, p.SunriseEnd, p.CarOutEnd)
	default:
		return 0
	}
}

// Sample is everything the animators need for one frame.
type Sample struct {
	// Time is the elapsed time in seconds; free-running animations such as
	// twinkle, smoke and camera pan use it directly. It stays float64 so
	// oscillators keep their resolution on long runs.
	Time     float64
	Phase    float32
	NightMix float32
	SmokeMix float32
}

// Sample evaluates the timeline at elapsed seconds.
func (p Phases) Sample(elapsed float64) Sample {
	phase := p.At(elapsed)
	return Sample{
		Time:     elapsed,
		Phase:    phase,
		NightMix: p.NightMix(phase),
		SmokeMix: p.SmokeMix(phase),
	}
}

// Region is a segment of the car's loop.
type Region int

const (
	Hidden Region = iota
	Entering
	Parked
	Exiting
)

func (r Region) String() string {
	switch r {
	case Entering:
		return "entering"
	case Parked:
		return "parked"
	case Exiting:
		return "exiting"
	default:
		return "hidden"
	}
}

// CarRegion returns which part of the car loop phase falls in.
func (p Phases) CarRegion(phase float32) Region {
	switch {
	case phase < p.CarInStart || phase >= p.CarOutEnd:
		return Hidden
	case phase < p.CarInEnd:
		return Entering
	case phase < p.SunriseEnd:
		return Parked
	default:
		return Exiting
	}
}
