package metrics

import (
	"time"

	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

// Speed is either one scalar for the whole route or one value per segment.
// Segment k joins waypoint k and k+1. Values are in m/s.
type Speed struct {
	scalar   float64
	segments []float64
}

func ConstantSpeed(v float64) Speed {
	return Speed{scalar: v}
}

func SegmentSpeeds(v ...float64) Speed {
	segs := make([]float64, len(v))
	copy(segs, v)
	return Speed{segments: segs}
}

func (s Speed) IsPerSegment() bool {
	return s.segments != nil
}

// At returns the speed used on segment k.
func (s Speed) At(k int) float64 {
	if s.segments == nil {
		return s.scalar
	}
	return s.segments[k]
}

func (s Speed) validate(numSegments int) error {
	check := func(v float64) error {
		switch {
		case v == 0:
			return util.WrapErrorf(util.ErrDivisionByZero, util.ErrBadParamInput, "speed must not be zero")
		case !util.IsFinite(v) || v < 0:
			return util.WrapErrorf(nil, util.ErrBadParamInput, "speed must be a positive finite number, got %v", v)
		}
		return nil
	}

	if s.segments == nil {
		return check(s.scalar)
	}
	if len(s.segments) != numSegments {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"got %d segment speeds for %d segments", len(s.segments), numSegments)
	}
	for _, v := range s.segments {
		if err := check(v); err != nil {
			return err
		}
	}
	return nil
}

func validateRoute(route []geo.Waypoint) error {
	if len(route) == 0 {
		return util.WrapErrorf(util.ErrEmptyRoute, util.ErrBadParamInput, "route must not be empty")
	}
	for i, wp := range route {
		if err := wp.Validate(); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput, "waypoint %d", i)
		}
	}
	return nil
}

// SegmentDistances returns the geodesic length in meters of every leg, len(route)-1 values.
func SegmentDistances(route []geo.Waypoint) ([]float64, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	return segmentDistances(route), nil
}

func segmentDistances(route []geo.Waypoint) []float64 {
	segs := make([]float64, len(route)-1)
	for k := 0; k < len(route)-1; k++ {
		segs[k] = geo.InverseDistance(route[k], route[k+1])
	}
	return segs
}

// CumulativeDistance returns the distance in meters travelled from route[0] to every waypoint.
// The first element is always 0.
func CumulativeDistance(route []geo.Waypoint) ([]float64, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}

	dists := make([]float64, len(route))
	for k, seg := range segmentDistances(route) {
		dists[k+1] = dists[k] + seg
	}
	return dists, nil
}

// ElapsedTime returns the seconds needed to reach every waypoint from route[0].
// With a constant speed element i is CumulativeDistance(route)[i] / speed.
func ElapsedTime(speed Speed, route []geo.Waypoint) ([]float64, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if err := speed.validate(len(route) - 1); err != nil {
		return nil, err
	}

	times := make([]float64, len(route))
	if !speed.IsPerSegment() {
		dists, _ := CumulativeDistance(route)
		for i, d := range dists {
			times[i] = d / speed.scalar
		}
		return times, nil
	}

	for k, seg := range segmentDistances(route) {
		times[k+1] = times[k] + seg/speed.At(k)
	}
	return times, nil
}

// Courses returns, for every waypoint, the forward azimuth in radians of the leg
// leaving it. The last waypoint keeps the course of the final leg; a single
// waypoint route has course 0.
func Courses(route []geo.Waypoint) ([]float64, error) {
	if err := validateRoute(route); err != nil {
		return nil, err
	}

	courses := make([]float64, len(route))
	for k := 0; k < len(route)-1; k++ {
		_, azi := geo.Inverse(route[k], route[k+1])
		if azi < 0 {
			azi += 360
		}
		courses[k] = util.DegreeToRadians(azi)
	}
	if len(route) > 1 {
		courses[len(route)-1] = courses[len(route)-2]
	}
	return courses, nil
}

// ArrivalTimes shifts elapsed seconds onto a departure time.
func ArrivalTimes(departure time.Time, elapsed []float64) []time.Time {
	arrivals := make([]time.Time, len(elapsed))
	for i, s := range elapsed {
		arrivals[i] = departure.Add(time.Duration(s * float64(time.Second)))
	}
	return arrivals
}
