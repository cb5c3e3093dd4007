package costfunction

import (
	"math"

	"github.com/lintang-b-s/shiproute/pkg"
	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

// PenaltyFor returns the value that replaces missing cells: the largest finite
// cost times PENALTY_FACTOR, or 0 when no cell is finite. A product outside
// float64 range is clamped and reported with clamped=true.
func PenaltyFor(values []float64) (penalty float64, clamped bool) {
	maxFinite := math.Inf(-1)
	for _, v := range values {
		if util.IsFinite(v) && v > maxFinite {
			maxFinite = v
		}
	}
	if math.IsInf(maxFinite, -1) {
		return 0, false
	}

	penalty = maxFinite * pkg.PENALTY_FACTOR
	switch {
	case math.IsInf(penalty, 1):
		return math.MaxFloat64, true
	case math.IsInf(penalty, -1):
		return -math.MaxFloat64, true
	}
	return penalty, false
}

// Sanitize returns a copy of surface in which every missing cell holds the
// penalty from PenaltyFor. Finite cells are untouched. Missing means NaN and
// also +Inf or -Inf: an infinite cost is rewritten to the finite penalty, so
// callers that encode impassable cells as +Inf get the penalty back instead.
// When the penalty had to be clamped the sanitized surface is still returned,
// together with an error wrapping util.ErrNumericOverflow.
func Sanitize(surface *grid.CostSurface) (*grid.CostSurface, error) {
	if surface == nil {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "cost surface is nil")
	}

	out := surface.Clone()
	penalty, clamped := PenaltyFor(out.Values)
	for i, v := range out.Values {
		if !util.IsFinite(v) {
			out.Values[i] = penalty
		}
	}

	if clamped {
		return out, util.WrapErrorf(util.ErrNumericOverflow, nil,
			"missing-cell penalty exceeds float64 range, clamped to %g", penalty)
	}
	return out, nil
}

// SanitizedSurface is the read-only view of a sanitized surface handed to a
// path search. It remembers which cells were missing.
type SanitizedSurface struct {
	surface *grid.CostSurface
	missing []bool
	penalty float64
}

// NewSanitizedSurface sanitizes surface. Like Sanitize it may return a usable
// result together with an overflow warning.
func NewSanitizedSurface(surface *grid.CostSurface) (*SanitizedSurface, error) {
	sanitized, err := Sanitize(surface)
	if sanitized == nil {
		return nil, err
	}

	missing := make([]bool, len(surface.Values))
	for i, v := range surface.Values {
		missing[i] = !util.IsFinite(v)
	}
	penalty, _ := PenaltyFor(surface.Values)

	return &SanitizedSurface{
		surface: sanitized,
		missing: missing,
		penalty: penalty,
	}, err
}

func (s *SanitizedSurface) Cost(cell grid.GridIndex) float64 {
	return s.surface.At(cell)
}

func (s *SanitizedSurface) Shape() (int, int) {
	return s.surface.Rows, s.surface.Cols
}

func (s *SanitizedSurface) Penalty() float64 {
	return s.penalty
}

// WasMissing reports whether cell held no value before sanitizing.
func (s *SanitizedSurface) WasMissing(cell grid.GridIndex) bool {
	return s.missing[cell.LatIdx*s.surface.Cols+cell.LonIdx]
}

// Surface returns a copy of the sanitized values.
func (s *SanitizedSurface) Surface() *grid.CostSurface {
	return s.surface.Clone()
}
