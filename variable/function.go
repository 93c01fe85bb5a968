package variable

import (
	"math"

	"github.com/flightdyn/daveml/cell"
)

// solveFunction delegates to the Function collaborator (spec.md §6, §4.5
// step 3): resolve each independent variable's current scalar, then
// dispatch by table kind — an ungridded table's own evaluator, or a
// gridded table's linear (multilinear interpolation) or non-linear
// ("polynomial-gridded") path. Full polynomial-order interpolation is out
// of scope for this engine — see DESIGN.md; the non-all-linear gridded
// case here instead does an exact nearest-breakpoint lookup, the same
// algorithm getStringValue uses.
func (r *Registry) solveFunction(v *Variable) (cell.Value, error) {
	if v.Table == nil {
		return cell.Value{}, ErrNoTable
	}
	coords, err := r.independentCoords(v.Table)
	if err != nil {
		return cell.Value{}, err
	}

	if v.Table.Kind() == Ungridded {
		f, err := v.Table.EvalUngridded(coords)
		if err != nil {
			return cell.Value{}, err
		}

		return cell.Scalar(f), nil
	}

	bp := v.Table.Breakpoints()
	data := v.Table.NumericData()
	if v.Table.AllLinear() {
		f, err := multilinearInterp(bp, data, coords)
		if err != nil {
			return cell.Value{}, err
		}

		return cell.Scalar(f), nil
	}

	idxs, err := nearestIndices(bp, coords)
	if err != nil {
		return cell.Value{}, err
	}
	flat := flatIndexRowMajor(dims(bp), idxs)
	if flat < 0 || flat >= len(data) {
		return cell.Value{}, ErrBreakpointMismatch
	}

	return cell.Scalar(data[flat]), nil
}

// GetStringValue implements spec.md §4.5's getStringValue(): exact
// nearest-breakpoint lookup (nearest-integer rounding of each input),
// row-major linearisation, string-vector index.
func (r *Registry) GetStringValue(v *Variable) (string, error) {
	if v.Table == nil {
		return "", ErrNoTable
	}
	strs := v.Table.StringData()
	if strs == nil {
		return "", ErrNotStringTable
	}
	coords, err := r.independentCoords(v.Table)
	if err != nil {
		return "", err
	}
	bp := v.Table.Breakpoints()
	idxs, err := nearestIndices(bp, coords)
	if err != nil {
		return "", err
	}
	flat := flatIndexRowMajor(dims(bp), idxs)
	if flat < 0 || flat >= len(strs) {
		return "", ErrBreakpointMismatch
	}

	return strs[flat], nil
}

func (r *Registry) independentCoords(table FunctionTable) ([]float64, error) {
	idxs := table.IndependentIndices()
	coords := make([]float64, len(idxs))
	for i, idx := range idxs {
		dep := r.At(idx)
		if dep == nil {
			return nil, ErrUnknownVarID
		}
		s, err := r.GetScalar(dep)
		if err != nil {
			return nil, err
		}
		coords[i] = s
	}

	return coords, nil
}

func dims(breakpoints [][]float64) []int {
	out := make([]int, len(breakpoints))
	for i, bp := range breakpoints {
		out[i] = len(bp)
	}

	return out
}

func flatIndexRowMajor(dimSizes []int, idxs []int) int {
	flat := 0
	for i, d := range dimSizes {
		flat = flat*d + idxs[i]
	}

	return flat
}

func nearestIndices(breakpoints [][]float64, coords []float64) ([]int, error) {
	if len(breakpoints) != len(coords) {
		return nil, ErrBreakpointMismatch
	}
	out := make([]int, len(coords))
	for dim, bp := range breakpoints {
		out[dim] = nearestIndex(bp, coords[dim])
	}

	return out, nil
}

func nearestIndex(bp []float64, x float64) int {
	best := 0
	bestDist := math.Abs(bp[0] - x)
	for i := 1; i < len(bp); i++ {
		d := math.Abs(bp[i] - x)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

// multilinearInterp interpolates data (row-major over breakpoints'
// dimensions) at coords, clamping outside the breakpoint range to the
// nearest edge.
func multilinearInterp(breakpoints [][]float64, data []float64, coords []float64) (float64, error) {
	d := len(breakpoints)
	if len(coords) != d {
		return 0, ErrBreakpointMismatch
	}
	dimSizes := dims(breakpoints)
	lowIdx := make([]int, d)
	frac := make([]float64, d)
	for dim, bp := range breakpoints {
		lowIdx[dim], frac[dim] = bracket(bp, coords[dim])
	}

	sum := 0.0
	corners := 1 << uint(d)
	for mask := 0; mask < corners; mask++ {
		weight := 1.0
		idxs := make([]int, d)
		for dim := 0; dim < d; dim++ {
			bit := (mask >> uint(dim)) & 1
			idx := lowIdx[dim] + bit
			if idx >= dimSizes[dim] {
				idx = dimSizes[dim] - 1
			}
			idxs[dim] = idx
			if bit == 1 {
				weight *= frac[dim]
			} else {
				weight *= 1 - frac[dim]
			}
		}
		flat := flatIndexRowMajor(dimSizes, idxs)
		if flat < 0 || flat >= len(data) {
			return 0, ErrBreakpointMismatch
		}
		sum += weight * data[flat]
	}

	return sum, nil
}

// bracket locates x within bp, returning the lower breakpoint index and the
// fractional position within [lowIdx, lowIdx+1]. x outside the breakpoint
// range clamps to the nearest edge (frac 0 or 1).
func bracket(bp []float64, x float64) (int, float64) {
	if len(bp) == 1 {
		return 0, 0
	}
	if x <= bp[0] {
		return 0, 0
	}
	last := len(bp) - 1
	if x >= bp[last] {
		return last - 1, 1
	}
	for i := 0; i < last; i++ {
		if x >= bp[i] && x <= bp[i+1] {
			span := bp[i+1] - bp[i]
			if span == 0 {
				return i, 0
			}

			return i, (x - bp[i]) / span
		}
	}

	return last - 1, 1
}
