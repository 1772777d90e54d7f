package composer

import (
	"math"

	"github.com/prairiewatch/impact-map/internal/model"
)

// makeBins cuts the observed value range into equal-interval bands, one
// per ramp color. A degenerate range (all regions share one value)
// collapses to a single band. No values at all yields no bands; the
// legend then carries only the missing bucket.
func makeBins(values map[string]*float64, ramp []string) []model.ColorBin {
	lo, hi, any := observedRange(values)
	if !any {
		return nil
	}

	if lo == hi {
		return []model.ColorBin{{Lower: lo, Upper: hi, Color: ramp[len(ramp)-1]}}
	}

	bins := make([]model.ColorBin, 0, len(ramp))
	step := (hi - lo) / float64(len(ramp))
	for i, color := range ramp {
		bin := model.ColorBin{
			Lower: lo + step*float64(i),
			Upper: lo + step*float64(i+1),
			Color: color,
		}
		if i == len(ramp)-1 {
			bin.Upper = hi
		}
		bins = append(bins, bin)
	}
	return bins
}

func observedRange(values map[string]*float64) (lo, hi float64, any bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		any = true
		if *v < lo {
			lo = *v
		}
		if *v > hi {
			hi = *v
		}
	}
	return lo, hi, any
}
