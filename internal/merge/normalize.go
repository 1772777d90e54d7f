package merge

// normalizeMinMax maps each value onto [0,1] against the min-max range
// observed across the given regions. When every region shares the same
// value the range is degenerate; the defined result is the midpoint 0.5
// for all of them, never a division by zero.
func normalizeMinMax(vals map[string]float64) map[string]float64 {
	if len(vals) == 0 {
		return nil
	}

	first := true
	var lo, hi float64
	for _, v := range vals {
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make(map[string]float64, len(vals))
	span := hi - lo
	for id, v := range vals {
		if span == 0 {
			out[id] = 0.5
			continue
		}
		out[id] = (v - lo) / span
	}
	return out
}
