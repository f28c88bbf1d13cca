package indicator

import "math"

// Million is the divisor applied by Scale.
const Million = 1_000_000

// Series is one indicator across a fixed list of year labels.
// Values[i] belongs to Years[i]; NaN marks an absent value.
type Series struct {
	Name   string
	Years  []string
	Values []float64
}

// NewSeries copies years and values into a new Series.
// Extra values beyond len(years) are dropped; missing ones are absent.
func NewSeries(name string, years []string, values []float64) Series {
	s := Series{
		Name:   name,
		Years:  append([]string(nil), years...),
		Values: make([]float64, len(years)),
	}
	for i := range s.Values {
		if i < len(values) {
			s.Values[i] = values[i]
		} else {
			s.Values[i] = math.NaN()
		}
	}
	return s
}

// Scale divides every present value by Million. Absent values stay absent.
func Scale(s Series) Series {
	out := Series{
		Name:   s.Name,
		Years:  append([]string(nil), s.Years...),
		Values: make([]float64, len(s.Values)),
	}
	for i, v := range s.Values {
		if math.IsNaN(v) {
			out.Values[i] = v
			continue
		}
		out.Values[i] = v / Million
	}
	return out
}
