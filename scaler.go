package plotkit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min() && v <= r.Max()
}

// BandScale maps categories onto evenly spaced bands. Each band is Step
// wide and its drawable part is Bandwidth wide, the difference being the
// inner padding.
type BandScale struct {
	Range
	Domain []string
	Inner  float64

	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

func NewBandScale(domain []string, rg Range, inner float64, round bool) BandScale {
	s := BandScale{
		Range:  rg,
		Inner:  inner,
		Domain: make([]string, 0, len(domain)),
		index:  make(map[string]int),
	}
	for _, d := range domain {
		if _, ok := s.index[d]; ok {
			continue
		}
		s.index[d] = len(s.Domain)
		s.Domain = append(s.Domain, d)
	}
	s.rescale(round)
	return s
}

func (s *BandScale) rescale(round bool) {
	n := float64(len(s.Domain))
	s.start = s.F
	if n == 0 {
		return
	}
	s.step = s.Len() / math.Max(1, n-s.Inner)
	if round {
		s.step = math.Floor(s.step)
	}
	s.start += (s.Len() - s.step*(n-s.Inner)) * 0.5
	s.bandwidth = s.step * (1 - s.Inner)
	if round {
		s.start = math.Round(s.start)
		s.bandwidth = math.Round(s.bandwidth)
	}
}

// Scale returns the left edge of the band of v. Unknown values are mapped
// to the start of the range and reported as such.
func (s BandScale) Scale(v string) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return s.start, false
	}
	return s.start + float64(i)*s.step, true
}

func (s BandScale) Start() float64 {
	return s.start
}

func (s BandScale) Step() float64 {
	return s.step
}

func (s BandScale) Bandwidth() float64 {
	return s.bandwidth
}

func (s BandScale) Count() int {
	return len(s.Domain)
}

// Bucket returns the index of the band under the pixel x, relative to the
// origin where the first band starts, and the offset of x within that band.
func (s BandScale) Bucket(x float64) (int, float64, bool) {
	if s.step <= 0 || len(s.Domain) == 0 {
		return 0, 0, false
	}
	x -= s.start
	if x < 0 {
		return 0, 0, false
	}
	i := int(math.Floor(x / s.step))
	if i >= len(s.Domain) {
		return 0, 0, false
	}
	within := x - float64(i)*s.step
	if within > s.bandwidth {
		return i, within, false
	}
	return i, within, true
}

// LinearScale maps a continuous domain onto a pixel range. The range is
// usually inverted for vertical axes.
type LinearScale struct {
	Range
	D0 float64
	D1 float64
}

func NewLinearScale(d0, d1 float64, rg Range) LinearScale {
	return LinearScale{
		Range: rg,
		D0:    d0,
		D1:    d1,
	}
}

func (s LinearScale) Degenerate() bool {
	return s.D0 == s.D1 || math.IsNaN(s.D0) || math.IsNaN(s.D1)
}

func (s LinearScale) Scale(v float64) float64 {
	if s.Degenerate() {
		return s.F
	}
	return s.F + (v-s.D0)/(s.D1-s.D0)*s.Len()
}

func (s LinearScale) Invert(px float64) float64 {
	if s.Degenerate() || s.Len() == 0 {
		return s.D0
	}
	return s.D0 + (px-s.F)/s.Len()*(s.D1-s.D0)
}

// Ticks returns count+1 evenly spaced values covering the domain.
func (s LinearScale) Ticks(count int) []float64 {
	if count <= 0 || s.Degenerate() {
		return []float64{s.D0}
	}
	all := make([]float64, count+1)
	floats.Span(all, s.D0, s.D1)
	return all
}

// Extent returns the minimum and maximum of the finite values. It returns
// zeros when no such value exists.
func Extent(values []float64) (float64, float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0
	}
	return floats.Min(finite), floats.Max(finite)
}
