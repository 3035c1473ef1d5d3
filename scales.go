package plotkit

import (
	"math"
)

type Scales struct {
	X       BandScale
	XLinear LinearScale
	Y       LinearScale
	Color   ColorScale
}

// BuildScales derives every scale of a chart from its rows. Empty rows give
// degenerate but usable scales.
func BuildScales(rows []Row, cfg Config) Scales {
	var (
		xs   = make([]string, 0, len(rows))
		xn   = make([]float64, 0, len(rows))
		ys   []float64
		keys = make([]any, 0, len(rows))
		kn   = make([]float64, 0, len(rows))
	)
	for _, r := range rows {
		xs = append(xs, r.X)
		xn = append(xn, r.XNum)
		keys = append(keys, r.Key)
		kn = append(kn, r.KeyNum)
		ys = append(ys, yExtentValues(r, cfg.Layout)...)
	}
	var s Scales

	s.X = NewBandScale(xs, NewRange(LeftInset, cfg.Width), cfg.InnerPadding, cfg.Round)
	xmin, xmax := Extent(xn)
	s.XLinear = NewLinearScale(xmin, xmax, NewRange(LeftInset, cfg.Width-RightInset))

	ymin, ymax := Extent(ys)
	if cfg.Layout.Banded() {
		ymin = 0
	}
	s.Y = NewLinearScale(ymin, ymax, NewRange(cfg.Height, TopInset))

	switch cfg.ScaleType {
	case ScaleContinuous:
		kmin, kmax := Extent(kn)
		s.Color = NewGradientColor(cfg.Gradient, kmin, kmax)
	default:
		s.Color = NewOrdinalColor(cfg.Palette, keys)
	}
	return s
}

func yExtentValues(r Row, layout Layout) []float64 {
	switch layout {
	case LayoutNested:
		var total float64
		for i := range r.Ys {
			total += r.Value(i)
		}
		return []float64{total}
	case LayoutLine, LayoutArea:
		return r.Ys
	default:
		if len(r.Ys) == 0 {
			return nil
		}
		return r.Ys[:1]
	}
}

// Baseline is the pixel row of the zero value, clamped to the plot area.
func (s Scales) Baseline() float64 {
	base := s.Y.Scale(0)
	if math.IsNaN(base) || !s.Y.Contains(base) {
		return s.Y.F
	}
	return base
}
