package plotkit

import (
	"sort"

	"github.com/midbel/slices"
)

// Frame is the outcome of one build: everything needed to draw a chart and
// to map pixels back to rows. A frame is never updated, a new one is built
// whenever the data or the configuration changes.
type Frame struct {
	Config

	Rows       []Row
	Scales     Scales
	Groups     [][]Row
	Primitives []Primitive
	Labels     []Label
	Tree       *Cluster
}

func Build(data []Record, cfg Config) (*Frame, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	rows, err := Resolve(data, cfg)
	if err != nil {
		return nil, err
	}
	f := Frame{
		Config: cfg,
		Rows:   rows,
		Scales: BuildScales(rows, cfg),
	}
	switch cfg.Layout {
	case LayoutSimple:
		f.buildSimple()
	case LayoutColorRun:
		f.buildColorRun()
	case LayoutClustered:
		f.buildClustered()
	case LayoutStacked:
		f.buildStacked()
	case LayoutNested:
		f.buildNested()
	case LayoutLine:
		f.buildLine()
	case LayoutArea:
		f.buildArea()
	}
	return &f, nil
}

// Fill resolves the color of a row: an explicit color always wins over the
// color scale.
func (f *Frame) Fill(r Row) string {
	if r.Color != "" {
		return r.Color
	}
	return f.Scales.Color.Color(r)
}

type LegendEntry struct {
	Text  string
	Color string
}

// Legend lists the color keys in the order they are first seen along with
// the color given by the color scale. Explicit colors are ignored.
func (f *Frame) Legend() []LegendEntry {
	if f.ColorBy == nil {
		return nil
	}
	var (
		list []LegendEntry
		seen = make(map[Key]struct{})
	)
	for _, r := range f.Rows {
		k := KeyOf(r.Key)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		list = append(list, LegendEntry{
			Text:  k.String(),
			Color: f.Scales.Color.Color(r),
		})
	}
	return list
}

func (f *Frame) style(r Row) Style {
	return Style{
		Fill:   f.Fill(r),
		Stroke: r.Border,
		Width:  r.BorderSize,
	}
}

func (f *Frame) band(r Row) float64 {
	x, _ := f.Scales.X.Scale(r.X)
	return x + f.Padding
}

func (f *Frame) label(r Row, x, top float64) {
	if r.Label == "" {
		return
	}
	f.Labels = append(f.Labels, Label{
		X:    x,
		Y:    top - 2,
		Text: r.Label,
		Row:  r.Index,
	})
}

func (f *Frame) bar(group int, r Row, x, w float64) {
	var (
		base = f.Scales.Baseline()
		top  = f.Scales.Y.Scale(r.Y)
	)
	f.Primitives = append(f.Primitives, Primitive{
		Shape: rectBetween(x, w, top, base),
		Style: f.style(r),
		Group: group,
		Rows:  []Row{r},
	})
	f.label(r, x, top)
}

// banded returns the rows ordered by the band of their x value. Rows of a
// band keep their relative order.
func (f *Frame) banded() []Row {
	rows := make([]Row, len(f.Rows))
	copy(rows, f.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return f.Scales.X.index[rows[i].X] < f.Scales.X.index[rows[j].X]
	})
	return rows
}

func (f *Frame) buildSimple() {
	f.Groups = Partition(f.Rows, byX)
	bw := f.Scales.X.Bandwidth()
	for i, g := range f.Groups {
		for _, r := range g {
			f.bar(i, r, f.band(r), bw)
		}
	}
}

// buildColorRun merges contiguous rows drawn with the same fill into one
// skyline path.
func (f *Frame) buildColorRun() {
	var (
		base = f.Scales.Baseline()
		bw   = f.Scales.X.Bandwidth()
	)
	f.Groups = Partition(f.Rows, f.Fill)
	for i, g := range f.Groups {
		var pat Path
		for j, r := range g {
			var (
				x   = f.band(r)
				top = f.Scales.Y.Scale(r.Y)
			)
			if j == 0 {
				pat.MoveTo(x, base)
			} else {
				pat.LineTo(x, base)
			}
			pat.Vertical(top)
			pat.Horizontal(x + bw)
			pat.LineTo(x+bw, base)
			f.label(r, x, top)
		}
		pat.Close()
		f.Primitives = append(f.Primitives, Primitive{
			Shape: pat,
			Style: f.style(slices.Fst(g)),
			Group: i,
			Rows:  g,
		})
	}
}

func (f *Frame) buildClustered() {
	f.Groups = Partition(f.banded(), byX)
	bw := f.Scales.X.Bandwidth()
	for i, g := range f.Groups {
		w := bw / float64(len(g))
		for k, r := range g {
			f.bar(i, r, f.band(r)+float64(k)*w, w)
		}
	}
}

func (f *Frame) buildStacked() {
	f.Groups = Partition(f.banded(), byX)
	bw := f.Scales.X.Bandwidth()
	for i, g := range f.Groups {
		sorted := make([]Row, len(g))
		copy(sorted, g)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Y > sorted[j].Y
		})
		f.Groups[i] = sorted
		for _, r := range sorted {
			f.bar(i, r, f.band(r), bw)
		}
	}
}
