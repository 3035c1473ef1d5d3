package plotkit

import (
	"math"
)

// Hit describes the rows found under a pixel.
type Hit struct {
	Group     int
	Rows      []Row
	Primitive int
}

func (h Hit) Records() []Record {
	list := make([]Record, len(h.Rows))
	for i := range h.Rows {
		list[i] = h.Rows[i].Record
	}
	return list
}

const hitTolerance = 0.5

// Locate maps a pixel back to the rows drawn there. Pixels falling in
// margins, in the gap between bands or above the bars are reported as not
// found.
func (f *Frame) Locate(px, py float64) (Hit, bool) {
	if math.IsNaN(px) || math.IsNaN(py) {
		return Hit{}, false
	}
	switch f.Layout {
	case LayoutNested, LayoutLine, LayoutArea:
		return f.scan(px, py)
	}
	if py > f.Scales.Baseline()+hitTolerance || py < f.Scales.Y.Min()-hitTolerance {
		return Hit{}, false
	}
	i, within, ok := f.Scales.X.Bucket(px - f.Padding)
	if !ok {
		return Hit{}, false
	}
	category := f.Scales.X.Domain[i]
	switch f.Layout {
	case LayoutClustered:
		return f.locateCluster(category, within)
	case LayoutStacked:
		return f.locateStack(category, py)
	default:
		return f.locateBand(category)
	}
}

func (f *Frame) locateBand(category string) (Hit, bool) {
	hit := Hit{
		Group:     -1,
		Primitive: -1,
	}
	for i, g := range f.Groups {
		for _, r := range g {
			if r.X != category {
				continue
			}
			if hit.Group < 0 {
				hit.Group = i
			}
			hit.Rows = append(hit.Rows, r)
		}
	}
	return hit, len(hit.Rows) > 0
}

// lastGroup returns the index of the last group drawn for the category.
// Clustered and stacked layouts gather every row of a category in a single
// group.
func (f *Frame) lastGroup(category string) int {
	for i := len(f.Groups) - 1; i >= 0; i-- {
		if g := f.Groups[i]; len(g) > 0 && g[0].X == category {
			return i
		}
	}
	return -1
}

func (f *Frame) locateCluster(category string, within float64) (Hit, bool) {
	gi := f.lastGroup(category)
	if gi < 0 {
		return Hit{}, false
	}
	var (
		g     = f.Groups[gi]
		width = f.Scales.X.Bandwidth() / float64(len(g))
	)
	if width <= 0 {
		return Hit{}, false
	}
	k := int(math.Floor(within / width))
	if k >= len(g) {
		k = len(g) - 1
	}
	hit := Hit{
		Group:     gi,
		Rows:      []Row{g[k]},
		Primitive: f.primitiveOf(g[k]),
	}
	return hit, true
}

func (f *Frame) locateStack(category string, py float64) (Hit, bool) {
	gi := f.lastGroup(category)
	if gi < 0 {
		return Hit{}, false
	}
	var (
		g     = f.Groups[gi]
		value = f.Scales.Y.Invert(py)
	)
	for i := len(g) - 1; i >= 0; i-- {
		if g[i].Y >= value {
			hit := Hit{
				Group:     gi,
				Rows:      []Row{g[i]},
				Primitive: f.primitiveOf(g[i]),
			}
			return hit, true
		}
	}
	return Hit{}, false
}

func (f *Frame) primitiveOf(r Row) int {
	for i, p := range f.Primitives {
		if len(p.Rows) == 1 && p.Rows[0].Index == r.Index {
			return i
		}
	}
	return -1
}

// scan walks the primitives from the topmost one and returns the first one
// containing the pixel.
func (f *Frame) scan(px, py float64) (Hit, bool) {
	for i := len(f.Primitives) - 1; i >= 0; i-- {
		p := f.Primitives[i]
		if p.Fill == "none" {
			continue
		}
		if !p.Contains(px, py) {
			continue
		}
		hit := Hit{
			Group:     p.Group,
			Rows:      p.Rows,
			Primitive: i,
		}
		return hit, true
	}
	return Hit{}, false
}
