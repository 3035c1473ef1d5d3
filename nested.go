package plotkit

import (
	"math"
)

func (f *Frame) buildNested() {
	keys := make([]func(Row) Key, len(f.ClusterBy))
	for i := range f.ClusterBy {
		j := i
		keys[i] = func(r Row) Key {
			if j >= len(r.Clusters) {
				return KeyOf(nil)
			}
			return KeyOf(r.Clusters[j])
		}
	}
	f.Tree = Nest(f.Rows, keys...)

	var (
		left  = f.Scales.X.F + f.Padding
		width = f.Scales.X.Len()
	)
	f.layoutCluster(f.Tree, left, width, f.ClusterPadding)
}

func (f *Frame) layoutCluster(c *Cluster, left, width, padding float64) {
	if c.Leaf() {
		f.layoutStack(c, left, width)
		return
	}
	var (
		n = float64(len(c.Children))
		w = math.Max(0, width/n-padding)
	)
	for i, child := range c.Children {
		f.layoutCluster(child, left+float64(i)*(w+padding), w, padding/2)
	}
}

// layoutStack draws one bar per row of a leaf cluster. Every y serie of a
// row is stacked on top of the previous one.
func (f *Frame) layoutStack(c *Cluster, left, width float64) {
	if len(c.Rows) == 0 {
		return
	}
	var (
		group = len(f.Groups)
		n     = float64(len(c.Rows))
		sw    = math.Max(0, (width-(n-1)*f.BarPadding)/n)
	)
	f.Groups = append(f.Groups, c.Rows)
	for i, r := range c.Rows {
		var (
			x     = left + float64(i)*(sw+f.BarPadding)
			total float64
			top   = f.Scales.Baseline()
		)
		for j := range r.Ys {
			v := r.Value(j)
			if v == 0 {
				continue
			}
			bottom := f.Scales.Y.Scale(total)
			total += v
			top = f.Scales.Y.Scale(total)

			style := f.style(r)
			style.Fill = f.serieFill(r, j)
			f.Primitives = append(f.Primitives, Primitive{
				Shape: rectBetween(x, sw, top, bottom),
				Style: style,
				Group: group,
				Rows:  []Row{r},
			})
		}
		f.label(r, x, top)
	}
}

func (f *Frame) serieFill(r Row, serie int) string {
	if r.Color != "" || len(r.Ys) == 1 {
		return f.Fill(r)
	}
	return f.Palette[serie%len(f.Palette)]
}
