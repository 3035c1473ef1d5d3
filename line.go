package plotkit

import (
	"math"
	"sort"

	"github.com/midbel/slices"
)

const defaultAreaColor = "green"

func (f *Frame) sortedByX() []Row {
	rows := make([]Row, 0, len(f.Rows))
	for _, r := range f.Rows {
		if !math.IsNaN(r.XNum) {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].XNum < rows[j].XNum
	})
	return rows
}

func (f *Frame) point(r Row, serie int) (float64, float64, bool) {
	if serie >= len(r.Ys) || math.IsNaN(r.Ys[serie]) {
		return 0, 0, false
	}
	var (
		x = f.Scales.XLinear.Scale(r.XNum) + f.Padding
		y = f.Scales.Y.Scale(r.Ys[serie])
	)
	return x, y, true
}

func (f *Frame) buildLine() {
	rows := f.sortedByX()
	f.Groups = [][]Row{rows}
	for j := range f.YValues {
		var (
			pat Path
			gap = true
		)
		for _, r := range rows {
			x, y, ok := f.point(r, j)
			if !ok {
				gap = true
				continue
			}
			if gap {
				pat.MoveTo(x, y)
			} else {
				pat.LineTo(x, y)
			}
			gap = false
		}
		if pat.Empty() {
			continue
		}
		f.Primitives = append(f.Primitives, Primitive{
			Shape: pat,
			Style: Style{Fill: "none", Stroke: DefaultBorderColor, Width: DefaultBorderSize},
			Group: 0,
			Rows:  rows,
		})
	}
	for _, r := range rows {
		x, y, ok := f.point(r, 0)
		if !ok {
			continue
		}
		f.Primitives = append(f.Primitives, Primitive{
			Shape: Circle{X: x, Y: y, R: DefaultRadius},
			Style: Style{Fill: f.Fill(r)},
			Group: 0,
			Rows:  []Row{r},
		})
		f.label(r, x, y)
	}
}

func (f *Frame) buildArea() {
	rows := f.sortedByX()
	f.Groups = [][]Row{rows}

	var (
		pat   Path
		first float64
		last  float64
	)
	for _, r := range rows {
		x, y, ok := f.point(r, 0)
		if !ok {
			continue
		}
		if pat.Empty() {
			pat.MoveTo(x, y)
			first = x
		} else {
			pat.LineTo(x, y)
		}
		last = x
	}
	if pat.Empty() {
		return
	}
	pat.LineTo(last, f.Height)
	pat.LineTo(first, f.Height)
	pat.Close()

	fill := defaultAreaColor
	if r := slices.Fst(rows); r.Color != "" || f.ColorBy != nil {
		fill = f.Fill(r)
	}
	f.Primitives = append(f.Primitives, Primitive{
		Shape: pat,
		Style: Style{Fill: fill, Stroke: fill, Width: DefaultBorderSize},
		Group: 0,
		Rows:  rows,
	})
}
