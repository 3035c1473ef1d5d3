package plotkit

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/midbel/svg"
)

type Renderer interface {
	Render(io.Writer, *Frame) error
}

// SVGRenderer writes a frame as a standalone svg document.
type SVGRenderer struct {
	Title  string
	XLabel string
	YLabel string
	Ticks  int

	WithAxis   bool
	WithTitles bool
	WithLegend bool
}

func (r SVGRenderer) Render(w io.Writer, f *Frame) error {
	var (
		width  = f.Width + f.Padding
		height = f.Height + f.Padding + FontSize*4
		legend = r.drawLegend(f)
	)
	if legend != nil {
		width += RightInset
	}
	el := svg.NewSVG(svg.WithDimension(width, height))
	el.OmitProlog = true

	if r.WithAxis {
		el.Append(r.drawAxis(f))
	}
	el.Append(r.drawPrimitives(f))
	if lb := r.drawLabels(f); lb != nil {
		el.Append(lb)
	}
	if legend != nil {
		el.Append(legend)
	}
	if r.Title != "" {
		tx := svg.NewText(r.Title)
		tx.Pos = svg.NewPos(width/2, FontSize)
		tx.Font = svg.NewFont(FontSize * 1.2)
		tx.Anchor = "middle"
		tx.Baseline = "hanging"
		el.Append(tx.AsElement())
	}

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (r SVGRenderer) drawPrimitives(f *Frame) svg.Element {
	grp := getBaseGroup("", "area", f.Layout.String())
	for _, p := range f.Primitives {
		var el svg.Element
		switch s := p.Shape.(type) {
		case Rect:
			el = r.drawRect(s, p)
		case Path:
			el = r.drawPath(s, p)
		case Circle:
			el = r.drawCircle(s, p)
		}
		if el != nil {
			grp.Append(el)
		}
	}
	return grp.AsElement()
}

func (r SVGRenderer) drawRect(s Rect, p Primitive) svg.Element {
	var el svg.Rect
	el.Pos = svg.NewPos(s.X, s.Y)
	el.Dim = svg.NewDim(s.W, s.H)
	el.Fill = svg.NewFill(p.Fill)
	el.Stroke = svg.NewStroke(p.Stroke, p.Width)
	if r.WithTitles && len(p.Rows) == 1 {
		el.Title = recordTitle(p.Rows[0].Record)
	}
	return el.AsElement()
}

func (r SVGRenderer) drawPath(s Path, p Primitive) svg.Element {
	pat := getBasePath(p.Style)
	var pos, start svg.Pos
	for _, g := range s.Segments {
		switch g.Cmd {
		case CmdMove:
			pos = svg.NewPos(g.X, g.Y)
			start = pos
			pat.AbsMoveTo(pos)
		case CmdLine:
			pos = svg.NewPos(g.X, g.Y)
			pat.AbsLineTo(pos)
		case CmdVertical:
			pos.Y = g.Y
			pat.AbsLineTo(pos)
		case CmdHorizontal:
			pos.X = g.X
			pat.AbsLineTo(pos)
		case CmdClose:
			pat.ClosePath()
			pos = start
		}
	}
	return pat.AsElement()
}

func (r SVGRenderer) drawCircle(s Circle, p Primitive) svg.Element {
	var el svg.Circle
	el.Pos = svg.NewPos(s.X, s.Y)
	el.Radius = s.R
	el.Fill = svg.NewFill(p.Fill)
	if p.Stroke != "" {
		el.Stroke = svg.NewStroke(p.Stroke, p.Width)
	}
	return el.AsElement()
}

func (r SVGRenderer) drawLabels(f *Frame) svg.Element {
	if len(f.Labels) == 0 {
		return nil
	}
	grp := getBaseGroup("", "labels")
	for _, lb := range f.Labels {
		tx := svg.NewText(lb.Text)
		tx.Pos = svg.NewPos(lb.X, lb.Y)
		tx.Font = svg.NewFont(FontSize)
		grp.Append(tx.AsElement())
	}
	return grp.AsElement()
}

func (r SVGRenderer) drawLegend(f *Frame) svg.Element {
	if !r.WithLegend {
		return nil
	}
	entries := f.Legend()
	if len(entries) == 0 {
		return nil
	}
	var (
		offset = FontSize * 1.4
		grp    = getBaseGroup("", "legend")
	)
	grp.Transform = svg.Translate(f.Width+f.Padding+FontSize, f.Scales.Y.Min())
	for i, e := range entries {
		var g svg.Group
		g.Transform = svg.Translate(0, float64(i)*offset)
		li := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(20, 0))
		li.Stroke = svg.NewStroke(e.Color, FontSize/2)

		tx := svg.NewText(e.Text)
		tx.Pos = svg.NewPos(30, 0)
		tx.Font = svg.NewFont(FontSize)
		tx.Baseline = "middle"

		g.Append(li.AsElement())
		g.Append(tx.AsElement())
		grp.Append(g.AsElement())
	}
	return grp.AsElement()
}

func (r SVGRenderer) drawAxis(f *Frame) svg.Element {
	var (
		g    = svg.NewGroup(svg.WithID("axis"))
		y    = f.Scales.Y
		left = f.Scales.X.F + f.Padding
	)
	bottom := Axis{
		Label:       r.XLabel,
		Orientation: OrientBottom,
		WithMarks:   true,
		WithTexts:   true,
	}
	if f.Layout.Banded() {
		x := f.Scales.X
		bottom.Ticks = BandTicks(x)
		g.Append(bottom.Render(x.Step()*float64(x.Count()), y.Len(), x.Start()+f.Padding, f.Scales.Baseline()))
	} else {
		x := f.Scales.XLinear
		bottom.Ticks = LinearTicks(x, r.ticks(), nil)
		g.Append(bottom.Render(x.Range.Len(), y.Len(), left, y.Max()))
	}
	side := Axis{
		Label:       r.YLabel,
		Orientation: OrientLeft,
		Ticks:       LinearTicks(y, r.ticks(), nil),
		WithMarks:   true,
		WithTexts:   true,
		WithGrid:    true,
	}
	g.Append(side.Render(-y.Len(), f.Width-f.Scales.X.F, left, y.Min()))
	return g.AsElement()
}

func (r SVGRenderer) ticks() int {
	if r.Ticks <= 0 {
		return 10
	}
	return r.Ticks
}

func recordTitle(r Record) string {
	buf, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(buf)
}

func getBasePath(style Style) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Fill = svg.NewFill(style.Fill)
	if style.Stroke != "" {
		pat.Stroke = svg.NewStroke(style.Stroke, style.Width)
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}
