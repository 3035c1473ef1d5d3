package plotkit

import (
	"math"
	"strconv"
	"strings"
)

type Shape interface {
	Bounds() Rect
	Contains(x, y float64) bool
}

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// rectBetween builds the rectangle of a bar spanning from top to base.
func rectBetween(x, w, top, base float64) Rect {
	return Rect{
		X: x,
		Y: math.Min(top, base),
		W: w,
		H: math.Abs(base - top),
	}
}

func (r Rect) Bounds() Rect {
	return r
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

type Circle struct {
	X float64
	Y float64
	R float64
}

func (c Circle) Bounds() Rect {
	return Rect{
		X: c.X - c.R,
		Y: c.Y - c.R,
		W: c.R * 2,
		H: c.R * 2,
	}
}

func (c Circle) Contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) <= c.R
}

const (
	CmdMove       = 'M'
	CmdLine       = 'L'
	CmdVertical   = 'V'
	CmdHorizontal = 'H'
	CmdClose      = 'Z'
)

type Segment struct {
	Cmd byte
	X   float64
	Y   float64
}

// Path is an ordered list of absolute segments. Vertical and horizontal
// segments only use the coordinate they move along.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Cmd: CmdMove, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Cmd: CmdLine, X: x, Y: y})
}

func (p *Path) Vertical(y float64) {
	p.Segments = append(p.Segments, Segment{Cmd: CmdVertical, Y: y})
}

func (p *Path) Horizontal(x float64) {
	p.Segments = append(p.Segments, Segment{Cmd: CmdHorizontal, X: x})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Cmd: CmdClose})
}

func (p Path) Empty() bool {
	return len(p.Segments) == 0
}

// Points returns the absolute position reached after every segment. Close
// segments go back to the start of the current subpath.
func (p Path) Points() [][2]float64 {
	var (
		list  [][2]float64
		curr  [2]float64
		start [2]float64
	)
	for _, s := range p.Segments {
		switch s.Cmd {
		case CmdMove:
			curr = [2]float64{s.X, s.Y}
			start = curr
		case CmdLine:
			curr = [2]float64{s.X, s.Y}
		case CmdVertical:
			curr[1] = s.Y
		case CmdHorizontal:
			curr[0] = s.X
		case CmdClose:
			curr = start
		}
		list = append(list, curr)
	}
	return list
}

func (p Path) Bounds() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	minx, miny := pts[0][0], pts[0][1]
	maxx, maxy := minx, miny
	for _, pt := range pts[1:] {
		minx = math.Min(minx, pt[0])
		maxx = math.Max(maxx, pt[0])
		miny = math.Min(miny, pt[1])
		maxy = math.Max(maxy, pt[1])
	}
	return Rect{X: minx, Y: miny, W: maxx - minx, H: maxy - miny}
}

// Contains uses the even-odd rule over the vertices of the path.
func (p Path) Contains(x, y float64) bool {
	pts := p.Points()
	if len(pts) < 3 {
		return false
	}
	var inside bool
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func (p Path) String() string {
	var str strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			str.WriteByte(' ')
		}
		str.WriteByte(s.Cmd)
		switch s.Cmd {
		case CmdMove, CmdLine:
			str.WriteByte(' ')
			str.WriteString(formatFloat(s.X))
			str.WriteByte(' ')
			str.WriteString(formatFloat(s.Y))
		case CmdVertical:
			str.WriteByte(' ')
			str.WriteString(formatFloat(s.Y))
		case CmdHorizontal:
			str.WriteByte(' ')
			str.WriteString(formatFloat(s.X))
		}
	}
	return str.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type Style struct {
	Fill   string
	Stroke string
	Width  float64
}

// Primitive is a shape ready to be drawn along with the rows it stands for.
type Primitive struct {
	Shape
	Style
	Group int
	Rows  []Row
}

type Label struct {
	X    float64
	Y    float64
	Text string
	Row  int
}
