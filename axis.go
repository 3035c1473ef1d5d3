package plotkit

import (
	"strconv"

	"github.com/midbel/svg"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

// Tick is a mark along an axis. Offset is relative to the origin of the
// axis.
type Tick struct {
	Offset float64
	Text   string
}

// BandTicks places one tick in the middle of every band.
func BandTicks(s BandScale) []Tick {
	list := make([]Tick, 0, s.Count())
	for _, d := range s.Domain {
		x, _ := s.Scale(d)
		list = append(list, Tick{
			Offset: x - s.Start() + s.Bandwidth()/2,
			Text:   d,
		})
	}
	return list
}

// LinearTicks spreads count+1 ticks over the domain of s.
func LinearTicks(s LinearScale, count int, format func(float64) string) []Tick {
	if format == nil {
		format = formatTick
	}
	var (
		values = s.Ticks(count)
		list   = make([]Tick, 0, len(values))
	)
	for _, v := range values {
		list = append(list, Tick{
			Offset: s.Scale(v) - s.Min(),
			Text:   format(v),
		})
	}
	return list
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Axis struct {
	Label string
	Orientation
	Ticks []Tick

	WithMarks bool
	WithTexts bool
	WithGrid  bool
	Dashed    bool
}

// Render draws the axis at (left, top). length is the size of the domain
// line and size the extent of the plot area crossed by grid lines.
func (a Axis) Render(length, size, left, top float64) svg.Element {
	var (
		g      = svg.NewGroup(svg.WithTranslate(left, top))
		stroke = svg.NewStroke(DefaultBorderColor, DefaultBorderSize)
		font   = svg.NewFont(FontSize)
	)
	g.Append(a.domain(length, stroke).AsElement())
	for _, t := range a.Ticks {
		grp := svg.NewGroup(svg.WithTranslate(t.Offset, 0))
		if a.Vertical() {
			grp = svg.NewGroup(svg.WithTranslate(0, t.Offset))
		}
		if a.WithMarks {
			grp.Append(a.mark(FontSize*0.8, stroke).AsElement())
		}
		if a.WithGrid {
			sk := stroke
			if a.Dashed {
				sk.DashArray(5)
			} else {
				sk.Opacity = 0.05
			}
			grp.Append(a.mark(-size, sk).AsElement())
		}
		if a.WithTexts {
			grp.Append(a.text(t.Text, font).AsElement())
		}
		g.Append(grp.AsElement())
	}
	if a.Label != "" {
		g.Append(a.title(length).AsElement())
	}
	return g.AsElement()
}

func (a Axis) domain(length float64, stroke svg.Stroke) svg.Line {
	end := svg.NewPos(length, 0)
	if a.Vertical() {
		end = svg.NewPos(0, length)
	}
	li := svg.NewLine(svg.NewPos(0, 0), end)
	li.Stroke = stroke
	return li
}

// mark draws a line of the given size, perpendicular to the axis, going
// away from the plot area when size is positive.
func (a Axis) mark(size float64, stroke svg.Stroke) svg.Line {
	if a.Reverse() {
		size = -size
	}
	end := svg.NewPos(0, size)
	if a.Vertical() {
		end = svg.NewPos(-size, 0)
	}
	li := svg.NewLine(svg.NewPos(0, 0), end)
	li.Stroke = stroke
	return li
}

func (a Axis) text(str string, font svg.Font) svg.Text {
	tx := svg.NewText(str)
	tx.Font = font
	switch gap := FontSize * 1.2; {
	case a.Vertical():
		tx.Baseline = "middle"
		tx.Anchor = "end"
		tx.Pos = svg.NewPos(-gap, 0)
		if a.Reverse() {
			tx.Anchor = "start"
			tx.Pos.X = gap
		}
	case a.Reverse():
		tx.Baseline = "auto"
		tx.Anchor = "middle"
		tx.Pos = svg.NewPos(0, -gap)
	default:
		tx.Baseline = "hanging"
		tx.Anchor = "middle"
		tx.Pos = svg.NewPos(0, gap)
	}
	return tx
}

func (a Axis) title(length float64) svg.Text {
	tx := svg.NewText(a.Label)
	tx.Font = svg.NewFont(FontSize)
	tx.Anchor = "middle"
	if !a.Vertical() {
		tx.Pos = svg.NewPos(length/2, FontSize*3)
		tx.Baseline = "hanging"
		return tx
	}
	tx.Pos = svg.NewPos(-FontSize*4, length/2)
	tx.Baseline = "middle"
	tx.Transform.RA = -90
	tx.Transform.RX = tx.Pos.X
	tx.Transform.RY = tx.Pos.Y
	return tx
}
