package plotkit

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

const circleSteps = 32

// CanvasRenderer rasterizes a frame and encodes it as png. Labels and axes
// are left to the svg renderer.
type CanvasRenderer struct {
	Background string
}

func (r CanvasRenderer) Render(w io.Writer, f *Frame) error {
	return png.Encode(w, r.Rasterize(f))
}

func (r CanvasRenderer) Rasterize(f *Frame) *image.RGBA {
	var (
		width  = int(math.Ceil(f.Width + f.Padding))
		height = int(math.Ceil(f.Height + f.Padding))
		dst    = image.NewRGBA(image.Rect(0, 0, width, height))
	)
	if bg, err := ParseColor(r.Background); err == nil && r.Background != "" {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	for _, p := range f.Primitives {
		outline := polygons(p.Shape)
		if c, err := ParseColor(p.Fill); err == nil && c.A > 0 {
			fillPolygons(dst, outline, c)
		}
		if c, err := ParseColor(p.Stroke); err == nil && c.A > 0 && p.Width > 0 {
			strokePolygons(dst, outline, c, p.Width)
		}
	}
	return dst
}

type polygon struct {
	points [][2]float64
	closed bool
}

func polygons(s Shape) []polygon {
	switch s := s.(type) {
	case Rect:
		pts := [][2]float64{
			{s.X, s.Y},
			{s.X + s.W, s.Y},
			{s.X + s.W, s.Y + s.H},
			{s.X, s.Y + s.H},
		}
		return []polygon{{points: pts, closed: true}}
	case Circle:
		pts := make([][2]float64, circleSteps)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / circleSteps
			pts[i] = [2]float64{s.X + s.R*math.Cos(a), s.Y + s.R*math.Sin(a)}
		}
		return []polygon{{points: pts, closed: true}}
	case Path:
		return pathPolygons(s)
	default:
		return nil
	}
}

func pathPolygons(p Path) []polygon {
	var (
		list []polygon
		curr polygon
		pos  [2]float64
	)
	flush := func() {
		if len(curr.points) > 0 {
			list = append(list, curr)
		}
		curr = polygon{}
	}
	for _, s := range p.Segments {
		switch s.Cmd {
		case CmdMove:
			flush()
			pos = [2]float64{s.X, s.Y}
		case CmdLine:
			pos = [2]float64{s.X, s.Y}
		case CmdVertical:
			pos[1] = s.Y
		case CmdHorizontal:
			pos[0] = s.X
		case CmdClose:
			curr.closed = true
			if len(curr.points) > 0 {
				pos = curr.points[0]
			}
			flush()
			continue
		}
		curr.points = append(curr.points, pos)
	}
	flush()
	return list
}

func fillPolygons(dst *image.RGBA, list []polygon, c color.RGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range list {
		if len(p.points) < 3 {
			continue
		}
		z.MoveTo(float32(p.points[0][0]), float32(p.points[0][1]))
		for _, pt := range p.points[1:] {
			z.LineTo(float32(pt[0]), float32(pt[1]))
		}
		z.ClosePath()
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokePolygons draws every edge as a thin quad of the given width.
func strokePolygons(dst *image.RGBA, list []polygon, c color.RGBA, width float64) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	half := width / 2
	edge := func(a, b [2]float64) {
		dx, dy := b[0]-a[0], b[1]-a[1]
		n := math.Hypot(dx, dy)
		if n == 0 {
			return
		}
		ox, oy := -dy/n*half, dx/n*half
		z.MoveTo(float32(a[0]+ox), float32(a[1]+oy))
		z.LineTo(float32(b[0]+ox), float32(b[1]+oy))
		z.LineTo(float32(b[0]-ox), float32(b[1]-oy))
		z.LineTo(float32(a[0]-ox), float32(a[1]-oy))
		z.ClosePath()
	}
	for _, p := range list {
		for i := 1; i < len(p.points); i++ {
			edge(p.points[i-1], p.points[i])
		}
		if p.closed && len(p.points) > 2 {
			edge(p.points[len(p.points)-1], p.points[0])
		}
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
