package plotkit

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

type Palette []string

var (
	Category10 Palette
	Category20 Palette
	Tableau10  Palette
	Cool       Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Category20 = splitColorString("1f77b4aec7e8ff7f0effbb782ca02c98df8ad62728ff98969467bdc5b0d58c564bc49c94e377c2f7b6d27f7f7fc7c7c7bcbd22dbdb8d17becf9edae5")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
	Cool = splitColorString("6e40aa417de01ac7c240f373aff05b")
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

type ColorScale interface {
	Color(Row) string
}

// OrdinalColor assigns palette colors to keys in the order they are first
// seen. Keys outside of the initial domain get the next free slot.
type OrdinalColor struct {
	Palette Palette

	mu    sync.Mutex
	index map[Key]int
}

func NewOrdinalColor(palette Palette, keys []any) *OrdinalColor {
	o := OrdinalColor{
		Palette: palette,
		index:   make(map[Key]int),
	}
	for _, k := range keys {
		o.lookup(k)
	}
	return &o
}

func (o *OrdinalColor) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.index)
}

func (o *OrdinalColor) Color(r Row) string {
	return o.Scale(r.Key)
}

func (o *OrdinalColor) Scale(v any) string {
	if len(o.Palette) == 0 {
		return DefaultBorderColor
	}
	return o.Palette[o.lookup(v)%len(o.Palette)]
}

func (o *OrdinalColor) lookup(v any) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	k := KeyOf(v)
	i, ok := o.index[k]
	if !ok {
		i = len(o.index)
		o.index[k] = i
	}
	return i
}

// GradientColor interpolates linearly between the stops of a palette over
// the [Min, Max] domain of the numeric color key.
type GradientColor struct {
	Stops []color.RGBA
	Min   float64
	Max   float64
}

func NewGradientColor(palette Palette, min, max float64) GradientColor {
	g := GradientColor{
		Min: min,
		Max: max,
	}
	for _, p := range palette {
		c, err := ParseColor(p)
		if err != nil {
			continue
		}
		g.Stops = append(g.Stops, c)
	}
	return g
}

func (g GradientColor) Color(r Row) string {
	if math.IsNaN(r.KeyNum) {
		return g.At(0)
	}
	return g.Scale(r.KeyNum)
}

func (g GradientColor) Scale(v float64) string {
	t := 0.0
	if g.Max != g.Min {
		t = (v - g.Min) / (g.Max - g.Min)
	}
	return g.At(t)
}

func (g GradientColor) At(t float64) string {
	switch len(g.Stops) {
	case 0:
		return DefaultBorderColor
	case 1:
		return hexColor(g.Stops[0])
	}
	t = math.Max(0, math.Min(1, t))
	var (
		n    = float64(len(g.Stops) - 1)
		i    = int(math.Min(math.Floor(t*n), n-1))
		frac = t*n - float64(i)
	)
	return hexColor(lerpColor(g.Stops[i], g.Stops[i+1], frac))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts #rgb, #rrggbb, rgb(r, g, b) and the SVG color names.
func ParseColor(str string) (color.RGBA, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	switch {
	case strings.HasPrefix(str, "#"):
		return parseHex(str[1:])
	case strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")"):
		return parseRGB(str[4 : len(str)-1])
	case str == "none" || str == "transparent":
		return color.RGBA{}, nil
	}
	c, ok := colornames.Map[str]
	if !ok {
		return color.RGBA{}, errors.Errorf("%s: unknown color", str)
	}
	return c, nil
}

func parseHex(str string) (color.RGBA, error) {
	if len(str) == 3 {
		str = string([]byte{str[0], str[0], str[1], str[1], str[2], str[2]})
	}
	if len(str) != 6 {
		return color.RGBA{}, errors.Errorf("#%s: invalid hex color", str)
	}
	n, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Errorf("#%s: invalid hex color", str)
	}
	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, nil
}

func parseRGB(str string) (color.RGBA, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 3 {
		return color.RGBA{}, errors.Errorf("rgb(%s): invalid color", str)
	}
	var values [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, errors.Errorf("rgb(%s): invalid color", str)
		}
		values[i] = uint8(n)
	}
	return color.RGBA{R: values[0], G: values[1], B: values[2], A: 0xff}, nil
}
