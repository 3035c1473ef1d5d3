package plotkit

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultWidth   = 1000.0
	DefaultHeight  = 500.0
	DefaultPadding = 45.0

	LeftInset  = 20.0
	TopInset   = 20.0
	RightInset = 100.0

	DefaultInnerPadding   = 0.1
	DefaultClusterPadding = 20.0
	DefaultBarPadding     = 10.0
	DefaultRadius         = 5.0

	DefaultBorderColor = "black"
	DefaultBorderSize  = 1.0
)

var (
	ErrNoXValues = errors.New("plotkit: x accessor not set")
	ErrNoYValues = errors.New("plotkit: y accessor not set")
	ErrLayout    = errors.New("plotkit: unknown layout")
	ErrClusterBy = errors.New("plotkit: nested layout needs at least one cluster accessor")
)

type ScaleType string

const (
	ScaleOrdinal    ScaleType = "ordinal"
	ScaleContinuous ScaleType = "continuous"
)

func ParseScaleType(str string) (ScaleType, error) {
	switch s := ScaleType(strings.ToLower(str)); s {
	case "", ScaleOrdinal:
		return ScaleOrdinal, nil
	case ScaleContinuous:
		return s, nil
	default:
		return "", errors.Errorf("%s: unknown scale type", str)
	}
}

type Layout int

const (
	LayoutColorRun Layout = iota
	LayoutSimple
	LayoutClustered
	LayoutStacked
	LayoutNested
	LayoutLine
	LayoutArea
)

var layoutNames = map[Layout]string{
	LayoutColorRun:  "colorrun",
	LayoutSimple:    "simple",
	LayoutClustered: "clustered",
	LayoutStacked:   "stacked",
	LayoutNested:    "nested",
	LayoutLine:      "line",
	LayoutArea:      "area",
}

func ParseLayout(str string) (Layout, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "" || str == "bar" {
		return LayoutColorRun, nil
	}
	for k, v := range layoutNames {
		if v == str {
			return k, nil
		}
	}
	return 0, errors.Wrap(ErrLayout, str)
}

func (l Layout) String() string {
	if s, ok := layoutNames[l]; ok {
		return s
	}
	return "unknown"
}

// Banded reports whether the layout places rows on a categorical x axis.
func (l Layout) Banded() bool {
	switch l {
	case LayoutLine, LayoutArea:
		return false
	default:
		return true
	}
}

type Config struct {
	XValues       Accessor
	YValues       []Accessor
	ColorBy       Accessor
	ColorSpecific Accessor
	LabelFunction Accessor
	BorderColor   Accessor
	BorderSize    Accessor
	ClusterBy     []Accessor

	ScaleType ScaleType
	Layout    Layout

	Width   float64
	Height  float64
	Padding float64

	InnerPadding   float64
	Round          bool
	ClusterPadding float64
	BarPadding     float64

	Palette  Palette
	Gradient Palette
}

func DefaultConfig() Config {
	return Config{
		ScaleType:      ScaleOrdinal,
		Layout:         LayoutColorRun,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Padding:        DefaultPadding,
		ClusterPadding: DefaultClusterPadding,
		BarPadding:     DefaultBarPadding,
	}
}

func (c Config) normalize() (Config, error) {
	if c.XValues == nil {
		return c, ErrNoXValues
	}
	if len(c.YValues) == 0 {
		return c, ErrNoYValues
	}
	if _, ok := layoutNames[c.Layout]; !ok {
		return c, ErrLayout
	}
	if c.Layout == LayoutNested && len(c.ClusterBy) == 0 {
		return c, ErrClusterBy
	}
	if c.ScaleType == "" {
		c.ScaleType = ScaleOrdinal
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.InnerPadding < 0 || c.InnerPadding >= 1 {
		c.InnerPadding = 0
	}
	if c.InnerPadding == 0 && c.Layout == LayoutClustered {
		c.InnerPadding = DefaultInnerPadding
	}
	if len(c.Palette) == 0 {
		c.Palette = Category20
	}
	if len(c.Gradient) == 0 {
		c.Gradient = Cool
	}
	return c, nil
}
