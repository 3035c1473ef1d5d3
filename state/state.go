package state

import (
	"strings"

	"github.com/midbel/plotkit"
	"github.com/pkg/errors"
)

// State holds everything a chart is made of in its textual form. It is a
// value: reducers return a new State and never modify the one given.
type State struct {
	X             string `mapstructure:"x"`
	Y             string `mapstructure:"y"`
	ColorBy       string `mapstructure:"color-by"`
	ColorRules    string `mapstructure:"color-rules"`
	ColorSpecific string `mapstructure:"color"`
	Label         string `mapstructure:"label"`
	BorderColor   string `mapstructure:"border-color"`
	BorderSize    string `mapstructure:"border-size"`
	ClusterBy     string `mapstructure:"cluster-by"`
	Filter        string `mapstructure:"filter"`

	Sample    int     `mapstructure:"sample"`
	ScaleType string  `mapstructure:"scale"`
	Layout    string  `mapstructure:"layout"`
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	Padding   float64 `mapstructure:"padding"`
	Inner     float64 `mapstructure:"inner-padding"`
	Round     bool    `mapstructure:"round"`

	Data []plotkit.Record `mapstructure:"-"`
}

func Initial() State {
	return State{
		X:           "entry.workhost",
		Y:           "entry.duration",
		ColorBy:     "entry.status",
		BorderColor: `"black"`,
		BorderSize:  "1",
		ScaleType:   string(plotkit.ScaleOrdinal),
		Layout:      plotkit.LayoutColorRun.String(),
		Width:       plotkit.DefaultWidth,
		Height:      plotkit.DefaultHeight,
		Padding:     plotkit.DefaultPadding,
	}
}

// Field names one of the expression texts of a State.
type Field int

const (
	FieldX Field = iota
	FieldY
	FieldColorBy
	FieldColorRules
	FieldColorSpecific
	FieldLabel
	FieldBorderColor
	FieldBorderSize
	FieldClusterBy
	FieldFilter
)

var fieldNames = []string{
	FieldX:             "x",
	FieldY:             "y",
	FieldColorBy:       "color-by",
	FieldColorRules:    "color-rules",
	FieldColorSpecific: "color",
	FieldLabel:         "label",
	FieldBorderColor:   "border-color",
	FieldBorderSize:    "border-size",
	FieldClusterBy:     "cluster-by",
	FieldFilter:        "filter",
}

func ParseField(str string) (Field, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	for i, n := range fieldNames {
		if n == str {
			return Field(i), nil
		}
	}
	return 0, errors.Errorf("%s: unknown expression field", str)
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

func (s State) expression(f Field) string {
	switch f {
	case FieldX:
		return s.X
	case FieldY:
		return s.Y
	case FieldColorBy:
		return s.ColorBy
	case FieldColorRules:
		return s.ColorRules
	case FieldColorSpecific:
		return s.ColorSpecific
	case FieldLabel:
		return s.Label
	case FieldBorderColor:
		return s.BorderColor
	case FieldBorderSize:
		return s.BorderSize
	case FieldClusterBy:
		return s.ClusterBy
	case FieldFilter:
		return s.Filter
	default:
		return ""
	}
}

func (s State) withExpression(f Field, src string) State {
	switch f {
	case FieldX:
		s.X = src
	case FieldY:
		s.Y = src
	case FieldColorBy:
		s.ColorBy = src
	case FieldColorRules:
		s.ColorRules = src
	case FieldColorSpecific:
		s.ColorSpecific = src
	case FieldLabel:
		s.Label = src
	case FieldBorderColor:
		s.BorderColor = src
	case FieldBorderSize:
		s.BorderSize = src
	case FieldClusterBy:
		s.ClusterBy = src
	case FieldFilter:
		s.Filter = src
	}
	return s
}
