package state

import (
	"github.com/midbel/plotkit"
)

// Action is a change to apply to a State. The set of actions is closed.
type Action interface {
	apply(State) State
}

type SetExpression struct {
	Field
	Source string
}

func (a SetExpression) apply(s State) State {
	return s.withExpression(a.Field, a.Source)
}

// SetData replaces the dataset. When Field is not nil, the matching
// expression is replaced in the same step.
type SetData struct {
	Data   []plotkit.Record
	Field  *Field
	Source string
}

func (a SetData) apply(s State) State {
	s.Data = a.Data
	if a.Field != nil {
		s = s.withExpression(*a.Field, a.Source)
	}
	return s
}

type SetLayout struct {
	Layout string
}

func (a SetLayout) apply(s State) State {
	s.Layout = a.Layout
	return s
}

// SetDimension updates the size of the chart. Values that are not positive
// are left unchanged.
type SetDimension struct {
	Width   float64
	Height  float64
	Padding float64
}

func (a SetDimension) apply(s State) State {
	if a.Width > 0 {
		s.Width = a.Width
	}
	if a.Height > 0 {
		s.Height = a.Height
	}
	if a.Padding > 0 {
		s.Padding = a.Padding
	}
	return s
}

// SetBand sets the inner padding and the rounding of band scales.
type SetBand struct {
	Inner float64
	Round bool
}

func (a SetBand) apply(s State) State {
	if a.Inner >= 0 && a.Inner < 1 {
		s.Inner = a.Inner
	}
	s.Round = a.Round
	return s
}

type SetScaleType struct {
	ScaleType string
}

func (a SetScaleType) apply(s State) State {
	s.ScaleType = a.ScaleType
	return s
}

type SetSample struct {
	Size int
}

func (a SetSample) apply(s State) State {
	if a.Size < 0 {
		a.Size = 0
	}
	s.Sample = a.Size
	return s
}

func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}
