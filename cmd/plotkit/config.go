package main

import (
	"github.com/midbel/plotkit/state"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// chartFlags mirror the fields of state.State. A flag left to its zero
// value keeps what the configuration file gives.
type chartFlags struct {
	X            string  `help:"Expression giving the x value."`
	Y            string  `help:"Expressions giving the y values, one per line."`
	ColorBy      string  `help:"Expression giving the color key." name:"color-by"`
	ColorRules   string  `help:"Color rules, one 'value -> color' per line." name:"color-rules"`
	Color        string  `help:"Expression giving a color overriding the color scale."`
	Label        string  `help:"Expression giving the label of a bar."`
	BorderColor  string  `help:"Expression giving the border color." name:"border-color"`
	BorderSize   string  `help:"Expression giving the border size." name:"border-size"`
	ClusterBy    string  `help:"Expressions giving the clusters, one per line." name:"cluster-by"`
	Filter       string  `help:"Filters, one 'filter <expr>' or 'reject <expr>' per line."`
	Sample       int     `help:"Number of records drawn at random."`
	Scale        string  `help:"Color scale: ordinal or continuous."`
	Layout       string  `help:"Chart layout: colorrun, simple, clustered, stacked, nested, line or area."`
	Width        float64 `help:"Chart width."`
	Height       float64 `help:"Chart height."`
	Padding      float64 `help:"Chart padding."`
	InnerPadding float64 `help:"Band inner padding, between 0 and 1." name:"inner-padding"`
	Round        bool    `help:"Round band positions to integer pixels."`
}

// loadState reads the configuration file, when given, on top of the initial
// state.
func loadState(file string) (state.State, error) {
	s := state.Initial()
	if file == "" {
		return s, nil
	}
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return s, errors.Wrap(err, "read configuration")
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, errors.Wrap(err, "decode configuration")
	}
	return s, nil
}

// actions translates the flags given by the user into state actions.
func (c chartFlags) actions() []state.Action {
	var list []state.Action
	exprs := []struct {
		state.Field
		Source string
	}{
		{state.FieldX, c.X},
		{state.FieldY, c.Y},
		{state.FieldColorBy, c.ColorBy},
		{state.FieldColorRules, c.ColorRules},
		{state.FieldColorSpecific, c.Color},
		{state.FieldLabel, c.Label},
		{state.FieldBorderColor, c.BorderColor},
		{state.FieldBorderSize, c.BorderSize},
		{state.FieldClusterBy, c.ClusterBy},
		{state.FieldFilter, c.Filter},
	}
	for _, e := range exprs {
		if e.Source == "" {
			continue
		}
		list = append(list, state.SetExpression{Field: e.Field, Source: e.Source})
	}
	if c.Sample > 0 {
		list = append(list, state.SetSample{Size: c.Sample})
	}
	if c.Scale != "" {
		list = append(list, state.SetScaleType{ScaleType: c.Scale})
	}
	if c.Layout != "" {
		list = append(list, state.SetLayout{Layout: c.Layout})
	}
	if c.Width > 0 || c.Height > 0 || c.Padding > 0 {
		list = append(list, state.SetDimension{Width: c.Width, Height: c.Height, Padding: c.Padding})
	}
	if c.InnerPadding > 0 || c.Round {
		list = append(list, state.SetBand{Inner: c.InnerPadding, Round: c.Round})
	}
	return list
}
