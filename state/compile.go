package state

import (
	"math/rand"

	"github.com/midbel/plotkit"
	"github.com/midbel/plotkit/expr"
	"github.com/pkg/errors"
)

// Compile turns the expressions of s into a chart configuration and returns
// the records left once filters and sampling have been applied.
func Compile(s State) (plotkit.Config, []plotkit.Record, error) {
	return CompileWith(s, nil)
}

// CompileWith is Compile with an explicit source of randomness for sampling.
func CompileWith(s State, rng *rand.Rand) (plotkit.Config, []plotkit.Record, error) {
	cfg := plotkit.DefaultConfig()

	var err error
	single := func(f Field, set *plotkit.Accessor) {
		if err != nil {
			return
		}
		var p *expr.Program
		if p, err = expr.Compile(s.expression(f)); err != nil {
			err = errors.Wrapf(err, "%s expression", f)
			return
		}
		*set = p.Accessor()
	}
	lines := func(f Field, set *[]plotkit.Accessor) {
		if err != nil {
			return
		}
		var list []*expr.Program
		if list, err = expr.CompileLines(s.expression(f)); err != nil {
			err = errors.Wrapf(err, "%s expression", f)
			return
		}
		*set = expr.Accessors(list)
	}
	single(FieldX, &cfg.XValues)
	lines(FieldY, &cfg.YValues)
	single(FieldColorBy, &cfg.ColorBy)
	single(FieldColorSpecific, &cfg.ColorSpecific)
	single(FieldLabel, &cfg.LabelFunction)
	single(FieldBorderColor, &cfg.BorderColor)
	single(FieldBorderSize, &cfg.BorderSize)
	lines(FieldClusterBy, &cfg.ClusterBy)
	if err != nil {
		return cfg, nil, err
	}

	rules, err := expr.CompileColorRules(s.ColorBy, s.ColorRules)
	if err != nil {
		return cfg, nil, errors.Wrapf(err, "%s", FieldColorRules)
	}
	cfg.ColorSpecific = firstOf(cfg.ColorSpecific, rules)

	if cfg.Layout, err = plotkit.ParseLayout(s.Layout); err != nil {
		return cfg, nil, err
	}
	if cfg.ScaleType, err = plotkit.ParseScaleType(s.ScaleType); err != nil {
		return cfg, nil, err
	}
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.Padding > 0 {
		cfg.Padding = s.Padding
	}
	cfg.InnerPadding = s.Inner
	cfg.Round = s.Round

	filters, err := expr.CompileFilters(s.Filter)
	if err != nil {
		return cfg, nil, errors.Wrapf(err, "%s expression", FieldFilter)
	}
	data, err := filters.Apply(s.Data)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, expr.Sample(data, s.Sample, rng), nil
}

// firstOf returns an accessor giving the first truthy value of the given
// accessors.
func firstOf(list ...plotkit.Accessor) plotkit.Accessor {
	var as []plotkit.Accessor
	for _, a := range list {
		if a != nil {
			as = append(as, a)
		}
	}
	switch len(as) {
	case 0:
		return nil
	case 1:
		return as[0]
	}
	return func(r plotkit.Record) (any, error) {
		for _, a := range as {
			v, err := a(r)
			if err != nil {
				return nil, err
			}
			if plotkit.Truthy(v) {
				return v, nil
			}
		}
		return nil, nil
	}
}
