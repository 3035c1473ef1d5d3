package expr

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/midbel/plotkit"
	"github.com/pkg/errors"
)

const arrow = "->"

type ColorRule struct {
	Value string
	Color string
}

// ColorRules maps the value of a key expression to a color. The key is
// compared by its string form. Fallback is used when no rule matches.
type ColorRules struct {
	Key      *Program
	Rules    []ColorRule
	Fallback string
}

// ParseColorRules reads lines of the form
//
//	value -> color
//	else -> color
func ParseColorRules(src string) ([]ColorRule, string, error) {
	var (
		list     []ColorRule
		fallback string
	)
	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		value, color, ok := strings.Cut(line, arrow)
		if !ok {
			return nil, "", SyntaxError{
				Message:  "missing -> in color rule",
				Position: Position{Line: i + 1, Column: 1},
			}
		}
		value, color = unquote(value), unquote(color)
		if color == "" {
			return nil, "", SyntaxError{
				Message:  "missing color in color rule",
				Position: Position{Line: i + 1, Column: strings.Index(line, arrow) + len(arrow) + 1},
			}
		}
		if value == kwElse {
			fallback = color
			continue
		}
		list = append(list, ColorRule{Value: value, Color: color})
	}
	return list, fallback, nil
}

// CompileColorRules builds the color override accessor from a key
// expression and a list of rules.
func CompileColorRules(key, rules string) (plotkit.Accessor, error) {
	if strings.TrimSpace(rules) == "" {
		return nil, nil
	}
	prog, err := Compile(key)
	if err != nil {
		return nil, err
	}
	list, fallback, err := ParseColorRules(rules)
	if err != nil {
		return nil, err
	}
	cr := ColorRules{
		Key:      prog,
		Rules:    list,
		Fallback: fallback,
	}
	return cr.Color, nil
}

func (c ColorRules) Color(r plotkit.Record) (any, error) {
	v, err := c.Key.Eval(r)
	if err != nil {
		return nil, err
	}
	str := plotkit.Stringify(v)
	for _, r := range c.Rules {
		if r.Value == str {
			return r.Color, nil
		}
	}
	if c.Fallback == "" {
		return nil, nil
	}
	return c.Fallback, nil
}

// Colors lists every color used by the rules, fallback included.
func (c ColorRules) Colors() []string {
	var list []string
	for _, r := range c.Rules {
		list = append(list, r.Color)
	}
	if c.Fallback != "" {
		list = append(list, c.Fallback)
	}
	return list
}

func unquote(str string) string {
	str = strings.TrimSpace(str)
	if s, err := strconv.Unquote(str); err == nil {
		return s
	}
	if n := len(str); n >= 2 && str[0] == '\'' && str[n-1] == '\'' {
		return str[1 : n-1]
	}
	return str
}

const (
	kwFilter = "filter"
	kwReject = "reject"
)

type Filter struct {
	Keep bool
	*Program
}

// Filters are applied in order, each one on the output of the previous one.
type Filters []Filter

// CompileFilters reads lines of the form "filter <expr>" or "reject <expr>".
func CompileFilters(src string) (Filters, error) {
	var list Filters
	for i, line := range strings.Split(src, "\n") {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		kw, rest, _ := strings.Cut(trim, " ")
		var f Filter
		switch kw {
		case kwFilter:
			f.Keep = true
		case kwReject:
		default:
			return nil, SyntaxError{
				Message:  "filter or reject expected",
				Position: Position{Line: i + 1, Column: strings.Index(line, kw) + 1},
			}
		}
		if strings.TrimSpace(rest) == "" {
			return nil, SyntaxError{
				Message:  "missing expression after " + kw,
				Position: Position{Line: i + 1, Column: len(line) + 1},
			}
		}
		prog, err := Compile(rest)
		if err != nil {
			return nil, shift(err, i, strings.Index(line, rest))
		}
		f.Program = prog
		list = append(list, f)
	}
	return list, nil
}

func (fs Filters) Apply(data []plotkit.Record) ([]plotkit.Record, error) {
	for _, f := range fs {
		var (
			out []plotkit.Record
			err error
		)
		for i, r := range data {
			v, err1 := f.Eval(r)
			if err1 != nil {
				err = errors.Wrapf(err1, "%s on record #%d", f.String(), i)
				break
			}
			if plotkit.Truthy(v) == f.Keep {
				out = append(out, r)
			}
		}
		if err != nil {
			return nil, err
		}
		data = out
	}
	return data, nil
}

// Sample picks n records at random, keeping their relative order. All the
// records are returned when n is not positive or not smaller than the
// dataset.
func Sample(data []plotkit.Record, n int, rng *rand.Rand) []plotkit.Record {
	if n <= 0 || n >= len(data) {
		return data
	}
	perm := rand.Perm
	if rng != nil {
		perm = rng.Perm
	}
	ix := perm(len(data))[:n]
	sort.Ints(ix)

	out := make([]plotkit.Record, 0, n)
	for _, i := range ix {
		out = append(out, data[i])
	}
	return out
}
