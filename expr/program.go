package expr

import (
	"strings"

	"github.com/midbel/plotkit"
)

// Program is a compiled expression. It can be evaluated concurrently.
type Program struct {
	source string
	expr   Expression
}

// Compile parses src. A blank source gives a program that always evaluates
// to nil.
func Compile(src string) (*Program, error) {
	p := Program{
		source: strings.TrimSpace(src),
	}
	if p.source == "" {
		return &p, nil
	}
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	p.expr = expr
	return &p, nil
}

func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileLines compiles every non blank line of src as its own program.
func CompileLines(src string) ([]*Program, error) {
	var list []*Program
	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := Compile(line)
		if err != nil {
			return nil, shift(err, i, 0)
		}
		list = append(list, p)
	}
	return list, nil
}

func (p *Program) Eval(r plotkit.Record) (any, error) {
	if p == nil || p.expr == nil {
		return nil, nil
	}
	return eval(p.expr, r)
}

func (p *Program) Accessor() plotkit.Accessor {
	if p == nil || p.expr == nil {
		return nil
	}
	return p.Eval
}

func (p *Program) Empty() bool {
	return p == nil || p.expr == nil
}

func (p *Program) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Accessors returns the accessors of the given programs.
func Accessors(list []*Program) []plotkit.Accessor {
	var as []plotkit.Accessor
	for _, p := range list {
		if a := p.Accessor(); a != nil {
			as = append(as, a)
		}
	}
	return as
}

// shift moves the position of a syntax error found in a fragment of a
// larger text.
func shift(err error, lines, cols int) error {
	e, ok := err.(SyntaxError)
	if !ok {
		return err
	}
	if e.Line == 1 {
		e.Column += cols
	}
	e.Line += lines
	return e
}
