package expr

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/midbel/plotkit"
	"github.com/midbel/slices"
	"github.com/pkg/errors"
)

const root = "entry"

var (
	ErrType     = errors.New("incompatible type")
	ErrArgument = errors.New("wrong number of arguments")
	ErrZero     = errors.New("division by zero")
)

func eval(expr Expression, r plotkit.Record) (any, error) {
	switch e := expr.(type) {
	case literal:
		return e.value, nil
	case field:
		if e.ident == root {
			return r, nil
		}
		return r[e.ident], nil
	case member:
		left, err := eval(e.left, r)
		if err != nil {
			return nil, err
		}
		return lookup(left, e.ident), nil
	case index:
		return evalIndex(e, r)
	case call:
		return evalCall(e, r)
	case unary:
		return evalUnary(e, r)
	case binary:
		return evalBinary(e, r)
	case test:
		res, err := eval(e.cdt, r)
		if err != nil {
			return nil, err
		}
		if plotkit.Truthy(res) {
			return eval(e.csq, r)
		}
		return eval(e.alt, r)
	default:
		return nil, errors.Errorf("%T: unsupported expression", expr)
	}
}

func lookup(v any, key string) any {
	switch m := v.(type) {
	case plotkit.Record:
		return m[key]
	case map[string]any:
		return m[key]
	default:
		return nil
	}
}

func evalIndex(e index, r plotkit.Record) (any, error) {
	left, err := eval(e.left, r)
	if err != nil {
		return nil, err
	}
	ix, err := eval(e.index, r)
	if err != nil {
		return nil, err
	}
	if list, ok := left.([]any); ok {
		n, ok := number(ix)
		if !ok {
			return nil, errors.Wrap(ErrType, "array index should be a number")
		}
		if i := int(n); i >= 0 && i < len(list) {
			return list[i], nil
		}
		return nil, nil
	}
	return lookup(left, plotkit.Stringify(ix)), nil
}

func evalUnary(u unary, r plotkit.Record) (any, error) {
	res, err := eval(u.right, r)
	if err != nil {
		return nil, err
	}
	switch u.op {
	case Not:
		return !plotkit.Truthy(res), nil
	case Sub:
		f, ok := number(res)
		if !ok {
			return nil, errors.Wrap(ErrType, "number expected for negation")
		}
		return -f, nil
	default:
		return nil, errors.New("unsupported unary operator")
	}
}

func evalBinary(b binary, r plotkit.Record) (any, error) {
	left, err := eval(b.left, r)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case And:
		if !plotkit.Truthy(left) {
			return left, nil
		}
		return eval(b.right, r)
	case Or:
		if plotkit.Truthy(left) {
			return left, nil
		}
		return eval(b.right, r)
	}
	right, err := eval(b.right, r)
	if err != nil {
		return nil, err
	}
	switch b.op {
	default:
		return nil, errors.New("unsupported binary operator")
	case Add:
		return execAdd(left, right)
	case Sub, Mul, Div, Mod, Pow:
		return execArithmetic(b.op, left, right)
	case Eq:
		return plotkit.KeyOf(left) == plotkit.KeyOf(right), nil
	case Ne:
		return plotkit.KeyOf(left) != plotkit.KeyOf(right), nil
	case Lt, Le, Gt, Ge:
		return execCompare(b.op, left, right)
	}
}

func execAdd(left, right any) (any, error) {
	x, ok1 := number(left)
	y, ok2 := number(right)
	if ok1 && ok2 {
		return x + y, nil
	}
	_, str1 := left.(string)
	_, str2 := right.(string)
	if str1 || str2 {
		return plotkit.Stringify(left) + plotkit.Stringify(right), nil
	}
	return nil, errors.Wrap(ErrType, "addition")
}

func execArithmetic(op rune, left, right any) (any, error) {
	x, ok1 := number(left)
	y, ok2 := number(right)
	if !ok1 || !ok2 {
		return nil, errors.Wrap(ErrType, "numbers expected")
	}
	switch op {
	case Sub:
		return x - y, nil
	case Mul:
		return x * y, nil
	case Div:
		if y == 0 {
			return nil, ErrZero
		}
		return x / y, nil
	case Mod:
		if y == 0 {
			return nil, ErrZero
		}
		return math.Mod(x, y), nil
	default:
		return math.Pow(x, y), nil
	}
}

func execCompare(op rune, left, right any) (any, error) {
	var cmp int
	if x, ok := number(left); ok {
		y, ok := number(right)
		if !ok {
			return nil, errors.Wrap(ErrType, "comparison")
		}
		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	} else if x, ok := left.(string); ok {
		y, ok := right.(string)
		if !ok {
			return nil, errors.Wrap(ErrType, "comparison")
		}
		cmp = strings.Compare(x, y)
	} else {
		return nil, errors.Wrap(ErrType, "value can not be compared")
	}
	switch op {
	case Lt:
		return cmp < 0, nil
	case Le:
		return cmp <= 0, nil
	case Gt:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// number only accepts values that are numbers already. Numeric strings are
// converted explicitly with the number builtin.
func number(v any) (float64, bool) {
	switch v.(type) {
	case float64, float32, int, int64, int32, uint, uint64, json.Number:
		return plotkit.Number(v)
	default:
		return 0, false
	}
}

type builtin func([]any) (any, error)

var builtins = map[string]builtin{
	"len":      fnLen,
	"lower":    stringFunc(strings.ToLower),
	"upper":    stringFunc(strings.ToUpper),
	"string":   fnString,
	"number":   fnNumber,
	"concat":   fnConcat,
	"coalesce": fnCoalesce,
}

func evalCall(c call, r plotkit.Record) (any, error) {
	args := make([]any, 0, len(c.args))
	for _, a := range c.args {
		res, err := eval(a, r)
		if err != nil {
			return nil, err
		}
		args = append(args, res)
	}
	fn, ok := builtins[c.ident]
	if !ok {
		return nil, errors.Errorf("%s: function undefined", c.ident)
	}
	res, err := fn(args)
	return res, errors.Wrap(err, c.ident)
}

func fnLen(args []any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgument
	}
	switch x := slices.Fst(args).(type) {
	case string:
		return float64(len(x)), nil
	case []any:
		return float64(len(x)), nil
	case map[string]any:
		return float64(len(x)), nil
	case plotkit.Record:
		return float64(len(x)), nil
	case nil:
		return float64(0), nil
	default:
		return nil, errors.Wrap(ErrType, "string expected")
	}
}

func stringFunc(fn func(string) string) builtin {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, ErrArgument
		}
		str, ok := slices.Fst(args).(string)
		if !ok {
			return nil, errors.Wrap(ErrType, "string expected")
		}
		return fn(str), nil
	}
}

func fnString(args []any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgument
	}
	return plotkit.Stringify(slices.Fst(args)), nil
}

func fnNumber(args []any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgument
	}
	v := slices.Fst(args)
	if v == nil {
		return nil, nil
	}
	f, ok := plotkit.Number(v)
	if !ok {
		return nil, errors.Wrapf(ErrType, "%v is not a number", v)
	}
	return f, nil
}

func fnConcat(args []any) (any, error) {
	var str strings.Builder
	for _, a := range args {
		str.WriteString(plotkit.Stringify(a))
	}
	return str.String(), nil
}

func fnCoalesce(args []any) (any, error) {
	for _, a := range args {
		if a != nil {
			return a, nil
		}
	}
	return nil, nil
}
