package plotkit

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a single decoded JSON object. The engine only reads it through
// accessors.
type Record map[string]any

// Accessor extracts a value from a record. A nil result stands for an
// undefined value.
type Accessor func(Record) (any, error)

func Field(path string) Accessor {
	parts := strings.Split(path, ".")
	return func(r Record) (any, error) {
		return Lookup(r, parts...), nil
	}
}

func Const(v any) Accessor {
	return func(Record) (any, error) {
		return v, nil
	}
}

func Func(fn func(Record) any) Accessor {
	return func(r Record) (any, error) {
		return fn(r), nil
	}
}

// Lookup walks nested objects following the given keys. It returns nil as
// soon as a key is missing or a value is not an object.
func Lookup(r Record, keys ...string) any {
	var curr any = map[string]any(r)
	for _, k := range keys {
		switch m := curr.(type) {
		case map[string]any:
			curr = m[k]
		case Record:
			curr = m[k]
		default:
			return nil
		}
		if curr == nil {
			return nil
		}
	}
	return curr
}

func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case []any, map[string]any, Record:
		buf, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(buf)
	}
	if f, ok := Number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	}
	if f, ok := Number(v); ok {
		return f != 0
	}
	return true
}

// Key is the comparable identity used when grouping rows. Numbers and
// strings never collide with each other.
type Key struct {
	kind byte
	str  string
	num  float64
}

const (
	keyNil byte = iota
	keyNumber
	keyString
	keyBool
	keyOther
)

func KeyOf(v any) Key {
	switch x := v.(type) {
	case nil:
		return Key{kind: keyNil}
	case string:
		return Key{kind: keyString, str: x}
	case bool:
		return Key{kind: keyBool, str: strconv.FormatBool(x)}
	case float64, float32, int, int64, int32, uint, uint64, json.Number:
		f, _ := Number(x)
		return Key{kind: keyNumber, num: f}
	default:
		return Key{kind: keyOther, str: Stringify(x)}
	}
}

func (k Key) String() string {
	switch k.kind {
	case keyNil:
		return ""
	case keyNumber:
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	default:
		return k.str
	}
}

// Compare orders values the way records are sorted: numbers first, then
// strings, then everything else, with undefined values last.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		x, _ := Number(a)
		y, _ := Number(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case 3:
		return 0
	default:
		return strings.Compare(Stringify(a), Stringify(b))
	}
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 3
	case string:
		return 1
	case float64, float32, int, int64, int32, uint, uint64, json.Number, bool:
		return 0
	default:
		return 2
	}
}
