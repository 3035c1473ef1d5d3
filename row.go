package plotkit

import (
	"fmt"
	"math"
	"sort"
)

// Row holds the values of every accessor for one record. Rows are computed
// once per build so that accessors run exactly once per record.
type Row struct {
	Index  int
	Record Record

	XValue any
	X      string
	XNum   float64

	Y  float64
	Ys []float64

	Key    any
	KeyNum float64

	Clusters []any

	Color      string
	Label      string
	Border     string
	BorderSize float64
}

// Value returns the y value of the given series, zero when it is missing.
func (r Row) Value(serie int) float64 {
	if serie < 0 || serie >= len(r.Ys) {
		return 0
	}
	if v := r.Ys[serie]; !math.IsNaN(v) {
		return v
	}
	return 0
}

type AccessorError struct {
	Accessor string
	Index    int
	Err      error
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("%s accessor failed on record #%d: %s", e.Accessor, e.Index, e.Err)
}

func (e *AccessorError) Unwrap() error {
	return e.Err
}

func eval(acc Accessor, name string, i int, r Record) (any, error) {
	if acc == nil {
		return nil, nil
	}
	v, err := acc(r)
	if err != nil {
		return nil, &AccessorError{
			Accessor: name,
			Index:    i,
			Err:      err,
		}
	}
	return v, nil
}

// Resolve evaluates every accessor of cfg against data. The first failing
// accessor aborts the whole resolution.
func Resolve(data []Record, cfg Config) ([]Row, error) {
	rows := make([]Row, 0, len(data))
	for i, r := range data {
		row, err := resolveRow(i, r, cfg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func resolveRow(i int, r Record, cfg Config) (Row, error) {
	row := Row{
		Index:      i,
		Record:     r,
		Border:     DefaultBorderColor,
		BorderSize: DefaultBorderSize,
		XNum:       math.NaN(),
		KeyNum:     math.NaN(),
	}
	v, err := eval(cfg.XValues, "x", i, r)
	if err != nil {
		return row, err
	}
	row.XValue = v
	row.X = Stringify(v)
	if f, ok := Number(v); ok {
		row.XNum = f
	}

	row.Ys = make([]float64, len(cfg.YValues))
	for j, acc := range cfg.YValues {
		v, err := eval(acc, fmt.Sprintf("y[%d]", j), i, r)
		if err != nil {
			return row, err
		}
		f, ok := Number(v)
		if !ok {
			f = math.NaN()
		}
		row.Ys[j] = f
	}
	row.Y = row.Value(0)

	for j, acc := range cfg.ClusterBy {
		v, err := eval(acc, fmt.Sprintf("clusterBy[%d]", j), i, r)
		if err != nil {
			return row, err
		}
		row.Clusters = append(row.Clusters, v)
	}
	if row.Key, err = eval(cfg.ColorBy, "colorBy", i, r); err != nil {
		return row, err
	}
	if f, ok := Number(row.Key); ok {
		row.KeyNum = f
	}
	if v, err = eval(cfg.ColorSpecific, "colorSpecific", i, r); err != nil {
		return row, err
	} else if Truthy(v) {
		row.Color = Stringify(v)
	}
	if v, err = eval(cfg.LabelFunction, "label", i, r); err != nil {
		return row, err
	} else if Truthy(v) {
		row.Label = Stringify(v)
	}
	if v, err = eval(cfg.BorderColor, "borderColor", i, r); err != nil {
		return row, err
	} else if Truthy(v) {
		row.Border = Stringify(v)
	}
	if v, err = eval(cfg.BorderSize, "borderSize", i, r); err != nil {
		return row, err
	} else if f, ok := Number(v); ok && f >= 0 {
		row.BorderSize = f
	}
	return row, nil
}

// SortBy returns a copy of data stably sorted by the value of acc.
func SortBy(data []Record, acc Accessor) ([]Record, error) {
	type keyed struct {
		value  any
		record Record
	}
	list := make([]keyed, len(data))
	for i, r := range data {
		v, err := eval(acc, "sort", i, r)
		if err != nil {
			return nil, err
		}
		list[i] = keyed{value: v, record: r}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return Compare(list[i].value, list[j].value) < 0
	})
	out := make([]Record, len(list))
	for i := range list {
		out[i] = list[i].record
	}
	return out, nil
}
