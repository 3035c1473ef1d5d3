package plotkit

import (
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinalColor(t *testing.T) {
	o := NewOrdinalColor(Category20, []any{"red", "blue", "red"})
	assert.Equal(t, 2, o.Len())
	assert.Equal(t, "#1f77b4", o.Scale("red"))
	assert.Equal(t, "#aec7e8", o.Scale("blue"))
	assert.Equal(t, "#ff7f0e", o.Scale("green"))
	assert.Equal(t, 3, o.Len())

	short := NewOrdinalColor(Palette{"#000000", "#ffffff"}, nil)
	assert.Equal(t, "#000000", short.Scale(1))
	assert.Equal(t, "#ffffff", short.Scale(2))
	assert.Equal(t, "#000000", short.Scale(3))
}

func TestGradientColor(t *testing.T) {
	g := NewGradientColor(Palette{"#000000", "#ffffff"}, 0, 10)
	assert.Equal(t, "#000000", g.Scale(0))
	assert.Equal(t, "#ffffff", g.Scale(10))
	assert.Equal(t, "#808080", g.Scale(5))
	assert.Equal(t, "#ffffff", g.Scale(20))
	assert.Equal(t, "#000000", g.Color(Row{KeyNum: math.NaN()}))
}

func TestStableColors(t *testing.T) {
	var (
		data   []Record
		colors = []string{"red", "blue"}
	)
	for i := 0; i < 6; i++ {
		data = append(data, Record{
			"x": string(rune('a' + i)),
			"y": float64(i + 1),
			"c": colors[i%2],
		})
	}
	cfg := testConfig(LayoutSimple)
	cfg.ColorBy = Field("c")
	cfg.ColorSpecific = Func(func(Record) any { return nil })

	fills := func() []string {
		f, err := Build(data, cfg)
		require.NoError(t, err)
		var list []string
		for _, p := range f.Primitives {
			list = append(list, p.Fill)
		}
		return list
	}
	first, second := fills(), fills()
	require.Len(t, first, len(data))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first[0], first[1])
	for i := 2; i < len(first); i++ {
		assert.Equal(t, first[i%2], first[i])
	}
}

func TestColorOverride(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 1.0, "c": "ok"},
		{"x": "b", "y": 2.0, "c": "ok", "color": "purple"},
	}
	cfg := testConfig(LayoutSimple)
	cfg.ColorBy = Field("c")
	cfg.ColorSpecific = Field("color")

	f, err := Build(data, cfg)
	require.NoError(t, err)
	require.Len(t, f.Primitives, 2)
	assert.Equal(t, Category20[0], f.Primitives[0].Fill)
	assert.Equal(t, "purple", f.Primitives[1].Fill)
}

func TestColorOverrideRuns(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 1.0, "k": "ok", "c": "red"},
		{"x": "b", "y": 2.0, "k": "ok", "c": "blue"},
		{"x": "c", "y": 3.0, "k": "ok", "c": "green"},
		{"x": "d", "y": 4.0, "k": "ok", "c": "green"},
	}
	for _, by := range []Accessor{nil, Field("k")} {
		cfg := testConfig(LayoutColorRun)
		cfg.ColorBy = by
		cfg.ColorSpecific = Field("c")

		f, err := Build(data, cfg)
		require.NoError(t, err)
		require.Len(t, f.Primitives, 3)
		require.Len(t, f.Groups, 3)

		for i, p := range f.Primitives {
			assert.Equal(t, f.Groups[i], p.Rows)
			for _, r := range p.Rows {
				assert.Equal(t, r.Record["c"], p.Fill)
			}
		}
		assert.Len(t, f.Primitives[2].Rows, 2)
	}
}

func TestOrdinalColorConcurrent(t *testing.T) {
	var (
		o  = NewOrdinalColor(Category20, []any{"base"})
		wg sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				o.Scale(j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, o.Len())
	assert.Equal(t, Category20[0], o.Scale("base"))
	seen := make(map[string]struct{})
	for j := 0; j < 4; j++ {
		seen[o.Scale(j)] = struct{}{}
	}
	assert.Len(t, seen, 4)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		Input string
		Want  color.RGBA
	}{
		{Input: "#ff0000", Want: color.RGBA{R: 0xff, A: 0xff}},
		{Input: "#0f0", Want: color.RGBA{G: 0xff, A: 0xff}},
		{Input: "rgb(1, 2, 3)", Want: color.RGBA{R: 1, G: 2, B: 3, A: 0xff}},
		{Input: "Black", Want: color.RGBA{A: 0xff}},
		{Input: "none", Want: color.RGBA{}},
	}
	for _, c := range tests {
		t.Run(c.Input, func(t *testing.T) {
			got, err := ParseColor(c.Input)
			require.NoError(t, err)
			assert.Equal(t, c.Want, got)
		})
	}
	for _, str := range []string{"#12", "#zzzzzz", "rgb(1, 2)", "rgb(1, 2, 300)", "unknown"} {
		_, err := ParseColor(str)
		assert.Error(t, err, str)
	}
}
