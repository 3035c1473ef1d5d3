package plotkit

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(layout Layout) Config {
	cfg := testConfig(layout)
	cfg.Width = 120
	cfg.Height = 120
	cfg.Padding = 0
	return cfg
}

func runData() []Record {
	return []Record{
		{"x": "a", "y": 10.0, "k": "k"},
		{"x": "b", "y": 5.0, "k": "k"},
		{"x": "c", "y": 5.0, "k": "j"},
		{"x": "d", "y": 10.0, "k": "k"},
	}
}

func TestBuildColorRun(t *testing.T) {
	cfg := smallConfig(LayoutColorRun)
	cfg.ColorBy = Field("k")

	f, err := Build(runData(), cfg)
	require.NoError(t, err)
	require.Len(t, f.Groups, 3)
	require.Len(t, f.Primitives, 3)

	paths := []string{
		"M 20 120 V 20 H 45 L 45 120 L 45 120 V 70 H 70 L 70 120 Z",
		"M 70 120 V 70 H 95 L 95 120 Z",
		"M 95 120 V 20 H 120 L 120 120 Z",
	}
	fills := []string{Category20[0], Category20[1], Category20[0]}
	for i, p := range f.Primitives {
		pat, ok := p.Shape.(Path)
		require.True(t, ok)
		assert.Equal(t, paths[i], pat.String())
		assert.Equal(t, fills[i], p.Fill)
		assert.Equal(t, i, p.Group)
		assert.Equal(t, f.Groups[i], p.Rows)
	}
}

func TestBuildSimple(t *testing.T) {
	cfg := smallConfig(LayoutSimple)
	cfg.LabelFunction = Field("x")

	f, err := Build(runData(), cfg)
	require.NoError(t, err)
	require.Len(t, f.Primitives, 4)
	assert.Equal(t, Rect{X: 20, Y: 20, W: 25, H: 100}, f.Primitives[0].Shape)
	assert.Equal(t, Rect{X: 45, Y: 70, W: 25, H: 50}, f.Primitives[1].Shape)

	require.Len(t, f.Labels, 4)
	assert.Equal(t, Label{X: 20, Y: 18, Text: "a", Row: 0}, f.Labels[0])
	assert.Equal(t, Label{X: 45, Y: 68, Text: "b", Row: 1}, f.Labels[1])

	for _, p := range f.Primitives {
		assert.Equal(t, DefaultBorderColor, p.Stroke)
		assert.Equal(t, DefaultBorderSize, p.Width)
	}
}

func TestBuildBorder(t *testing.T) {
	cfg := smallConfig(LayoutSimple)
	cfg.BorderColor = Const("red")
	cfg.BorderSize = Const(3)

	f, err := Build(runData(), cfg)
	require.NoError(t, err)
	for _, p := range f.Primitives {
		assert.Equal(t, "red", p.Stroke)
		assert.Equal(t, 3.0, p.Width)
	}
}

func TestBuildClustered(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 4.0},
		{"x": "a", "y": 8.0},
		{"x": "b", "y": 2.0},
	}
	f, err := Build(data, smallConfig(LayoutClustered))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)
	require.Len(t, f.Primitives, 3)
	assert.Equal(t, DefaultInnerPadding, f.InnerPadding)

	var (
		bw     = f.Scales.X.Bandwidth()
		first  = f.Primitives[0].Bounds()
		second = f.Primitives[1].Bounds()
		third  = f.Primitives[2].Bounds()
	)
	assert.InDelta(t, bw/2, first.W, 1e-9)
	assert.InDelta(t, bw/2, second.W, 1e-9)
	assert.InDelta(t, first.X+bw/2, second.X, 1e-9)
	assert.InDelta(t, bw, third.W, 1e-9)
	assert.Less(t, second.Y, first.Y)
}

func TestBuildStacked(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 2.0},
		{"x": "a", "y": 8.0},
		{"x": "a", "y": 5.0},
		{"x": "b", "y": 3.0},
	}
	f, err := Build(data, smallConfig(LayoutStacked))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)
	require.Len(t, f.Primitives, 4)

	var ys []float64
	for _, r := range f.Groups[0] {
		ys = append(ys, r.Y)
	}
	assert.Equal(t, []float64{8, 5, 2}, ys)
	for i, want := range []float64{8, 5, 2, 3} {
		assert.Equal(t, want, f.Primitives[i].Rows[0].Y)
		assert.InDelta(t, f.Height, f.Primitives[i].Bounds().Bottom(), 1e-9)
	}
	assert.Equal(t, f.Primitives[0].Bounds().X, f.Primitives[2].Bounds().X)
}

func nestedData() []Record {
	return []Record{
		{"host": "h1", "region": "eu", "a": 1.0, "b": 1.0},
		{"host": "h2", "region": "eu", "a": 2.0, "b": 0.0},
		{"host": "h3", "region": "us", "a": 3.0, "b": 2.0},
	}
}

func nestedConfig() Config {
	cfg := DefaultConfig()
	cfg.XValues = Field("host")
	cfg.YValues = []Accessor{Field("a"), Field("b")}
	cfg.ClusterBy = []Accessor{Field("region")}
	cfg.Layout = LayoutNested
	cfg.Width = 220
	cfg.Height = 120
	cfg.Padding = 0
	return cfg
}

func TestBuildNested(t *testing.T) {
	f, err := Build(nestedData(), nestedConfig())
	require.NoError(t, err)

	require.NotNil(t, f.Tree)
	assert.Len(t, f.Tree.Children, 2)
	require.Len(t, f.Groups, 2)
	assert.Len(t, f.Groups[0], 2)
	assert.Len(t, f.Groups[1], 1)

	want := []struct {
		Rect
		Fill string
		Row  int
	}{
		{Rect: Rect{X: 20, Y: 100, W: 35, H: 20}, Fill: Category20[0], Row: 0},
		{Rect: Rect{X: 20, Y: 80, W: 35, H: 20}, Fill: Category20[1], Row: 0},
		{Rect: Rect{X: 65, Y: 80, W: 35, H: 40}, Fill: Category20[0], Row: 1},
		{Rect: Rect{X: 120, Y: 60, W: 80, H: 60}, Fill: Category20[0], Row: 2},
		{Rect: Rect{X: 120, Y: 20, W: 80, H: 40}, Fill: Category20[1], Row: 2},
	}
	require.Len(t, f.Primitives, len(want))
	for i, w := range want {
		p := f.Primitives[i]
		assert.Equal(t, w.Rect, p.Shape)
		assert.Equal(t, w.Fill, p.Fill)
		assert.Equal(t, w.Row, p.Rows[0].Index)
	}
}

func TestBuildLine(t *testing.T) {
	data := []Record{
		{"t": 3.0, "v": 30.0},
		{"t": 1.0, "v": 10.0},
		{"t": 2.0, "v": 20.0},
	}
	f, err := Build(data, lineConfig(LayoutLine))
	require.NoError(t, err)
	require.Len(t, f.Primitives, 4)

	line := f.Primitives[0]
	assert.Equal(t, "M 20 220 L 110 120 L 200 20", line.Shape.(Path).String())
	assert.Equal(t, "none", line.Fill)
	assert.Len(t, line.Rows, 3)

	circles := []Circle{
		{X: 20, Y: 220, R: DefaultRadius},
		{X: 110, Y: 120, R: DefaultRadius},
		{X: 200, Y: 20, R: DefaultRadius},
	}
	for i, c := range circles {
		assert.Equal(t, c, f.Primitives[i+1].Shape)
	}
}

func TestBuildLineGap(t *testing.T) {
	data := []Record{
		{"t": 1.0, "v": 10.0},
		{"t": 2.0},
		{"t": 3.0, "v": 20.0},
		{"t": 4.0, "v": 30.0},
	}
	f, err := Build(data, lineConfig(LayoutLine))
	require.NoError(t, err)
	require.Len(t, f.Primitives, 4)
	assert.Equal(t, "M 20 220 M 140 120 L 200 20", f.Primitives[0].Shape.(Path).String())
}

func TestBuildArea(t *testing.T) {
	data := []Record{
		{"t": 3.0, "v": 30.0},
		{"t": 1.0, "v": 10.0},
		{"t": 2.0, "v": 20.0},
	}
	f, err := Build(data, lineConfig(LayoutArea))
	require.NoError(t, err)
	require.Len(t, f.Primitives, 1)

	area := f.Primitives[0]
	assert.Equal(t, "M 20 220 L 110 120 L 200 20 L 200 220 L 20 220 Z", area.Shape.(Path).String())
	assert.Equal(t, "green", area.Fill)

	cfg := lineConfig(LayoutArea)
	cfg.ColorBy = Const("all")
	f, err = Build(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, Category20[0], f.Primitives[0].Fill)
}

func lineConfig(layout Layout) Config {
	cfg := DefaultConfig()
	cfg.XValues = Field("t")
	cfg.YValues = []Accessor{Field("v")}
	cfg.Layout = layout
	cfg.Width = 300
	cfg.Height = 220
	cfg.Padding = 0
	return cfg
}

func TestBuildEmpty(t *testing.T) {
	for l := range layoutNames {
		t.Run(l.String(), func(t *testing.T) {
			cfg := testConfig(l)
			cfg.ClusterBy = []Accessor{Field("c")}

			f, err := Build(nil, cfg)
			require.NoError(t, err)
			assert.Empty(t, f.Primitives)
			assert.Empty(t, f.Labels)

			_, ok := f.Locate(100, 100)
			assert.False(t, ok)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		Name string
		Edit func(*Config)
		Err  error
	}{
		{Name: "x", Edit: func(c *Config) { c.XValues = nil }, Err: ErrNoXValues},
		{Name: "y", Edit: func(c *Config) { c.YValues = nil }, Err: ErrNoYValues},
		{Name: "layout", Edit: func(c *Config) { c.Layout = Layout(99) }, Err: ErrLayout},
		{Name: "nested", Edit: func(c *Config) { c.Layout = LayoutNested }, Err: ErrClusterBy},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			cfg := testConfig(LayoutSimple)
			c.Edit(&cfg)
			_, err := Build(runData(), cfg)
			assert.ErrorIs(t, err, c.Err)
		})
	}
}

func TestBuildAccessorError(t *testing.T) {
	boom := errors.New("boom")
	cfg := testConfig(LayoutSimple)
	cfg.LabelFunction = func(r Record) (any, error) {
		if r["x"] == "b" {
			return nil, boom
		}
		return r["x"], nil
	}
	_, err := Build(runData(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var aerr *AccessorError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 1, aerr.Index)
	assert.Equal(t, "label", aerr.Accessor)
}

func TestParseLayout(t *testing.T) {
	for l, name := range layoutNames {
		got, err := ParseLayout(name)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := ParseLayout("bar")
	require.NoError(t, err)
	assert.Equal(t, LayoutColorRun, got)

	_, err = ParseLayout("pie")
	assert.ErrorIs(t, err, ErrLayout)
}
