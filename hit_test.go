package plotkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateColorRun(t *testing.T) {
	cfg := smallConfig(LayoutColorRun)
	cfg.ColorBy = Field("k")
	f, err := Build(runData(), cfg)
	require.NoError(t, err)

	tests := []struct {
		Name  string
		X     float64
		Y     float64
		Group int
		Found string
	}{
		{Name: "first", X: 30, Y: 100, Group: 0, Found: "a"},
		{Name: "second", X: 50, Y: 100, Group: 0, Found: "b"},
		{Name: "third", X: 80, Y: 110, Group: 1, Found: "c"},
		{Name: "last", X: 110, Y: 30, Group: 2, Found: "d"},
		{Name: "baseline", X: 110, Y: 120, Group: 2, Found: "d"},
		{Name: "below", X: 30, Y: 125},
		{Name: "above", X: 30, Y: 10},
		{Name: "left", X: 10, Y: 50},
		{Name: "right", X: 130, Y: 50},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			hit, ok := f.Locate(c.X, c.Y)
			if c.Found == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, c.Group, hit.Group)
			require.Len(t, hit.Rows, 1)
			assert.Equal(t, c.Found, hit.Rows[0].X)
		})
	}
}

func TestLocateRoundTrip(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 4.0},
		{"x": "b", "y": 0.0},
		{"x": "c", "y": 7.0},
		{"x": "d", "y": 1.0},
		{"x": "e", "y": 9.0},
	}
	for _, layout := range []Layout{LayoutSimple, LayoutClustered} {
		t.Run(layout.String(), func(t *testing.T) {
			cfg := testConfig(layout)
			cfg.InnerPadding = 0.2
			f, err := Build(data, cfg)
			require.NoError(t, err)

			for _, p := range f.Primitives {
				x, y := p.Bounds().Center()
				hit, ok := f.Locate(x, y)
				require.True(t, ok)
				assert.Equal(t, p.Rows[0].Index, hit.Rows[0].Index)
				assert.Equal(t, p.Rows[0].Record, hit.Records()[0])
			}

			gap := f.Scales.X.Start() + f.Scales.X.Step()*0.9 + f.Padding
			_, ok := f.Locate(gap, f.Height-1)
			assert.False(t, ok)
		})
	}
}

func TestLocateClustered(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 4.0},
		{"x": "a", "y": 8.0},
		{"x": "b", "y": 2.0},
	}
	f, err := Build(data, smallConfig(LayoutClustered))
	require.NoError(t, err)

	for i, p := range f.Primitives {
		x, y := p.Bounds().Center()
		hit, ok := f.Locate(x, y)
		require.True(t, ok)
		assert.Equal(t, i, hit.Primitive)
		assert.Equal(t, p.Group, hit.Group)
	}
}

func TestLocateStacked(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 2.0},
		{"x": "a", "y": 8.0},
		{"x": "a", "y": 5.0},
		{"x": "b", "y": 3.0},
	}
	f, err := Build(data, smallConfig(LayoutStacked))
	require.NoError(t, err)

	center := f.Scales.X.Start() + f.Scales.X.Bandwidth()/2 + f.Padding
	tests := []struct {
		Value float64
		Want  float64
	}{
		{Value: 1, Want: 2},
		{Value: 4, Want: 5},
		{Value: 6, Want: 8},
	}
	for _, c := range tests {
		hit, ok := f.Locate(center, f.Scales.Y.Scale(c.Value))
		require.True(t, ok)
		require.Len(t, hit.Rows, 1)
		assert.Equal(t, c.Want, hit.Rows[0].Y)
		assert.Equal(t, hit.Rows[0].Index, f.Primitives[hit.Primitive].Rows[0].Index)
	}
	_, ok := f.Locate(center, 10)
	assert.False(t, ok)
}

func TestLocateNested(t *testing.T) {
	f, err := Build(nestedData(), nestedConfig())
	require.NoError(t, err)

	hit, ok := f.Locate(140, 40)
	require.True(t, ok)
	assert.Equal(t, 4, hit.Primitive)
	assert.Equal(t, 1, hit.Group)
	assert.Equal(t, "h3", hit.Rows[0].X)

	hit, ok = f.Locate(30, 90)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Primitive)
	assert.Equal(t, 0, hit.Rows[0].Index)

	_, ok = f.Locate(110, 100)
	assert.False(t, ok)
}

func TestLocateLine(t *testing.T) {
	data := []Record{
		{"t": 3.0, "v": 30.0},
		{"t": 1.0, "v": 10.0},
		{"t": 2.0, "v": 20.0},
	}
	f, err := Build(data, lineConfig(LayoutLine))
	require.NoError(t, err)

	hit, ok := f.Locate(110, 121)
	require.True(t, ok)
	require.Len(t, hit.Rows, 1)
	assert.Equal(t, 2, hit.Rows[0].Index)

	_, ok = f.Locate(60, 60)
	assert.False(t, ok)

	f, err = Build(data, lineConfig(LayoutArea))
	require.NoError(t, err)

	hit, ok = f.Locate(150, 200)
	require.True(t, ok)
	assert.Len(t, hit.Rows, 3)

	_, ok = f.Locate(50, 100)
	assert.False(t, ok)
}

func TestLocateUnsorted(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 2.0},
		{"x": "b", "y": 3.0},
		{"x": "a", "y": 8.0},
	}
	t.Run("clustered", func(t *testing.T) {
		f, err := Build(data, smallConfig(LayoutClustered))
		require.NoError(t, err)
		require.Len(t, f.Groups, 2)
		assert.Len(t, f.Groups[0], 2)

		bw := f.Scales.X.Bandwidth()
		for _, p := range f.Primitives[:2] {
			assert.InDelta(t, bw/2, p.Bounds().W, 1e-9)
		}
		for i, p := range f.Primitives {
			x, y := p.Bounds().Center()
			hit, ok := f.Locate(x, y)
			require.True(t, ok)
			assert.Equal(t, i, hit.Primitive)
			assert.Equal(t, p.Rows[0].Index, hit.Rows[0].Index)
		}
	})
	t.Run("stacked", func(t *testing.T) {
		f, err := Build(data, smallConfig(LayoutStacked))
		require.NoError(t, err)
		require.Len(t, f.Groups, 2)

		center := f.Scales.X.Start() + f.Scales.X.Bandwidth()/2 + f.Padding
		hit, ok := f.Locate(center, f.Scales.Y.Scale(1))
		require.True(t, ok)
		assert.Equal(t, 0, hit.Rows[0].Index)

		hit, ok = f.Locate(center, f.Scales.Y.Scale(5))
		require.True(t, ok)
		assert.Equal(t, 2, hit.Rows[0].Index)
	})
}
