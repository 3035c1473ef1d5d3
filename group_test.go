package plotkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(layout Layout) Config {
	cfg := DefaultConfig()
	cfg.XValues = Field("x")
	cfg.YValues = []Accessor{Field("y")}
	cfg.Layout = layout
	return cfg
}

func identity(v int) int {
	return v
}

func TestPartition(t *testing.T) {
	tests := []struct {
		Name  string
		Input []int
		Want  [][]int
	}{
		{Name: "empty", Input: nil, Want: nil},
		{Name: "single", Input: []int{1}, Want: [][]int{{1}}},
		{Name: "runs", Input: []int{1, 1, 2, 1}, Want: [][]int{{1, 1}, {2}, {1}}},
		{Name: "distinct", Input: []int{1, 2, 3}, Want: [][]int{{1}, {2}, {3}}},
		{Name: "same", Input: []int{4, 4, 4}, Want: [][]int{{4, 4, 4}}},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			got := Partition(c.Input, identity)
			assert.Equal(t, c.Want, got)

			assert.Len(t, Flatten(got), len(c.Input))
			for i := range got {
				assert.NotEmpty(t, got[i])
				if i > 0 {
					assert.NotEqual(t, got[i-1][len(got[i-1])-1], got[i][0])
				}
			}
		})
	}
}

func TestGroupByX(t *testing.T) {
	data := []Record{
		{"x": "a", "y": 5.0, "c": "red"},
		{"x": "a", "y": 3.0, "c": "red"},
		{"x": "b", "y": 2.0, "c": "blue"},
	}
	f, err := Build(data, testConfig(LayoutSimple))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)

	var got [][]Record
	for _, g := range f.Groups {
		var list []Record
		for _, r := range g {
			list = append(list, r.Record)
		}
		got = append(got, list)
	}
	want := [][]Record{
		{data[0], data[1]},
		{data[2]},
	}
	assert.Equal(t, want, got)
}

func TestNest(t *testing.T) {
	rows := []Row{
		{Index: 0, Clusters: []any{"eu", "a"}},
		{Index: 1, Clusters: []any{"eu", "a"}},
		{Index: 2, Clusters: []any{"eu", "b"}},
		{Index: 3, Clusters: []any{"us", "a"}},
	}
	level := func(i int) func(Row) Key {
		return func(r Row) Key {
			return KeyOf(r.Clusters[i])
		}
	}
	tree := Nest(rows, level(0), level(1))
	assert.Equal(t, 2, tree.Depth())
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "eu", tree.Children[0].Key.String())
	assert.Equal(t, "us", tree.Children[1].Key.String())

	leaves := tree.Leaves()
	require.Len(t, leaves, 3)
	assert.Len(t, leaves[0].Rows, 2)
	assert.Equal(t, "b", leaves[1].Key.String())
	assert.Equal(t, 3, leaves[2].Rows[0].Index)

	flat := Nest(rows)
	assert.True(t, flat.Leaf())
	assert.Len(t, flat.Rows, 4)
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, KeyOf(1.0), KeyOf(1))
	assert.NotEqual(t, KeyOf("1"), KeyOf(1.0))
	assert.NotEqual(t, KeyOf(nil), KeyOf(""))
	assert.Equal(t, KeyOf("red"), KeyOf("red"))
}

func TestSortBy(t *testing.T) {
	data := []Record{
		{"v": 3.0, "id": "a"},
		{"id": "b"},
		{"v": 1.0, "id": "c"},
		{"v": "text", "id": "d"},
		{"v": 1.0, "id": "e"},
	}
	sorted, err := SortBy(data, Field("v"))
	require.NoError(t, err)

	var ids []string
	for _, r := range sorted {
		ids = append(ids, r["id"].(string))
	}
	assert.Equal(t, []string{"c", "e", "a", "d", "b"}, ids)
}

func TestLookup(t *testing.T) {
	r := Record{
		"entry": map[string]any{
			"host": "alpha",
			"meta": map[string]any{"size": 12.0},
		},
	}
	assert.Equal(t, "alpha", Lookup(r, "entry", "host"))
	assert.Equal(t, 12.0, Lookup(r, "entry", "meta", "size"))
	assert.Nil(t, Lookup(r, "entry", "host", "name"))
	assert.Nil(t, Lookup(r, "missing"))

	v, err := Field("entry.meta.size")(r)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)
}
