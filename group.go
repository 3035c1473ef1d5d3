package plotkit

import (
	"github.com/midbel/slices"
)

// Partition splits data into runs of contiguous elements sharing the same
// key. Equal keys that are not adjacent end up in different groups: data
// must be ordered beforehand when a complete group-by is wanted.
func Partition[T any, K comparable](data []T, key func(T) K) [][]T {
	var (
		groups [][]T
		last   K
	)
	for i, d := range data {
		k := key(d)
		if i == 0 || k != last {
			groups = append(groups, []T{d})
		} else {
			j := len(groups) - 1
			groups[j] = append(groups[j], d)
		}
		last = k
	}
	return groups
}

// Flatten concatenates groups back into a single slice.
func Flatten[T any](groups [][]T) []T {
	var n int
	for _, g := range groups {
		n += len(g)
	}
	all := make([]T, 0, n)
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func byX(r Row) string {
	return r.X
}

// Cluster is a node of the tree built by Nest. Leaves have no children and
// hold the rows to draw.
type Cluster struct {
	Key      Key
	Rows     []Row
	Children []*Cluster
}

func (c *Cluster) Leaf() bool {
	return len(c.Children) == 0
}

func (c *Cluster) Depth() int {
	if c.Leaf() {
		return 0
	}
	var depth int
	for _, c := range c.Children {
		if d := c.Depth(); d > depth {
			depth = d
		}
	}
	return depth + 1
}

// Leaves returns the leaf clusters from left to right.
func (c *Cluster) Leaves() []*Cluster {
	if c.Leaf() {
		return []*Cluster{c}
	}
	var list []*Cluster
	for _, c := range c.Children {
		list = append(list, c.Leaves()...)
	}
	return list
}

// Nest partitions rows with the first key function, then each resulting
// group with the next one and so on.
func Nest(rows []Row, keys ...func(Row) Key) *Cluster {
	root := Cluster{
		Rows: rows,
	}
	if len(keys) == 0 {
		return &root
	}
	for _, g := range Partition(rows, slices.Fst(keys)) {
		child := Nest(g, slices.Rest(keys)...)
		child.Key = slices.Fst(keys)(slices.Fst(g))
		root.Children = append(root.Children, child)
	}
	return &root
}
