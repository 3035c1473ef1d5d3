package plotkit_test

import (
	"fmt"

	"github.com/midbel/plotkit"
	"github.com/midbel/plotkit/expr"
)

func sample() []plotkit.Record {
	return []plotkit.Record{
		{"host": "a", "duration": 10.0, "status": "ok"},
		{"host": "b", "duration": 5.0, "status": "ok"},
		{"host": "c", "duration": 5.0, "status": "failed"},
		{"host": "d", "duration": 10.0, "status": "ok"},
	}
}

func config() plotkit.Config {
	cfg := plotkit.DefaultConfig()
	cfg.XValues = expr.MustCompile("entry.host").Accessor()
	cfg.YValues = []plotkit.Accessor{expr.MustCompile("entry.duration").Accessor()}
	cfg.ColorBy = expr.MustCompile("entry.status").Accessor()
	cfg.Width = 120
	cfg.Height = 120
	cfg.Padding = 0
	return cfg
}

func ExampleBuild() {
	f, err := plotkit.Build(sample(), config())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range f.Primitives {
		fmt.Println(p.Fill, p.Shape)
	}
	// Output:
	// #1f77b4 M 20 120 V 20 H 45 L 45 120 L 45 120 V 70 H 70 L 70 120 Z
	// #aec7e8 M 70 120 V 70 H 95 L 95 120 Z
	// #1f77b4 M 95 120 V 20 H 120 L 120 120 Z
}

func ExampleFrame_Locate() {
	f, err := plotkit.Build(sample(), config())
	if err != nil {
		fmt.Println(err)
		return
	}
	hit, ok := f.Locate(80, 110)
	if !ok {
		fmt.Println("nothing found")
		return
	}
	for _, r := range hit.Records() {
		fmt.Println(r["host"], r["status"])
	}
	_, ok = f.Locate(80, 130)
	fmt.Println(ok)
	// Output:
	// c failed
	// false
}

func ExampleChart() {
	cfg := config()
	cfg.Layout = plotkit.LayoutStacked

	c := plotkit.NewChart(cfg, nil)
	if _, err := c.Update(sample()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Frame().Layout, len(c.Frame().Primitives))
	// Output:
	// stacked 4
}
