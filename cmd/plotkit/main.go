package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/midbel/plotkit"
	"github.com/midbel/plotkit/expr"
	"github.com/midbel/plotkit/fetch"
	"github.com/midbel/plotkit/state"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
)

var cli struct {
	Config  string        `help:"Configuration file (yaml, json or toml)." short:"c" type:"path"`
	Limit   int           `default:"4" help:"Maximum number of locations read at the same time."`
	Timeout time.Duration `default:"30s" help:"Time allowed to read every location."`
	Sort    bool          `default:"false" help:"Sort records by their x value once read."`
	Metrics bool          `default:"false" help:"Dump metrics to stderr before exiting."`

	Log struct {
		Level string `default:"info" help:"Log level." enum:"debug,info,warn,error"`
		Debug bool   `default:"false" help:"Enable development logging."`
	} `embed:"" prefix:"log-"`

	Chart chartFlags `embed:""`

	Render struct {
		Output    string   `help:"Output file, stdout when empty." short:"o" type:"path"`
		Format    string   `default:"svg" help:"Output format." enum:"svg,png"`
		Title     string   `help:"Chart title."`
		XLabel    string   `help:"Label of the x axis." name:"x-label"`
		YLabel    string   `help:"Label of the y axis." name:"y-label"`
		Axis      bool     `default:"true" help:"Draw the axes." negatable:""`
		Legend    bool     `default:"false" help:"Draw the legend of the color keys."`
		Locations []string `arg:"" name:"location" help:"Files or urls giving the records."`
	} `cmd:"" help:"Render a chart from the records of the given locations."`

	Locate struct {
		PX        float64  `arg:"" name:"px" help:"Horizontal pixel."`
		PY        float64  `arg:"" name:"py" help:"Vertical pixel."`
		Locations []string `arg:"" name:"location" help:"Files or urls giving the records."`
	} `cmd:"" help:"Print the records drawn under a pixel."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("plotkit"),
		kong.Description("Draw bar, line and area charts from json records."),
		kong.UsageOnError(),
	)

	logger := setupLogger(cli.Log.Level, cli.Log.Debug)
	defer logger.Sync()
	logger = logger.With(zap.String("run", uuid.NewString()))

	var (
		registry = prometheus.NewRegistry()
		metrics  = fetch.NewMetrics()
	)
	registry.MustRegister(metrics)

	cmd := kctx.Command()
	logger.Debug("command", zap.String("command", cmd))

	var err error
	switch cmd {
	case "render <location>":
		err = runRender(logger, metrics)
	case "locate <px> <py> <location>":
		err = runLocate(logger, metrics)
	default:
		err = errors.Errorf("%s: unknown command", cmd)
	}
	if cli.Metrics {
		dumpMetrics(registry)
	}
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func runRender(logger *zap.Logger, metrics *fetch.Metrics) error {
	var r plotkit.Renderer
	switch cli.Render.Format {
	case "png":
		r = plotkit.CanvasRenderer{Background: "white"}
	default:
		r = plotkit.SVGRenderer{
			Title:      cli.Render.Title,
			XLabel:     cli.Render.XLabel,
			YLabel:     cli.Render.YLabel,
			WithAxis:   cli.Render.Axis,
			WithTitles: true,
			WithLegend: cli.Render.Legend,
		}
	}
	chart, err := build(logger, metrics, r, cli.Render.Locations)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if cli.Render.Output != "" {
		f, err := os.Create(cli.Render.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := chart.Render(w); err != nil {
		return errors.Wrap(err, "render")
	}
	frame := chart.Frame()
	logger.Info("chart rendered",
		zap.String("layout", frame.Layout.String()),
		zap.Int("rows", len(frame.Rows)),
		zap.Int("primitives", len(frame.Primitives)),
	)
	return nil
}

func runLocate(logger *zap.Logger, metrics *fetch.Metrics) error {
	chart, err := build(logger, metrics, nil, cli.Locate.Locations)
	if err != nil {
		return err
	}
	hit, ok := chart.Locate(cli.Locate.PX, cli.Locate.PY)
	if !ok {
		logger.Info("nothing drawn at pixel",
			zap.Float64("x", cli.Locate.PX),
			zap.Float64("y", cli.Locate.PY),
		)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	for _, r := range hit.Records() {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// build runs the whole pipeline: configuration, fetch, state then geometry.
func build(logger *zap.Logger, metrics *fetch.Metrics, r plotkit.Renderer, locations []string) (*plotkit.Chart, error) {
	initial, err := loadState(cli.Config)
	if err != nil {
		return nil, err
	}
	store := state.NewStore(initial)
	unsub := store.Subscribe(func(s state.State) {
		logger.Debug("state updated",
			zap.String("layout", s.Layout),
			zap.String("x", s.X),
			zap.String("y", s.Y),
			zap.Int("records", len(s.Data)),
		)
	})
	defer unsub()
	store.Dispatch(cli.Chart.actions()...)

	buf := fetch.Buffer{
		Logger:  logger.Named("fetch"),
		Metrics: metrics,
		Limit:   cli.Limit,
	}
	if cli.Sort {
		prog, err := expr.Compile(store.State().X)
		if err != nil {
			return nil, errors.Wrap(err, "x expression")
		}
		buf.SortBy = prog.Accessor()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	data, err := buf.Fetch(ctx, locations)
	if err != nil {
		return nil, err
	}
	curr := store.Dispatch(state.SetData{Data: data})

	cfg, data, err := state.Compile(curr)
	if err != nil {
		return nil, err
	}
	chart := plotkit.NewChart(cfg, r)
	if _, err := chart.Update(data); err != nil {
		return nil, err
	}
	return chart, nil
}

// dumpMetrics dumps all metrics to stderr.
func dumpMetrics(g prometheus.Gatherer) {
	mfs, err := g.Gather()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
}
