package plotkit

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

var ErrNoFrame = errors.New("plotkit: chart has not been built yet")

// Chart keeps a configuration and the frame built from the last dataset it
// was given. It is safe for concurrent use: readers always see a complete
// frame.
type Chart struct {
	Config
	Renderer

	mu    sync.RWMutex
	frame *Frame
}

func NewChart(cfg Config, r Renderer) *Chart {
	if r == nil {
		r = SVGRenderer{WithAxis: true}
	}
	return &Chart{
		Config:   cfg,
		Renderer: r,
	}
}

// Update builds a new frame from data. The previous frame is kept when the
// build fails.
func (c *Chart) Update(data []Record) (*Frame, error) {
	f, err := Build(data, c.Config)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = f
	return f, nil
}

func (c *Chart) Frame() *Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

func (c *Chart) Render(w io.Writer) error {
	f := c.Frame()
	if f == nil {
		return ErrNoFrame
	}
	return c.Renderer.Render(w, f)
}

func (c *Chart) Locate(px, py float64) (Hit, bool) {
	f := c.Frame()
	if f == nil {
		return Hit{}, false
	}
	return f.Locate(px, py)
}
