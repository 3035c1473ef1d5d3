package fetch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/midbel/plotkit"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultLimit = 4

var (
	ErrScheme = errors.New("unsupported scheme")
	ErrStatus = errors.New("request does not end with success result code")
)

// Buffer loads records from a list of locations. Every location is fetched
// concurrently and the records are delivered at once, in the order of the
// locations.
type Buffer struct {
	Client  *http.Client
	Logger  *zap.Logger
	Metrics *Metrics

	// Limit bounds the number of locations read at the same time.
	Limit int
	// SortBy, when set, sorts the records once every location is read.
	SortBy plotkit.Accessor
}

func (b *Buffer) Fetch(ctx context.Context, locations []string) ([]plotkit.Record, error) {
	var (
		logger  = b.logger()
		results = make([][]plotkit.Record, len(locations))
		now     = time.Now()
	)
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(b.limit())
	for i, loc := range locations {
		grp.Go(func() error {
			list, err := b.fetch(ctx, loc)
			if err != nil {
				logger.Warn("fetch failed", zap.String("location", loc), zap.Error(err))
				return err
			}
			logger.Debug("fetch done", zap.String("location", loc), zap.Int("records", len(list)))
			results[i] = list
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	var data []plotkit.Record
	for _, list := range results {
		data = append(data, list...)
	}
	if b.SortBy != nil {
		sorted, err := plotkit.SortBy(data, b.SortBy)
		if err != nil {
			return nil, err
		}
		data = sorted
	}
	logger.Info("records loaded",
		zap.Int("locations", len(locations)),
		zap.Int("records", len(data)),
		zap.Duration("elapsed", time.Since(now)),
	)
	return data, nil
}

func (b *Buffer) fetch(ctx context.Context, location string) ([]plotkit.Record, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, errors.Wrap(err, location)
	}
	list, err := b.read(ctx, u)
	b.Metrics.observe(u.Scheme, len(list), err)
	if err != nil {
		return nil, errors.Wrap(err, location)
	}
	return list, nil
}

func (b *Buffer) read(ctx context.Context, u *url.URL) ([]plotkit.Record, error) {
	r, err := b.open(ctx, u)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r)
}

func (b *Buffer) open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		res, err := b.client().Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, errors.Wrapf(ErrStatus, "%d", res.StatusCode)
		}
		return res.Body, nil
	case "", "file":
		return os.Open(u.Path)
	default:
		return nil, errors.Wrap(ErrScheme, u.Scheme)
	}
}

func (b *Buffer) client() *http.Client {
	if b.Client == nil {
		return http.DefaultClient
	}
	return b.Client
}

func (b *Buffer) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Buffer) limit() int {
	if b.Limit <= 0 {
		return DefaultLimit
	}
	return b.Limit
}

// Decode reads records given as a json array, a single json object or a
// stream of json objects (one per line).
func Decode(r io.Reader) ([]plotkit.Record, error) {
	rs := bufio.NewReader(r)
	if err := skipSpaces(rs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	c, err := rs.Peek(1)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(rs)
	if c[0] == '[' {
		var list []plotkit.Record
		if err := dec.Decode(&list); err != nil {
			return nil, errors.Wrap(err, "decode json array")
		}
		for i := range list {
			if list[i] == nil {
				return nil, errors.Errorf("decode json array: element #%d is not an object", i)
			}
		}
		return list, nil
	}
	var list []plotkit.Record
	for {
		var rec plotkit.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decode json object #%d", len(list))
		}
		if rec == nil {
			return nil, errors.Errorf("decode json object #%d: null given", len(list))
		}
		list = append(list, rec)
	}
	return list, nil
}

func skipSpaces(rs *bufio.Reader) error {
	for {
		c, err := rs.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return rs.UnreadByte()
		}
	}
}
