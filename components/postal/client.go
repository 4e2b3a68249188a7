package postal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

const maxDataFileSize = 4 << 20

// Client resolves postal codes against yubinbango-format data files.
type Client struct {
	opts Options
}

// NewClient constructs a client with default options plus any overrides.
func NewClient(fns ...OptionFn) *Client {
	return NewClientWithOptions(NewOptions(fns...))
}

// NewClientWithOptions constructs a client from a pre-built Options value.
func NewClientWithOptions(opts Options) *Client {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &Client{opts: opts}
}

// Resolve returns the address for code. Codes are accepted with or without
// a hyphen and in full-width digits. ErrInvalidCode and ErrNotFound report
// input problems; other errors come from fetching or decoding data.
func (c *Client) Resolve(ctx context.Context, code string) (model.Address, error) {
	canonical, err := CanonicalCode(code)
	if err != nil {
		return model.Address{}, err
	}

	data, err := c.prefix(ctx, canonical[:3])
	if err != nil {
		return model.Address{}, err
	}
	address, ok := data.address(canonical)
	if !ok {
		return model.Address{}, fmt.Errorf("%w: %s", ErrNotFound, canonical)
	}
	return address, nil
}

func (c *Client) prefix(ctx context.Context, prefix string) (prefixData, error) {
	logger := c.opts.Logger.With("prefix", prefix)

	payload, ok, err := c.opts.Cache.Get(ctx, prefix)
	if err != nil {
		logger.Warn("postal: cache read failed", "error", err)
	}
	if ok {
		data, err := parsePrefixData(payload)
		if err == nil {
			return data, nil
		}
		logger.Warn("postal: discarding cached payload", "error", err)
	}

	payload, err = c.fetch(ctx, prefix)
	if err != nil {
		return nil, err
	}
	data, err := parsePrefixData(payload)
	if err != nil {
		return nil, err
	}
	if err := c.opts.Cache.Set(ctx, prefix, payload, c.opts.CacheTTL); err != nil {
		logger.Warn("postal: cache write failed", "error", err)
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, prefix string) ([]byte, error) {
	url := strings.TrimRight(c.opts.BaseURL, "/") + "/" + prefix + ".js"
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("postal: build request: %w", err)
	}
	c.opts.Logger.Debug("postal: fetching data file", "url", url)

	res, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postal: fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: no data for prefix %s", ErrNotFound, prefix)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, fmt.Errorf("postal: fetch %s: unexpected status %d", url, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxDataFileSize))
	if err != nil {
		return nil, fmt.Errorf("postal: read %s: %w", url, err)
	}
	return unwrapJSONP(body)
}
