package declare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

// SourceKind tells the Loader how to fetch a document.
type SourceKind int

const (
	SourceKindFile SourceKind = iota
	SourceKindFS
	SourceKindURL
)

// Source identifies an OpenAPI or declaration document.
type Source interface {
	Location() string
	Kind() SourceKind
}

type source struct {
	location string
	kind     SourceKind
}

func (s source) Location() string { return s.location }
func (s source) Kind() SourceKind { return s.kind }

// SourceFromFile points at an on-disk document.
func SourceFromFile(path string) Source {
	return source{location: filepath.Clean(path), kind: SourceKindFile}
}

// SourceFromFS points at a document inside the Loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{location: name, kind: SourceKindFS}
}

// SourceFromURL points at an HTTP(S) document.
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("declare: invalid URL %q", raw)
	}
	return source{location: raw, kind: SourceKindURL}, nil
}

// ParseSource maps a CLI-style argument onto a file or URL source.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("declare: empty source")
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return SourceFromURL(raw)
	}
	return SourceFromFile(raw), nil
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem resolves SourceKindFS documents against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
		opts.AllowHTTP = client != nil
	}
}

// WithHTTPFallback enables URL sources with a default client.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// Loader fetches documents from files, an fs.FS or HTTP.
type Loader struct {
	opts LoaderOptions
}

// NewLoader constructs a Loader. HTTP is disabled unless an option enables
// it.
func NewLoader(options ...LoaderOption) *Loader {
	var opts LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if opts.AllowHTTP && opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.RequestTimeout}
	}
	return &Loader{opts: opts}
}

const maxDocumentSize = 8 << 20

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("declare: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("declare: read %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindFS:
		if l.opts.FileSystem == nil {
			return nil, errors.New("declare: filesystem is not configured")
		}
		data, err := fs.ReadFile(l.opts.FileSystem, src.Location())
		if err != nil {
			return nil, fmt.Errorf("declare: read %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindURL:
		if !l.opts.AllowHTTP {
			return nil, errors.New("declare: http support disabled")
		}
		return l.fetch(ctx, src.Location())
	default:
		return nil, errors.New("declare: unsupported source kind")
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("declare: build request: %w", err)
	}
	res, err := l.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("declare: fetch %s: %w", location, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("declare: fetch %s: unexpected status %d", location, res.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(res.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("declare: read %s: %w", location, err)
	}
	return data, nil
}

// LoadOpenAPI loads src and builds the declaration for operationID.
func (l *Loader) LoadOpenAPI(ctx context.Context, src Source, operationID string) (model.Form, error) {
	data, err := l.Load(ctx, src)
	if err != nil {
		return model.Form{}, err
	}
	return FromOpenAPI(ctx, data, operationID)
}
