package postal

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultBaseURL   = "https://yubinbango.github.io/yubinbango-data/data"
	DefaultRoutePath = "/api/postal-codes"
	DefaultCodeParam = "code"
	DefaultTimeout   = 5 * time.Second
	DefaultCacheTTL  = 24 * time.Hour
)

type GuardFunc func(r *http.Request) error

type Options struct {
	BaseURL    string
	RoutePath  string
	CodeParam  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration
	Guard      GuardFunc
	Logger     *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BaseURL:   DefaultBaseURL,
		RoutePath: DefaultRoutePath,
		CodeParam: DefaultCodeParam,
		Timeout:   DefaultTimeout,
		CacheTTL:  DefaultCacheTTL,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.CodeParam == "" {
		opts.CodeParam = DefaultCodeParam
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL < 0 {
		opts.CacheTTL = 0
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

func WithBaseURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BaseURL = url
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithCodeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CodeParam = name
	}
}

func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = timeout
	}
}

func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HTTPClient = client
	}
}

// WithCache replaces the per-prefix cache. Use RedisCache to share data
// between processes.
func WithCache(cache Cache) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Cache = cache
	}
}

// WithCacheTTL sets how long prefix files stay cached. Zero keeps them
// forever.
func WithCacheTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CacheTTL = ttl
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
