package postal

import "net/http"

// Component bundles one Client with its handler and lookup adapter so they
// share configuration and cache.
type Component struct {
	client *Client
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{client: NewClient(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return c.client.opts
}

// Client returns the shared client.
func (c *Component) Client() *Client {
	if c == nil {
		return NewClient()
	}
	return c.client
}

// Lookup returns an orchestrator autofill hook backed by the shared client.
func (c *Component) Lookup(options ...LookupOption) *Lookup {
	return NewLookup(c.Client(), options...)
}

// Handler returns the JSON lookup handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return handlerForClient(c.client)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	if mux == nil {
		return "", errMissingMux
	}
	pattern := mountPath(basePath, c.client.opts.RoutePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}
