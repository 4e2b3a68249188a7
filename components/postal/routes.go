package postal

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

var errMissingMux = errors.New("postal: missing mux")

// Mux registers the lookup endpoint. *http.ServeMux and most routers fit.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath reports where RegisterRoutes would serve postal lookups.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes serves postal-code lookups at MountPath(basePath, fns...).
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions is RegisterRoutes for an existing Options value;
// zero fields are defaulted again.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errMissingMux
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

// mountPath joins the base and route into one rooted, clean pattern.
func mountPath(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
