package postal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type addressResponse struct {
	Data model.Address `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-built Options value.
func HandlerWithOptions(opts Options) http.Handler {
	return handlerForClient(NewClientWithOptions(opts))
}

func handlerForClient(client *Client) http.Handler {
	opts := client.opts
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		address, err := client.Resolve(r.Context(), r.URL.Query().Get(opts.CodeParam))
		switch {
		case err == nil:
			writeJSON(w, r, http.StatusOK, addressResponse{Data: address})
		case errors.Is(err, ErrInvalidCode):
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotFound):
			writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		default:
			opts.Logger.Warn("postal: handler lookup failed", "error", err)
			writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: http.StatusText(http.StatusBadGateway)})
		}
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
