package postal

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

var _ orchestrator.PostalLookup = (*Lookup)(nil)

// Lookup adapts a Client to the orchestrator autofill hook. Each lookup runs
// in its own goroutine unless the lookup is synchronous; failures and misses
// are reported as a zero Address.
type Lookup struct {
	client      *Client
	timeout     time.Duration
	synchronous bool
}

type LookupOption func(*Lookup)

// WithSynchronous resolves inside LookupPostalCode. Intended for terminals
// and tests.
func WithSynchronous() LookupOption {
	return func(l *Lookup) {
		l.synchronous = true
	}
}

// WithLookupTimeout bounds each lookup. Defaults to the client timeout.
func WithLookupTimeout(timeout time.Duration) LookupOption {
	return func(l *Lookup) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// NewLookup wraps client. A nil client uses NewClient().
func NewLookup(client *Client, options ...LookupOption) *Lookup {
	if client == nil {
		client = NewClient()
	}
	l := &Lookup{client: client, timeout: client.opts.Timeout}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LookupPostalCode resolves code and hands the result to onResolved.
func (l *Lookup) LookupPostalCode(code string, onResolved func(model.Address)) {
	if onResolved == nil {
		return
	}
	if l.synchronous {
		onResolved(l.resolve(code))
		return
	}
	go func() {
		onResolved(l.resolve(code))
	}()
}

func (l *Lookup) resolve(code string) model.Address {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	address, err := l.client.Resolve(ctx, code)
	logger := l.client.opts.Logger
	switch {
	case err == nil:
		logger.Debug("postal: resolved", "code", code, "region", address.Region, "locality", address.Locality)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidCode):
		logger.Debug("postal: no address", "code", code, "error", err)
	default:
		logger.Warn("postal: lookup failed", "code", code, "error", err)
	}
	return address
}
