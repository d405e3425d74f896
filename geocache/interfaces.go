package geocache

import (
	"context"
	"net/http"
)

// HTTPClient is an interface for the HTTP client which is used to talk
// to the remote provider. http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver performs a single-address remote lookup. Client is the real
// implementation; tests substitute their own.
type Resolver interface {
	Lookup(ctx context.Context, ip string) (Location, error)
}

// Logger is a minimal interface the cache needs for its diagnostics.
// Pass NopLogger if you do not care.
type Logger interface {
	LookupError(ip string, err error)
	LoadWarning(key string, msg string)
	SaveError(path string, err error)
}

// NopLogger is a Logger which does nothing.
type NopLogger struct{}

func (NopLogger) LookupError(ip string, err error) {}

func (NopLogger) LoadWarning(key string, msg string) {}

func (NopLogger) SaveError(path string, err error) {}
