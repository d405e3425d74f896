package geocache

import "errors"

var (
	// ErrNotFound is returned on a cache miss when remote lookups
	// are not enabled.
	ErrNotFound = errors.New("ip address is not cached")

	// ErrAPIDisabled is returned if a remote lookup was necessary
	// but the client is not allowed to do any network activity.
	ErrAPIDisabled = errors.New("remote lookups are disabled")

	// ErrInvalidAddress is returned for lookup keys which do not
	// look like dotted-quad IPv4 addresses.
	ErrInvalidAddress = errors.New("not a dotted-quad ipv4 address")

	// ErrCorruptEntry is returned if the mapping holds a key with no
	// location attached to it.
	ErrCorruptEntry = errors.New("cached entry has no location")

	// ErrTransport is returned when a request did not make it to the
	// provider or back.
	ErrTransport = errors.New("cannot reach geolocation provider")

	// ErrResponseParse is returned when the provider answered with a
	// body which is not a location record.
	ErrResponseParse = errors.New("cannot parse provider response")

	// ErrMalformedStore is returned if the cache file exists but is
	// not valid JSON in any accepted shape.
	ErrMalformedStore = errors.New("cache file is malformed")

	// ErrCredentialMissing is recorded at construction time when
	// remote lookups were requested without an API key.
	ErrCredentialMissing = errors.New("api key is not set")
)

// kindError attaches one of the sentinel errors above to an underlying
// cause so that callers can classify a failure with errors.Is and still
// unwrap the original error.
type kindError struct {
	kind error
	err  error
}

func (k *kindError) Error() string {
	if k.err == nil {
		return k.kind.Error()
	}

	return k.kind.Error() + ": " + k.err.Error()
}

func (k *kindError) Is(target error) bool {
	return errors.Is(k.kind, target)
}

func (k *kindError) Unwrap() error {
	return k.err
}

func wrapError(kind, err error) error {
	if err == nil {
		return kind
	}

	return &kindError{kind: kind, err: err}
}
