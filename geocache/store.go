package geocache

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Store reads and writes the on-disk cache file. Two legacy read
// shapes are accepted:
//
//	[{"1.2.3.4": {...}}, {"5.6.7.8": {...}}]
//	{"1.2.3.4": {...}, "5.6.7.8": {...}}
//
// Writing always emits the second, flat-object shape. There is no
// version field in the file so both read shapes stay supported.
type Store struct {
	fs     afero.Fs
	logger Logger
}

// Load reads the mapping from the given path. A missing file is an
// empty mapping, not an error. Keys are trimmed of whitespace; entries
// with a null location are skipped with a diagnostic. Duplicate keys
// across array elements resolve last-write-wins in element order.
func (s Store) Load(path string) (map[string]*Location, error) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Location{}, nil
		}

		return nil, wrapError(ErrMalformedStore, err)
	}

	data := map[string]*Location{}
	trimmed := bytes.TrimSpace(content)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		entries := []map[string]*Location{}

		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, wrapError(ErrMalformedStore, err)
		}

		for _, entry := range entries {
			s.merge(data, entry)
		}

		return data, nil
	}

	flat := map[string]*Location{}

	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, wrapError(ErrMalformedStore, err)
	}

	s.merge(data, flat)

	return data, nil
}

// Save serializes the mapping as an indented flat object, overwriting
// whatever is at the path.
func (s Store) Save(path string, data map[string]*Location) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	content = append(content, '\n')

	return afero.WriteFile(s.fs, path, content, 0644)
}

func (s Store) merge(dst map[string]*Location, src map[string]*Location) {
	for key, loc := range src {
		key = strings.TrimSpace(key)

		if loc == nil {
			s.logger.LoadWarning(key, "entry has no location, skipped")

			continue
		}

		dst[key] = loc
	}
}

// NewStore builds a store on top of the given filesystem. A nil logger
// means no diagnostics.
func NewStore(fs afero.Fs, logger Logger) Store {
	if logger == nil {
		logger = NopLogger{}
	}

	return Store{
		fs:     fs,
		logger: logger,
	}
}
