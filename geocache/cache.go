package geocache

import (
	"context"
	"iter"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"
)

const (
	// EnvAPIKey is the environment variable the cache reads the
	// provider credential from when Options.APIKey is empty.
	EnvAPIKey = "IP2LOCATION_API_KEY"

	// DefaultWorkerPoolSize bounds how many remote lookups may be in
	// flight at once. Small batches still overlap fully.
	DefaultWorkerPoolSize = 1024

	workerPoolExpireTime = time.Minute
)

// Options configures a Cache. Zero values get sane defaults: OS
// filesystem, no-op logger, default pool size, a plain HTTP client and
// the default provider endpoint.
type Options struct {
	// Path is where the mapping is hydrated from and flushed to.
	Path string

	// EnableAPI switches the cache from cache-backed mode (misses
	// are terminal) to API-augmented mode (misses fall through to
	// the remote provider).
	EnableAPI bool

	// APIKey is the provider credential. Empty means "read EnvAPIKey
	// from the environment".
	APIKey string

	// Endpoint overrides the provider base URL.
	Endpoint string

	Fs             afero.Fs
	HTTPClient     HTTPClient
	Resolver       Resolver
	Logger         Logger
	WorkerPoolSize int
}

// Result is the outcome of one position of a batch lookup. Exactly one
// of Location/Err is meaningful.
type Result struct {
	IP       string
	Location Location
	Err      error
}

// Cache owns the authoritative IP to Location mapping. It is hydrated
// once at construction, mutated by lookups and flushed by Save; disk
// and memory are reconciled only at those two points.
type Cache struct {
	path      string
	enableAPI bool
	store     Store
	resolver  Resolver
	logger    Logger

	mutex sync.RWMutex
	data  map[string]*Location

	workerPool *ants.PoolWithFunc
	initErr    error
}

type lookupTask struct {
	ctx    context.Context
	ip     string
	result *Result
	wg     *sync.WaitGroup
}

// New builds a cache and hydrates it from Options.Path. A missing file
// is fine; a file which exists but cannot be parsed fails construction
// with ErrMalformedStore.
//
// A missing credential in API-augmented mode does NOT fail
// construction: it is recorded and exposed through Err, so a front-end
// can render its own error surface. Check Err before trusting the
// cache.
func New(opts Options) (*Cache, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	if opts.Logger == nil {
		opts.Logger = NopLogger{}
	}

	store := NewStore(opts.Fs, opts.Logger)

	data, err := store.Load(opts.Path)
	if err != nil {
		return nil, err
	}

	rv := &Cache{
		path:      opts.Path,
		enableAPI: opts.EnableAPI,
		store:     store,
		resolver:  opts.Resolver,
		logger:    opts.Logger,
		data:      data,
	}

	if opts.EnableAPI && rv.resolver == nil {
		apiKey := opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv(EnvAPIKey)
		}

		if apiKey == "" {
			rv.initErr = ErrCredentialMissing
		} else {
			httpClient := opts.HTTPClient
			if httpClient == nil {
				httpClient = NewHTTPClient(&http.Client{}, "peermap")
			}

			rv.resolver = NewClient(httpClient, apiKey, opts.Endpoint)
		}
	}

	poolSize := opts.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = DefaultWorkerPoolSize
	}

	rv.workerPool, _ = ants.NewPoolWithFunc(poolSize, rv.runLookup,
		ants.WithExpiryDuration(workerPoolExpireTime))

	return rv, nil
}

// HasErr tells if construction recorded an initialization fault.
func (c *Cache) HasErr() bool {
	return c.initErr != nil
}

// Err returns the initialization fault, if any. Using the cache after
// a non-nil Err is undefined by contract.
func (c *Cache) Err() error {
	return c.initErr
}

// Lookup resolves a single IP address. A cache hit answers from the
// mapping; a miss either falls through to the remote provider
// (API-augmented mode, merging the result as a side effect) or is
// terminal with ErrNotFound (cache-backed mode). The key is taken
// as-is: callers normalize whitespace themselves.
func (c *Cache) Lookup(ctx context.Context, ip string) (Location, error) {
	c.mutex.RLock()
	loc, ok := c.data[ip]
	c.mutex.RUnlock()

	if ok {
		if loc == nil {
			return Location{}, wrapError(ErrCorruptEntry, nil)
		}

		return *loc, nil
	}

	if !c.enableAPI {
		return Location{}, wrapError(ErrNotFound, nil)
	}

	if c.resolver == nil {
		return Location{}, wrapError(ErrAPIDisabled, nil)
	}

	fetched, err := c.resolver.Lookup(ctx, ip)
	if err != nil {
		return Location{}, err
	}

	c.mutex.Lock()
	c.data[ip] = &fetched
	c.mutex.Unlock()

	return fetched, nil
}

// LookupAll resolves a batch concurrently through the worker pool and
// returns one Result per input, positionally aligned with it no matter
// in which order the lookups settle. A failed position never aborts
// the rest of the batch.
func (c *Cache) LookupAll(ctx context.Context, ips []string) []Result {
	results := make([]Result, len(ips))
	wg := &sync.WaitGroup{}

	for i, ip := range ips {
		results[i].IP = ip

		wg.Add(1)

		task := &lookupTask{
			ctx:    ctx,
			ip:     ip,
			result: &results[i],
			wg:     wg,
		}

		if err := c.workerPool.Invoke(task); err != nil {
			results[i].Err = err

			wg.Done()
		}
	}

	wg.Wait()

	return results
}

// MergeAndLookup computes which of the given addresses are not cached
// yet and, in API-augmented mode, looks exactly those up for their
// merge side effects. In cache-backed mode it does nothing beyond the
// subset computation. The returned slice is the full sorted key set of
// the mapping after the operation, not just the new keys.
func (c *Cache) MergeAndLookup(ctx context.Context, ips []string) []string {
	missing := []string{}

	c.mutex.RLock()

	for _, ip := range ips {
		if _, ok := c.data[ip]; !ok {
			missing = append(missing, ip)
		}
	}

	c.mutex.RUnlock()

	if c.enableAPI && len(missing) > 0 {
		c.LookupAll(ctx, missing)
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.data))

	for key := range c.data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

// Keys yields the cached IP addresses. The sequence is restartable and
// iterates a snapshot taken when iteration starts.
func (c *Cache) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, key := range c.snapshotKeys() {
			if !yield(key) {
				return
			}
		}
	}
}

// Entries yields (ip, location) pairs, same semantics as Keys. Keys
// with no location attached are skipped: Lookup reports those as
// ErrCorruptEntry instead.
func (c *Cache) Entries() iter.Seq2[string, Location] {
	return func(yield func(string, Location) bool) {
		for _, key := range c.snapshotKeys() {
			c.mutex.RLock()
			loc := c.data[key]
			c.mutex.RUnlock()

			if loc == nil {
				continue
			}

			if !yield(key, *loc) {
				return
			}
		}
	}
}

// Save flushes the mapping to the configured path. The failure is both
// logged and returned; callers are expected to carry on with an
// unflushed mapping rather than treat this as fatal.
func (c *Cache) Save() error {
	c.mutex.RLock()
	snapshot := make(map[string]*Location, len(c.data))

	for key, loc := range c.data {
		snapshot[key] = loc
	}
	c.mutex.RUnlock()

	if err := c.store.Save(c.path, snapshot); err != nil {
		c.logger.SaveError(c.path, err)

		return err
	}

	return nil
}

// Close releases the worker pool. The mapping stays usable for
// non-batch reads afterwards.
func (c *Cache) Close() {
	c.workerPool.Release()
}

func (c *Cache) runLookup(args interface{}) {
	task := args.(*lookupTask)
	defer task.wg.Done()

	loc, err := c.Lookup(task.ctx, task.ip)
	if err != nil {
		c.logger.LookupError(task.ip, err)

		task.result.Err = err

		return
	}

	task.result.Location = loc
}

func (c *Cache) snapshotKeys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.data))

	for key := range c.data {
		keys = append(keys, key)
	}

	return keys
}
