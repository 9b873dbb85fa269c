package anthro

import "sync"

// DefaultCacheCapacity bounds the read-through loader. Only a handful of
// baseline datasets ever exist in one process.
const DefaultCacheCapacity = 4

// CachedLoader memoizes dataset loads keyed by database path, with
// least-recently-used eviction. It is the injectable replacement for a
// process-global file cache: hand a CachedLoader to whatever builds crowd
// statistics stores, and repeated loads of the same dataset are free.
type CachedLoader struct {
	mu       sync.Mutex
	capacity int
	tables   map[string]Table
	order    []string // paths from least to most recently used
}

// NewCachedLoader returns a loader caching up to capacity tables. A
// non-positive capacity falls back to DefaultCacheCapacity.
func NewCachedLoader(capacity int) *CachedLoader {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &CachedLoader{
		capacity: capacity,
		tables:   make(map[string]Table),
	}
}

// Load returns the dataset at path, reading it from sqlite on the first call
// and from cache afterwards.
func (c *CachedLoader) Load(path string) (Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if table, ok := c.tables[path]; ok {
		c.touch(path)
		return table, nil
	}

	store, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	table, err := store.Load()
	if err != nil {
		return nil, err
	}

	if len(c.tables) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.tables, oldest)
	}
	c.tables[path] = table
	c.order = append(c.order, path)

	return table, nil
}

// touch moves path to the most-recently-used end of the order.
func (c *CachedLoader) touch(path string) {
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, path)
}

// PathSource adapts a CachedLoader plus a path into a Source.
type PathSource struct {
	Loader *CachedLoader
	Path   string
}

// Load implements Source.
func (p PathSource) Load() (Table, error) {
	return p.Loader.Load(p.Path)
}
