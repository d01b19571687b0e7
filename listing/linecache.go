package listing

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// CacheStats holds row cache statistics.
type CacheStats struct {
	Lookups   uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// Bypassed counts rows that were not cached because their text depends
	// on register values.
	Bypassed uint64
}

// LineCache is a set-associative cache of rendered rows keyed by address.
// Tags and LRU replacement come from an Akita cache directory; an entry only
// hits when the instruction word and width still match, so edits to memory
// never show stale text.
type LineCache struct {
	sets int
	ways int

	directory *akitacache.DirectoryImpl

	// Rows indexed by (setID * ways + wayID)
	lines []Row

	stats CacheStats
}

// NewLineCache creates a row cache with sets*ways entries.
func NewLineCache(sets, ways int) *LineCache {
	return &LineCache{
		sets: sets,
		ways: ways,
		directory: akitacache.NewDirectory(
			sets,
			ways,
			1,
			akitacache.NewLRUVictimFinder(),
		),
		lines: make([]Row, sets*ways),
	}
}

// Capacity returns the number of rows the cache holds.
func (c *LineCache) Capacity() int {
	return c.sets * c.ways
}

// Stats returns cache statistics.
func (c *LineCache) Stats() CacheStats {
	return c.stats
}

// cacheKey is the row index of addr, so consecutive rows of one width fall
// into consecutive sets. Rows of the other width may share a key; Get tells
// them apart by address and size.
func cacheKey(addr uint32, size int) uint64 {
	if size <= 0 {
		size = 1
	}
	return uint64(addr / uint32(size))
}

func (c *LineCache) lineIndex(block *akitacache.Block) int {
	return block.SetID*c.ways + block.WayID
}

// Get returns the cached row for addr if it was rendered from the same word
// and width.
func (c *LineCache) Get(addr, word uint32, size int) (Row, bool) {
	c.stats.Lookups++

	block := c.directory.Lookup(0, cacheKey(addr, size))
	if block != nil && block.IsValid {
		row := c.lines[c.lineIndex(block)]
		if row.Address == addr && row.Word == word && row.Size == size {
			c.stats.Hits++
			c.directory.Visit(block)
			return row, true
		}
	}

	c.stats.Misses++
	return Row{}, false
}

// Put stores row, replacing the least recently used entry of its set. It
// reports the address of the row that was evicted, if any.
func (c *LineCache) Put(row Row) (evictedAddr uint32, evicted bool) {
	key := cacheKey(row.Address, row.Size)

	block := c.directory.Lookup(0, key)
	if block == nil {
		block = c.directory.FindVictim(key)
		if block == nil {
			return 0, false
		}
	}

	// A row of the other width can hold the same key.
	if old := c.lines[c.lineIndex(block)]; block.IsValid && old.Address != row.Address {
		c.stats.Evictions++
		evictedAddr, evicted = old.Address, true
	}

	row.IsPC = false
	c.lines[c.lineIndex(block)] = row
	block.Tag = key
	block.IsValid = true
	c.directory.Visit(block)

	return evictedAddr, evicted
}

// Bypass records a row that was rendered without being cached.
func (c *LineCache) Bypass() {
	c.stats.Bypassed++
}

// Invalidate drops the rows cached for addr in either state.
func (c *LineCache) Invalidate(addr uint32) {
	for _, size := range []int{ARMWidth, ThumbWidth} {
		block := c.directory.Lookup(0, cacheKey(addr, size))
		if block == nil || !block.IsValid {
			continue
		}
		if c.lines[c.lineIndex(block)].Address == addr {
			block.IsValid = false
			c.lines[c.lineIndex(block)] = Row{}
		}
	}
}

// Reset invalidates every row and clears statistics.
func (c *LineCache) Reset() {
	c.directory.Reset()
	for i := range c.lines {
		c.lines[i] = Row{}
	}
	c.stats = CacheStats{}
}
