package listing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/armdbg/listing"
)

var _ = Describe("LineCache", func() {
	var cache *listing.LineCache

	row := func(addr, word uint32) listing.Row {
		return listing.Row{Address: addr, Word: word, Size: 4, Text: "text"}
	}

	BeforeEach(func() {
		// 2 sets, 2 ways
		cache = listing.NewLineCache(2, 2)
	})

	It("should report its capacity", func() {
		Expect(cache.Capacity()).To(Equal(4))
	})

	It("should miss on a cold cache", func() {
		_, ok := cache.Get(0x8000, 0xE12FFF13, 4)
		Expect(ok).To(BeFalse())
		Expect(cache.Stats().Lookups).To(Equal(uint64(1)))
		Expect(cache.Stats().Misses).To(Equal(uint64(1)))
	})

	It("should hit after a put", func() {
		cache.Put(row(0x8000, 0xE12FFF13))

		got, ok := cache.Get(0x8000, 0xE12FFF13, 4)
		Expect(ok).To(BeTrue())
		Expect(got.Text).To(Equal("text"))
		Expect(cache.Stats().Hits).To(Equal(uint64(1)))
	})

	It("should never store the program counter marker", func() {
		r := row(0x8000, 1)
		r.IsPC = true
		cache.Put(r)

		got, ok := cache.Get(0x8000, 1, 4)
		Expect(ok).To(BeTrue())
		Expect(got.IsPC).To(BeFalse())
	})

	It("should miss when the word changed", func() {
		cache.Put(row(0x8000, 1))
		_, ok := cache.Get(0x8000, 2, 4)
		Expect(ok).To(BeFalse())
	})

	It("should miss when the width changed", func() {
		cache.Put(row(0x8000, 1))
		_, ok := cache.Get(0x8000, 1, 2)
		Expect(ok).To(BeFalse())
	})

	It("should replace an entry for the same address in place", func() {
		cache.Put(row(0x8000, 1))
		_, evicted := cache.Put(row(0x8000, 2))
		Expect(evicted).To(BeFalse())

		_, ok := cache.Get(0x8000, 2, 4)
		Expect(ok).To(BeTrue())
	})

	It("should evict the least recently used row of a set", func() {
		// Row indexes 0x2000, 0x2002 and 0x2004 all map to set 0.
		cache.Put(row(0x8000, 1))
		cache.Put(row(0x8008, 2))
		cache.Get(0x8000, 1, 4)

		evictedAddr, evicted := cache.Put(row(0x8010, 3))
		Expect(evicted).To(BeTrue())
		Expect(evictedAddr).To(Equal(uint32(0x8008)))
		Expect(cache.Stats().Evictions).To(Equal(uint64(1)))

		_, ok := cache.Get(0x8000, 1, 4)
		Expect(ok).To(BeTrue())
	})

	It("should keep as many consecutive ARM rows as it has entries", func() {
		for i := uint32(0); i < 4; i++ {
			_, evicted := cache.Put(row(0x8000+4*i, i))
			Expect(evicted).To(BeFalse())
		}

		for i := uint32(0); i < 4; i++ {
			_, ok := cache.Get(0x8000+4*i, i, 4)
			Expect(ok).To(BeTrue(), "row 0x%X", 0x8000+4*i)
		}
		Expect(cache.Stats().Evictions).To(BeZero())
	})

	It("should keep as many consecutive Thumb rows as it has entries", func() {
		for i := uint32(0); i < 4; i++ {
			cache.Put(listing.Row{Address: 0x8000 + 2*i, Word: i, Size: 2})
		}

		for i := uint32(0); i < 4; i++ {
			_, ok := cache.Get(0x8000+2*i, i, 2)
			Expect(ok).To(BeTrue(), "row 0x%X", 0x8000+2*i)
		}
	})

	It("should report a row of the other width sharing a key as evicted", func() {
		// ARM row 0x8000 and Thumb row 0x4000 both have row index 0x2000.
		cache.Put(row(0x8000, 1))
		evictedAddr, evicted := cache.Put(listing.Row{Address: 0x4000, Word: 2, Size: 2})
		Expect(evicted).To(BeTrue())
		Expect(evictedAddr).To(Equal(uint32(0x8000)))

		_, ok := cache.Get(0x8000, 1, 4)
		Expect(ok).To(BeFalse())
	})

	It("should invalidate a row", func() {
		cache.Put(row(0x8000, 1))
		cache.Invalidate(0x8000)

		_, ok := cache.Get(0x8000, 1, 4)
		Expect(ok).To(BeFalse())
	})

	It("should count bypassed rows", func() {
		cache.Bypass()
		Expect(cache.Stats().Bypassed).To(Equal(uint64(1)))
	})

	It("should clear everything on reset", func() {
		cache.Put(row(0x8000, 1))
		cache.Reset()

		Expect(cache.Stats()).To(Equal(listing.CacheStats{}))
		_, ok := cache.Get(0x8000, 1, 4)
		Expect(ok).To(BeFalse())
	})
})
