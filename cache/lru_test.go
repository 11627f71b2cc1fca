package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m88sim/cache"
)

var _ = Describe("LRUDirectory", func() {
	var d *cache.LRUDirectory

	BeforeEach(func() {
		config := cache.DefaultConfig()
		config.Replacement = cache.ReplacementLRU

		var err error
		d, err = cache.NewLRUDirectory(config)
		Expect(err).To(BeNil())
		d.Reset()
	})

	It("should miss on the first access and hit on the second", func() {
		d.Access(0x40, false)
		d.Access(0x40, false)

		stats := d.Stats()
		Expect(stats.Reads).To(Equal(uint64(2)))
		Expect(stats.Misses).To(Equal(uint64(1)))
		Expect(stats.Hits).To(Equal(uint64(1)))
	})

	It("should hit anywhere within the same block", func() {
		d.Access(0x40, false)
		d.Access(0x44, true)

		Expect(d.Stats().Hits).To(Equal(uint64(1)))
	})

	It("should evict the least recently used way", func() {
		d.Access(0x0, false)
		d.Access(setStride, false)
		d.Access(0x0, false)         // tag 0 is now most recently used
		d.Access(2*setStride, false) // evicts tag 1

		d.Access(0x0, false)
		Expect(d.Stats().Hits).To(Equal(uint64(2)))

		d.Access(setStride, false)
		Expect(d.Stats().Misses).To(Equal(uint64(4)))
	})

	It("should write back a dirty victim", func() {
		d.Access(0x0, true)
		d.Access(setStride, false)
		d.Access(2*setStride, false) // evicts the dirty tag 0 line

		Expect(d.Stats().WriteBacks).To(Equal(uint64(1)))
	})

	It("should not write back a clean victim", func() {
		d.Access(0x0, false)
		d.Access(setStride, false)
		d.Access(2*setStride, false)

		Expect(d.Stats().WriteBacks).To(Equal(uint64(0)))
	})

	It("should dirty a line on a write hit", func() {
		d.Access(0x0, false)
		d.Access(0x4, true)
		d.Access(setStride, false)
		d.Access(2*setStride, false)

		Expect(d.Stats().WriteBacks).To(Equal(uint64(1)))
	})

	Describe("Reset", func() {
		It("should invalidate every block and zero the counters", func() {
			d.Access(0x0, true)

			d.Reset()

			Expect(d.Stats()).To(Equal(cache.Stats{}))
			d.Access(0x0, false)
			Expect(d.Stats().Misses).To(Equal(uint64(1)))
		})
	})
})
