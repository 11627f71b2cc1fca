package loader_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m88sim/loader"
)

var _ = Describe("Load", func() {
	It("should parse whitespace-separated hex words", func() {
		prog, err := loader.Load(strings.NewReader("14200010 00000000\ndeadbeef"))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint32{0x14200010, 0, 0xdeadbeef}))
	})

	It("should accept 0x and 0X prefixes", func() {
		prog, err := loader.Load(strings.NewReader("0x10 0X20 30"))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint32{0x10, 0x20, 0x30}))
	})

	It("should accept short words without leading zeros", func() {
		prog, err := loader.Load(strings.NewReader("5"))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint32{5}))
	})

	It("should return an empty program for empty input", func() {
		prog, err := loader.Load(strings.NewReader(""))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(BeEmpty())
	})

	It("should name the offending token on a parse error", func() {
		_, err := loader.Load(strings.NewReader("14200010 xyzzy"))

		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring(`"xyzzy"`))
	})

	It("should reject a word wider than 32 bits", func() {
		_, err := loader.Load(strings.NewReader("100000000"))

		Expect(err).NotTo(BeNil())
	})

	It("should accept exactly the maximum number of words", func() {
		var sb strings.Builder
		for i := 0; i < loader.MaxWords; i++ {
			fmt.Fprintf(&sb, "%08x\n", i)
		}

		prog, err := loader.Load(strings.NewReader(sb.String()))

		Expect(err).To(BeNil())
		Expect(prog.Words).To(HaveLen(loader.MaxWords))
	})

	It("should reject one word past the maximum", func() {
		var sb strings.Builder
		for i := 0; i <= loader.MaxWords; i++ {
			fmt.Fprintf(&sb, "%08x\n", i)
		}

		_, err := loader.Load(strings.NewReader(sb.String()))

		Expect(errors.Is(err, loader.ErrTooManyWords)).To(BeTrue())
	})
})

var _ = Describe("LoadFile", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "loader_test")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("should load an image from a file", func() {
		path := filepath.Join(tmpDir, "image.hex")
		err := os.WriteFile(path, []byte("14200010 00000000"), 0644)
		Expect(err).To(BeNil())

		prog, err := loader.LoadFile(path)

		Expect(err).To(BeNil())
		Expect(prog.Words).To(Equal([]uint32{0x14200010, 0}))
	})

	It("should report a missing file", func() {
		_, err := loader.LoadFile(filepath.Join(tmpDir, "absent.hex"))

		Expect(err).NotTo(BeNil())
	})
})
