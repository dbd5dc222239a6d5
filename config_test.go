package hashrange_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bsm/hashrange"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("Config", func() {
	var subject *hashrange.Config
	var dir string

	writeConfig := func(data string) string {
		path := filepath.Join(dir, "config.yml")
		Expect(ioutil.WriteFile(path, []byte(data), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "hashrange-config")
		Expect(err).NotTo(HaveOccurred())

		subject = hashrange.NewDefaultConfig()
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should have valid defaults", func() {
		Expect(subject.Validate()).To(Succeed())
		Expect(subject.Options()).To(Equal(&hashrange.Options{
			Backend:     hashrange.GoLevelDB,
			Compression: hashrange.SnappyCompression,
		}))
	})

	It("should load from file", func() {
		path := writeConfig(`
path: /tmp/hashrange
backend: memory
createIfMissing: false
compression: none
writeBufferSize: 1048576
noSync: true
logLevel: debug
`)
		Expect(subject.LoadFromFile(path)).To(Succeed())
		Expect(subject.Validate()).To(Succeed())
		Expect(subject.Path).To(Equal("/tmp/hashrange"))
		Expect(subject.LogLevel).To(Equal("debug"))
		Expect(subject.Options()).To(Equal(&hashrange.Options{
			Backend:         hashrange.Memory,
			ErrorIfMissing:  true,
			Compression:     hashrange.NoCompression,
			WriteBufferSize: 1 << 20,
			NoSync:          true,
		}))
	})

	It("should keep defaults for unset values", func() {
		Expect(subject.LoadFromFile(writeConfig("backend: memory\n"))).To(Succeed())
		Expect(subject.Backend).To(Equal("memory"))
		Expect(subject.Path).To(Equal("/var/lib/hashrange"))
		Expect(subject.Compression).To(Equal("snappy"))
		Expect(subject.Options().ErrorIfMissing).To(BeFalse())
	})

	It("should leave config untouched on errors", func() {
		Expect(subject.LoadFromFile(filepath.Join(dir, "missing.yml"))).NotTo(Succeed())
		Expect(subject.LoadFromFile(writeConfig("backend: [oops"))).NotTo(Succeed())
		Expect(subject.LoadFromFile(writeConfig("unknownField: 1\n"))).NotTo(Succeed())
		Expect(subject).To(Equal(hashrange.NewDefaultConfig()))
	})

	It("should validate", func() {
		subject.Backend = "bolt"
		err := subject.Validate()
		Expect(errors.Is(err, hashrange.ErrUnknownBackend)).To(BeTrue())

		subject = hashrange.NewDefaultConfig()
		subject.Path = ""
		Expect(subject.Validate()).To(MatchError(ContainSubstring("invalid path")))
		subject.Backend = "memory"
		Expect(subject.Validate()).To(Succeed())

		subject = hashrange.NewDefaultConfig()
		subject.Compression = "zstd"
		Expect(subject.Validate()).To(MatchError(ContainSubstring("invalid compression")))

		subject = hashrange.NewDefaultConfig()
		subject.WriteBufferSize = -1
		Expect(subject.Validate()).To(HaveOccurred())

		subject = hashrange.NewDefaultConfig()
		subject.LogLevel = "loud"
		Expect(subject.Validate()).To(MatchError(ContainSubstring("invalid log level")))
	})

	It("should open tables from config", func() {
		subject.Path = filepath.Join(dir, "db")
		Expect(subject.Validate()).To(Succeed())

		opts := subject.Options()
		opts.Logger = quietLogger
		tbl, err := hashrange.Open[string, string, string](subject.Path, hashrange.String{}, hashrange.String{}, hashrange.String{}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.PutDefault("a", "x")).To(Succeed())
		Expect(tbl.Close()).To(Succeed())
	})
})
