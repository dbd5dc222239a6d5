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

type renamedComparator struct{ hashrange.Comparator }

func (renamedComparator) Name() string { return "test.RenamedComparator" }

var _ = Describe("Store", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "hashrange-store")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	for _, backend := range []hashrange.Backend{hashrange.Memory, hashrange.GoLevelDB} {
		backend := backend

		Describe(string(backend)+" Cursor", func() {
			var store hashrange.Store

			BeforeEach(func() {
				var err error
				store, err = hashrange.OpenStore(filepath.Join(dir, "db"), &hashrange.Options{Backend: backend, Logger: quietLogger})
				Expect(err).NotTo(HaveOccurred())

				for _, k := range [][2]string{{"b", ""}, {"a", "2"}, {"ab", ""}, {"a", ""}, {"a", "1"}} {
					Expect(store.Put(mustKey(k[0], k[1]), []byte(k[0]+k[1]))).To(Succeed())
				}
			})

			AfterEach(func() {
				Expect(store.Close()).To(Succeed())
			})

			It("should get", func() {
				val, ok, err := store.Get(mustKey("a", "1"))
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
				Expect(val).To(Equal([]byte("a1")))

				_, ok, err = store.Get(mustKey("a", "3"))
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})

			It("should iterate in comparator order", func() {
				cur := store.NewCursor()
				defer cur.Close()

				cur.Seek(mustKey("", ""))
				var keys [][]byte
				for cur.HasNext() {
					key, _ := cur.Next()
					keys = append(keys, key)
				}
				Expect(cur.Err()).NotTo(HaveOccurred())
				Expect(keys).To(Equal([][]byte{
					mustKey("a", ""),
					mustKey("a", "1"),
					mustKey("a", "2"),
					mustKey("ab", ""),
					mustKey("b", ""),
				}))
			})

			It("should seek and peek", func() {
				cur := store.NewCursor()
				defer cur.Close()

				cur.Seek(mustKey("a", "15"))
				Expect(cur.HasNext()).To(BeTrue())

				key, val := cur.PeekNext()
				Expect(key).To(Equal(mustKey("a", "2")))
				Expect(val).To(Equal([]byte("a2")))

				key, val = cur.Next()
				Expect(key).To(Equal(mustKey("a", "2")))
				Expect(val).To(Equal([]byte("a2")))

				key, _ = cur.PeekNext()
				Expect(key).To(Equal(mustKey("ab", "")))

				cur.Seek(mustKey("c", ""))
				Expect(cur.HasNext()).To(BeFalse())
				key, val = cur.Next()
				Expect(key).To(BeNil())
				Expect(val).To(BeNil())
			})

			It("should remove while iterating", func() {
				cur := store.NewCursor()
				defer cur.Close()

				cur.Seek(mustKey("a", ""))
				Expect(cur.Remove()).To(MatchError(hashrange.ErrNoCurrentRow))

				cur.Next()
				key, _ := cur.Next()
				Expect(key).To(Equal(mustKey("a", "1")))
				Expect(cur.Remove()).To(Succeed())
				Expect(cur.Remove()).To(MatchError(hashrange.ErrNoCurrentRow))

				key, _ = cur.Next()
				Expect(key).To(Equal(mustKey("a", "2")))

				_, ok, err := store.Get(mustKey("a", "1"))
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})

			It("should close cursors", func() {
				cur := store.NewCursor()
				cur.Seek(mustKey("a", ""))
				Expect(cur.Close()).To(Succeed())
				Expect(cur.Close()).To(Succeed())
				Expect(cur.HasNext()).To(BeFalse())
				Expect(cur.Remove()).To(MatchError(hashrange.ErrClosed))
			})
		})
	}

	It("should reject unknown backends", func() {
		_, err := hashrange.OpenStore(dir, &hashrange.Options{Backend: "bolt", Logger: quietLogger})
		Expect(errors.Is(err, hashrange.ErrUnknownBackend)).To(BeTrue())

		var oerr *hashrange.OpenError
		Expect(errors.As(err, &oerr)).To(BeTrue())
		Expect(oerr.Backend).To(Equal(hashrange.Backend("bolt")))
		Expect(oerr.Path).To(Equal(dir))
	})

	It("should fail on missing stores if requested", func() {
		_, err := hashrange.OpenStore(filepath.Join(dir, "missing"), &hashrange.Options{
			ErrorIfMissing: true,
			Logger:         quietLogger,
		})

		var oerr *hashrange.OpenError
		Expect(errors.As(err, &oerr)).To(BeTrue())
		Expect(oerr.Backend).To(Equal(hashrange.GoLevelDB))
	})

	It("should create missing stores by default", func() {
		path := filepath.Join(dir, "nested", "db")
		store, err := hashrange.OpenStore(path, &hashrange.Options{Logger: quietLogger})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())

		store, err = hashrange.OpenStore(path, &hashrange.Options{ErrorIfMissing: true, Logger: quietLogger})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())
	})

	It("should close once", func() {
		store, err := hashrange.OpenStore(filepath.Join(dir, "db"), &hashrange.Options{Logger: quietLogger})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())
		Expect(store.Close()).To(MatchError(hashrange.ErrClosed))

		store, err = hashrange.OpenStore("", &hashrange.Options{Backend: hashrange.Memory, Logger: quietLogger})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())
		Expect(store.Close()).To(MatchError(hashrange.ErrClosed))
	})

	It("should persist the comparator", func() {
		path := filepath.Join(dir, "db")
		store, err := hashrange.OpenStore(path, &hashrange.Options{Logger: quietLogger})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Put(mustKey("a", ""), []byte("x"))).To(Succeed())
		Expect(store.Close()).To(Succeed())

		_, err = hashrange.OpenStore(path, &hashrange.Options{Comparator: renamedComparator{}, Logger: quietLogger})
		Expect(err).To(BeAssignableToTypeOf(&hashrange.OpenError{}))
	})
})
