package timeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/timeline"
)

var _ = Describe("Store", func() {
	var store *timeline.Store

	BeforeEach(func() {
		store = timeline.New()
	})

	Describe("Record", func() {
		It("overwrites an existing frame", func() {
			Expect(store.Record(param.Gravity, 5, 0.3)).To(Succeed())
			Expect(store.Record(param.Gravity, 5, 0.8)).To(Succeed())

			Expect(store.Frames(param.Gravity)).To(Equal([]int{5}))
			v, ok := store.Value(param.Gravity, 5)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(0.8))
		})

		It("keeps keys ordered by frame", func() {
			for _, f := range []int{30, 0, 12, 7} {
				Expect(store.Record(param.Mass, f, float64(f))).To(Succeed())
			}
			Expect(store.Frames(param.Mass)).To(Equal([]int{0, 7, 12, 30}))
			Expect(store.Len()).To(Equal(4))
		})

		It("rejects negative frames", func() {
			err := store.Record(param.X, -1, 10)
			Expect(err).To(MatchError(timeline.ErrNegativeFrame))
			Expect(store.Len()).To(BeZero())
		})

		It("rejects unknown kinds", func() {
			err := store.Record(param.Kind(42), 0, 1)
			Expect(err).To(MatchError(param.ErrUnknownKind))
		})
	})

	Describe("Query", func() {
		It("reports no value on an empty track", func() {
			_, ok := store.Query(param.Friction, 10)
			Expect(ok).To(BeFalse())
		})

		It("distinguishes an authored zero from no value", func() {
			Expect(store.Record(param.Friction, 0, 0)).To(Succeed())
			v, ok := store.Query(param.Friction, 10)
			Expect(ok).To(BeTrue())
			Expect(v).To(BeZero())
		})

		It("returns exact hits unchanged", func() {
			Expect(store.Record(param.Gravity, 0, 0.1)).To(Succeed())
			Expect(store.Record(param.Gravity, 10, 0.7)).To(Succeed())
			Expect(store.Record(param.Gravity, 20, 1.9)).To(Succeed())

			v, _ := store.Query(param.Gravity, 10)
			Expect(v).To(Equal(0.7))
		})

		It("interpolates linearly between neighbours", func() {
			Expect(store.Record(param.Mass, 10, 1)).To(Succeed())
			Expect(store.Record(param.Mass, 20, 3)).To(Succeed())

			v, ok := store.Query(param.Mass, 15)
			Expect(ok).To(BeTrue())
			Expect(v).To(BeNumerically("~", 2, 1e-12))

			v, _ = store.Query(param.Mass, 12)
			Expect(v).To(BeNumerically("~", 1.4, 1e-12))
		})

		It("holds the nearest key outside the authored range", func() {
			Expect(store.Record(param.Mass, 10, 1)).To(Succeed())
			Expect(store.Record(param.Mass, 20, 3)).To(Succeed())

			before, _ := store.Query(param.Mass, 2)
			after, _ := store.Query(param.Mass, 500)
			Expect(before).To(Equal(1.0))
			Expect(after).To(Equal(3.0))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			Expect(store.Record(param.Y, 0, 100)).To(Succeed())
			Expect(store.Record(param.Y, 40, 300)).To(Succeed())
		})

		It("removes the key", func() {
			Expect(store.Delete(param.Y, 40)).To(BeTrue())
			Expect(store.Has(param.Y, 40)).To(BeFalse())
		})

		It("is a no-op for a missing key", func() {
			Expect(store.Delete(param.Y, 41)).To(BeFalse())
			Expect(store.Len()).To(Equal(2))
		})

		It("clears a selection pointing at the key", func() {
			Expect(store.Select(param.Y, 40)).To(BeTrue())
			store.Delete(param.Y, 40)
			_, ok := store.Selection()
			Expect(ok).To(BeFalse())
		})

		It("clears a selection pointing elsewhere", func() {
			Expect(store.Select(param.Y, 0)).To(BeTrue())
			Expect(store.Delete(param.Y, 40)).To(BeTrue())
			_, ok := store.Selection()
			Expect(ok).To(BeFalse())
		})

		It("keeps the selection when nothing was deleted", func() {
			Expect(store.Select(param.Y, 0)).To(BeTrue())
			Expect(store.Delete(param.Y, 41)).To(BeFalse())
			Expect(store.IsSelected(param.Y, 0)).To(BeTrue())
		})
	})

	Describe("Selection", func() {
		BeforeEach(func() {
			Expect(store.Record(param.Width, 0, 40)).To(Succeed())
			Expect(store.Record(param.Width, 25, 80)).To(Succeed())
		})

		It("ignores unauthored points", func() {
			Expect(store.Select(param.Width, 10)).To(BeFalse())
			_, ok := store.Selection()
			Expect(ok).To(BeFalse())
		})

		It("holds at most one point", func() {
			store.Select(param.Width, 0)
			store.Select(param.Width, 25)
			Expect(store.IsSelected(param.Width, 0)).To(BeFalse())
			Expect(store.IsSelected(param.Width, 25)).To(BeTrue())
		})

		It("deletes the selected key and clears", func() {
			store.Select(param.Width, 25)
			sel, ok := store.DeleteSelected()
			Expect(ok).To(BeTrue())
			Expect(sel).To(Equal(timeline.Selection{Kind: param.Width, Frame: 25}))
			Expect(store.Has(param.Width, 25)).To(BeFalse())

			_, ok = store.Selection()
			Expect(ok).To(BeFalse())
		})

		It("reports nothing to delete without a selection", func() {
			_, ok := store.DeleteSelected()
			Expect(ok).To(BeFalse())
			Expect(store.Len()).To(Equal(2))
		})
	})

	Describe("ClearAuthored", func() {
		It("keeps frame 0 on every track", func() {
			for _, k := range param.All() {
				Expect(store.Record(k, 0, 1)).To(Succeed())
				Expect(store.Record(k, 50, 2)).To(Succeed())
			}
			store.Select(param.Mass, 50)

			store.ClearAuthored()

			Expect(store.Len()).To(Equal(param.Count))
			Expect(store.AuthoredFrames()).To(Equal([]int{0}))
			_, ok := store.Selection()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Neighbors", func() {
		It("finds the surrounding authored frames", func() {
			for _, f := range []int{0, 10, 20} {
				Expect(store.Record(param.VX, f, 1)).To(Succeed())
			}
			prev, next := store.Neighbors(param.VX, 10)
			Expect(prev).To(Equal(0))
			Expect(next).To(Equal(20))

			prev, next = store.Neighbors(param.VX, 25)
			Expect(prev).To(Equal(20))
			Expect(next).To(Equal(-1))
		})
	})
})
