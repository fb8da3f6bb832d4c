package steps_test

import (
	"math/rand"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

// randomArray leaves room for one insert.
func randomArray(rng *rand.Rand) array.Array {
	n := array.MinSize + rng.Intn(array.MaxSize-1)
	a := make(array.Array, n)
	for i := range a {
		a[i] = rng.Intn(array.MaxValue)
	}
	return a
}

var _ = Describe("step generation", func() {
	var (
		rng   *rand.Rand
		input array.Array
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
		input = randomArray(rng)
	})

	It("starts every trace with the untouched input", func() {
		for _, op := range []steps.Operation{steps.OpUpdate, steps.OpDelete, steps.OpInsert, steps.OpLinearSearch, steps.OpBubbleSort} {
			seq, err := steps.Generate(op, input, steps.Params{Value: 50, Index: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(seq).NotTo(BeEmpty())
			Expect(seq[0].Array).To(Equal(input))
			Expect(seq[0].IsInitial()).To(BeTrue())
		}
	})

	It("is deterministic", func() {
		p := steps.Params{Value: input[0], Index: len(input) / 2}
		for _, op := range []steps.Operation{steps.OpInsert, steps.OpDelete, steps.OpLinearSearch, steps.OpBubbleSort} {
			a, err := steps.Generate(op, input, p)
			Expect(err).NotTo(HaveOccurred())
			b, err := steps.Generate(op, input, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		}
	})

	It("never mutates the caller's array", func() {
		before := input.Clone()
		_, err := steps.Generate(steps.OpBubbleSort, input, steps.Params{})
		Expect(err).NotTo(HaveOccurred())
		_, err = steps.Generate(steps.OpInsert, input, steps.Params{Value: 1, Index: 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(input).To(Equal(before))
	})

	Describe("insert", func() {
		It("splices the value and grows by one", func() {
			index := rng.Intn(len(input))
			seq, err := steps.Generate(steps.OpInsert, input, steps.Params{Value: 77, Index: index})
			Expect(err).NotTo(HaveOccurred())

			want := slices.Insert(input.Clone(), index, 77)
			Expect(seq.Last().Array).To(Equal(want))
			Expect(seq).To(HaveLen(len(input) - index + 2))
			for _, st := range seq {
				Expect(len(st.Array)).To(BeNumerically(">=", len(input)))
				Expect(len(st.Array)).To(BeNumerically("<=", len(input)+1))
			}
		})
	})

	Describe("delete", func() {
		It("removes the element and shrinks by one", func() {
			index := rng.Intn(len(input))
			seq, err := steps.Generate(steps.OpDelete, input, steps.Params{Index: index})
			Expect(err).NotTo(HaveOccurred())

			want := slices.Delete(input.Clone(), index, index+1)
			Expect(seq.Last().Array).To(Equal(want))
			Expect(seq).To(HaveLen(len(input) - 1 - index + 2))
		})
	})

	Describe("update", func() {
		It("changes only the target index", func() {
			index := rng.Intn(len(input))
			seq, err := steps.Generate(steps.OpUpdate, input, steps.Params{Value: array.MaxValue - 1, Index: index})
			Expect(err).NotTo(HaveOccurred())

			final := seq.Last().Array
			Expect(final).To(HaveLen(len(input)))
			for i := range input {
				if i == index {
					Expect(final[i]).To(Equal(array.MaxValue - 1))
				} else {
					Expect(final[i]).To(Equal(input[i]))
				}
			}
		})
	})

	Describe("linear search", func() {
		It("reports the first occurrence exactly once", func() {
			value := input[rng.Intn(len(input))]
			k := slices.Index(input, value)

			seq, err := steps.Generate(steps.OpLinearSearch, input, steps.Params{Value: value})
			Expect(err).NotTo(HaveOccurred())

			var found [][]int
			for _, st := range seq {
				if len(st.Found) > 0 {
					found = append(found, st.Found)
				}
			}
			Expect(found).To(Equal([][]int{{k}}))
			Expect(seq).To(HaveLen(k + 3))
		})

		It("ends with an unannotated not-found step", func() {
			seq, err := steps.Generate(steps.OpLinearSearch, input, steps.Params{Value: -1})
			Expect(err).NotTo(HaveOccurred())
			Expect(seq).To(HaveLen(len(input) + 2))
			Expect(seq.Last().Highlights).To(BeEmpty())
			Expect(seq.Last().Description).To(ContainSubstring("not found"))
		})
	})

	Describe("binary search", func() {
		var sorted array.Array

		BeforeEach(func() {
			sorted = input.Sorted()
		})

		It("finds every present value", func() {
			for _, v := range sorted {
				seq, err := steps.Generate(steps.OpBinarySearch, sorted, steps.Params{Value: v})
				Expect(err).NotTo(HaveOccurred())
				last := seq.Last()
				Expect(last.Found).To(HaveLen(1))
				Expect(sorted[last.Found[0]]).To(Equal(v))
			}
		})

		It("shrinks the search window after every miss", func() {
			seq, err := steps.Generate(steps.OpBinarySearch, sorted, steps.Params{Value: array.MaxValue + 1})
			Expect(err).NotTo(HaveOccurred())

			prev := len(sorted) + 1
			var last *steps.Range
			for _, st := range seq {
				if st.Range == nil {
					continue
				}
				Expect(st.Range.Size()).To(BeNumerically("<=", prev))
				if st.Mid == nil {
					Expect(st.Range.Size()).To(BeNumerically("<", prev))
				}
				prev = st.Range.Size()
				last = st.Range
			}
			Expect(last).NotTo(BeNil())
			Expect(last.Low).To(BeNumerically(">", last.High))
			Expect(seq.Last().Description).To(ContainSubstring("not found"))
		})
	})

	Describe("bubble sort", func() {
		It("sorts a permutation of the input with n(n-1)/2 comparisons", func() {
			seq, err := steps.Generate(steps.OpBubbleSort, input, steps.Params{})
			Expect(err).NotTo(HaveOccurred())

			final := seq.Last().Array
			Expect(final.IsSorted()).To(BeTrue())
			Expect(final).To(ConsistOf(input))

			comparisons := 0
			for _, st := range seq {
				Expect(st.Array).To(HaveLen(len(input)))
				if len(st.Compare) > 0 {
					comparisons++
				}
			}
			n := len(input)
			Expect(comparisons).To(Equal(n * (n - 1) / 2))
		})
	})
})
