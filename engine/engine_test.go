package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudchase/sampling-visualizer/engine"
)

var (
	catTokens = []string{"Mat", "Floor", "Rug", "Dog", "Pizza", "Table", "Bed", "Couch", "Chair", "Box"}
	catLogits = []float64{14.0, 13.8, 12.5, 11.0, 0.1, 8.0, 7.8, 7.6, 7.4, 7.2}

	roseTokens = []string{"blue", "purple", "violet", "red", "white", "pink", "yellow", "orange", "green", "black"}
	roseLogits = []float64{10, 8, 7, 4, 3, 2, 1.5, 1, 0.5, 0.1}
)

func activeSum(results []engine.TokenResult) float64 {
	var sum float64
	for _, r := range results {
		if r.Active {
			sum += r.Probability
		}
	}
	return sum
}

func activeTokens(results []engine.TokenResult) []string {
	var out []string
	for _, r := range results {
		if r.Active {
			out = append(out, r.Token)
		}
	}
	return out
}

var _ = Describe("Compute", func() {
	Describe("reference scenarios", func() {
		It("keeps only the arg-max token for greedy decoding", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: 1.0, TopK: 1, TopP: 1.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(results[0].Token).To(Equal("Mat"))
			Expect(results[0].Active).To(BeTrue())
			Expect(results[0].Probability).To(Equal(1.0))
			for _, r := range results[1:] {
				Expect(r.Active).To(BeFalse(), r.Token)
				Expect(r.Probability).To(BeZero(), r.Token)
			}
		})

		It("returns the full softmax when nothing is truncated", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: 1.0, TopK: 10, TopP: 1.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(engine.ActiveCount(results)).To(Equal(10))
			Expect(activeSum(results)).To(BeNumerically("~", 1.0, 1e-9))

			mat, floor := results[0].Probability, results[1].Probability
			for _, r := range results[1:] {
				Expect(mat).To(BeNumerically(">", r.Probability))
			}
			Expect(mat / floor).To(BeNumerically("~", math.Exp(0.2), 1e-9))
		})

		It("cuts the nucleus at the first rank whose mass reaches top-p", func() {
			results, err := engine.Compute(roseTokens, roseLogits, engine.Params{Temperature: 1.0, TopK: 10, TopP: 0.5})
			Expect(err).NotTo(HaveOccurred())

			// softmax(blue) ~= 0.841, which already reaches 0.5 on its own
			Expect(activeTokens(results)).To(Equal([]string{"blue"}))
			Expect(results[0].Probability).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("keeps the entry that crosses the threshold", func() {
			results, err := engine.Compute(roseTokens, roseLogits, engine.Params{Temperature: 1.0, TopK: 10, TopP: 0.9})
			Expect(err).NotTo(HaveOccurred())

			Expect(activeTokens(results)).To(Equal([]string{"blue", "purple"}))
			Expect(results[0].Probability).To(BeNumerically("~", 1/(1+math.Exp(-2)), 1e-12))
			Expect(activeSum(results)).To(BeNumerically("~", 1.0, 1e-9))
		})
	})

	Describe("truncation order", func() {
		It("applies top-k before top-p on the un-renormalized mass", func() {
			// blue holds ~0.841 of the full softmax but ~0.881 once top-2 is
			// renormalized; 0.85 only admits purple under the former.
			results, err := engine.Compute(roseTokens, roseLogits, engine.Params{Temperature: 1.0, TopK: 2, TopP: 0.85})
			Expect(err).NotTo(HaveOccurred())

			Expect(activeTokens(results)).To(Equal([]string{"blue", "purple"}))
		})

		It("excludes a token once the cumulative sum lands exactly on top-p", func() {
			results, err := engine.Compute([]string{"a", "b"}, []float64{0, 0}, engine.Params{Temperature: 1.0, TopK: 2, TopP: 0.5})
			Expect(err).NotTo(HaveOccurred())

			Expect(activeTokens(results)).To(Equal([]string{"a"}))
			Expect(results[0].Probability).To(Equal(1.0))
		})

		It("breaks probability ties by input order", func() {
			results, err := engine.Compute([]string{"x", "y", "z"}, []float64{1, 1, 1}, engine.Params{Temperature: 1.0, TopK: 2, TopP: 1.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(activeTokens(results)).To(Equal([]string{"x", "y"}))
			Expect(results[0].Probability).To(BeNumerically("~", 0.5, 1e-12))
			Expect(results[1].Probability).To(BeNumerically("~", 0.5, 1e-12))
		})
	})

	Describe("disabled nucleus", func() {
		DescribeTable("keeps every token active at top-p 1",
			func(temp float64) {
				results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: temp, TopK: 10, TopP: 1.0})
				Expect(err).NotTo(HaveOccurred())

				Expect(engine.ActiveCount(results)).To(Equal(len(catTokens)))
				Expect(activeSum(results)).To(BeNumerically("~", 1.0, 1e-9))
			},
			Entry("at the floor", engine.MinTemperature),
			Entry("at 0.05", 0.05),
			Entry("at 0.1", 0.1),
			Entry("at 0.25", 0.25),
			Entry("at 1", 1.0),
			Entry("at 5", 5.0),
		)
	})

	Describe("output shape", func() {
		It("returns every token in input order even when filtered", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: 0.7, TopK: 3, TopP: 0.6})
			Expect(err).NotTo(HaveOccurred())

			Expect(results).To(HaveLen(len(catTokens)))
			for i, r := range results {
				Expect(r.OriginalIndex).To(Equal(i))
				Expect(r.Token).To(Equal(catTokens[i]))
				if !r.Active {
					Expect(r.Probability).To(BeZero())
				}
			}
		})

		It("is idempotent", func() {
			p := engine.Params{Temperature: 1.3, TopK: 6, TopP: 0.8}
			first, err := engine.Compute(catTokens, catLogits, p)
			Expect(err).NotTo(HaveOccurred())
			second, err := engine.Compute(catTokens, catLogits, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		})

		It("does not modify its inputs", func() {
			logits := append([]float64(nil), catLogits...)
			_, err := engine.Compute(catTokens, logits, engine.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			Expect(logits).To(Equal(catLogits))
		})
	})

	Describe("temperature limits", func() {
		It("approaches uniform for very large temperatures", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: 1000, TopK: 10, TopP: 1.0})
			Expect(err).NotTo(HaveOccurred())

			for _, r := range results {
				Expect(r.Probability).To(BeNumerically("~", 0.1, 0.005), r.Token)
			}
		})

		It("approaches one-hot at the temperature floor", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: engine.MinTemperature, TopK: 10, TopP: 1.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(results[0].Probability).To(BeNumerically("~", 1.0, 1e-6))
		})
	})

	Describe("parameter clamping", func() {
		DescribeTable("matches the clamped equivalent",
			func(given, clamped engine.Params) {
				got, err := engine.Compute(catTokens, catLogits, given)
				Expect(err).NotTo(HaveOccurred())
				want, err := engine.Compute(catTokens, catLogits, clamped)
				Expect(err).NotTo(HaveOccurred())

				Expect(got).To(Equal(want))
			},
			Entry("zero temperature", engine.Params{Temperature: 0, TopK: 10, TopP: 1}, engine.Params{Temperature: 0.01, TopK: 10, TopP: 1}),
			Entry("negative temperature", engine.Params{Temperature: -3, TopK: 10, TopP: 1}, engine.Params{Temperature: 0.01, TopK: 10, TopP: 1}),
			Entry("NaN temperature", engine.Params{Temperature: math.NaN(), TopK: 10, TopP: 1}, engine.Params{Temperature: 0.01, TopK: 10, TopP: 1}),
			Entry("zero top-k", engine.Params{Temperature: 1, TopK: 0, TopP: 1}, engine.Params{Temperature: 1, TopK: 1, TopP: 1}),
			Entry("top-k above vocabulary", engine.Params{Temperature: 1, TopK: 500, TopP: 1}, engine.Params{Temperature: 1, TopK: 10, TopP: 1}),
			Entry("zero top-p", engine.Params{Temperature: 1, TopK: 10, TopP: 0}, engine.Params{Temperature: 1, TopK: 10, TopP: 0.01}),
			Entry("top-p above one", engine.Params{Temperature: 1, TopK: 10, TopP: 1.5}, engine.Params{Temperature: 1, TopK: 10, TopP: 1}),
		)

		It("always leaves at least one active token", func() {
			results, err := engine.Compute(catTokens, catLogits, engine.Params{Temperature: -1, TopK: -4, TopP: -1})
			Expect(err).NotTo(HaveOccurred())

			Expect(activeTokens(results)).To(Equal([]string{"Mat"}))
		})
	})

	Describe("invalid input", func() {
		It("rejects mismatched lengths", func() {
			_, err := engine.Compute([]string{"a", "b"}, []float64{1}, engine.DefaultParams())
			Expect(err).To(MatchError(engine.ErrInvalidInput))
		})

		It("rejects an empty vocabulary", func() {
			_, err := engine.Compute(nil, nil, engine.DefaultParams())
			Expect(err).To(MatchError(engine.ErrInvalidInput))
		})

		It("rejects NaN logits", func() {
			_, err := engine.Compute([]string{"a", "b"}, []float64{1, math.NaN()}, engine.DefaultParams())
			Expect(err).To(MatchError(engine.ErrInvalidInput))
		})

		It("rejects infinite logits", func() {
			_, err := engine.Compute([]string{"a", "b"}, []float64{math.Inf(1), 0}, engine.DefaultParams())
			Expect(err).To(MatchError(engine.ErrInvalidInput))
		})

		It("rejects duplicate original indices", func() {
			_, err := engine.ComputeScores([]engine.TokenScore{
				{Token: "a", Logit: 1, OriginalIndex: 0},
				{Token: "b", Logit: 2, OriginalIndex: 0},
			}, engine.DefaultParams())
			Expect(err).To(MatchError(engine.ErrInvalidInput))
		})
	})

	Describe("ComputeScores", func() {
		It("restores original order from a shuffled input", func() {
			results, err := engine.ComputeScores([]engine.TokenScore{
				{Token: "c", Logit: 0, OriginalIndex: 2},
				{Token: "a", Logit: 2, OriginalIndex: 0},
				{Token: "b", Logit: 1, OriginalIndex: 1},
			}, engine.Params{Temperature: 1, TopK: 2, TopP: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(results[0].Token).To(Equal("a"))
			Expect(results[1].Token).To(Equal("b"))
			Expect(results[2].Token).To(Equal("c"))
			Expect(results[2].Active).To(BeFalse())
		})
	})
})
