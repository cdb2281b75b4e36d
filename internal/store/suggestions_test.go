package store_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tagpoll/tagpoll/internal/store"
)

var _ = Describe("SuggestionEngine", func() {
	var (
		env    *testEnv
		author int64
		tagA   int64
		tagB   int64
		tagC   int64
	)

	BeforeEach(func() {
		env = newTestEnv()
		author = env.profile("author")
		tagA = env.tag(author, "a")
		tagB = env.tag(author, "b")
		tagC = env.tag(author, "c")
	})

	AfterEach(func() {
		env.Close()
	})

	// Given a seed question without tags
	// When suggestions are requested
	// Then the result should be empty and only the tag lookup should run
	It("should return nothing for an untagged seed", func() {
		// Arrange
		seed := env.question(author, "seed")
		other := env.question(author, "other")
		env.tagQuestion(other, tagA)

		core, logs := observer.New(zapcore.DebugLevel)
		undo := zap.ReplaceGlobals(zap.New(core))
		defer undo()

		lc := store.NewLifecycle(store.NewSQLDialer(env.db))
		reqCtx := store.WithRequestConnection(env.ctx)
		defer lc.CloseForRequest(reqCtx)
		s, err := lc.Store(reqCtx)
		Expect(err).NotTo(HaveOccurred())

		// Act
		suggestions, err := s.Suggestions().Suggest(reqCtx, seed)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(suggestions).To(BeEmpty())
		Expect(sqlEntries(logs)).To(HaveLen(1))
	})

	// Given a seed tagged {A, B}, Q1 tagged {A, B} and Q2 tagged {A}
	// When suggestions are requested
	// Then Q1 should come before Q2
	It("should order suggestions by number of shared tags", func() {
		seed := env.question(author, "seed")
		q1 := env.question(author, "q1")
		q2 := env.question(author, "q2")
		env.tagQuestion(seed, tagA, tagB)
		env.tagQuestion(q1, tagA, tagB)
		env.tagQuestion(q2, tagA)

		suggestions, err := env.store.Suggestions().Suggest(env.ctx, seed)

		Expect(err).NotTo(HaveOccurred())
		Expect(questionIDs(suggestions)).To(Equal([]int64{q1, q2}))
		Expect(suggestions[0].Prompt).To(Equal("q1"))
	})

	It("should never suggest the seed or questions without shared tags", func() {
		seed := env.question(author, "seed")
		unrelated := env.question(author, "unrelated")
		env.tagQuestion(seed, tagA)
		env.tagQuestion(unrelated, tagC)

		suggestions, err := env.store.Suggestions().Suggest(env.ctx, seed)

		Expect(err).NotTo(HaveOccurred())
		Expect(suggestions).To(BeEmpty())
	})

	It("should return at most three distinct questions", func() {
		seed := env.question(author, "seed")
		env.tagQuestion(seed, tagA, tagB, tagC)

		best := env.question(author, "best")
		env.tagQuestion(best, tagA, tagB, tagC)
		var pairs, singles []int64
		for i := 0; i < 3; i++ {
			q := env.question(author, "pair")
			env.tagQuestion(q, tagA, tagB)
			pairs = append(pairs, q)
		}
		for i := 0; i < 3; i++ {
			q := env.question(author, "single")
			env.tagQuestion(q, tagC)
			singles = append(singles, q)
		}

		suggestions, err := env.store.Suggestions().Suggest(env.ctx, seed)

		Expect(err).NotTo(HaveOccurred())
		ids := questionIDs(suggestions)
		Expect(ids).To(HaveLen(store.MaxSuggestions))
		Expect(ids[0]).To(Equal(best))
		Expect(ids[1:]).To(HaveEach(BeElementOf(pairs)))
		Expect(ids[1]).NotTo(Equal(ids[2]))
		Expect(ids).NotTo(ContainElement(seed))
		Expect(ids).NotTo(ContainElement(BeElementOf(singles)))
	})

	It("should fill the remaining slots from lower bands without repeats", func() {
		seed := env.question(author, "seed")
		env.tagQuestion(seed, tagA, tagB)
		q1 := env.question(author, "q1")
		env.tagQuestion(q1, tagA, tagB)
		q2 := env.question(author, "q2")
		env.tagQuestion(q2, tagB)
		q3 := env.question(author, "q3")
		env.tagQuestion(q3, tagA)

		for i := 0; i < 5; i++ {
			suggestions, err := env.store.Suggestions().Suggest(env.ctx, seed)

			Expect(err).NotTo(HaveOccurred())
			ids := questionIDs(suggestions)
			Expect(ids).To(HaveLen(3))
			Expect(ids[0]).To(Equal(q1))
			Expect(ids[1:]).To(ConsistOf(q2, q3))
		}
	})
})
