package store_test

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
)

func sqlEntries(logs *observer.ObservedLogs) []observer.LoggedEntry {
	var out []observer.LoggedEntry
	for _, e := range logs.All() {
		if e.LoggerName == "sql" {
			out = append(out, e)
		}
	}
	return out
}

var _ = Describe("Executor", func() {
	var (
		env  *testEnv
		logs *observer.ObservedLogs
		undo func()
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		undo = zap.ReplaceGlobals(zap.New(core))

		env = newTestEnv()
	})

	AfterEach(func() {
		env.Close()
		undo()
	})

	Context("statement log", func() {
		// Given a statement spread over several lines
		// When it is executed
		// Then one entry "[<ms>] <collapsed statement>" should be logged
		It("should log the duration and the whitespace collapsed statement", func() {
			// Arrange
			before := len(sqlEntries(logs))

			// Act
			_, err := store.Query(env.ctx, env.store.Executor(), sq.Expr("SELECT\n\t\t  1\n   AS one"), func(rows *sql.Rows) (int64, error) {
				var v int64
				return v, rows.Scan(&v)
			})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			entries := sqlEntries(logs)
			Expect(entries).To(HaveLen(before + 1))
			Expect(entries[len(entries)-1].Message).To(MatchRegexp(`^\[\d+\.\dms\] SELECT 1 AS one$`))
		})

		It("should attach bound arguments as a field", func() {
			_, err := env.store.Profile().GetByUsername(env.ctx, "nobody")
			Expect(err).To(HaveOccurred())

			entries := sqlEntries(logs)
			last := entries[len(entries)-1]
			Expect(last.Message).To(ContainSubstring("FROM profile WHERE username = $1"))
			Expect(last.ContextMap()).To(HaveKeyWithValue("args", ConsistOf("nobody")))
		})
	})

	Context("results", func() {
		It("should report the generated id of an insert", func() {
			first := env.profile("alice")
			second := env.profile("bob")

			Expect(second).To(BeNumerically(">", first))
		})

		It("should report affected rows", func() {
			env.profile("alice")
			env.profile("bob")

			effect, err := env.store.Executor().Exec(env.ctx, sq.Expr("UPDATE profile SET body = 'x'"))

			Expect(err).NotTo(HaveOccurred())
			Expect(effect.RowsAffected).To(BeEquivalentTo(2))
		})

		It("should wrap decoder failures in a DecodeError", func() {
			env.profile("alice")
			boom := errors.New("boom")

			_, err := store.Query(env.ctx, env.store.Executor(), sq.Expr("SELECT id FROM profile"), func(*sql.Rows) (int64, error) {
				return 0, boom
			})

			var decodeErr *store.DecodeError
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(errors.Is(err, boom)).To(BeTrue())
		})
	})

	Context("driver errors", func() {
		// Given a profile named alice
		// When a second profile with the same username is inserted
		// Then the error should be classified as a duplicate key
		It("should classify unique violations", func() {
			env.profile("alice")

			_, err := env.store.Profile().Create(env.ctx, models.Profile{Username: "alice"})

			Expect(store.IsKind(err, store.KindDuplicateKey)).To(BeTrue(), "%v", err)
		})

		It("should classify dangling references", func() {
			_, err := env.store.Question().Create(env.ctx, models.Question{ProfileID: 9999, Prompt: "p", Description: "d"})

			Expect(store.IsKind(err, store.KindMissingReferencedRow)).To(BeTrue(), "%v", err)
		})

		It("should classify deleting a referenced row", func() {
			profileID := env.profile("alice")
			env.question(profileID, "prompt")

			_, err := env.store.Executor().Exec(env.ctx, psqlDelete("profile", profileID))

			Expect(store.IsKind(err, store.KindRowReferenced)).To(BeTrue(), "%v", err)
		})

		It("should classify anything else as unknown", func() {
			_, err := env.store.Executor().Exec(env.ctx, sq.Expr("SELECT * FROM no_such_table"))

			Expect(store.IsKind(err, store.KindUnknownDriver)).To(BeTrue(), "%v", err)
		})
	})

	Context("transactions", func() {
		count := func() int64 {
			n, err := store.QueryOne(env.ctx, env.store.Executor(), sq.Expr("SELECT count(*) FROM profile"), func(rows *sql.Rows) (int64, error) {
				var v int64
				return v, rows.Scan(&v)
			})
			Expect(err).NotTo(HaveOccurred())
			return n
		}

		It("should keep the statements of a committed transaction", func() {
			err := env.store.Executor().Transaction(env.ctx, func() error {
				_, err := env.store.Executor().Exec(env.ctx, sq.Expr("INSERT INTO profile (username) VALUES ('alice')"))
				return err
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(count()).To(BeEquivalentTo(1))
		})

		It("should roll back and return the error of a failed transaction", func() {
			failure := errors.New("failure")

			err := env.store.Executor().Transaction(env.ctx, func() error {
				_, err := env.store.Executor().Exec(env.ctx, sq.Expr("INSERT INTO profile (username) VALUES ('alice')"))
				Expect(err).NotTo(HaveOccurred())
				return failure
			})

			Expect(err).To(MatchError(failure))
			Expect(count()).To(BeZero())
		})
	})

	Context("closed executor", func() {
		// Given an executor that has been closed
		// When any statement is executed
		// Then it should fail with KindUsedClosedConnection
		It("should refuse statements after Close", func() {
			exec := env.store.Executor()
			Expect(exec.Close()).To(Succeed())

			_, err := exec.Exec(env.ctx, sq.Expr("SELECT 1"))

			Expect(store.IsKind(err, store.KindUsedClosedConnection)).To(BeTrue())
			Expect(exec.Closed()).To(BeTrue())
		})

		It("should tolerate a second Close", func() {
			exec := env.store.Executor()
			Expect(exec.Close()).To(Succeed())
			Expect(exec.Close()).To(Succeed())
		})
	})

	Context("cancelled request", func() {
		It("should still run the statement", func() {
			ctx, cancel := context.WithCancel(env.ctx)
			cancel()

			effect, err := env.store.Executor().Exec(ctx, sq.Expr("UPDATE profile SET body = NULL"))

			Expect(err).NotTo(HaveOccurred())
			Expect(effect.RowsAffected).To(BeZero())
		})
	})
})

func psqlDelete(table string, id int64) sq.Sqlizer {
	return sq.Delete(table).Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar)
}
