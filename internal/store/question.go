package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type QuestionStore struct {
	exec *Executor
}

func NewQuestionStore(exec *Executor) *QuestionStore {
	return &QuestionStore{exec: exec}
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// ByIDs restricts a question listing to the given ids.
func ByIDs(ids ...int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"question.id": ids})
	}
}

// ByTag restricts a question listing to questions carrying the tag.
func ByTag(tagID int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Join("question_tag ON question_tag.question_id = question.id").
			Where(sq.Eq{"question_tag.tag_id": tagID})
	}
}

func (s *QuestionStore) List(ctx context.Context, opts ...ListOption) ([]models.Question, error) {
	builder := psql.Select(qualify(tableQuestion, questionColumns)...).
		From(tableQuestion).
		OrderBy("question.id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	return Query(ctx, s.exec, builder, scanQuestion)
}

func (s *QuestionStore) Get(ctx context.Context, id int64) (*models.Question, error) {
	q, err := QueryOne(ctx, s.exec, psql.Select(questionColumns...).From(tableQuestion).Where(sq.Eq{"id": id}), scanQuestion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewQuestionNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuestionStore) Create(ctx context.Context, q models.Question) (int64, error) {
	effect, err := s.exec.Insert(ctx, psql.Insert(tableQuestion).
		Columns("profile_id", "prompt", "description").
		Values(q.ProfileID, q.Prompt, q.Description))
	if err != nil {
		return 0, err
	}
	return effect.InsertID, nil
}

func (s *QuestionStore) Update(ctx context.Context, q models.Question) error {
	effect, err := s.exec.Exec(ctx, psql.Update(tableQuestion).
		Set("prompt", q.Prompt).
		Set("description", q.Description).
		Set("updated", now).
		Where(sq.Eq{"id": q.ID}))
	if err != nil {
		return err
	}
	if effect.RowsAffected == 0 {
		return srvErrors.NewQuestionNotFoundError(q.ID)
	}
	return nil
}

func (s *QuestionStore) CountWithTag(ctx context.Context, tagID int64) (int, error) {
	counts, err := Query(ctx, s.exec, sq.Expr(queryCountQuestionsWithTag, tagID), scanInt64)
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return int(counts[0]), nil
}

func scanQuestion(rows *sql.Rows) (models.Question, error) {
	var q models.Question
	err := rows.Scan(
		&q.ID,
		&q.ProfileID,
		&q.Prompt,
		&q.Description,
		&q.Created,
		&q.Updated,
	)
	return q, err
}

func qualify(table string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, table+"."+c)
	}
	return out
}
