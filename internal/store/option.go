package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type OptionStore struct {
	exec *Executor
}

func NewOptionStore(exec *Executor) *OptionStore {
	return &OptionStore{exec: exec}
}

func (s *OptionStore) List(ctx context.Context) ([]models.Option, error) {
	return Query(ctx, s.exec, psql.Select(optionColumns...).From(tableOption).OrderBy("id"), scanOption)
}

func (s *OptionStore) ListByQuestion(ctx context.Context, questionID int64) ([]models.Option, error) {
	return Query(ctx, s.exec, psql.Select(optionColumns...).
		From(tableOption).
		Where(sq.Eq{"question_id": questionID}).
		OrderBy("id"), scanOption)
}

func (s *OptionStore) Get(ctx context.Context, id int64) (*models.Option, error) {
	o, err := QueryOne(ctx, s.exec, psql.Select(optionColumns...).From(tableOption).Where(sq.Eq{"id": id}), scanOption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewOptionNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OptionStore) Create(ctx context.Context, o models.Option) (int64, error) {
	effect, err := s.exec.Insert(ctx, psql.Insert(tableOption).
		Columns("profile_id", "question_id", "prompt", "description").
		Values(o.ProfileID, o.QuestionID, o.Prompt, o.Description))
	if err != nil {
		return 0, err
	}
	return effect.InsertID, nil
}

func (s *OptionStore) Update(ctx context.Context, o models.Option) error {
	effect, err := s.exec.Exec(ctx, psql.Update(tableOption).
		Set("prompt", o.Prompt).
		Set("description", o.Description).
		Set("updated", now).
		Where(sq.Eq{"id": o.ID}))
	if err != nil {
		return err
	}
	if effect.RowsAffected == 0 {
		return srvErrors.NewOptionNotFoundError(o.ID)
	}
	return nil
}

func scanOption(rows *sql.Rows) (models.Option, error) {
	var o models.Option
	err := rows.Scan(
		&o.ID,
		&o.ProfileID,
		&o.QuestionID,
		&o.Prompt,
		&o.Description,
		&o.Created,
		&o.Updated,
	)
	return o, err
}
