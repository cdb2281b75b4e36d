package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type VoteStore struct {
	exec *Executor
}

func NewVoteStore(exec *Executor) *VoteStore {
	return &VoteStore{exec: exec}
}

func (s *VoteStore) List(ctx context.Context) ([]models.Vote, error) {
	return Query(ctx, s.exec, psql.Select(voteColumns...).From(tableVote).OrderBy("id"), scanVote)
}

func (s *VoteStore) ListByQuestion(ctx context.Context, questionID int64) ([]models.Vote, error) {
	return Query(ctx, s.exec, psql.Select(voteColumns...).
		From(tableVote).
		Where(sq.Eq{"question_id": questionID}).
		OrderBy("id"), scanVote)
}

func (s *VoteStore) Get(ctx context.Context, id int64) (*models.Vote, error) {
	v, err := QueryOne(ctx, s.exec, psql.Select(voteColumns...).From(tableVote).Where(sq.Eq{"id": id}), scanVote)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewVoteNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VoteStore) Create(ctx context.Context, v models.Vote) (int64, error) {
	effect, err := s.exec.Insert(ctx, psql.Insert(tableVote).
		Columns("profile_id", "question_id", "option_id", "header", "body", "description", "active").
		Values(v.ProfileID, v.QuestionID, v.OptionID, v.Header, v.Body, v.Description, v.Active))
	if err != nil {
		return 0, err
	}
	return effect.InsertID, nil
}

func (s *VoteStore) Update(ctx context.Context, v models.Vote) error {
	effect, err := s.exec.Exec(ctx, psql.Update(tableVote).
		Set("header", v.Header).
		Set("body", v.Body).
		Set("description", v.Description).
		Set("active", v.Active).
		Set("updated", now).
		Where(sq.Eq{"id": v.ID}))
	if err != nil {
		return err
	}
	if effect.RowsAffected == 0 {
		return srvErrors.NewVoteNotFoundError(v.ID)
	}
	return nil
}

func (s *VoteStore) Delete(ctx context.Context, id int64) error {
	effect, err := s.exec.Exec(ctx, psql.Delete(tableVote).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if effect.RowsAffected == 0 {
		return srvErrors.NewVoteNotFoundError(id)
	}
	return nil
}

func scanVote(rows *sql.Rows) (models.Vote, error) {
	var v models.Vote
	err := rows.Scan(
		&v.ID,
		&v.ProfileID,
		&v.QuestionID,
		&v.OptionID,
		&v.Header,
		&v.Body,
		&v.Description,
		&v.Active,
		&v.Created,
		&v.Updated,
	)
	return v, err
}
