package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type ProfileStore struct {
	exec *Executor
}

func NewProfileStore(exec *Executor) *ProfileStore {
	return &ProfileStore{exec: exec}
}

func (s *ProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	return Query(ctx, s.exec, psql.Select(profileColumns...).From(tableProfile).OrderBy("id"), scanProfile)
}

func (s *ProfileStore) Get(ctx context.Context, id int64) (*models.Profile, error) {
	return s.getBy(ctx, sq.Eq{"id": id}, id)
}

func (s *ProfileStore) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getBy(ctx, sq.Eq{"username": username}, username)
}

func (s *ProfileStore) getBy(ctx context.Context, pred sq.Eq, key any) (*models.Profile, error) {
	p, err := QueryOne(ctx, s.exec, psql.Select(profileColumns...).From(tableProfile).Where(pred), scanProfile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewProfileNotFoundError(key)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the profile and returns its id. Password and salt are
// expected to be hashed already. A taken username is reported as
// KindDuplicateKey.
func (s *ProfileStore) Create(ctx context.Context, p models.Profile) (int64, error) {
	var id int64
	err := s.exec.Transaction(ctx, func() error {
		effect, err := s.exec.Insert(ctx, psql.Insert(tableProfile).
			Columns("username", "password", "salt", "description", "body").
			Values(p.Username, p.Password, p.Salt, p.Description, p.Body))
		if err != nil {
			return err
		}
		id = effect.InsertID

		_, err = s.exec.Exec(ctx, psql.Insert(tableUsername).
			Columns("username", "profile_id").
			Values(p.Username, id))
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ProfileUpdate lists the columns to change. Nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string
	Password    *string
	Salt        *string
	Description *string
	Body        *string
}

func (s *ProfileStore) Update(ctx context.Context, id int64, u ProfileUpdate) error {
	builder := psql.Update(tableProfile).Set("updated", now).Where(sq.Eq{"id": id})
	if u.Username != nil {
		builder = builder.Set("username", *u.Username)
	}
	if u.Password != nil {
		builder = builder.Set("password", *u.Password)
	}
	if u.Salt != nil {
		builder = builder.Set("salt", *u.Salt)
	}
	if u.Description != nil {
		builder = builder.Set("description", *u.Description)
	}
	if u.Body != nil {
		builder = builder.Set("body", *u.Body)
	}

	return s.exec.Transaction(ctx, func() error {
		if u.Username != nil {
			_, err := s.exec.Exec(ctx, psql.Update(tableUsername).
				Set("username", *u.Username).
				Where(sq.Eq{"profile_id": id}).
				Where(sq.NotEq{"username": *u.Username}))
			if err != nil {
				return err
			}
		}

		effect, err := s.exec.Exec(ctx, builder)
		if err != nil {
			return err
		}
		if effect.RowsAffected == 0 {
			return srvErrors.NewProfileNotFoundError(id)
		}
		return nil
	})
}

func scanProfile(rows *sql.Rows) (models.Profile, error) {
	var p models.Profile
	err := rows.Scan(
		&p.ID,
		&p.Username,
		&p.Password,
		&p.Salt,
		&p.Description,
		&p.Body,
		&p.Created,
		&p.Updated,
	)
	return p, err
}
