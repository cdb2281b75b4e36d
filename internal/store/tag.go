package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type TagStore struct {
	exec *Executor
}

func NewTagStore(exec *Executor) *TagStore {
	return &TagStore{exec: exec}
}

func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	return Query(ctx, s.exec, psql.Select(tagColumns...).From(tableTag).OrderBy("id"), scanTag)
}

func (s *TagStore) Get(ctx context.Context, id int64) (*models.Tag, error) {
	t, err := QueryOne(ctx, s.exec, psql.Select(tagColumns...).From(tableTag).Where(sq.Eq{"id": id}), scanTag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewTagNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the tag and returns its id. A taken name is reported as
// KindDuplicateKey.
func (s *TagStore) Create(ctx context.Context, t models.Tag) (int64, error) {
	var id int64
	err := s.exec.Transaction(ctx, func() error {
		effect, err := s.exec.Insert(ctx, psql.Insert(tableTag).
			Columns("profile_id", "name", "description", "category").
			Values(t.ProfileID, t.Name, t.Description, categoryValue(t.Category)))
		if err != nil {
			return err
		}
		id = effect.InsertID

		_, err = s.exec.Exec(ctx, psql.Insert(tableTagName).
			Columns("name", "tag_id").
			Values(t.Name, id))
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// TagUpdate lists the columns to change. Nil fields are left untouched, so a
// category, once set, can be changed but not cleared.
type TagUpdate struct {
	Name        *string
	Description *string
	Category    *models.TagCategory
}

func (s *TagStore) Update(ctx context.Context, id int64, u TagUpdate) error {
	builder := psql.Update(tableTag).Set("updated", now).Where(sq.Eq{"id": id})
	if u.Name != nil {
		builder = builder.Set("name", *u.Name)
	}
	if u.Description != nil {
		builder = builder.Set("description", *u.Description)
	}
	if u.Category != nil {
		builder = builder.Set("category", string(*u.Category))
	}

	return s.exec.Transaction(ctx, func() error {
		if u.Name != nil {
			_, err := s.exec.Exec(ctx, psql.Update(tableTagName).
				Set("name", *u.Name).
				Where(sq.Eq{"tag_id": id}).
				Where(sq.NotEq{"name": *u.Name}))
			if err != nil {
				return err
			}
		}

		effect, err := s.exec.Exec(ctx, builder)
		if err != nil {
			return err
		}
		if effect.RowsAffected == 0 {
			return srvErrors.NewTagNotFoundError(id)
		}
		return nil
	})
}

func categoryValue(c *models.TagCategory) any {
	if c == nil {
		return nil
	}
	return string(*c)
}

func scanTag(rows *sql.Rows) (models.Tag, error) {
	var (
		t        models.Tag
		category sql.NullString
	)
	err := rows.Scan(
		&t.ID,
		&t.ProfileID,
		&t.Name,
		&t.Description,
		&category,
		&t.Created,
		&t.Updated,
	)
	if category.Valid {
		c := models.TagCategory(category.String)
		t.Category = &c
	}
	return t, err
}
