package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
)

// TaggingStore manages the profile_tag and question_tag link tables.
type TaggingStore struct {
	exec *Executor
}

func NewTaggingStore(exec *Executor) *TaggingStore {
	return &TaggingStore{exec: exec}
}

func (s *TaggingStore) TagsOnQuestion(ctx context.Context, questionID int64) ([]models.TagOnQuestion, error) {
	return Query(ctx, s.exec, sq.Expr(queryTagsOnQuestion, questionID), scanTagOnQuestion)
}

func (s *TaggingStore) TagsOnProfile(ctx context.Context, profileID int64) ([]models.TagOnProfile, error) {
	return Query(ctx, s.exec, sq.Expr(queryTagsOnProfile, profileID), scanTagOnProfile)
}

func (s *TaggingStore) TagQuestion(ctx context.Context, qt models.QuestionTag) error {
	_, err := s.exec.Exec(ctx, psql.Insert(tableQuestionTag).
		Columns("tag_id", "question_id").
		Values(qt.TagID, qt.QuestionID))
	return err
}

func (s *TaggingStore) TagProfile(ctx context.Context, pt models.ProfileTag) error {
	_, err := s.exec.Exec(ctx, psql.Insert(tableProfileTag).
		Columns("tag_id", "profile_id").
		Values(pt.TagID, pt.ProfileID))
	return err
}

func scanTagOnQuestion(rows *sql.Rows) (models.TagOnQuestion, error) {
	var (
		t        models.TagOnQuestion
		category sql.NullString
	)
	err := rows.Scan(&t.TagID, &t.Name, &t.Description, &category)
	if category.Valid {
		c := models.TagCategory(category.String)
		t.Category = &c
	}
	return t, err
}

func scanTagOnProfile(rows *sql.Rows) (models.TagOnProfile, error) {
	var t models.TagOnProfile
	err := rows.Scan(&t.TagID, &t.Name, &t.Description)
	return t, err
}
