package services

import (
	"context"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type QuestionService struct {
	lc *store.Lifecycle
}

func NewQuestionService(lc *store.Lifecycle) *QuestionService {
	return &QuestionService{lc: lc}
}

type CreateQuestionParams struct {
	Prompt      string
	Description string
}

type UpdateQuestionParams struct {
	Prompt      *string
	Description *string
}

func (s *QuestionService) List(ctx context.Context) ([]models.Question, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Question().List(ctx)
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Question().Get(ctx, id)
}

// Create stores a question authored by profileID. A missing author is
// reported as a missing profile.
func (s *QuestionService) Create(ctx context.Context, profileID int64, params CreateQuestionParams) (int64, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return 0, err
	}

	id, err := st.Question().Create(ctx, models.Question{
		ProfileID:   profileID,
		Prompt:      params.Prompt,
		Description: params.Description,
	})
	if store.IsKind(err, store.KindMissingReferencedRow) {
		return 0, srvErrors.NewProfileNotFoundError(profileID)
	}
	if err != nil {
		return 0, translateStoreError(err, "question")
	}
	return id, nil
}

func (s *QuestionService) Update(ctx context.Context, profileID, questionID int64, params UpdateQuestionParams) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	q, err := st.Question().Get(ctx, questionID)
	if err != nil {
		return err
	}
	if err := checkOwner("question", questionID, q.ProfileID, profileID); err != nil {
		return err
	}

	if params.Prompt != nil {
		q.Prompt = *params.Prompt
	}
	if params.Description != nil {
		q.Description = *params.Description
	}

	return st.Question().Update(ctx, *q)
}

// Suggestions returns up to three questions sharing tags with questionID.
func (s *QuestionService) Suggestions(ctx context.Context, questionID int64) ([]models.Question, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := st.Question().Get(ctx, questionID); err != nil {
		return nil, err
	}

	return st.Suggestions().Suggest(ctx, questionID)
}

// VoteTable returns the per-option vote counts of questionID.
func (s *QuestionService) VoteTable(ctx context.Context, questionID int64) (models.VoteTable, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := st.Question().Get(ctx, questionID); err != nil {
		return nil, err
	}

	return st.VoteTable().Tabulate(ctx, questionID)
}
