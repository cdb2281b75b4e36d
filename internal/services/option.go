package services

import (
	"context"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
)

type OptionService struct {
	lc *store.Lifecycle
}

func NewOptionService(lc *store.Lifecycle) *OptionService {
	return &OptionService{lc: lc}
}

type CreateOptionParams struct {
	QuestionID  int64
	Prompt      string
	Description *string
}

type UpdateOptionParams struct {
	Prompt      *string
	Description *string
}

func (s *OptionService) List(ctx context.Context) ([]models.Option, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Option().List(ctx)
}

func (s *OptionService) ListByQuestion(ctx context.Context, questionID int64) ([]models.Option, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Option().ListByQuestion(ctx, questionID)
}

func (s *OptionService) Get(ctx context.Context, id int64) (*models.Option, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Option().Get(ctx, id)
}

func (s *OptionService) Create(ctx context.Context, profileID int64, params CreateOptionParams) (int64, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return 0, err
	}

	id, err := st.Option().Create(ctx, models.Option{
		ProfileID:   profileID,
		QuestionID:  params.QuestionID,
		Prompt:      params.Prompt,
		Description: params.Description,
	})
	if err != nil {
		return 0, translateStoreError(err, "option")
	}
	return id, nil
}

func (s *OptionService) Update(ctx context.Context, profileID, optionID int64, params UpdateOptionParams) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	o, err := st.Option().Get(ctx, optionID)
	if err != nil {
		return err
	}
	if err := checkOwner("option", optionID, o.ProfileID, profileID); err != nil {
		return err
	}

	if params.Prompt != nil {
		o.Prompt = *params.Prompt
	}
	if params.Description != nil {
		o.Description = params.Description
	}

	return st.Option().Update(ctx, *o)
}
