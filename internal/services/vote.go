package services

import (
	"context"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

type VoteService struct {
	lc *store.Lifecycle
}

func NewVoteService(lc *store.Lifecycle) *VoteService {
	return &VoteService{lc: lc}
}

type CreateVoteParams struct {
	QuestionID  int64
	OptionID    int64
	Header      *int64
	Body        *string
	Description *string
	Active      int64
}

type UpdateVoteParams struct {
	Header      *int64
	Body        *string
	Description *string
	Active      *int64
}

func (s *VoteService) List(ctx context.Context) ([]models.Vote, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Vote().List(ctx)
}

func (s *VoteService) ListByQuestion(ctx context.Context, questionID int64) ([]models.Vote, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Vote().ListByQuestion(ctx, questionID)
}

func (s *VoteService) Get(ctx context.Context, id int64) (*models.Vote, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Vote().Get(ctx, id)
}

// Create records the caller's vote. The option must belong to the question
// and a profile votes at most once per question.
func (s *VoteService) Create(ctx context.Context, profileID int64, params CreateVoteParams) (int64, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return 0, err
	}

	o, err := st.Option().Get(ctx, params.OptionID)
	if srvErrors.IsResourceNotFoundError(err) {
		return 0, srvErrors.NewReferencedResourceNotFoundError()
	}
	if err != nil {
		return 0, err
	}
	if o.QuestionID != params.QuestionID {
		return 0, srvErrors.NewReferencedResourceNotFoundError()
	}

	id, err := st.Vote().Create(ctx, models.Vote{
		ProfileID:   profileID,
		QuestionID:  params.QuestionID,
		OptionID:    params.OptionID,
		Header:      params.Header,
		Body:        params.Body,
		Description: params.Description,
		Active:      params.Active,
	})
	if err != nil {
		return 0, translateStoreError(err, "vote")
	}
	return id, nil
}

func (s *VoteService) Update(ctx context.Context, profileID, voteID int64, params UpdateVoteParams) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	v, err := s.owned(ctx, st, profileID, voteID)
	if err != nil {
		return err
	}

	if params.Header != nil {
		v.Header = params.Header
	}
	if params.Body != nil {
		v.Body = params.Body
	}
	if params.Description != nil {
		v.Description = params.Description
	}
	if params.Active != nil {
		v.Active = *params.Active
	}

	return st.Vote().Update(ctx, *v)
}

func (s *VoteService) Delete(ctx context.Context, profileID, voteID int64) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	if _, err := s.owned(ctx, st, profileID, voteID); err != nil {
		return err
	}

	return st.Vote().Delete(ctx, voteID)
}

func (s *VoteService) owned(ctx context.Context, st *store.Store, profileID, voteID int64) (*models.Vote, error) {
	v, err := st.Vote().Get(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner("vote", voteID, v.ProfileID, profileID); err != nil {
		return nil, err
	}
	return v, nil
}
