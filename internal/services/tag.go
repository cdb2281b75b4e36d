package services

import (
	"context"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
	"github.com/tagpoll/tagpoll/internal/util"
)

// QuestionsPerPage is the page size of the questions listed under a tag.
const QuestionsPerPage = 20

type TagService struct {
	lc *store.Lifecycle
}

func NewTagService(lc *store.Lifecycle) *TagService {
	return &TagService{lc: lc}
}

type CreateTagParams struct {
	Name        string
	Description *string
	Category    *models.TagCategory
}

// UpdateTagParams changes the non-nil fields. A category cannot be cleared
// once set.
type UpdateTagParams struct {
	Name        *string
	Description *string
	Category    *models.TagCategory
}

// QuestionPage is one page of the questions carrying a tag.
type QuestionPage struct {
	Page      int
	PageCount int
	Total     int
	Questions []models.Question
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Tag().List(ctx)
}

func (s *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Tag().Get(ctx, id)
}

func (s *TagService) Create(ctx context.Context, profileID int64, params CreateTagParams) (int64, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return 0, err
	}

	id, err := st.Tag().Create(ctx, models.Tag{
		ProfileID:   profileID,
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
	})
	if err != nil {
		return 0, translateStoreError(err, "tag")
	}
	return id, nil
}

func (s *TagService) Update(ctx context.Context, profileID, tagID int64, params UpdateTagParams) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	t, err := st.Tag().Get(ctx, tagID)
	if err != nil {
		return err
	}
	if err := checkOwner("tag", tagID, t.ProfileID, profileID); err != nil {
		return err
	}

	err = st.Tag().Update(ctx, tagID, store.TagUpdate{
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
	})
	return translateStoreError(err, "tag")
}

// QuestionsWithTag returns the requested page, counting from 1, of the
// questions carrying tagID.
func (s *TagService) QuestionsWithTag(ctx context.Context, tagID int64, page int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}

	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := st.Tag().Get(ctx, tagID); err != nil {
		return nil, err
	}

	total, err := st.Question().CountWithTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	questions, err := st.Question().List(ctx,
		store.ByTag(tagID),
		store.WithLimit(QuestionsPerPage),
		store.WithOffset(uint64((page-1)*QuestionsPerPage)),
	)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Page:      page,
		PageCount: util.PageCount(total, QuestionsPerPage),
		Total:     total,
		Questions: questions,
	}, nil
}

func (s *TagService) TagsOnQuestion(ctx context.Context, questionID int64) ([]models.TagOnQuestion, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Tagging().TagsOnQuestion(ctx, questionID)
}

func (s *TagService) TagsOnProfile(ctx context.Context, profileID int64) ([]models.TagOnProfile, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Tagging().TagsOnProfile(ctx, profileID)
}

// TagQuestion attaches a tag to any question. Callers only need to be
// authenticated.
func (s *TagService) TagQuestion(ctx context.Context, tagID, questionID int64) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}
	err = st.Tagging().TagQuestion(ctx, models.QuestionTag{TagID: tagID, QuestionID: questionID})
	return translateStoreError(err, "question tag")
}

// TagProfile attaches a tag to the caller's own profile.
func (s *TagService) TagProfile(ctx context.Context, profileID, tagID int64) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}
	err = st.Tagging().TagProfile(ctx, models.ProfileTag{TagID: tagID, ProfileID: profileID})
	return translateStoreError(err, "profile tag")
}
