package v1

import (
	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/services"
)

// NewProfileFromModel converts a profile. Password and salt never leave the
// server.
func NewProfileFromModel(p models.Profile) Profile {
	return Profile{
		Id:          p.ID,
		Username:    p.Username,
		Description: p.Description,
		Body:        p.Body,
		Created:     p.Created,
		Updated:     p.Updated,
	}
}

func NewQuestionFromModel(q models.Question) Question {
	return Question{
		Id:          q.ID,
		ProfileId:   q.ProfileID,
		Prompt:      q.Prompt,
		Description: q.Description,
		Created:     q.Created,
		Updated:     q.Updated,
	}
}

func NewOptionFromModel(o models.Option) Option {
	return Option{
		Id:          o.ID,
		ProfileId:   o.ProfileID,
		QuestionId:  o.QuestionID,
		Prompt:      o.Prompt,
		Description: o.Description,
		Created:     o.Created,
		Updated:     o.Updated,
	}
}

func NewVoteFromModel(v models.Vote) Vote {
	return Vote{
		Id:          v.ID,
		ProfileId:   v.ProfileID,
		QuestionId:  v.QuestionID,
		OptionId:    v.OptionID,
		Header:      v.Header,
		Body:        v.Body,
		Description: v.Description,
		Active:      v.Active,
		Created:     v.Created,
		Updated:     v.Updated,
	}
}

func NewTagFromModel(t models.Tag) Tag {
	return Tag{
		Id:          t.ID,
		ProfileId:   t.ProfileID,
		Name:        t.Name,
		Description: t.Description,
		Category:    categoryString(t.Category),
		Created:     t.Created,
		Updated:     t.Updated,
	}
}

func NewTagOnQuestionFromModel(t models.TagOnQuestion) TagOnQuestion {
	return TagOnQuestion{
		TagId:       t.TagID,
		Name:        t.Name,
		Description: t.Description,
		Category:    categoryString(t.Category),
	}
}

func NewTagOnProfileFromModel(t models.TagOnProfile) TagOnProfile {
	return TagOnProfile{
		TagId:       t.TagID,
		Name:        t.Name,
		Description: t.Description,
	}
}

func NewSessionFromModel(s services.Session) Session {
	return Session{ProfileId: s.ProfileID, Token: s.Token}
}

func NewQuestionPageFromModel(p services.QuestionPage) QuestionPage {
	return QuestionPage{
		Page:      p.Page,
		PageCount: p.PageCount,
		Total:     p.Total,
		Questions: ConvertAll(p.Questions, NewQuestionFromModel),
	}
}

// ConvertAll maps every element with convert. The result is never nil so
// empty lists encode as [].
func ConvertAll[M any, A any](items []M, convert func(M) A) []A {
	out := make([]A, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}

// ToModelCategory converts an optional API category.
func ToModelCategory(c *string) *models.TagCategory {
	if c == nil {
		return nil
	}
	category := models.TagCategory(*c)
	return &category
}

func categoryString(c *models.TagCategory) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
