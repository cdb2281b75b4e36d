package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/services"
)

const tagLogger = "tag_handler"

// (GET /tag)
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tagSrv.List(c.Request.Context())
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(tags, v1.NewTagFromModel))
}

// (GET /tag/{tag_id})
func (h *Handler) GetTag(c *gin.Context, tagId int64) {
	t, err := h.tagSrv.Get(c.Request.Context(), tagId)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTagFromModel(*t))
}

// (POST /tag)
func (h *Handler) CreateTag(c *gin.Context) {
	var req v1.CreateTagRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	id, err := h.tagSrv.Create(c.Request.Context(), profileID, services.CreateTagParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    v1.ToModelCategory(req.Category),
	})
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.TagCreated{TagId: id})
}

// (PATCH /tag/{tag_id})
func (h *Handler) UpdateTag(c *gin.Context, tagId int64) {
	var req v1.UpdateTagRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	err = h.tagSrv.Update(c.Request.Context(), profileID, tagId, services.UpdateTagParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    v1.ToModelCategory(req.Category),
	})
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.Status(http.StatusOK)
}

// ListTagQuestions returns one page of the questions carrying a tag
// (GET /tag/{tag_id}/questions)
func (h *Handler) ListTagQuestions(c *gin.Context, tagId int64, params v1.ListTagQuestionsParams) {
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}

	result, err := h.tagSrv.QuestionsWithTag(c.Request.Context(), tagId, page)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewQuestionPageFromModel(*result))
}

// (GET /tag/profile/{profile_id})
func (h *Handler) ListProfileTags(c *gin.Context, profileId int64) {
	tags, err := h.tagSrv.TagsOnProfile(c.Request.Context(), profileId)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(tags, v1.NewTagOnProfileFromModel))
}

// TagProfile attaches a tag to the caller's profile
// (POST /tag/profile)
func (h *Handler) TagProfile(c *gin.Context) {
	var req v1.TagProfileRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	if err := h.tagSrv.TagProfile(c.Request.Context(), profileID, *req.TagId); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.Status(http.StatusOK)
}

// (GET /tag/question/{question_id})
func (h *Handler) ListQuestionTags(c *gin.Context, questionId int64) {
	tags, err := h.tagSrv.TagsOnQuestion(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(tags, v1.NewTagOnQuestionFromModel))
}

// TagQuestion attaches a tag to any question
// (POST /tag/question)
func (h *Handler) TagQuestion(c *gin.Context) {
	var req v1.TagQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	if _, err := h.caller(c); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	if err := h.tagSrv.TagQuestion(c.Request.Context(), *req.TagId, *req.QuestionId); err != nil {
		h.respondError(c, tagLogger, err)
		return
	}

	c.Status(http.StatusOK)
}
