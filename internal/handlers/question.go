package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/services"
)

const questionLogger = "question_handler"

// ListQuestions returns every question
// (GET /question)
func (h *Handler) ListQuestions(c *gin.Context) {
	if err := h.devOnly(); err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	questions, err := h.questionSrv.List(c.Request.Context())
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(questions, v1.NewQuestionFromModel))
}

// GetQuestion returns one question
// (GET /question/{question_id})
func (h *Handler) GetQuestion(c *gin.Context, questionId int64) {
	q, err := h.questionSrv.Get(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewQuestionFromModel(*q))
}

// CreateQuestion stores a question authored by the caller
// (POST /question)
func (h *Handler) CreateQuestion(c *gin.Context) {
	var req v1.CreateQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	id, err := h.questionSrv.Create(c.Request.Context(), profileID, services.CreateQuestionParams{
		Prompt:      req.Prompt,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.QuestionCreated{QuestionId: id})
}

// UpdateQuestion changes a question owned by the caller
// (PATCH /question/{question_id})
func (h *Handler) UpdateQuestion(c *gin.Context, questionId int64) {
	var req v1.UpdateQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	err = h.questionSrv.Update(c.Request.Context(), profileID, questionId, services.UpdateQuestionParams{
		Prompt:      req.Prompt,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetQuestionSuggestions returns up to three related questions
// (GET /question/{question_id}/suggestions)
func (h *Handler) GetQuestionSuggestions(c *gin.Context, questionId int64) {
	questions, err := h.questionSrv.Suggestions(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(questions, v1.NewQuestionFromModel))
}

// GetQuestionVoteTable returns the vote counts of every option
// (GET /question/{question_id}/vote_table)
func (h *Handler) GetQuestionVoteTable(c *gin.Context, questionId int64) {
	table, err := h.questionSrv.VoteTable(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, questionLogger, err)
		return
	}

	c.JSON(http.StatusOK, table)
}
