package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/services"
)

const voteLogger = "vote_handler"

// (GET /vote)
func (h *Handler) ListVotes(c *gin.Context) {
	if err := h.devOnly(); err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	votes, err := h.voteSrv.List(c.Request.Context())
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(votes, v1.NewVoteFromModel))
}

// (GET /vote/question/{question_id})
func (h *Handler) ListQuestionVotes(c *gin.Context, questionId int64) {
	votes, err := h.voteSrv.ListByQuestion(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(votes, v1.NewVoteFromModel))
}

// (GET /vote/{vote_id})
func (h *Handler) GetVote(c *gin.Context, voteId int64) {
	v, err := h.voteSrv.Get(c.Request.Context(), voteId)
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewVoteFromModel(*v))
}

// CreateVote records the caller's vote on a question
// (POST /vote)
func (h *Handler) CreateVote(c *gin.Context) {
	var req v1.CreateVoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	id, err := h.voteSrv.Create(c.Request.Context(), profileID, services.CreateVoteParams{
		QuestionID:  *req.QuestionId,
		OptionID:    *req.OptionId,
		Header:      req.Header,
		Body:        req.Body,
		Description: req.Description,
		Active:      *req.Active,
	})
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.VoteCreated{VoteId: id})
}

// (PATCH /vote/{vote_id})
func (h *Handler) UpdateVote(c *gin.Context, voteId int64) {
	var req v1.UpdateVoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	err = h.voteSrv.Update(c.Request.Context(), profileID, voteId, services.UpdateVoteParams{
		Header:      req.Header,
		Body:        req.Body,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.Status(http.StatusOK)
}

// (DELETE /vote/{vote_id})
func (h *Handler) DeleteVote(c *gin.Context, voteId int64) {
	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	if err := h.voteSrv.Delete(c.Request.Context(), profileID, voteId); err != nil {
		h.respondError(c, voteLogger, err)
		return
	}

	c.Status(http.StatusOK)
}
