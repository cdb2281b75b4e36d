package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/services"
)

const optionLogger = "option_handler"

// ListOptions returns every option
// (GET /option)
func (h *Handler) ListOptions(c *gin.Context) {
	if err := h.devOnly(); err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	options, err := h.optionSrv.List(c.Request.Context())
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(options, v1.NewOptionFromModel))
}

// ListQuestionOptions returns the options of a question
// (GET /option/question/{question_id})
func (h *Handler) ListQuestionOptions(c *gin.Context, questionId int64) {
	options, err := h.optionSrv.ListByQuestion(c.Request.Context(), questionId)
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(options, v1.NewOptionFromModel))
}

// (GET /option/{option_id})
func (h *Handler) GetOption(c *gin.Context, optionId int64) {
	o, err := h.optionSrv.Get(c.Request.Context(), optionId)
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewOptionFromModel(*o))
}

// (POST /option)
func (h *Handler) CreateOption(c *gin.Context) {
	var req v1.CreateOptionRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	id, err := h.optionSrv.Create(c.Request.Context(), profileID, services.CreateOptionParams{
		QuestionID:  *req.QuestionId,
		Prompt:      req.Prompt,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.OptionCreated{OptionId: id})
}

// (PATCH /option/{option_id})
func (h *Handler) UpdateOption(c *gin.Context, optionId int64) {
	var req v1.UpdateOptionRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	err = h.optionSrv.Update(c.Request.Context(), profileID, optionId, services.UpdateOptionParams{
		Prompt:      req.Prompt,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, optionLogger, err)
		return
	}

	c.Status(http.StatusOK)
}
