package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the API handlers. Path parameters arrive
// already parsed.
type ServerInterface interface {
	ListProfiles(c *gin.Context)
	CreateProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	GetProfile(c *gin.Context, idOrUsername string)
	Login(c *gin.Context)

	ListQuestions(c *gin.Context)
	CreateQuestion(c *gin.Context)
	GetQuestion(c *gin.Context, questionId int64)
	UpdateQuestion(c *gin.Context, questionId int64)
	GetQuestionSuggestions(c *gin.Context, questionId int64)
	GetQuestionVoteTable(c *gin.Context, questionId int64)

	ListOptions(c *gin.Context)
	CreateOption(c *gin.Context)
	ListQuestionOptions(c *gin.Context, questionId int64)
	GetOption(c *gin.Context, optionId int64)
	UpdateOption(c *gin.Context, optionId int64)

	ListVotes(c *gin.Context)
	CreateVote(c *gin.Context)
	ListQuestionVotes(c *gin.Context, questionId int64)
	GetVote(c *gin.Context, voteId int64)
	UpdateVote(c *gin.Context, voteId int64)
	DeleteVote(c *gin.Context, voteId int64)

	ListTags(c *gin.Context)
	CreateTag(c *gin.Context)
	ListProfileTags(c *gin.Context, profileId int64)
	TagProfile(c *gin.Context)
	ListQuestionTags(c *gin.Context, questionId int64)
	TagQuestion(c *gin.Context)
	GetTag(c *gin.Context, tagId int64)
	UpdateTag(c *gin.Context, tagId int64)
	ListTagQuestions(c *gin.Context, tagId int64, params ListTagQuestionsParams)
}

// MiddlewareFunc runs after the parameters of a route are parsed and before
// its handler. Aborting the context skips the handler.
type MiddlewareFunc func(c *gin.Context)

type GinServerOptions struct {
	BaseURL     string
	Middlewares []MiddlewareFunc
	// ErrorHandler answers requests whose parameters do not parse.
	ErrorHandler func(*gin.Context, error, int)
}

func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	r := routes{router: router, options: options}
	if r.options.ErrorHandler == nil {
		r.options.ErrorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	r.plain(http.MethodGet, "/profile", si.ListProfiles)
	r.plain(http.MethodPost, "/profile", si.CreateProfile)
	r.plain(http.MethodPatch, "/profile", si.UpdateProfile)
	r.add(http.MethodGet, "/profile/:id_or_username", func(c *gin.Context) (func(), error) {
		var idOrUsername string
		if err := bindPath(c, "id_or_username", &idOrUsername); err != nil {
			return nil, err
		}
		return func() { si.GetProfile(c, idOrUsername) }, nil
	})
	r.plain(http.MethodPost, "/login", si.Login)

	r.plain(http.MethodGet, "/question", si.ListQuestions)
	r.plain(http.MethodPost, "/question", si.CreateQuestion)
	r.withID(http.MethodGet, "/question/:question_id", si.GetQuestion)
	r.withID(http.MethodPatch, "/question/:question_id", si.UpdateQuestion)
	r.withID(http.MethodGet, "/question/:question_id/suggestions", si.GetQuestionSuggestions)
	r.withID(http.MethodGet, "/question/:question_id/vote_table", si.GetQuestionVoteTable)

	r.plain(http.MethodGet, "/option", si.ListOptions)
	r.plain(http.MethodPost, "/option", si.CreateOption)
	r.withID(http.MethodGet, "/option/question/:question_id", si.ListQuestionOptions)
	r.withID(http.MethodGet, "/option/:option_id", si.GetOption)
	r.withID(http.MethodPatch, "/option/:option_id", si.UpdateOption)

	r.plain(http.MethodGet, "/vote", si.ListVotes)
	r.plain(http.MethodPost, "/vote", si.CreateVote)
	r.withID(http.MethodGet, "/vote/question/:question_id", si.ListQuestionVotes)
	r.withID(http.MethodGet, "/vote/:vote_id", si.GetVote)
	r.withID(http.MethodPatch, "/vote/:vote_id", si.UpdateVote)
	r.withID(http.MethodDelete, "/vote/:vote_id", si.DeleteVote)

	r.plain(http.MethodGet, "/tag", si.ListTags)
	r.plain(http.MethodPost, "/tag", si.CreateTag)
	r.withID(http.MethodGet, "/tag/profile/:profile_id", si.ListProfileTags)
	r.plain(http.MethodPost, "/tag/profile", si.TagProfile)
	r.withID(http.MethodGet, "/tag/question/:question_id", si.ListQuestionTags)
	r.plain(http.MethodPost, "/tag/question", si.TagQuestion)
	r.withID(http.MethodGet, "/tag/:tag_id", si.GetTag)
	r.withID(http.MethodPatch, "/tag/:tag_id", si.UpdateTag)
	r.add(http.MethodGet, "/tag/:tag_id/questions", func(c *gin.Context) (func(), error) {
		var tagID int64
		if err := bindPath(c, "tag_id", &tagID); err != nil {
			return nil, err
		}
		var params ListTagQuestionsParams
		if err := runtime.BindQueryParameter("form", true, false, "page", c.Request.URL.Query(), &params.Page); err != nil {
			return nil, fmt.Errorf("Invalid format for parameter page: %w", err)
		}
		return func() { si.ListTagQuestions(c, tagID, params) }, nil
	})
}

type routes struct {
	router  gin.IRouter
	options GinServerOptions
}

// add registers a route whose bind step parses the parameters and returns the
// call to the handler.
func (r routes) add(method, path string, bind func(c *gin.Context) (func(), error)) {
	r.router.Handle(method, r.options.BaseURL+path, func(c *gin.Context) {
		call, err := bind(c)
		if err != nil {
			r.options.ErrorHandler(c, err, http.StatusBadRequest)
			return
		}
		for _, middleware := range r.options.Middlewares {
			middleware(c)
			if c.IsAborted() {
				return
			}
		}
		call()
	})
}

func (r routes) plain(method, path string, handler func(c *gin.Context)) {
	r.add(method, path, func(c *gin.Context) (func(), error) {
		return func() { handler(c) }, nil
	})
}

// withID registers a route with one integer path parameter, the last one in
// path.
func (r routes) withID(method, path string, handler func(c *gin.Context, id int64)) {
	name := lastParam(path)
	r.add(method, path, func(c *gin.Context) (func(), error) {
		var id int64
		if err := bindPath(c, name, &id); err != nil {
			return nil, err
		}
		return func() { handler(c, id) }, nil
	})
}

func bindPath(c *gin.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), dest,
		runtime.BindStyledParameterOptions{Explode: false, Required: true})
	if err != nil {
		return fmt.Errorf("Invalid format for parameter %s: %w", name, err)
	}
	return nil
}

func lastParam(path string) string {
	name, _, _ := strings.Cut(path[strings.LastIndex(path, ":")+1:], "/")
	return name
}
