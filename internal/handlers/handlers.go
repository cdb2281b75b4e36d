package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/auth"
	"github.com/tagpoll/tagpoll/internal/services"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

var _ v1.ServerInterface = (*Handler)(nil)

type Handler struct {
	profileSrv  *services.ProfileService
	questionSrv *services.QuestionService
	optionSrv   *services.OptionService
	voteSrv     *services.VoteService
	tagSrv      *services.TagService
	auth        *auth.Authenticator
	production  bool
}

// Services groups the services the handlers delegate to.
type Services struct {
	Profile  *services.ProfileService
	Question *services.QuestionService
	Option   *services.OptionService
	Vote     *services.VoteService
	Tag      *services.TagService
}

func New(srv Services, a *auth.Authenticator, production bool) *Handler {
	return &Handler{
		profileSrv:  srv.Profile,
		questionSrv: srv.Question,
		optionSrv:   srv.Option,
		voteSrv:     srv.Vote,
		tagSrv:      srv.Tag,
		auth:        a,
		production:  production,
	}
}

// caller returns the profile id carried by the bearer token of the request.
func (h *Handler) caller(c *gin.Context) (int64, error) {
	return h.auth.ProfileFromHeader(c.GetHeader("Authorization"))
}

// devOnly fails in production mode.
func (h *Handler) devOnly() error {
	if h.production {
		return srvErrors.NewNotAvailableInProductionError()
	}
	return nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return srvErrors.NewInvalidParametersError(err.Error())
	}
	return nil
}

// Register adds every API route to router.
func (h *Handler) Register(router *gin.RouterGroup) error {
	if err := v1.RegisterValidators(); err != nil {
		return err
	}
	v1.RegisterHandlersWithOptions(router, h, v1.GinServerOptions{
		ErrorHandler: h.ParameterError,
		Middlewares:  []v1.MiddlewareFunc{h.nonNegativeIDs},
	})
	return nil
}

// nonNegativeIDs rejects negative ids in the path.
func (h *Handler) nonNegativeIDs(c *gin.Context) {
	for _, p := range c.Params {
		if strings.HasSuffix(p.Key, "_id") && strings.HasPrefix(p.Value, "-") {
			h.respondError(c, "handler", srvErrors.NewInvalidParametersError(p.Key+" must not be negative"))
			return
		}
	}
}
