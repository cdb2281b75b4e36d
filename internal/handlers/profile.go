package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/services"
	"github.com/tagpoll/tagpoll/internal/util"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

const profileLogger = "profile_handler"

// ListProfiles returns every profile
// (GET /profile)
func (h *Handler) ListProfiles(c *gin.Context) {
	if err := h.devOnly(); err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	profiles, err := h.profileSrv.List(c.Request.Context())
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConvertAll(profiles, v1.NewProfileFromModel))
}

// GetProfile returns a profile by numeric id or by username
// (GET /profile/{id_or_username})
func (h *Handler) GetProfile(c *gin.Context, idOrUsername string) {
	var (
		profile *models.Profile
		err     error
	)

	if util.StartsWithDigit(idOrUsername) {
		id, parseErr := strconv.ParseInt(idOrUsername, 10, 64)
		if parseErr != nil {
			h.respondError(c, profileLogger, srvErrors.NewInvalidParametersError("id_or_username"))
			return
		}
		profile, err = h.profileSrv.Get(c.Request.Context(), id)
	} else {
		profile, err = h.profileSrv.GetByUsername(c.Request.Context(), idOrUsername)
	}
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewProfileFromModel(*profile))
}

// CreateProfile signs up a new profile
// (POST /profile)
func (h *Handler) CreateProfile(c *gin.Context) {
	var req v1.CreateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	session, err := h.profileSrv.Create(c.Request.Context(), services.CreateProfileParams{
		Username:    req.Username,
		Password:    *req.Password,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewSessionFromModel(*session))
}

// UpdateProfile changes the caller's profile
// (PATCH /profile)
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req v1.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	profileID, err := h.caller(c)
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	err = h.profileSrv.Update(c.Request.Context(), profileID, services.UpdateProfileParams{
		Username:    req.Username,
		Password:    req.Password,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	c.Status(http.StatusOK)
}

// Login exchanges a username and password for a token
// (POST /login)
func (h *Handler) Login(c *gin.Context) {
	var req v1.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	session, err := h.profileSrv.Login(c.Request.Context(), req.Username, *req.Password)
	if err != nil {
		h.respondError(c, profileLogger, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewSessionFromModel(*session))
}
