package services

import (
	"context"
	"fmt"

	"github.com/tagpoll/tagpoll/internal/auth"
	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/store"
	"github.com/tagpoll/tagpoll/internal/util"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

// Session is the result of a sign up or a login.
type Session struct {
	ProfileID int64
	Token     string
}

type ProfileService struct {
	lc   *store.Lifecycle
	auth *auth.Authenticator
}

func NewProfileService(lc *store.Lifecycle, a *auth.Authenticator) *ProfileService {
	return &ProfileService{lc: lc, auth: a}
}

type CreateProfileParams struct {
	Username    string
	Password    string
	Description *string
	Body        *string
}

type UpdateProfileParams struct {
	Username    *string
	Password    *string
	Description *string
	Body        *string
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Profile().List(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Profile().Get(ctx, id)
}

// GetByUsername never matches usernames that look like IP addresses.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	if util.IsIPAddress(username) {
		return nil, srvErrors.NewProfileNotFoundError(username)
	}
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return st.Profile().GetByUsername(ctx, username)
}

// Create stores a new profile with a salted password hash and returns a
// session for it.
func (s *ProfileService) Create(ctx context.Context, params CreateProfileParams) (*Session, error) {
	salt, err := auth.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(params.Password, salt)
	if err != nil {
		return nil, err
	}

	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}

	id, err := st.Profile().Create(ctx, models.Profile{
		Username:    params.Username,
		Password:    &hash,
		Salt:        &salt,
		Description: params.Description,
		Body:        params.Body,
	})
	if err != nil {
		return nil, translateStoreError(err, "profile")
	}

	return s.session(id)
}

// Login checks the password of username and returns a session.
func (s *ProfileService) Login(ctx context.Context, username, password string) (*Session, error) {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return nil, err
	}

	p, err := st.Profile().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if p.Password == nil || p.Salt == nil || !auth.CheckPassword(password, *p.Salt, *p.Password) {
		return nil, srvErrors.NewIncorrectPasswordError()
	}

	return s.session(p.ID)
}

// Update changes the caller's own profile. A new password is hashed with the
// stored salt.
func (s *ProfileService) Update(ctx context.Context, profileID int64, params UpdateProfileParams) error {
	st, err := s.lc.Store(ctx)
	if err != nil {
		return err
	}

	update := store.ProfileUpdate{
		Username:    params.Username,
		Description: params.Description,
		Body:        params.Body,
	}

	if params.Password != nil {
		p, err := st.Profile().Get(ctx, profileID)
		if srvErrors.IsResourceNotFoundError(err) {
			return ErrUnknownProfile
		}
		if err != nil {
			return err
		}

		salt := util.Deref(p.Salt)
		if salt == "" {
			if salt, err = auth.NewSalt(); err != nil {
				return err
			}
			update.Salt = &salt
		}

		hash, err := auth.HashPassword(*params.Password, salt)
		if err != nil {
			return err
		}
		update.Password = &hash
	}

	err = st.Profile().Update(ctx, profileID, update)
	if srvErrors.IsResourceNotFoundError(err) {
		return ErrUnknownProfile
	}
	return translateStoreError(err, "profile")
}

func (s *ProfileService) session(profileID int64) (*Session, error) {
	token, err := s.auth.Sign(profileID)
	if err != nil {
		return nil, fmt.Errorf("signing session of profile %d: %w", profileID, err)
	}
	return &Session{ProfileID: profileID, Token: token}, nil
}
