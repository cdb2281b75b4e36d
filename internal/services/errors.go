package services

import (
	"errors"

	"github.com/tagpoll/tagpoll/internal/store"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

// ErrUnknownProfile is returned when an authenticated caller's profile no
// longer exists.
var ErrUnknownProfile = errors.New("unknown profile")

// translateStoreError maps constraint violations reported by the store to
// service errors. Other errors are returned unchanged.
func translateStoreError(err error, resource string) error {
	switch {
	case store.IsKind(err, store.KindDuplicateKey):
		return srvErrors.NewResourceAlreadyExistsError(resource)
	case store.IsKind(err, store.KindMissingReferencedRow):
		return srvErrors.NewReferencedResourceNotFoundError()
	case store.IsKind(err, store.KindRowReferenced):
		return srvErrors.NewResourceStillReferencedError(resource)
	}
	return err
}

func checkOwner(resource string, id, owner, caller int64) error {
	if owner != caller {
		return srvErrors.NewNotOwnerError(resource, id)
	}
	return nil
}
