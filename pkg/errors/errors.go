package errors

import (
	"errors"
	"fmt"
)

type InvalidParametersError struct {
	reason string
}

func NewInvalidParametersError(reason string) *InvalidParametersError {
	return &InvalidParametersError{reason: reason}
}

func (e *InvalidParametersError) Error() string {
	if e.reason == "" {
		return "Invalid request parameters"
	}
	return fmt.Sprintf("Invalid request parameters: %s", e.reason)
}

func IsInvalidParametersError(err error) bool {
	var e *InvalidParametersError
	return errors.As(err, &e)
}

type InvalidAuthorizationError struct{}

func NewInvalidAuthorizationError() *InvalidAuthorizationError {
	return &InvalidAuthorizationError{}
}

func (e *InvalidAuthorizationError) Error() string {
	return "Invalid Authorization header: malformed or expired value"
}

func IsInvalidAuthorizationError(err error) bool {
	var e *InvalidAuthorizationError
	return errors.As(err, &e)
}

type MissingAuthenticationError struct{}

func NewMissingAuthenticationError() *MissingAuthenticationError {
	return &MissingAuthenticationError{}
}

func (e *MissingAuthenticationError) Error() string {
	return "Missing Authorization header"
}

func IsMissingAuthenticationError(err error) bool {
	var e *MissingAuthenticationError
	return errors.As(err, &e)
}

type NotOwnerError struct {
	resource string
	id       int64
}

func NewNotOwnerError(resource string, id int64) *NotOwnerError {
	return &NotOwnerError{resource: resource, id: id}
}

func (e *NotOwnerError) Error() string {
	return "Not owner"
}

func (e *NotOwnerError) Resource() string { return e.resource }

func IsNotOwnerError(err error) bool {
	var e *NotOwnerError
	return errors.As(err, &e)
}

type IncorrectPasswordError struct{}

func NewIncorrectPasswordError() *IncorrectPasswordError {
	return &IncorrectPasswordError{}
}

func (e *IncorrectPasswordError) Error() string {
	return "Incorrect password"
}

func IsIncorrectPasswordError(err error) bool {
	var e *IncorrectPasswordError
	return errors.As(err, &e)
}

type NotAvailableInProductionError struct{}

func NewNotAvailableInProductionError() *NotAvailableInProductionError {
	return &NotAvailableInProductionError{}
}

func (e *NotAvailableInProductionError) Error() string {
	return "Not available in production"
}

func IsNotAvailableInProductionError(err error) bool {
	var e *NotAvailableInProductionError
	return errors.As(err, &e)
}

type ResourceNotFoundError struct {
	resource string
	id       string
}

func NewResourceNotFoundError(resource string, id any) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: resource, id: fmt.Sprint(id)}
}

func NewProfileNotFoundError(id any) *ResourceNotFoundError {
	return NewResourceNotFoundError("profile", id)
}

func NewQuestionNotFoundError(id int64) *ResourceNotFoundError {
	return NewResourceNotFoundError("question", id)
}

func NewOptionNotFoundError(id int64) *ResourceNotFoundError {
	return NewResourceNotFoundError("option", id)
}

func NewTagNotFoundError(id int64) *ResourceNotFoundError {
	return NewResourceNotFoundError("tag", id)
}

func NewVoteNotFoundError(id int64) *ResourceNotFoundError {
	return NewResourceNotFoundError("vote", id)
}

func (e *ResourceNotFoundError) Error() string {
	if e.id == "" {
		return fmt.Sprintf("%s not found", e.resource)
	}
	return fmt.Sprintf("%s %s not found", e.resource, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type ReferencedResourceNotFoundError struct{}

func NewReferencedResourceNotFoundError() *ReferencedResourceNotFoundError {
	return &ReferencedResourceNotFoundError{}
}

func (e *ReferencedResourceNotFoundError) Error() string {
	return "Referenced resource not found"
}

func IsReferencedResourceNotFoundError(err error) bool {
	var e *ReferencedResourceNotFoundError
	return errors.As(err, &e)
}

type ResourceAlreadyExistsError struct {
	resource string
}

func NewResourceAlreadyExistsError(resource string) *ResourceAlreadyExistsError {
	return &ResourceAlreadyExistsError{resource: resource}
}

func (e *ResourceAlreadyExistsError) Error() string {
	return "Already exists"
}

func (e *ResourceAlreadyExistsError) Resource() string { return e.resource }

func IsResourceAlreadyExistsError(err error) bool {
	var e *ResourceAlreadyExistsError
	return errors.As(err, &e)
}

type ResourceStillReferencedError struct {
	resource string
}

func NewResourceStillReferencedError(resource string) *ResourceStillReferencedError {
	return &ResourceStillReferencedError{resource: resource}
}

func (e *ResourceStillReferencedError) Error() string {
	return "Resource is still referenced"
}

func (e *ResourceStillReferencedError) Resource() string { return e.resource }

func IsResourceStillReferencedError(err error) bool {
	var e *ResourceStillReferencedError
	return errors.As(err, &e)
}
