package v1

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tagpoll/tagpoll/internal/models"
	"github.com/tagpoll/tagpoll/internal/util"
)

// RegisterValidators adds the "username" and "tagcategory" rules used by
// the request types to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("username", validUsername); err != nil {
		return err
	}
	return v.RegisterValidation("tagcategory", validTagCategory)
}

// validUsername rejects names that could be confused with a profile id or
// an IP address.
func validUsername(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return !util.StartsWithDigit(name) && !util.IsIPAddress(name)
}

func validTagCategory(fl validator.FieldLevel) bool {
	return models.TagCategory(fl.Field().String()) == models.TagCategoryIdentity
}
