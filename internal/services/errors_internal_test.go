package services

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tagpoll/tagpoll/internal/store"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

var _ = Describe("translateStoreError", func() {
	dbErr := func(kind store.Kind) error {
		return &store.DBError{Kind: kind, Err: errors.New("constraint")}
	}

	It("should map every constraint kind to a service error", func() {
		Expect(srvErrors.IsResourceAlreadyExistsError(translateStoreError(dbErr(store.KindDuplicateKey), "tag"))).To(BeTrue())
		Expect(srvErrors.IsReferencedResourceNotFoundError(translateStoreError(dbErr(store.KindMissingReferencedRow), "tag"))).To(BeTrue())

		err := translateStoreError(dbErr(store.KindRowReferenced), "tag")
		Expect(srvErrors.IsResourceStillReferencedError(err)).To(BeTrue())
		var referenced *srvErrors.ResourceStillReferencedError
		Expect(errors.As(err, &referenced)).To(BeTrue())
		Expect(referenced.Resource()).To(Equal("tag"))
	})

	It("should pass other errors through", func() {
		err := dbErr(store.KindUnknownDriver)
		Expect(translateStoreError(err, "tag")).To(Equal(err))
	})
})
