package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tagpoll/tagpoll/internal/services"
	"github.com/tagpoll/tagpoll/internal/util"
	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

var _ = Describe("ProfileService", func() {
	var (
		env *serviceEnv
		srv *services.ProfileService
	)

	BeforeEach(func() {
		env = newServiceEnv()
		srv = services.NewProfileService(env.lc, env.auth)
	})

	AfterEach(func() {
		env.Close()
	})

	It("should sign up and log in", func() {
		// Given
		created, err := srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "hunter2"})
		Expect(err).NotTo(HaveOccurred())

		// When
		session, err := srv.Login(env.ctx, "alice", "hunter2")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(session.ProfileID).To(Equal(created.ProfileID))
		id, err := env.auth.Verify(session.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(created.ProfileID))
	})

	It("should never store the plain password", func() {
		created, err := srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "hunter2"})
		Expect(err).NotTo(HaveOccurred())

		p, err := srv.Get(env.ctx, created.ProfileID)

		Expect(err).NotTo(HaveOccurred())
		Expect(*p.Password).NotTo(Equal("hunter2"))
		Expect(*p.Salt).To(HaveLen(32))
	})

	It("should reject a wrong password", func() {
		_, err := srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "hunter2"})
		Expect(err).NotTo(HaveOccurred())

		_, err = srv.Login(env.ctx, "alice", "hunter3")

		Expect(srvErrors.IsIncorrectPasswordError(err)).To(BeTrue())
	})

	It("should report an unknown username as not found", func() {
		_, err := srv.Login(env.ctx, "nobody", "pw")

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should reject a taken username", func() {
		_, err := srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "a"})
		Expect(err).NotTo(HaveOccurred())

		_, err = srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "b"})

		Expect(srvErrors.IsResourceAlreadyExistsError(err)).To(BeTrue())
	})

	It("should keep the salt when the password changes", func() {
		// Given
		created, err := srv.Create(env.ctx, services.CreateProfileParams{Username: "alice", Password: "old"})
		Expect(err).NotTo(HaveOccurred())
		before, err := srv.Get(env.ctx, created.ProfileID)
		Expect(err).NotTo(HaveOccurred())

		// When
		err = srv.Update(env.ctx, created.ProfileID, services.UpdateProfileParams{Password: util.Ptr("new")})
		Expect(err).NotTo(HaveOccurred())

		// Then
		after, err := srv.Get(env.ctx, created.ProfileID)
		Expect(err).NotTo(HaveOccurred())
		Expect(*after.Salt).To(Equal(*before.Salt))

		_, err = srv.Login(env.ctx, "alice", "new")
		Expect(err).NotTo(HaveOccurred())
		_, err = srv.Login(env.ctx, "alice", "old")
		Expect(srvErrors.IsIncorrectPasswordError(err)).To(BeTrue())
	})

	It("should fail to update a profile that no longer exists", func() {
		err := srv.Update(env.ctx, 404, services.UpdateProfileParams{Body: util.Ptr("bio")})

		Expect(err).To(MatchError(services.ErrUnknownProfile))
	})

	It("should not look up IP address usernames", func() {
		_, err := srv.GetByUsername(env.ctx, "127.0.0.1")

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
