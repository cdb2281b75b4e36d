package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tagpoll/tagpoll/internal/config"
)

var _ = Describe("profile handlers", func() {
	var env *apiEnv

	BeforeEach(func() {
		env = newAPIEnv(config.ModeDevelopment)
	})

	AfterEach(func() {
		env.Close()
	})

	It("should sign up, log in and read the profile without secrets", func() {
		// Given
		id, _ := env.signUp("alice")

		// When
		login := env.do(http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "pw"}, "")
		byName := env.do(http.MethodGet, "/api/profile/alice", nil, "")
		byID := env.do(http.MethodGet, fmt.Sprintf("/api/profile/%d", id), nil, "")

		// Then
		Expect(login.Code).To(Equal(http.StatusOK))
		Expect(byName.Code).To(Equal(http.StatusOK))
		Expect(byID.Code).To(Equal(http.StatusOK))

		var profile map[string]any
		Expect(json.Unmarshal(byName.Body.Bytes(), &profile)).To(Succeed())
		Expect(profile).To(HaveKeyWithValue("username", "alice"))
		Expect(profile).NotTo(HaveKey("password"))
		Expect(profile).NotTo(HaveKey("salt"))
		Expect(byID.Body.String()).To(MatchJSON(byName.Body.String()))
	})

	It("should answer login failures", func() {
		env.signUp("alice")

		wrong := env.do(http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "nope"}, "")
		unknown := env.do(http.MethodPost, "/api/login", map[string]any{"username": "bob", "password": "pw"}, "")

		Expect(wrong.Code).To(Equal(http.StatusForbidden))
		Expect(errorOf(wrong)).To(Equal("Incorrect password"))
		Expect(unknown.Code).To(Equal(http.StatusNotFound))
	})

	DescribeTable("rejecting invalid usernames",
		func(username string) {
			w := env.do(http.MethodPost, "/api/profile", map[string]any{"username": username, "password": "pw"}, "")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorOf(w)).To(HavePrefix("Invalid request parameters"))
		},
		Entry("empty", ""),
		Entry("leading digit", "1alice"),
		Entry("ipv4 address", "10.0.0.1"),
		Entry("ipv6 address", "::1"),
	)

	It("should reject a taken username", func() {
		env.signUp("alice")

		w := env.do(http.MethodPost, "/api/profile", map[string]any{"username": "alice", "password": "pw"}, "")

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorOf(w)).To(Equal("Already exists"))
	})

	It("should update the caller's profile", func() {
		_, token := env.signUp("alice")

		w := env.do(http.MethodPatch, "/api/profile", map[string]any{"body": "bio", "password": "new"}, token)
		Expect(w.Code).To(Equal(http.StatusOK))

		login := env.do(http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "new"}, "")
		Expect(login.Code).To(Equal(http.StatusOK))

		profile := env.do(http.MethodGet, "/api/profile/alice", nil, "")
		Expect(profile.Body.String()).To(ContainSubstring(`"body":"bio"`))
	})

	It("should rename a profile that has questions and tags", func() {
		_, token := env.signUp("alice")
		env.create("/api/question", "question_id", map[string]any{"prompt": "q", "description": "d"}, token)
		tag := env.create("/api/tag", "tag_id", map[string]any{"name": "t"}, token)
		Expect(env.do(http.MethodPost, "/api/tag/profile", map[string]any{"tag_id": tag}, token).Code).To(Equal(http.StatusOK))

		w := env.do(http.MethodPatch, "/api/profile", map[string]any{"username": "alicia"}, token)
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

		Expect(env.do(http.MethodGet, "/api/profile/alicia", nil, "").Code).To(Equal(http.StatusOK))
		Expect(env.do(http.MethodGet, "/api/profile/alice", nil, "").Code).To(Equal(http.StatusNotFound))
		login := env.do(http.MethodPost, "/api/login", map[string]any{"username": "alicia", "password": "pw"}, "")
		Expect(login.Code).To(Equal(http.StatusOK))
	})

	It("should require a token to update a profile", func() {
		missing := env.do(http.MethodPatch, "/api/profile", map[string]any{"body": "bio"}, "")
		invalid := env.do(http.MethodPatch, "/api/profile", map[string]any{"body": "bio"}, "garbage")

		Expect(missing.Code).To(Equal(http.StatusForbidden))
		Expect(errorOf(missing)).To(Equal("Missing Authorization header"))
		Expect(invalid.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 404 for IP address lookups", func() {
		w := env.do(http.MethodGet, "/api/profile/127.0.0.1x", nil, "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = env.do(http.MethodGet, "/api/profile/::1", nil, "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})

var _ = Describe("production mode", func() {
	var env *apiEnv

	BeforeEach(func() {
		env = newAPIEnv(config.ModeProduction)
	})

	AfterEach(func() {
		env.Close()
	})

	DescribeTable("hiding development listings",
		func(path string) {
			w := env.do(http.MethodGet, path, nil, "")

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(errorOf(w)).To(Equal("Not available in production"))
		},
		Entry("profiles", "/api/profile"),
		Entry("questions", "/api/question"),
		Entry("options", "/api/option"),
		Entry("votes", "/api/vote"),
	)

	It("should still list tags", func() {
		w := env.do(http.MethodGet, "/api/tag", nil, "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`[]`))
	})
})
