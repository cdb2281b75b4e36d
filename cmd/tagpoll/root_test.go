package main

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tagpoll/tagpoll/internal/config"
	"github.com/tagpoll/tagpoll/internal/store/migrations"
)

var _ = Describe("tagpoll command", func() {
	var (
		cfg *config.Configuration
		out *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		cfg, err = config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		out = &bytes.Buffer{}

		noColor := color.NoColor
		color.NoColor = true
		DeferCleanup(func() { color.NoColor = noColor })
	})

	writeConfig := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "tagpoll.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	run := func(args ...string) error {
		cmd := newRootCommand(cfg)
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	// Given a config file and a conflicting command line flag
	// When migrate runs
	// Then the flag should win and the file should fill the rest
	It("should layer the config file under command line flags", func() {
		path := writeConfig("mode: prod\nlog-level: warn\ndb-connect-retry-attempts: 3\ntoken-ttl: 1h\n")

		err := run("migrate", "--config", path, "--log-level", "error")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Mode).To(Equal(config.ModeProduction))
		Expect(cfg.LogLevel).To(Equal("error"))
		Expect(cfg.Database.ConnectRetryAttempts).To(Equal(3))
		Expect(cfg.Authentication.TokenTTL).To(Equal(time.Hour))
	})

	It("should print the applied migrations", func() {
		err := run("migrate", "--mode", "prod", "--log-level", "error")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("Migrations (prod mode)"))
		Expect(out.String()).To(ContainSubstring("applied  0001"))
		Expect(out.String()).To(ContainSubstring("applied  0003"))
	})

	It("should report a reset in dev mode", func() {
		err := run("migrate", "--mode", "dev", "--log-level", "error")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("schema reset"))
	})

	It("should reject an invalid configuration before doing any work", func() {
		err := run("migrate", "--db-driver", "mysql", "--log-level", "error")

		Expect(err).To(MatchError(ContainSubstring("invalid database driver")))
		Expect(out.String()).To(BeEmpty())
	})

	It("should fail on an unreadable config file", func() {
		err := run("migrate", "--config", filepath.Join(GinkgoT().TempDir(), "missing.yaml"))

		Expect(err).To(MatchError(ContainSubstring("failed to read config file")))
	})

	Context("printResult", func() {
		It("should say when nothing was applied", func() {
			printResult(out, migrations.Result{Mode: migrations.ModeProduction, Skipped: []int{1, 2}})

			Expect(out.String()).To(ContainSubstring("skipped  0002"))
			Expect(out.String()).To(ContainSubstring("database is up to date"))
		})
	})

	Context("newLogger", func() {
		It("should build json and console loggers", func() {
			_, err := newLogger("json", "info")
			Expect(err).NotTo(HaveOccurred())
			_, err = newLogger("console", "debug")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject unknown formats and levels", func() {
			_, err := newLogger("xml", "info")
			Expect(err).To(MatchError(ContainSubstring("invalid log format")))
			_, err = newLogger("json", "loud")
			Expect(err).To(MatchError(ContainSubstring("invalid log level")))
		})
	})
})
