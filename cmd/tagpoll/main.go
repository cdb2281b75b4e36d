package main

import (
	"fmt"
	"os"

	"github.com/tagpoll/tagpoll/internal/config"
)

func main() {
	cfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
