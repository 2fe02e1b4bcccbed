// Package cli wires the bspec command tree. Every command delegates to
// an exported RunX function taking an io.Writer so the behavior is
// testable without cobra in the way.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bspec",
	Short: "bspec — behavior specs for Go projects",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves settings and verifies the project was
// initialized, which every command except init and langs requires.
func loadConfig(requireInit bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if requireInit {
		if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("run `bspec init` first")
		}
	}
	return cfg, nil
}
