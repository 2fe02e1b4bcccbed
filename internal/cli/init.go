package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bspec in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	// features directory
	_, err = os.Stat(cfg.FeaturesDir)
	dirExists := err == nil
	if err := os.MkdirAll(cfg.FeaturesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", cfg.FeaturesDir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", cfg.FeaturesDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", cfg.FeaturesDir)
	}

	// catalog database
	_, err = os.Stat(cfg.Database)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", cfg.Database)
	} else {
		fmt.Fprintf(w, "%s created\n", cfg.Database)
	}

	// config file
	_, err = os.Stat(".bspec.yaml")
	if err == nil {
		fmt.Fprintln(w, ".bspec.yaml already exists")
	} else {
		content := fmt.Sprintf("features_dir: %s\nlanguage: %s\n", cfg.FeaturesDir, cfg.Language)
		if err := os.WriteFile(".bspec.yaml", []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing .bspec.yaml: %w", err)
		}
		fmt.Fprintln(w, ".bspec.yaml created")
	}

	// gitignore
	msgs, err := ensureGitignore(cfg.Database)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
