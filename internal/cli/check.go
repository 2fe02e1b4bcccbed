package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/gherkin"
	"github.com/chriserin/bspec/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Parse feature files without touching the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, paths []string) error {
	cfg, err := loadConfig(len(paths) == 0)
	if err != nil {
		return err
	}
	lang, err := gherkin.LoadLanguage(cfg.Language)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
		}
		sort.Strings(paths)
	}

	parser := gherkin.NewParser(lang)
	failed := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			ui.ProblemLine(w, path, 0, err.Error())
			failed++
			continue
		}
		features, err := parser.Parse(content)
		if err != nil {
			line, msg := 0, err.Error()
			var syntaxErr *gherkin.SyntaxError
			if errors.As(err, &syntaxErr) {
				line = syntaxErr.Line
				msg = fmt.Sprintf("unexpected %q", syntaxErr.Text)
			}
			ui.ProblemLine(w, path, line, msg)
			failed++
			continue
		}

		scenarios := 0
		for _, f := range features {
			scenarios += len(f.Scenarios) + len(f.Outlines)
		}
		ui.CheckedLine(w, path, scenarios)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
