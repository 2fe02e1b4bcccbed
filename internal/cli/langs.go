package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/gherkin"
	"github.com/chriserin/bspec/internal/ui"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the embedded keyword languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLangs(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}

func RunLangs(w io.Writer) error {
	for _, code := range gherkin.LanguageCodes() {
		lang, err := gherkin.LoadLanguage(code)
		if err != nil {
			return err
		}
		keywords := []string{
			primary(lang, gherkin.KwFeature),
			primary(lang, gherkin.KwGiven),
			primary(lang, gherkin.KwWhen),
			primary(lang, gherkin.KwThen),
		}
		ui.LangRow(w, code, lang.Name, strings.Join(keywords, " / "))
	}
	return nil
}

func primary(lang *gherkin.Language, k gherkin.Keyword) string {
	return strings.TrimSpace(strings.TrimSuffix(lang.Candidates(k)[0], ":"))
}
