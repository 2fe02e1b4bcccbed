package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/gherkin"
	"github.com/chriserin/bspec/internal/db"
	"github.com/chriserin/bspec/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a scenario by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, rawID string) error {
	rawID = strings.TrimPrefix(rawID, "#")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scenario ID: %s", rawID)
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var (
		scenarioName string
		isOutline    bool
		featureName  string
		language     string
		filePath     string
	)
	err = sqlDB.QueryRow(`
		SELECT s.name, s.outline, feat.name, feat.language, f.file_path
		FROM scenarios s
		JOIN features feat ON s.feature_id = feat.id
		JOIN files f ON feat.file_id = f.id
		WHERE s.id = ?
	`, id).Scan(&scenarioName, &isOutline, &featureName, &language, &filePath)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	var status string
	err = sqlDB.QueryRow(
		`SELECT status FROM statuses WHERE scenario_id = ? ORDER BY changed_at DESC, id DESC LIMIT 1`, id,
	).Scan(&status)
	if err != nil {
		status = "no-activity"
	}

	ui.ShowHeader(w, id, filepath.Base(filePath))
	ui.ShowStatus(w, status)

	// Re-parse the file to render the scenario as written.
	lang, err := gherkin.LoadLanguage(language)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	features, err := gherkin.NewParser(lang).Parse(content)
	if err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	feature := findFeature(features, featureName)
	if feature == nil {
		return fmt.Errorf("feature %q not found in %s", featureName, filePath)
	}

	if feature.Background != nil {
		fmt.Fprintln(w)
		ui.ShowGherkin(w, renderScenario("Background", feature.Background.Name, feature.Background.Steps, nil))
	}

	rendered, ok := renderByName(feature, scenarioName, isOutline)
	if !ok {
		return fmt.Errorf("scenario %q not found in %s; run `bspec sync`", scenarioName, filePath)
	}
	fmt.Fprintln(w)
	ui.ShowGherkin(w, rendered)

	// Status history, oldest first.
	rows, err := sqlDB.Query(
		`SELECT status, changed_at FROM statuses WHERE scenario_id = ? ORDER BY changed_at, id`, id,
	)
	if err != nil {
		return fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	printedHeader := false
	for rows.Next() {
		var st, changedAt string
		if err := rows.Scan(&st, &changedAt); err != nil {
			return fmt.Errorf("scanning status row: %w", err)
		}
		if !printedHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "history:")
			printedHeader = true
		}
		ui.HistoryLine(w, st, changedAt)
	}
	return rows.Err()
}

func findFeature(features []*gherkin.Feature, name string) *gherkin.Feature {
	for _, f := range features {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func renderByName(feature *gherkin.Feature, name string, outline bool) (string, bool) {
	if outline {
		for _, o := range feature.Outlines {
			if o.Name == name {
				return renderScenario("Scenario Outline", o.Name, o.Steps, o.Examples), true
			}
		}
		return "", false
	}
	for _, s := range feature.Scenarios {
		if s.Name == name {
			return renderScenario("Scenario", s.Name, s.Steps, nil), true
		}
	}
	return "", false
}

// renderScenario rewrites a parsed block in canonical English keywords,
// folding repeated kinds back into And lines.
func renderScenario(label, name string, steps []*gherkin.Step, examples *gherkin.DataTable) string {
	lines := []string{strings.TrimRight(label+": "+name, " ")}
	var prev gherkin.Keyword
	for i, step := range steps {
		keyword := step.Kind.String()
		if i > 0 && step.Kind == prev {
			keyword = "And"
		}
		lines = append(lines, "  "+keyword+" "+step.Text)
		if step.Table != nil {
			lines = append(lines, renderTable(step.Table, "    ")...)
		}
		if step.DocString != nil {
			lines = append(lines, `    """`)
			for _, l := range strings.Split(step.DocString.Content, "\n") {
				lines = append(lines, "    "+l)
			}
			lines = append(lines, `    """`)
		}
		prev = step.Kind
	}
	if examples != nil {
		lines = append(lines, "", "  Examples:")
		lines = append(lines, renderTable(examples, "    ")...)
	}
	return strings.Join(lines, "\n")
}

func renderTable(table *gherkin.DataTable, indent string) []string {
	lines := []string{indent + "| " + strings.Join(table.HeaderRow, " | ") + " |"}
	for _, row := range table.Rows {
		lines = append(lines, indent+"| "+strings.Join(row, " | ")+" |")
	}
	return lines
}
