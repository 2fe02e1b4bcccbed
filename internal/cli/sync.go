package cli

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/gherkin"
	"github.com/chriserin/bspec/internal/db"
	"github.com/chriserin/bspec/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the features directory and update the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	lang, err := gherkin.LoadLanguage(cfg.Language)
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	sort.Strings(matches)

	parser := gherkin.NewParser(lang)
	files, scenarios := 0, 0
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		features, err := parser.Parse(content)
		if err != nil {
			ui.ErrLine(w, path)
			continue
		}

		isNew, count, err := syncFile(sqlDB, cfg.Language, path, features)
		if err != nil {
			return err
		}
		if isNew {
			ui.NewLine(w, path)
		} else {
			ui.TrkLine(w, path)
		}
		files++
		scenarios += count
	}

	ui.SummaryLine(w, files, scenarios)
	return nil
}

// syncFile upserts one file's features and scenarios. Scenario rows are
// matched by name within their feature so IDs, and with them the status
// history, survive re-syncs.
func syncFile(sqlDB *sql.DB, language, path string, features []*gherkin.Feature) (bool, int, error) {
	var fileID int64
	isNew := false
	err := sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&fileID)
	switch {
	case err == sql.ErrNoRows:
		res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return false, 0, fmt.Errorf("inserting %s: %w", path, err)
		}
		fileID, _ = res.LastInsertId()
		isNew = true
	case err != nil:
		return false, 0, fmt.Errorf("querying %s: %w", path, err)
	default:
		if _, err := sqlDB.Exec(`UPDATE files SET updated_at = datetime('now') WHERE id = ?`, fileID); err != nil {
			return false, 0, fmt.Errorf("touching %s: %w", path, err)
		}
	}

	count := 0
	for pos, feature := range features {
		featureID, err := upsertFeature(sqlDB, fileID, feature.Name, language, pos)
		if err != nil {
			return false, 0, err
		}

		scenarioPos := 0
		for _, s := range feature.Scenarios {
			if err := upsertScenario(sqlDB, featureID, s.Name, false, len(s.Steps), 0, scenarioPos); err != nil {
				return false, 0, err
			}
			scenarioPos++
			count++
		}
		for _, o := range feature.Outlines {
			if err := upsertScenario(sqlDB, featureID, o.Name, true, len(o.Steps), len(o.Examples.Rows), scenarioPos); err != nil {
				return false, 0, err
			}
			scenarioPos++
			count++
		}
	}
	return isNew, count, nil
}

func upsertFeature(sqlDB *sql.DB, fileID int64, name, language string, position int) (int64, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM features WHERE file_id = ? AND name = ?`, fileID, name).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := sqlDB.Exec(
			`INSERT INTO features (file_id, name, language, position) VALUES (?, ?, ?, ?)`,
			fileID, name, language, position,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting feature %q: %w", name, err)
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("querying feature %q: %w", name, err)
	}
	_, err = sqlDB.Exec(
		`UPDATE features SET language = ?, position = ?, updated_at = datetime('now') WHERE id = ?`,
		language, position, id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating feature %q: %w", name, err)
	}
	return id, nil
}

func upsertScenario(sqlDB *sql.DB, featureID int64, name string, outline bool, steps, examples, position int) error {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE feature_id = ? AND name = ?`, featureID, name).Scan(&id)
	if err == sql.ErrNoRows {
		_, err := sqlDB.Exec(
			`INSERT INTO scenarios (feature_id, name, outline, steps, examples, position) VALUES (?, ?, ?, ?, ?, ?)`,
			featureID, name, outline, steps, examples, position,
		)
		if err != nil {
			return fmt.Errorf("inserting scenario %q: %w", name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("querying scenario %q: %w", name, err)
	}
	_, err = sqlDB.Exec(
		`UPDATE scenarios SET outline = ?, steps = ?, examples = ?, position = ?, updated_at = datetime('now') WHERE id = ?`,
		outline, steps, examples, position, id,
	)
	if err != nil {
		return fmt.Errorf("updating scenario %q: %w", name, err)
	}
	return nil
}
