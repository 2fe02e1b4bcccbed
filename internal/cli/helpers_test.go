package cli

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chriserin/bspec/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf))
	return buf.String()
}

func writeFeature(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join("features", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func openCatalog(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join("features", "bspec.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func scenarioID(t *testing.T, sqlDB *sql.DB, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, sqlDB.QueryRow(`SELECT id FROM scenarios WHERE name = ?`, name).Scan(&id))
	return id
}

const mathFeature = `Feature: Math

Scenario: Addition
Given a number 2
And a number 3
When they are added
Then the result is 5
`
