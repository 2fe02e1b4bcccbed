package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runList(t *testing.T, statusFilter string, noActivity bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, statusFilter, noActivity))
	return buf.String()
}

func TestList_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunList(&buf, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bspec init")
}

func TestList_EmptyCatalogPrintsNothing(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Empty(t, runList(t, "", false))
}

func TestList_ShowsScenariosWithStatus(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "math.feature", mathFeature)
	runSync(t)

	sqlDB := openCatalog(t)
	id := scenarioID(t, sqlDB, "Addition")

	out := runList(t, "", false)
	assert.Contains(t, out, fmt.Sprintf("#%d", id))
	assert.Contains(t, out, "math.feature")
	assert.Contains(t, out, "Addition")
	assert.Contains(t, out, "no-activity")
}

func TestList_FiltersByStatus(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "math.feature", mathFeature+`
Scenario: Subtraction
Given a number 5
When I subtract 3
Then the result is 2
`)
	runSync(t)

	sqlDB := openCatalog(t)
	id := scenarioID(t, sqlDB, "Addition")
	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, fmt.Sprintf("%d", id), "passing"))

	out := runList(t, "passing", false)
	assert.Contains(t, out, "Addition")
	assert.NotContains(t, out, "Subtraction")
}

func TestList_NoActivityFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "math.feature", mathFeature+`
Scenario: Subtraction
Given a number 5
When I subtract 3
Then the result is 2
`)
	runSync(t)

	sqlDB := openCatalog(t)
	id := scenarioID(t, sqlDB, "Addition")
	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, fmt.Sprintf("%d", id), "pending"))

	out := runList(t, "", true)
	assert.NotContains(t, out, "Addition")
	assert.Contains(t, out, "Subtraction")
}
