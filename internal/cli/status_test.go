package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdate_AppendsHistory(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "math.feature", mathFeature)
	runSync(t)

	sqlDB := openCatalog(t)
	id := scenarioID(t, sqlDB, "Addition")

	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, fmt.Sprintf("#%d", id), "pending"))
	require.NoError(t, RunStatusUpdate(&buf, fmt.Sprintf("%d", id), "passing"))

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM statuses WHERE scenario_id = ?`, id).Scan(&count))
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf("#%d", id))
	assert.Contains(t, out, "passing")
}

func TestStatusUpdate_RejectsUnknownStatus(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "math.feature", mathFeature)
	runSync(t)

	var buf bytes.Buffer
	err := RunStatusUpdate(&buf, "1", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestStatusUpdate_RejectsUnknownScenario(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunStatusUpdate(&buf, "999", "passing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStatusUpdate_RejectsMalformedID(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunStatusUpdate(&buf, "abc", "passing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario ID")
}

func TestStatusReport_CountsByStatus(t *testing.T) {
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

	buf.Reset()
	require.NoError(t, RunStatusReport(&buf))
	out := buf.String()
	assert.Contains(t, out, "Scenarios: 2")
	assert.Contains(t, out, "passing: 1")
	assert.Contains(t, out, "no-activity: 1")
}

func TestStatusReport_EmptyCatalog(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusReport(&buf))
	assert.Contains(t, buf.String(), "Scenarios: 0")
}
