package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/bspec/gherkin"
)

func TestLangs_ListsEveryEmbeddedLanguage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunLangs(&buf))
	out := buf.String()

	for _, code := range gherkin.LanguageCodes() {
		assert.Contains(t, out, code)
	}
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "Portuguese")
}

func TestLangs_ShowsPrimaryKeywords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunLangs(&buf))

	var enLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "English") {
			enLine = line
			break
		}
	}
	require.NotEmpty(t, enLine)
	assert.Contains(t, enLine, "Feature")
	assert.Contains(t, enLine, "Given")
	assert.Contains(t, enLine, "When")
	assert.Contains(t, enLine, "Then")
}
