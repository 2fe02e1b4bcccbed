package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLanguage_Known(t *testing.T) {
	lang, err := LoadLanguage("en")

	require.NoError(t, err)
	assert.Equal(t, "en", lang.Code)
	assert.Equal(t, "English", lang.Name)
}

func TestLoadLanguage_UnknownCodeFails(t *testing.T) {
	lang, err := LoadLanguage("xx")

	require.Error(t, err)
	assert.Nil(t, lang)
	assert.Contains(t, err.Error(), `unknown language "xx"`)
}

func TestLanguageCodes_SortedAndLoadable(t *testing.T) {
	codes := LanguageCodes()

	require.NotEmpty(t, codes)
	assert.Contains(t, codes, "en")
	assert.Contains(t, codes, "pt")
	assert.IsIncreasing(t, codes)

	for _, code := range codes {
		lang, err := LoadLanguage(code)
		require.NoError(t, err)
		for kw := KwFeature; kw <= KwExamples; kw++ {
			assert.NotEmpty(t, lang.Candidates(kw), "%s has no %s keywords", code, kw)
		}
	}
}

func TestMatches_CaseInsensitive(t *testing.T) {
	lang, err := LoadLanguage("en")
	require.NoError(t, err)

	assert.True(t, lang.Matches("FEATURE: Math", KwFeature))
	assert.True(t, lang.Matches("feature: Math", KwFeature))
	assert.True(t, lang.Matches("gIvEn a number", KwGiven))
}

func TestMatches_IgnoresLeadingWhitespace(t *testing.T) {
	lang, err := LoadLanguage("en")
	require.NoError(t, err)

	assert.True(t, lang.Matches("   Scenario: Addition", KwScenario))
	assert.True(t, lang.Matches("\tGiven a number", KwGiven))
}

func TestMatches_RequiresKeywordBoundary(t *testing.T) {
	lang, err := LoadLanguage("en")
	require.NoError(t, err)

	assert.False(t, lang.Matches("Givenx 2", KwGiven))
	assert.False(t, lang.Matches("Thenceforth it held", KwThen))

	// The colon is part of every block keyword.
	assert.False(t, lang.Matches("Scenario Outline: X", KwScenario))
	assert.False(t, lang.Matches("Scenarios: X", KwScenario))
}

func TestMatches_StepKeywordDoesNotSwallowSiblings(t *testing.T) {
	es, err := LoadLanguage("es")
	require.NoError(t, err)

	// "Entonces" begins with the And candidate "E" but is not an And line.
	assert.False(t, es.Matches("Entonces el resultado es 5", KwAnd))
	assert.True(t, es.Matches("Entonces el resultado es 5", KwThen))

	ru, err := LoadLanguage("ru")
	require.NoError(t, err)

	assert.True(t, ru.Matches("Тогда результат равен 5", KwThen))
	assert.Equal(t, "результат равен 5", ru.Strip("Тогда результат равен 5", KwThen))
}

func TestMatches_CandidatesTriedInOrder(t *testing.T) {
	pt, err := LoadLanguage("pt")
	require.NoError(t, err)

	assert.Equal(t, "um número 2", pt.Strip("Dado um número 2", KwGiven))
	assert.Equal(t, "os números 2 e 3", pt.Strip("Dados os números 2 e 3", KwGiven))
}

func TestStrip_RemovesKeywordAndSurroundingWhitespace(t *testing.T) {
	lang, err := LoadLanguage("en")
	require.NoError(t, err)

	assert.Equal(t, "Math", lang.Strip("  Feature:   Math  ", KwFeature))
	assert.Equal(t, "a number 2", lang.Strip("Given a number 2", KwGiven))
	assert.Equal(t, "", lang.Strip("Background:", KwBackground))
}

func TestStrip_WithoutMatchReturnsTrimmedLine(t *testing.T) {
	lang, err := LoadLanguage("en")
	require.NoError(t, err)

	assert.Equal(t, "no keyword here", lang.Strip("  no keyword here ", KwGiven))
}

func TestKeyword_String(t *testing.T) {
	assert.Equal(t, "Feature", KwFeature.String())
	assert.Equal(t, "Scenario Outline", KwOutline.String())
	assert.Equal(t, "Given", KwGiven.String())
	assert.Equal(t, "Examples", KwExamples.String())
}
