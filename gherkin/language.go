package gherkin

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keyword identifies one of the nine keyword categories the grammar
// recognizes.
type Keyword int

const (
	KwFeature Keyword = iota
	KwBackground
	KwScenario
	KwOutline
	KwGiven
	KwWhen
	KwThen
	KwAnd
	KwExamples
)

var keywordNames = [...]string{
	"Feature",
	"Background",
	"Scenario",
	"Scenario Outline",
	"Given",
	"When",
	"Then",
	"And",
	"Examples",
}

func (k Keyword) String() string {
	return keywordNames[k]
}

// Language is the keyword table for one language code. Each category
// holds its candidate prefixes in registration order; block keywords
// carry their trailing colon and step keywords their trailing space, so
// a plain prefix comparison is a full keyword match.
type Language struct {
	Code string
	Name string

	keywords map[Keyword][]string
}

//go:embed languages.yaml
var languagesYAML []byte

var languages = mustLoadLanguages(languagesYAML)

type languageEntry struct {
	Name       string   `yaml:"name"`
	Feature    []string `yaml:"feature"`
	Background []string `yaml:"background"`
	Scenario   []string `yaml:"scenario"`
	Outline    []string `yaml:"outline"`
	Examples   []string `yaml:"examples"`
	Given      []string `yaml:"given"`
	When       []string `yaml:"when"`
	Then       []string `yaml:"then"`
	And        []string `yaml:"and"`
}

func mustLoadLanguages(data []byte) map[string]*Language {
	var entries map[string]languageEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		panic(fmt.Sprintf("gherkin: parsing languages.yaml: %v", err))
	}

	langs := make(map[string]*Language, len(entries))
	for code, e := range entries {
		lang := &Language{
			Code: code,
			Name: e.Name,
			keywords: map[Keyword][]string{
				KwFeature:    e.Feature,
				KwBackground: e.Background,
				KwScenario:   e.Scenario,
				KwOutline:    e.Outline,
				KwExamples:   e.Examples,
				KwGiven:      e.Given,
				KwWhen:       e.When,
				KwThen:       e.Then,
				KwAnd:        e.And,
			},
		}
		if lang.Name == "" {
			panic(fmt.Sprintf("gherkin: language %q has no name", code))
		}
		for kw, candidates := range lang.keywords {
			if len(candidates) == 0 {
				panic(fmt.Sprintf("gherkin: language %q has no %s keywords", code, kw))
			}
		}
		langs[code] = lang
	}
	return langs
}

// LoadLanguage returns the keyword table for code. Unknown codes are an
// error, never an empty table.
func LoadLanguage(code string) (*Language, error) {
	lang, ok := languages[code]
	if !ok {
		return nil, fmt.Errorf("unknown language %q", code)
	}
	return lang, nil
}

// LanguageCodes returns the codes of every embedded language, sorted.
func LanguageCodes() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Candidates returns the category's keyword prefixes in match order.
func (l *Language) Candidates(k Keyword) []string {
	return append([]string(nil), l.keywords[k]...)
}

// Matches reports whether line begins with one of the category's
// keywords, ignoring case and leading whitespace.
func (l *Language) Matches(line string, k Keyword) bool {
	return l.match(line, k) != ""
}

// Strip removes the matched keyword and surrounding whitespace from
// line. A line that matches nothing comes back trimmed but otherwise
// whole; callers are expected to test Matches first.
func (l *Language) Strip(line string, k Keyword) string {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.TrimSpace(trimmed[len(l.match(line, k)):])
}

// match returns the first candidate that prefixes the left-trimmed
// line, comparing case-insensitively, or "" when none does.
func (l *Language) match(line string, k Keyword) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, kw := range l.keywords[k] {
		if len(trimmed) >= len(kw) && strings.EqualFold(trimmed[:len(kw)], kw) {
			return kw
		}
	}
	return ""
}
