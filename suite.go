// Package bspec runs behavior-spec documents against step definitions
// registered per feature name. Feature files are parsed by the gherkin
// subpackage; step sets bind step text to Go functions through regular
// expressions, and a Suite ties the two together for use from Go tests.
package bspec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chriserin/bspec/gherkin"
	"github.com/chriserin/bspec/internal/ui"
)

// Suite parses feature files and runs them against the registered step
// sets. The zero value scans features/*.feature in English and prints
// to stdout.
type Suite struct {
	Dir      string          // directory scanned for *.feature files, default "features"
	Paths    []string        // explicit files, overriding Dir when set
	Language string          // keyword language code, default "en"
	Out      io.Writer       // summary destination, default os.Stdout
	Logger   *zerolog.Logger // step tracing, disabled when nil
}

// Result aggregates a full suite run.
type Result struct {
	Features []FeatureResult
}

// Tally counts scenario outcomes across the suite.
func (r *Result) Tally() (passed, failed, undefined int) {
	for _, fr := range r.Features {
		for i := range fr.Scenarios {
			switch fr.Scenarios[i].Outcome() {
			case Failed:
				failed++
			case Undefined:
				undefined++
			default:
				passed++
			}
		}
	}
	return passed, failed, undefined
}

// Passed reports whether every scenario in the suite passed.
func (r *Result) Passed() bool {
	_, failed, undefined := r.Tally()
	return failed == 0 && undefined == 0
}

// Run parses every feature file, executes the scenarios, and prints a
// per-scenario report. The returned error covers setup problems and
// parse failures; step failures land in the Result instead.
func (s *Suite) Run() (*Result, error) {
	lang, err := gherkin.LoadLanguage(s.language())
	if err != nil {
		return nil, err
	}

	paths := s.Paths
	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(s.dir(), "*.feature"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.dir(), err)
		}
		sort.Strings(paths)
	}

	w := s.out()
	parser := gherkin.NewParser(lang, gherkin.WithResolver(Resolve))
	runner := NewRunner(WithLogger(s.logger()))

	result := &Result{}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		features, err := parser.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, feature := range features {
			fr := runner.RunFeature(feature)
			result.Features = append(result.Features, fr)

			ui.RunHeader(w, feature.Name)
			for i := range fr.Scenarios {
				sr := &fr.Scenarios[i]
				switch sr.Outcome() {
				case Failed:
					ui.RunFail(w, sr.Scenario, firstError(sr))
				case Undefined:
					ui.RunUndefined(w, sr.Scenario)
				default:
					ui.RunPass(w, sr.Scenario)
				}
			}
		}
	}

	passed, failed, undefined := result.Tally()
	ui.RunSummary(w, passed, failed, undefined)
	return result, nil
}

// RunT runs the suite as nested subtests, one per feature and scenario,
// failing the test for every step that did not pass.
func (s *Suite) RunT(t *testing.T) {
	result, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	for _, fr := range result.Features {
		t.Run(fr.Feature.Name, func(t *testing.T) {
			for i := range fr.Scenarios {
				sr := &fr.Scenarios[i]
				t.Run(sr.Scenario, func(t *testing.T) {
					for _, step := range sr.Steps {
						switch step.Status {
						case Failed:
							t.Errorf("step %q failed: %v", step.Text, step.Err)
						case Undefined:
							t.Errorf("step %q has no definition", step.Text)
						}
					}
				})
			}
		})
	}
}

func firstError(sr *ScenarioResult) error {
	for _, step := range sr.Steps {
		if step.Err != nil {
			return step.Err
		}
	}
	return nil
}

func (s *Suite) dir() string {
	if s.Dir == "" {
		return "features"
	}
	return s.Dir
}

func (s *Suite) language() string {
	if s.Language == "" {
		return "en"
	}
	return s.Language
}

func (s *Suite) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s *Suite) logger() zerolog.Logger {
	if s.Logger == nil {
		return zerolog.Nop()
	}
	return *s.Logger
}
