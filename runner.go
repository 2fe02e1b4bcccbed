package bspec

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chriserin/bspec/gherkin"
)

// Status is the outcome of one executed step.
type Status int

const (
	Passed Status = iota
	Failed
	Undefined
	Skipped
)

var statusNames = [...]string{"passed", "failed", "undefined", "skipped"}

func (s Status) String() string {
	return statusNames[s]
}

// StepResult records one step execution. Text is the step text after
// placeholder substitution, so outline runs show their concrete values.
type StepResult struct {
	Step   *gherkin.Step
	Text   string
	Status Status
	Err    error
}

// ScenarioResult records one scenario run, backgrounds included.
type ScenarioResult struct {
	Feature  string
	Scenario string
	Steps    []StepResult
}

// Outcome is the scenario's overall status: the first non-passing
// step's status, or Passed.
func (r *ScenarioResult) Outcome() Status {
	for _, s := range r.Steps {
		if s.Status != Passed {
			return s.Status
		}
	}
	return Passed
}

// FeatureResult groups the scenario runs of one feature.
type FeatureResult struct {
	Feature   *gherkin.Feature
	Scenarios []ScenarioResult
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used to trace step execution.
func WithLogger(log zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// Runner executes parsed features against their step sets.
type Runner struct {
	log zerolog.Logger
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFeature runs every scenario of f, then every outline once per
// Examples row. The step set comes from f.Impl; a feature without one
// reports every step as undefined.
func (r *Runner) RunFeature(f *gherkin.Feature) FeatureResult {
	set, _ := f.Impl.(*StepSet)
	result := FeatureResult{Feature: f}

	for _, scenario := range f.Scenarios {
		steps := collectSteps(f.Background, scenario.Steps)
		result.Scenarios = append(result.Scenarios, r.runScenario(f.Name, set, scenario.Name, steps))
	}
	for _, outline := range f.Outlines {
		for i, record := range outline.Examples.Records() {
			name := fmt.Sprintf("%s [%d]", outline.Name, i+1)
			steps := instantiate(collectSteps(f.Background, outline.Steps), record)
			result.Scenarios = append(result.Scenarios, r.runScenario(f.Name, set, name, steps))
		}
	}
	return result
}

func (r *Runner) runScenario(feature string, set *StepSet, name string, steps []*gherkin.Step) ScenarioResult {
	result := ScenarioResult{Feature: feature, Scenario: name}
	halted := false
	for _, step := range steps {
		sr := StepResult{Step: step, Text: step.Text}
		switch {
		case halted:
			sr.Status = Skipped
		case set == nil:
			sr.Status = Undefined
		default:
			def, captures := set.find(step.Kind, step.Text)
			if def == nil {
				sr.Status = Undefined
			} else if err := r.execute(def, captures, step); err != nil {
				sr.Status = Failed
				sr.Err = err
			} else {
				sr.Status = Passed
			}
		}
		if sr.Status == Failed || sr.Status == Undefined {
			halted = true
		}
		r.log.Debug().
			Str("feature", feature).
			Str("scenario", name).
			Str("step", sr.Text).
			Stringer("status", sr.Status).
			Msg("step executed")
		result.Steps = append(result.Steps, sr)
	}
	return result
}

// execute runs one definition, turning a panic into a step failure.
func (r *Runner) execute(def *stepDef, captures []string, step *gherkin.Step) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("step panicked: %v", rec)
		}
	}()
	return def.call(captures, step)
}

// collectSteps prepends the background steps, when present, to a
// scenario's own steps.
func collectSteps(background *gherkin.Background, steps []*gherkin.Step) []*gherkin.Step {
	if background == nil {
		return steps
	}
	combined := make([]*gherkin.Step, 0, len(background.Steps)+len(steps))
	combined = append(combined, background.Steps...)
	return append(combined, steps...)
}

// instantiate substitutes one Examples record's values for <column>
// placeholders in step texts, table cells, and doc-strings.
func instantiate(steps []*gherkin.Step, record map[string]string) []*gherkin.Step {
	out := make([]*gherkin.Step, len(steps))
	for i, step := range steps {
		copied := &gherkin.Step{Kind: step.Kind, Text: substitute(step.Text, record)}
		if step.Table != nil {
			table := &gherkin.DataTable{
				HeaderRow: append([]string(nil), step.Table.HeaderRow...),
			}
			for _, row := range step.Table.Rows {
				cells := make([]string, len(row))
				for j, cell := range row {
					cells[j] = substitute(cell, record)
				}
				table.Rows = append(table.Rows, cells)
			}
			copied.Table = table
		}
		if step.DocString != nil {
			copied.DocString = &gherkin.DocString{Content: substitute(step.DocString.Content, record)}
		}
		out[i] = copied
	}
	return out
}

func substitute(s string, record map[string]string) string {
	for column, value := range record {
		s = strings.ReplaceAll(s, "<"+column+">", value)
	}
	return s
}
