package bspec

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/chriserin/bspec/gherkin"
)

var (
	tableType = reflect.TypeOf((*gherkin.DataTable)(nil))
	docType   = reflect.TypeOf((*gherkin.DocString)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// StepSet holds the step definitions for one feature. Definitions are
// keyword-scoped: a Given step only ever matches Given definitions.
type StepSet struct {
	defs []*stepDef
}

type stepDef struct {
	kind    gherkin.Keyword
	pattern *regexp.Regexp
	fn      reflect.Value
}

// NewStepSet returns an empty step set ready for chained registration.
func NewStepSet() *StepSet {
	return &StepSet{}
}

// Given registers fn for Given steps whose text matches pattern. The
// pattern's capture groups fill fn's leading parameters (string, int,
// int64, float64, bool); an optional final *gherkin.DataTable or
// *gherkin.DocString parameter receives the step's attachment, and an
// optional error return fails the step. Invalid patterns or function
// shapes panic at registration.
func (s *StepSet) Given(pattern string, fn any) *StepSet {
	return s.add(gherkin.KwGiven, pattern, fn)
}

// When registers fn for When steps whose text matches pattern.
func (s *StepSet) When(pattern string, fn any) *StepSet {
	return s.add(gherkin.KwWhen, pattern, fn)
}

// Then registers fn for Then steps whose text matches pattern.
func (s *StepSet) Then(pattern string, fn any) *StepSet {
	return s.add(gherkin.KwThen, pattern, fn)
}

func (s *StepSet) add(kind gherkin.Keyword, pattern string, fn any) *StepSet {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("bspec: step %q: %v", pattern, err))
	}
	v := reflect.ValueOf(fn)
	if err := validateStepFunc(v, re.NumSubexp()); err != nil {
		panic(fmt.Sprintf("bspec: step %q: %v", pattern, err))
	}
	s.defs = append(s.defs, &stepDef{kind: kind, pattern: re, fn: v})
	return s
}

// find returns the first definition of the step's kind whose pattern
// matches text, with the captured groups.
func (s *StepSet) find(kind gherkin.Keyword, text string) (*stepDef, []string) {
	for _, def := range s.defs {
		if def.kind != kind {
			continue
		}
		if m := def.pattern.FindStringSubmatch(text); m != nil {
			return def, m[1:]
		}
	}
	return nil, nil
}

func validateStepFunc(v reflect.Value, captures int) error {
	if v.Kind() != reflect.Func {
		return fmt.Errorf("implementation must be a func, got %s", v.Kind())
	}
	t := v.Type()
	if t.NumOut() > 1 {
		return fmt.Errorf("implementation may return at most an error")
	}
	if t.NumOut() == 1 && t.Out(0) != errorType {
		return fmt.Errorf("implementation return type must be error, got %s", t.Out(0))
	}

	values := 0
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if in == tableType || in == docType {
			if i != t.NumIn()-1 {
				return fmt.Errorf("%s parameter must be last", in)
			}
			continue
		}
		switch in.Kind() {
		case reflect.String, reflect.Int, reflect.Int64, reflect.Float64, reflect.Bool:
			values++
		default:
			return fmt.Errorf("unsupported parameter type %s", in)
		}
	}
	if values != captures {
		return fmt.Errorf("pattern captures %d values but func takes %d", captures, values)
	}
	return nil
}

// call invokes the definition with captures converted to its parameter
// types and the step's attachment bound to a trailing table or
// doc-string parameter.
func (d *stepDef) call(captures []string, step *gherkin.Step) error {
	t := d.fn.Type()
	args := make([]reflect.Value, 0, t.NumIn())
	next := 0
	for i := 0; i < t.NumIn(); i++ {
		switch in := t.In(i); in {
		case tableType:
			if step.Table == nil {
				return fmt.Errorf("step has no data table")
			}
			args = append(args, reflect.ValueOf(step.Table))
		case docType:
			if step.DocString == nil {
				return fmt.Errorf("step has no doc string")
			}
			args = append(args, reflect.ValueOf(step.DocString))
		default:
			arg, err := convertCapture(captures[next], in)
			if err != nil {
				return err
			}
			args = append(args, arg)
			next++
		}
	}

	out := d.fn.Call(args)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

func convertCapture(raw string, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t), nil
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("converting %q to int: %w", raw, err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("converting %q to int64: %w", raw, err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("converting %q to float64: %w", raw, err)
		}
		return reflect.ValueOf(f).Convert(t), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("converting %q to bool: %w", raw, err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported parameter type %s", t)
}
