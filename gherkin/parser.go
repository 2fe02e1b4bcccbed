// Package gherkin parses behavior-spec documents: Feature blocks made
// of an optional Background, Scenarios, and Scenario Outlines, whose
// steps may carry data tables and doc-strings. Keywords are looked up
// in a per-language table, so documents can be written in any of the
// embedded languages.
package gherkin

import "strings"

const docStringDelimiter = `"""`

// Resolver locates the step-implementation handle registered under a
// feature name.
type Resolver func(feature string) (impl any, ok bool)

// Option configures a Parser.
type Option func(*Parser)

// WithResolver supplies the lookup used to attach an implementation
// handle to each parsed feature. A lookup miss leaves Feature.Impl nil
// and never fails the parse.
func WithResolver(resolve Resolver) Option {
	return func(p *Parser) {
		p.resolve = resolve
	}
}

// Parser parses documents against one keyword table.
type Parser struct {
	lang    *Language
	resolve Resolver
}

func NewParser(lang *Language, opts ...Option) *Parser {
	p := &Parser{lang: lang}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a document holding one or more concatenated Feature
// blocks and returns them in document order. Parsing stops at the first
// error; the features fully parsed before it are still returned, and
// nothing is ever returned for the failing feature itself.
func (p *Parser) Parse(src []byte) ([]*Feature, error) {
	r := newReader(string(src))
	var features []*Feature
	for {
		skipBlank(r)
		if r.EOF() {
			return features, nil
		}
		line := r.ReadLine()
		if !p.lang.Matches(line, KwFeature) {
			return features, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
		}
		feature, err := p.parseFeature(r, p.lang.Strip(line, KwFeature))
		if err != nil {
			return features, err
		}
		features = append(features, feature)
	}
}

// parseFeature reads a feature body up to EOF or the next Feature line,
// which is left unconsumed for Parse. Lines that match no keyword are
// free-form description until the first block; after that they are
// syntax errors.
func (p *Parser) parseFeature(r *reader, name string) (*Feature, error) {
	feature := &Feature{Name: name}
	if p.resolve != nil {
		if impl, ok := p.resolve(name); ok {
			feature.Impl = impl
		}
	}

	blockSeen := false
	for {
		skipBlank(r)
		if r.EOF() {
			return feature, nil
		}
		line := r.Peek()
		switch {
		case p.lang.Matches(line, KwFeature):
			return feature, nil

		case p.lang.Matches(line, KwBackground):
			r.ReadLine()
			if feature.Background != nil {
				return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
			}
			background := &Background{Name: p.lang.Strip(line, KwBackground)}
			steps, err := p.parseChain(r, KwGiven)
			if err != nil {
				return nil, err
			}
			background.Steps = steps
			feature.Background = background
			blockSeen = true

		case p.lang.Matches(line, KwOutline):
			r.ReadLine()
			outline := &ScenarioOutline{Scenario: Scenario{Name: p.lang.Strip(line, KwOutline)}}
			if err := p.parseSteps(r, &outline.Scenario); err != nil {
				return nil, err
			}
			examples, err := p.parseExamples(r)
			if err != nil {
				return nil, err
			}
			outline.Examples = examples
			feature.Outlines = append(feature.Outlines, outline)
			blockSeen = true

		case p.lang.Matches(line, KwScenario):
			r.ReadLine()
			scenario := &Scenario{Name: p.lang.Strip(line, KwScenario)}
			if err := p.parseSteps(r, scenario); err != nil {
				return nil, err
			}
			feature.Scenarios = append(feature.Scenarios, scenario)
			blockSeen = true

		default:
			r.ReadLine()
			if blockSeen {
				return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
			}
		}
	}
}

// parseSteps reads the Given, When, and Then chains of a scenario, in
// that order, into a single step list.
func (p *Parser) parseSteps(r *reader, scenario *Scenario) error {
	for _, kw := range []Keyword{KwGiven, KwWhen, KwThen} {
		steps, err := p.parseChain(r, kw)
		if err != nil {
			return err
		}
		scenario.Steps = append(scenario.Steps, steps...)
	}
	return nil
}

// parseChain reads one keyword chain: a first line matching kw or And,
// then every And line that follows. Given and When chains must be
// followed by another line; only a Then chain may end the document.
func (p *Parser) parseChain(r *reader, kw Keyword) ([]*Step, error) {
	skipBlank(r)
	if r.EOF() {
		return nil, ErrUnexpectedEOF
	}
	line := r.ReadLine()
	var text string
	switch {
	case p.lang.Matches(line, kw):
		text = p.lang.Strip(line, kw)
	case p.lang.Matches(line, KwAnd):
		text = p.lang.Strip(line, KwAnd)
	default:
		return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
	}
	step := &Step{Kind: kw, Text: text}
	if err := p.attachArguments(r, step); err != nil {
		return nil, err
	}
	steps := []*Step{step}

	for {
		skipBlank(r)
		if r.EOF() {
			if kw == KwThen {
				return steps, nil
			}
			return nil, ErrUnexpectedEOF
		}
		if !p.lang.Matches(r.Peek(), KwAnd) {
			return steps, nil
		}
		line := r.ReadLine()
		step := &Step{Kind: kw, Text: p.lang.Strip(line, KwAnd)}
		if err := p.attachArguments(r, step); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
}

// attachArguments reads the optional data table and then the optional
// doc-string belonging to the step just parsed.
func (p *Parser) attachArguments(r *reader, step *Step) error {
	table, err := p.parseTable(r)
	if err != nil {
		return err
	}
	step.Table = table
	doc, err := p.parseDocString(r)
	if err != nil {
		return err
	}
	step.DocString = doc
	return nil
}

// parseExamples reads the mandatory Examples block of a scenario
// outline: the Examples keyword line followed by a data table.
func (p *Parser) parseExamples(r *reader) (*DataTable, error) {
	skipBlank(r)
	if r.EOF() {
		return nil, ErrUnexpectedEOF
	}
	line := r.ReadLine()
	if !p.lang.Matches(line, KwExamples) {
		return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
	}
	table, err := p.parseTable(r)
	if err != nil {
		return nil, err
	}
	if table == nil {
		if r.EOF() {
			return nil, ErrUnexpectedEOF
		}
		line := r.ReadLine()
		return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
	}
	return table, nil
}

// parseTable reads an optional pipe-delimited table: a header row and
// every consecutive row that follows. A missing table is not an error;
// a row whose width differs from the header's is.
func (p *Parser) parseTable(r *reader) (*DataTable, error) {
	skipBlank(r)
	if r.EOF() || !strings.HasPrefix(strings.TrimSpace(r.Peek()), "|") {
		return nil, nil
	}
	table := &DataTable{HeaderRow: splitRow(r.ReadLine())}
	for !r.EOF() && strings.HasPrefix(strings.TrimSpace(r.Peek()), "|") {
		line := r.ReadLine()
		row := splitRow(line)
		if len(row) != len(table.HeaderRow) {
			return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// splitRow splits a table line into trimmed cells, dropping the outer
// pipes.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

// parseDocString reads an optional triple-quoted block. The characters
// before the opening delimiter are the block's indentation; every
// following line, the closer included, must begin with that exact
// prefix, which is stripped from the content.
func (p *Parser) parseDocString(r *reader) (*DocString, error) {
	skipBlank(r)
	if r.EOF() || strings.TrimSpace(r.Peek()) != docStringDelimiter {
		return nil, nil
	}
	opener := r.ReadLine()
	prefix := opener[:strings.Index(opener, docStringDelimiter)]
	var content []string
	for {
		if r.EOF() {
			return nil, ErrUnexpectedEOF
		}
		line := r.ReadLine()
		if !strings.HasPrefix(line, prefix) {
			return nil, &SyntaxError{Line: r.Pos(), Text: strings.TrimSpace(line)}
		}
		if strings.TrimSpace(line) == docStringDelimiter {
			return &DocString{Content: strings.Join(content, "\n")}, nil
		}
		content = append(content, line[len(prefix):])
	}
}

// skipBlank consumes lines whose trimmed form is empty. It never
// consumes anything else.
func skipBlank(r *reader) {
	for !r.EOF() && strings.TrimSpace(r.Peek()) == "" {
		r.ReadLine()
	}
}
