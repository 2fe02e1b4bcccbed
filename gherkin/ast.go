package gherkin

// Feature is one Feature block of a document.
type Feature struct {
	Name       string
	Background *Background
	Scenarios  []*Scenario
	Outlines   []*ScenarioOutline

	// Impl is the step-implementation handle resolved for this feature's
	// name, or nil when no resolver was configured or nothing matched.
	Impl any
}

// Background holds the Given steps that precede every scenario of a feature.
type Background struct {
	Name  string
	Steps []*Step
}

// Scenario is an ordered Given/When/Then step sequence.
type Scenario struct {
	Name  string
	Steps []*Step
}

// ScenarioOutline is a scenario template instantiated once per Examples row.
type ScenarioOutline struct {
	Scenario
	Examples *DataTable
}

// Step is a single step line. Kind is the primary keyword of the chain
// the step belongs to; And lines take the kind of the chain they continue.
type Step struct {
	Kind      Keyword
	Text      string
	Table     *DataTable
	DocString *DocString
}

// DataTable is a pipe-delimited table attached to a step or an Examples
// block. Every row has exactly as many cells as the header.
type DataTable struct {
	HeaderRow []string
	Rows      [][]string
}

// Columns returns the header width.
func (t *DataTable) Columns() int {
	return len(t.HeaderRow)
}

// Records returns each data row as a map keyed by header cell.
func (t *DataTable) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.HeaderRow))
		for i, h := range t.HeaderRow {
			rec[h] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// DocString is a triple-quoted block attached to a step, with the
// opening delimiter's indentation stripped from every line.
type DocString struct {
	Content string
}
