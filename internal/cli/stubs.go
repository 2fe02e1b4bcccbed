package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/gherkin"
)

var stubsCmd = &cobra.Command{
	Use:   "stubs [path...]",
	Short: "Emit Go step-definition stubs for the features found",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStubs(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(stubsCmd)
}

type stub struct {
	method  string // Given, When, Then
	pattern string
	params  []string // Go parameter types, capture order
}

func RunStubs(w io.Writer, paths []string) error {
	cfg, err := loadConfig(len(paths) == 0)
	if err != nil {
		return err
	}
	lang, err := gherkin.LoadLanguage(cfg.Language)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
		}
		sort.Strings(paths)
	}

	parser := gherkin.NewParser(lang)
	var order []string
	byFeature := make(map[string][]stub)
	seen := make(map[string]bool)

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		features, err := parser.Parse(content)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, feature := range features {
			if _, ok := byFeature[feature.Name]; !ok {
				order = append(order, feature.Name)
				byFeature[feature.Name] = nil
			}
			collect := func(steps []*gherkin.Step) {
				for _, step := range steps {
					s := stubFor(step)
					key := feature.Name + "\x00" + s.method + "\x00" + s.pattern
					if seen[key] {
						continue
					}
					seen[key] = true
					byFeature[feature.Name] = append(byFeature[feature.Name], s)
				}
			}
			if feature.Background != nil {
				collect(feature.Background.Steps)
			}
			for _, s := range feature.Scenarios {
				collect(s.Steps)
			}
			for _, o := range feature.Outlines {
				collect(o.Steps)
			}
		}
	}

	fmt.Fprint(w, stubHeader)
	for _, name := range order {
		writeFeatureStubs(w, name, byFeature[name])
	}
	return nil
}

const stubHeader = `// Step-definition stubs generated by bspec stubs.
package steps

import (
	"errors"

	"github.com/chriserin/bspec"
)

`

func writeFeatureStubs(w io.Writer, feature string, stubs []stub) {
	fmt.Fprintf(w, "func init() {\n")
	fmt.Fprintf(w, "\tbspec.Register(%q, bspec.NewStepSet()", feature)
	for _, s := range stubs {
		params := make([]string, len(s.params))
		for i, typ := range s.params {
			params[i] = fmt.Sprintf("arg%d %s", i+1, typ)
		}
		fmt.Fprintf(w, ".\n\t\t%s(`%s`, func(%s) error {\n", s.method, s.pattern, strings.Join(params, ", "))
		fmt.Fprintf(w, "\t\t\treturn errors.New(\"step not implemented\")\n")
		fmt.Fprintf(w, "\t\t})")
	}
	fmt.Fprintf(w, ")\n}\n\n")
}

// stubFor turns a step into a pattern: quoted strings and numbers in
// the text become capture groups with matching Go parameter types,
// everything else is matched literally.
var valueRe = regexp.MustCompile(`("[^"]*")|(\d+\.\d+)|(\d+)`)

func stubFor(step *gherkin.Step) stub {
	s := stub{method: step.Kind.String()}
	text := step.Text
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, m := range valueRe.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(regexp.QuoteMeta(text[last:m[0]]))
		switch {
		case m[2] >= 0: // quoted string
			b.WriteString(`"([^"]*)"`)
			s.params = append(s.params, "string")
		case m[4] >= 0: // float
			b.WriteString(`(\d+\.\d+)`)
			s.params = append(s.params, "float64")
		default: // integer
			b.WriteString(`(\d+)`)
			s.params = append(s.params, "int")
		}
		last = m[1]
	}
	b.WriteString(regexp.QuoteMeta(text[last:]))
	b.WriteString("$")
	s.pattern = b.String()
	return s
}
