// Package conformance runs YAML-defined parse and render cases.
//
// A suite file holds a list of cases:
//
//	cases:
//	  - name: one import
//	    kind: file
//	    input: |
//	      package main
//	      import fmt
//	    output: "package main\n\nimport fmt\n\n"
//	  - name: bare identifier
//	    kind: expr
//	    input: x
//	    error: expected expression
//
// A case passes when its input parses and renders to output, or, when error
// is set, when parsing fails with a message containing error. Every case sets
// exactly one of output and error.
package conformance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/primordial/pkg/ast"
	"github.com/leapstack-labs/primordial/pkg/parser"
)

// Kind selects the parser entry point for a case.
type Kind string

// Case kinds.
const (
	KindFile Kind = "file"
	KindType Kind = "type"
	KindExpr Kind = "expr"
)

// Case is one input with its expected render or error.
type Case struct {
	Name   string `yaml:"name"`
	Kind   Kind   `yaml:"kind,omitempty"`
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Suite is the parsed contents of one YAML file.
type Suite struct {
	Name  string `yaml:"-"`
	Path  string `yaml:"-"`
	Cases []Case `yaml:"cases"`
}

func (c *Case) check() error {
	if c.Name == "" {
		return errors.New("case has no name")
	}
	switch c.Kind {
	case "":
		c.Kind = KindFile
	case KindFile, KindType, KindExpr:
	default:
		return fmt.Errorf("case %q: unknown kind %q", c.Name, c.Kind)
	}
	if c.Output != "" && c.Error != "" {
		return fmt.Errorf("case %q: output and error are mutually exclusive", c.Name)
	}
	if c.Output == "" && c.Error == "" {
		return fmt.Errorf("case %q: one of output or error is required", c.Name)
	}
	return nil
}

// LoadSuite reads and validates a suite file. Unknown keys are rejected.
func LoadSuite(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var s Suite
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range s.Cases {
		if err := s.Cases[i].check(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	s.Path = path
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &s, nil
}

// Load reads every .yaml and .yml suite in dir, ordered by file name.
func Load(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	suites := make([]*Suite, 0, len(names))
	for _, name := range names {
		s, err := LoadSuite(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Evaluate parses the case input with the entry point named by its kind and
// renders the result.
func (c Case) Evaluate() (string, error) {
	var (
		n   ast.Node
		err error
	)
	switch c.Kind {
	case KindType:
		n, err = parser.ParseType(c.Input)
	case KindExpr:
		n, err = parser.ParseExpr(c.Input)
	default:
		n, err = parser.ParseFile(c.Input, c.Name)
	}
	if err != nil {
		return "", err
	}
	return ast.Sprint(n)
}

// Check evaluates the case and reports how it deviates from expectations.
func (c Case) Check() error {
	out, err := c.Evaluate()
	if c.Error != "" {
		if err == nil {
			return fmt.Errorf("expected error containing %q, got output %q", c.Error, out)
		}
		if !strings.Contains(err.Error(), c.Error) {
			return fmt.Errorf("expected error containing %q, got %q", c.Error, err.Error())
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	if out != c.Output {
		return diffErr(c.Output, out)
	}
	return nil
}

func diffErr(expected, actual string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("expected %q, got %q", expected, actual)
	}
	return fmt.Errorf("expected and actual output differ:\n%s", diff)
}
