// Package rules validates, filters and categorizes scenarios with
// declarative rules.
//
// A rule file is a YAML mapping from rule names to definitions:
//
//	ccs_2050:
//	  variable: Carbon Sequestration|CCS
//	  criteria:
//	    upper_bound: 5000
//	    year: 2050
//	  categorize:
//	    name: ccs_level
//	    label: low
//
// Rules keep the order of the file.
package rules

import (
	"fmt"
	"math"

	"github.com/ccslim/ccslim/pkg/region"
	"gopkg.in/yaml.v3"
)

// Meta column prefixes set by the evaluator.
const (
	ValidationPrefix = "validation_"
	PassPrefix       = "pass_"
)

// Meta values of boolean columns.
const (
	True  = "true"
	False = "false"
)

// Rule is one named rule of a rule set. An empty Region means every
// region for filtering and World for validation and categories.
type Rule struct {
	Name     string
	Variable string      `yaml:"variable"`
	Region   string      `yaml:"region"`
	Criteria Criteria    `yaml:"criteria"`
	Category *Categorize `yaml:"categorize"`
}

// Criteria are bounds that every checked point has to respect. Missing
// bounds are not checked. Without years every observed year is checked.
type Criteria struct {
	UpperBound *float64 `yaml:"upper_bound"`
	LowerBound *float64 `yaml:"lower_bound"`
	Year       Years    `yaml:"year"`
}

// Categorize assigns Label in the meta column Name to scenarios that
// satisfy the criteria of the rule.
type Categorize struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// Years is a list of years that can be given as a single year in YAML.
type Years []int

// UnmarshalYAML accepts a scalar year or a sequence of years.
func (y *Years) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var year int
		if err := node.Decode(&year); err != nil {
			return err
		}
		*y = Years{year}
		return nil
	}
	var years []int
	if err := node.Decode(&years); err != nil {
		return err
	}
	*y = years
	return nil
}

// RuleSet is an ordered list of rules.
type RuleSet struct {
	Rules []Rule
}

// UnmarshalYAML reads a mapping of rule names to definitions keeping
// their order.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rule set must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var r Rule
		if err := node.Content[i+1].Decode(&r); err != nil {
			return err
		}
		r.Name = node.Content[i].Value
		rs.Rules = append(rs.Rules, r)
	}
	return nil
}

// Parse reads a YAML rule set and checks that every rule is usable.
func Parse(data []byte) (RuleSet, error) {
	var res RuleSet
	if err := yaml.Unmarshal(data, &res); err != nil {
		return res, DefinitionError("", err.Error())
	}
	for i := range res.Rules {
		if err := res.Rules[i].check(); err != nil {
			return RuleSet{}, err
		}
	}
	return res, nil
}

// Names returns rule names in order.
func (rs RuleSet) Names() []string {
	res := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		res[i] = r.Name
	}
	return res
}

// ScenarioRegion is the region where a scenario has to report the
// variable to be validated or categorized.
func (r Rule) ScenarioRegion() string {
	if r.Region == "" {
		return region.World
	}
	return r.Region
}

func (r Rule) check() error {
	if r.Name == "" {
		return DefinitionError(r.Name, "empty rule name")
	}
	if r.Variable == "" {
		return DefinitionError(r.Name, "variable is required")
	}
	c := r.Criteria
	if c.UpperBound == nil && c.LowerBound == nil {
		return DefinitionError(r.Name, "criteria need upper_bound or lower_bound")
	}
	if c.UpperBound != nil && c.LowerBound != nil && *c.LowerBound > *c.UpperBound {
		return DefinitionError(r.Name, "lower_bound is greater than upper_bound")
	}
	if r.Category != nil && (r.Category.Name == "" || r.Category.Label == "") {
		return DefinitionError(r.Name, "categorize needs name and label")
	}
	return nil
}

// violates reports if the value lies outside of the bounds. Undefined
// values are not violations.
func (c Criteria) violates(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if c.UpperBound != nil && v > *c.UpperBound {
		return true
	}
	if c.LowerBound != nil && v < *c.LowerBound {
		return true
	}
	return false
}
