package rules

import (
	"log/slog"
	"slices"

	"github.com/ccslim/ccslim/pkg/timeseries"
)

// Evaluator applies a rule set to the scenarios of a table. Results are
// written into the meta of the table.
type Evaluator struct {
	rules RuleSet
	table *timeseries.Table
}

// NewEvaluator creates an evaluator for the table.
func NewEvaluator(rs RuleSet, t *timeseries.Table) *Evaluator {
	return &Evaluator{rules: rs, table: t}
}

// Summary counts scenarios per meta value of a column.
type Summary struct {
	Column string
	Counts map[string]int
}

// Validate sets validation_<rule> to true for scenarios that report the
// rule variable at the scenario region of the rule and to false for all
// others.
func (e *Evaluator) Validate() []Summary {
	scens := e.table.Scenarios()
	res := make([]Summary, 0, len(e.rules.Rules))
	for _, r := range e.rules.Rules {
		col := ValidationPrefix + r.Name
		slog.Info("Creating validation column",
			"rule", r.Name, "variable", r.Variable, "region", r.ScenarioRegion())
		sum := Summary{Column: col, Counts: make(map[string]int)}
		for _, id := range scens {
			val := False
			q := timeseries.Query{Region: r.ScenarioRegion(), Variable: r.Variable}.ForScenario(id)
			if s, ok := e.table.Find(q); ok && s.Len() > 0 {
				val = True
			}
			e.table.Meta.Set(id, col, val)
			sum.Counts[val]++
		}
		res = append(res, sum)
	}
	return res
}

// Filter sets pass_<rule> to false for scenarios with at least one
// checked point outside of the rule bounds and to true otherwise.
// Validate has to run first.
func (e *Evaluator) Filter() ([]Summary, error) {
	if err := e.checkValidation(); err != nil {
		return nil, err
	}
	res := make([]Summary, 0, len(e.rules.Rules))
	for _, r := range e.rules.Rules {
		col := PassPrefix + r.Name
		slog.Info("Preparing filter set", "rule", r.Name)
		sum := Summary{Column: col, Counts: make(map[string]int)}
		for _, id := range e.table.Scenarios() {
			val := True
			if e.violated(r, id, r.Region) {
				val = False
			}
			e.table.Meta.Set(id, col, val)
			sum.Counts[val]++
		}
		res = append(res, sum)
	}
	return res, nil
}

// Categorize assigns category labels of rules that have them. A scenario
// gets the label when it reports the variable and all checked points are
// within bounds. Later rules overwrite labels of earlier rules in the same
// column. Validate has to run first.
func (e *Evaluator) Categorize() ([]Summary, error) {
	if err := e.checkValidation(); err != nil {
		return nil, err
	}
	var res []Summary
	for _, r := range e.rules.Rules {
		if r.Category == nil {
			continue
		}
		slog.Info("Preparing categorization",
			"rule", r.Name, "column", r.Category.Name, "label", r.Category.Label)
		sum := Summary{Column: r.Category.Name, Counts: make(map[string]int)}
		for _, id := range e.table.Scenarios() {
			reg := r.ScenarioRegion()
			q := timeseries.Query{Region: reg, Variable: r.Variable}.ForScenario(id)
			s, ok := e.table.Find(q)
			if !ok || len(checkedYears(r, s)) == 0 || e.violated(r, id, reg) {
				continue
			}
			e.table.Meta.Set(id, r.Category.Name, r.Category.Label)
			sum.Counts[r.Category.Label]++
		}
		res = append(res, sum)
	}
	return res, nil
}

// Run validates, filters and categorizes in this order.
func (e *Evaluator) Run() ([]Summary, error) {
	res := e.Validate()
	pass, err := e.Filter()
	if err != nil {
		return nil, err
	}
	cats, err := e.Categorize()
	if err != nil {
		return nil, err
	}
	res = append(res, pass...)
	return append(res, cats...), nil
}

func (e *Evaluator) checkValidation() error {
	scens := e.table.Scenarios()
	if len(scens) == 0 {
		return nil
	}
	for _, r := range e.rules.Rules {
		col := ValidationPrefix + r.Name
		if _, ok := e.table.Meta.Get(scens[0], col); !ok {
			return MissingValidationError(col)
		}
	}
	return nil
}

// violated checks series of the rule variable at reg, at every region if
// reg is empty.
func (e *Evaluator) violated(r Rule, id timeseries.ScenarioID, reg string) bool {
	q := timeseries.Query{Region: reg, Variable: r.Variable}.ForScenario(id)
	for _, s := range e.table.Series() {
		if !q.Match(s.Key) {
			continue
		}
		for _, y := range checkedYears(r, s) {
			if r.Criteria.violates(s.Points[y]) {
				return true
			}
		}
	}
	return false
}

func checkedYears(r Rule, s timeseries.Series) []int {
	years := s.Years()
	if len(r.Criteria.Year) == 0 {
		return years
	}
	var res []int
	for _, y := range years {
		if slices.Contains(r.Criteria.Year, y) {
			res = append(res, y)
		}
	}
	return res
}
