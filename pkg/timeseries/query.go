package timeseries

// Query selects series by their key fields. An empty field matches
// any value.
type Query struct {
	Model    string
	Scenario string
	Region   string
	Variable string
	Unit     string
}

// Match reports if the key satisfies every non-empty field of the query.
func (q Query) Match(k Key) bool {
	return matchField(q.Model, k.Model) &&
		matchField(q.Scenario, k.Scenario) &&
		matchField(q.Region, k.Region) &&
		matchField(q.Variable, k.Variable) &&
		matchField(q.Unit, k.Unit)
}

// ForScenario narrows the query to one scenario.
func (q Query) ForScenario(id ScenarioID) Query {
	q.Model = id.Model
	q.Scenario = id.Scenario
	return q
}

func matchField(want, got string) bool {
	return want == "" || want == got
}
