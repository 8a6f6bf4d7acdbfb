// Package scenario runs declarative YAML flows against a running pizza
// simulator. A scenario is the headless stand-in for a browser test: a
// sequence of API calls with captures and assertions.
package scenario

// Scenario is a complete flow loaded from a YAML file.
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Vars        map[string]string `yaml:"vars,omitempty"`
	Steps       []Step            `yaml:"steps"`
}

// Step is a single request/assert pair within a scenario.
type Step struct {
	Name    string            `yaml:"name"`
	Request Request           `yaml:"request"`
	Capture map[string]string `yaml:"capture,omitempty"`
	Assert  *Assert           `yaml:"assert,omitempty"`
}

// Request defines the HTTP request to make during a step. Body may be any
// YAML value; it is sent as JSON.
type Request struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    any               `yaml:"body,omitempty"`
}

// Assert defines the expected results of a step. Body maps JSONPath
// expressions to expected values.
type Assert struct {
	Status       int            `yaml:"status,omitempty"`
	BodyContains string         `yaml:"body_contains,omitempty"`
	Body         map[string]any `yaml:"body,omitempty"`
}
