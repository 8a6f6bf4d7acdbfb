package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// StepResult records the outcome of a single step.
type StepResult struct {
	Name     string
	Passed   bool
	Duration time.Duration
	Error    string // empty when passed
}

// Result records the outcome of an entire scenario.
type Result struct {
	ScenarioName string
	Passed       bool
	Steps        []StepResult
	Duration     time.Duration
}

// Runner executes scenarios against a simulator at BaseURL. A Runner is
// single-use per scenario run with respect to captured variables.
type Runner struct {
	BaseURL string
	HTTP    *http.Client
	vars    map[string]string
}

// NewRunner creates a Runner with a default HTTP client.
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		vars:    make(map[string]string),
	}
}

// Run executes a scenario and returns its result. Steps keep running after
// a failure so the result shows every broken step, not just the first.
func (r *Runner) Run(s *Scenario) *Result {
	start := time.Now()
	result := &Result{ScenarioName: s.Name, Passed: true}

	r.vars = make(map[string]string)
	for k, v := range s.Vars {
		r.vars[k] = v
	}

	for i := range s.Steps {
		sr := r.runStep(&s.Steps[i])
		result.Steps = append(result.Steps, sr)
		if !sr.Passed {
			result.Passed = false
		}
	}

	result.Duration = time.Since(start)
	return result
}

// expand substitutes ${var} references from the captured variables.
func (r *Runner) expand(s string) string {
	return os.Expand(s, func(key string) string {
		return r.vars[key]
	})
}

func (r *Runner) runStep(step *Step) StepResult {
	start := time.Now()
	sr := StepResult{Name: step.Name}
	fail := func(format string, args ...any) StepResult {
		sr.Error = fmt.Sprintf(format, args...)
		sr.Duration = time.Since(start)
		return sr
	}

	url := r.BaseURL + r.expand(step.Request.URL)

	var reqBody io.Reader
	if step.Request.Body != nil {
		data, err := json.Marshal(step.Request.Body)
		if err != nil {
			return fail("marshaling request body: %v", err)
		}
		reqBody = strings.NewReader(r.expand(string(data)))
	}

	req, err := http.NewRequest(step.Request.Method, url, reqBody)
	if err != nil {
		return fail("building request: %v", err)
	}
	for k, v := range step.Request.Headers {
		req.Header.Set(k, r.expand(v))
	}
	if step.Request.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fail("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail("reading response body: %v", err)
	}

	for varName, path := range step.Capture {
		val, err := Extract(respBody, path)
		if err != nil {
			return fail("capture %q: %v", varName, err)
		}
		r.vars[varName] = fmt.Sprintf("%v", val)
	}

	if step.Assert != nil {
		if err := r.assert(step.Assert, resp, respBody); err != nil {
			return fail("%v", err)
		}
	}

	sr.Passed = true
	sr.Duration = time.Since(start)
	return sr
}

func (r *Runner) assert(a *Assert, resp *http.Response, body []byte) error {
	if a.Status != 0 && resp.StatusCode != a.Status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", a.Status, resp.StatusCode, body)
	}

	if a.BodyContains != "" {
		want := r.expand(a.BodyContains)
		if !strings.Contains(string(body), want) {
			return fmt.Errorf("body does not contain %q: %s", want, body)
		}
	}

	for path, expected := range a.Body {
		actual, err := Extract(body, path)
		if err != nil {
			return fmt.Errorf("assertion %q: %v", path, err)
		}
		if s, ok := expected.(string); ok {
			expected = r.expand(s)
		}
		if !valuesEqual(actual, expected) {
			return fmt.Errorf("assertion %q: expected %v, got %v", path, expected, actual)
		}
	}

	return nil
}

// valuesEqual compares a decoded JSON value against an expected YAML value,
// tolerating the numeric type mismatch between the two decoders.
func valuesEqual(actual, expected any) bool {
	if fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected) {
		return true
	}
	af, aok := asFloat(actual)
	ef, eok := asFloat(expected)
	return aok && eok && af == ef
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
