package scenario_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwt-pizza/twin-pizza/internal/admin"
	"github.com/jwt-pizza/twin-pizza/internal/api"
	"github.com/jwt-pizza/twin-pizza/internal/scenario"
	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// startSimulator brings up a full simulator over the given state and returns
// its base URL.
func startSimulator(t *testing.T, memStore *store.MemoryStore) string {
	t.Helper()
	cfg := &twin.Config{Name: "twin-pizza-test"}
	srv := twin.New(cfg)
	api.NewHandler(memStore, srv.Middleware(), api.NewOrderSigner()).Routes(srv.Router)
	admin.NewHandler(memStore, srv.Middleware()).Routes(srv.Router)
	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return ts.URL
}

func requirePassed(t *testing.T, result *scenario.Result) {
	t.Helper()
	for _, step := range result.Steps {
		if !step.Passed {
			t.Errorf("step %q failed: %s", step.Name, step.Error)
		}
	}
	require.True(t, result.Passed)
}

func TestRunDinerOrderScenario(t *testing.T) {
	baseURL := startSimulator(t, store.NewDiner())

	s, err := scenario.Load("testdata/diner_order.yaml")
	require.NoError(t, err)

	result := scenario.NewRunner(baseURL).Run(s)
	requirePassed(t, result)
	assert.Len(t, result.Steps, 4)
}

func TestRunFranchiseeStoresScenario(t *testing.T) {
	baseURL := startSimulator(t, store.NewFranchisee())

	s, err := scenario.Load("testdata/franchisee_stores.yaml")
	require.NoError(t, err)

	result := scenario.NewRunner(baseURL).Run(s)
	requirePassed(t, result)
	assert.Len(t, result.Steps, 5)
}

func TestRunCaptureAndVars(t *testing.T) {
	baseURL := startSimulator(t, store.NewFranchisee())

	s := &scenario.Scenario{
		Name: "capture",
		Vars: map[string]string{"franchise": "2"},
		Steps: []scenario.Step{
			{
				Name: "login",
				Request: scenario.Request{
					Method: "PUT",
					URL:    "/api/auth",
					Body:   map[string]any{"email": "f@jwt.com", "password": "franchisee"},
				},
				Capture: map[string]string{"user_id": "$.user.id"},
				Assert:  &scenario.Assert{Status: 200},
			},
			{
				Name: "open store",
				Request: scenario.Request{
					Method: "POST",
					URL:    "/api/franchise/${franchise}/store",
					Body:   map[string]any{"name": "Orem"},
				},
				Capture: map[string]string{"store_id": "$.id"},
				Assert:  &scenario.Assert{Status: 200, Body: map[string]any{"$.name": "Orem"}},
			},
			{
				Name: "close store",
				Request: scenario.Request{
					Method: "DELETE",
					URL:    "/api/franchise/${franchise}/store/${store_id}",
				},
				Assert: &scenario.Assert{Status: 200, BodyContains: "store deleted"},
			},
		},
	}

	result := scenario.NewRunner(baseURL).Run(s)
	requirePassed(t, result)
}

func TestRunContinuesPastFailures(t *testing.T) {
	baseURL := startSimulator(t, store.NewDiner())

	s := &scenario.Scenario{
		Name: "failing",
		Steps: []scenario.Step{
			{
				Name:    "wrong status",
				Request: scenario.Request{Method: "GET", URL: "/api/order/menu"},
				Assert:  &scenario.Assert{Status: 500},
			},
			{
				Name:    "still runs",
				Request: scenario.Request{Method: "GET", URL: "/admin/health"},
				Assert:  &scenario.Assert{Status: 200},
			},
		},
	}

	result := scenario.NewRunner(baseURL).Run(s)
	assert.False(t, result.Passed)
	require.Len(t, result.Steps, 2)
	assert.False(t, result.Steps[0].Passed)
	assert.Contains(t, result.Steps[0].Error, "expected status 500")
	assert.True(t, result.Steps[1].Passed)
}

func TestRunBodyAssertionMismatch(t *testing.T) {
	baseURL := startSimulator(t, store.NewDiner())

	s := &scenario.Scenario{
		Name: "mismatch",
		Steps: []scenario.Step{
			{
				Name:    "wrong token",
				Request: scenario.Request{Method: "PUT", URL: "/api/auth", Body: map[string]any{"email": "d@jwt.com", "password": "a"}},
				Assert:  &scenario.Assert{Body: map[string]any{"$.token": "wrong"}},
			},
		},
	}

	result := scenario.NewRunner(baseURL).Run(s)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Steps[0].Error, `assertion "$.token"`)
}
