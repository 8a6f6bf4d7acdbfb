package admin_test

import (
	"net/http/httptest"
	"testing"

	"github.com/jwt-pizza/twin-pizza/internal/admin"
	"github.com/jwt-pizza/twin-pizza/internal/api"
	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/testutil"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// setup mounts the full simulator (API plus control plane) so admin
// operations can be exercised against real route traffic.
func setup(t *testing.T, memStore *store.MemoryStore) (*testutil.AdminClient, *store.MemoryStore) {
	t.Helper()
	cfg := &twin.Config{Name: "twin-pizza-test"}
	srv := twin.New(cfg)
	api.NewHandler(memStore, srv.Middleware(), api.NewOrderSigner()).Routes(srv.Router)
	admin.NewHandler(memStore, srv.Middleware()).Routes(srv.Router)
	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return testutil.NewAdminClient(testutil.NewClient(t, ts)), memStore
}

func TestHealth(t *testing.T) {
	ac, _ := setup(t, store.New())

	resp := ac.Health()
	resp.AssertStatus(200)
	resp.AssertBodyContains("ok")
}

func TestGetState(t *testing.T) {
	ac, _ := setup(t, store.NewDiner())

	resp := ac.GetState()
	resp.AssertStatus(200)

	m := resp.JSONMap()
	users := m["users"].(map[string]any)
	if len(users) != 1 {
		t.Errorf("expected 1 user in state, got %d", len(users))
	}
	franchises := m["franchises"].(map[string]any)
	if len(franchises) != 3 {
		t.Errorf("expected 3 franchises in state, got %d", len(franchises))
	}
	if m["auth_token"] != "abcdef" {
		t.Errorf("expected auth_token in state, got %v", m["auth_token"])
	}
}

func TestLoadStateRoundTrip(t *testing.T) {
	src := store.NewFranchisee()
	src.SetCurrentUser(store.User{ID: "1", Email: "f@jwt.com"})

	ac, memStore := setup(t, store.New())

	ac.LoadState(src.Snapshot()).AssertStatus(200)

	if memStore.Franchises.Count() != 3 {
		t.Errorf("expected 3 franchises after load, got %d", memStore.Franchises.Count())
	}
	cur, ok := memStore.CurrentUser()
	if !ok || cur.Email != "f@jwt.com" {
		t.Errorf("expected loaded session, got %+v (ok=%v)", cur, ok)
	}
}

func TestLoadStateBadBody(t *testing.T) {
	ac, _ := setup(t, store.New())

	ac.Post("/admin/state", "not a snapshot").AssertStatus(400)
}

func TestSessionOverride(t *testing.T) {
	ac, memStore := setup(t, store.NewDiner())

	// No session yet.
	resp := ac.Get("/admin/session")
	resp.AssertStatus(200)
	if resp.JSONMap()["user"] != nil {
		t.Errorf("expected null session, got %v", resp.JSONMap()["user"])
	}

	// Direct override skips the login flow.
	resp = ac.SetSession("d@jwt.com")
	resp.AssertStatus(200)

	cur, ok := memStore.CurrentUser()
	if !ok || cur.Email != "d@jwt.com" {
		t.Errorf("expected session set, got %+v (ok=%v)", cur, ok)
	}

	ac.SetSession("ghost@jwt.com").AssertStatus(404)

	ac.Delete("/admin/session").AssertStatus(200)
	if _, ok := memStore.CurrentUser(); ok {
		t.Error("expected session cleared")
	}
}

func TestFaultLifecycle(t *testing.T) {
	ac, _ := setup(t, store.NewDiner())

	ac.InjectFault("/api/order/menu", map[string]any{
		"status_code": 503,
		"body":        `{"error":"oven down"}`,
	}).AssertStatus(200)

	resp := ac.Get("/api/order/menu")
	resp.AssertStatus(503)
	resp.AssertBodyContains("oven down")

	resp = ac.Get("/admin/faults")
	resp.AssertStatus(200)
	if _, ok := resp.JSONMap()["/api/order/menu"]; !ok {
		t.Errorf("expected fault listed, got %s", resp.Body)
	}

	ac.RemoveFault("/api/order/menu").AssertStatus(200)
	ac.Get("/api/order/menu").AssertStatus(200)

	ac.RemoveFault("/api/order/menu").AssertStatus(404)
}

func TestRequestLogExposed(t *testing.T) {
	ac, _ := setup(t, store.NewDiner())

	ac.Get("/api/order/menu").AssertStatus(200)

	resp := ac.GetRequests()
	resp.AssertStatus(200)

	found := false
	for _, e := range resp.JSONList() {
		if e.(map[string]any)["path"] == "/api/order/menu" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected /api/order/menu in request log, got %s", resp.Body)
	}
}

func TestUnmatchedExposed(t *testing.T) {
	ac, _ := setup(t, store.NewDiner())

	ac.Post("/api/not-modeled", nil).AssertStatus(501)

	resp := ac.GetUnmatched()
	resp.AssertStatus(200)

	entries := resp.JSONList()
	if len(entries) != 1 {
		t.Fatalf("expected 1 unmatched entry, got %d", len(entries))
	}
	if entries[0].(map[string]any)["path"] != "/api/not-modeled" {
		t.Errorf("unexpected unmatched entry: %v", entries[0])
	}
}

func TestResetClearsEverything(t *testing.T) {
	ac, memStore := setup(t, store.NewDiner())

	memStore.SetCurrentUser(store.User{ID: "3"})
	ac.InjectFault("/api/order", map[string]any{"status_code": 500}).AssertStatus(200)
	ac.Post("/api/not-modeled", nil).AssertStatus(501)

	ac.Reset().AssertStatus(200)

	if memStore.Users.Count() != 0 || memStore.Franchises.Count() != 0 {
		t.Error("expected state cleared")
	}
	if _, ok := memStore.CurrentUser(); ok {
		t.Error("expected session cleared")
	}
	if len(ac.GetUnmatched().JSONList()) != 0 {
		t.Error("expected unmatched log cleared")
	}
	if len(ac.GetState().JSONMap()["users"].(map[string]any)) != 0 {
		t.Error("expected empty user state after reset")
	}
	faults := ac.Get("/admin/faults").JSONMap()
	if len(faults) != 0 {
		t.Errorf("expected faults cleared, got %v", faults)
	}
}
