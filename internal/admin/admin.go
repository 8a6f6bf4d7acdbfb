// Package admin provides the /admin/* control plane for state management,
// fault injection, and inspection of the pizza simulator. It is the
// out-of-process equivalent of holding the MemoryStore handle directly:
// browser test suites seed, read, and reset simulated state through it.
package admin

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// Handler provides the admin endpoints.
type Handler struct {
	store *store.MemoryStore
	mw    *twin.Middleware
}

// NewHandler creates a new admin handler.
func NewHandler(s *store.MemoryStore, mw *twin.Middleware) *Handler {
	return &Handler{store: s, mw: mw}
}

// Routes mounts the admin endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/reset", h.handleReset)
		r.Get("/state", h.handleGetState)
		r.Post("/state", h.handleLoadState)
		r.Get("/session", h.handleGetSession)
		r.Put("/session", h.handleSetSession)
		r.Delete("/session", h.handleClearSession)
		r.Post("/fault/*", h.handleInjectFault)
		r.Delete("/fault/*", h.handleRemoveFault)
		r.Get("/faults", h.handleListFaults)
		r.Get("/requests", h.handleGetRequests)
		r.Get("/unmatched", h.handleGetUnmatched)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	h.mw.ReqLog.Clear()
	h.mw.Faults.Reset()
	h.mw.Unmatched.Clear()
	twin.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *Handler) handleLoadState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		twin.Error(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}
	if err := h.store.LoadState(body); err != nil {
		twin.Error(w, http.StatusBadRequest, "failed to load state: "+err.Error())
		return
	}
	twin.JSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

// handleGetSession reports the logged-in-user slot. The user is null when
// no session is active.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if user, ok := h.store.CurrentUser(); ok {
		twin.JSON(w, http.StatusOK, map[string]any{"user": user})
		return
	}
	twin.JSON(w, http.StatusOK, map[string]any{"user": nil})
}

// handleSetSession overrides the session slot with a seeded user, looked up
// by email, skipping the login flow entirely.
func (h *Handler) handleSetSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, ok := h.store.FindUserByEmail(req.Email)
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown user "+req.Email)
		return
	}
	h.store.SetCurrentUser(user)
	twin.JSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	h.store.ClearSession()
	twin.JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) handleInjectFault(w http.ResponseWriter, r *http.Request) {
	endpoint := "/" + chi.URLParam(r, "*")

	var fault twin.FaultConfig
	if err := json.NewDecoder(r.Body).Decode(&fault); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid fault config: "+err.Error())
		return
	}
	h.mw.Faults.Set(endpoint, fault)
	twin.JSON(w, http.StatusOK, map[string]any{
		"status":   "injected",
		"endpoint": endpoint,
		"fault":    fault,
	})
}

func (h *Handler) handleRemoveFault(w http.ResponseWriter, r *http.Request) {
	endpoint := "/" + chi.URLParam(r, "*")
	if h.mw.Faults.Remove(endpoint) {
		twin.JSON(w, http.StatusOK, map[string]any{"status": "removed", "endpoint": endpoint})
		return
	}
	twin.Error(w, http.StatusNotFound, "no fault registered for "+endpoint)
}

func (h *Handler) handleListFaults(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, h.mw.Faults.All())
}

func (h *Handler) handleGetRequests(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, h.mw.ReqLog.Entries())
}

func (h *Handler) handleGetUnmatched(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, h.mw.Unmatched.Entries())
}
