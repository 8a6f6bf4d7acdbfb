package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// updateUserRequest is the JSON body for PUT /api/user/{id}. Only name and
// email are mutable; absent fields stay unchanged.
type updateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// listUsersResponse is the body of GET /api/user.
type listUsersResponse struct {
	Users []store.User `json:"users"`
	More  bool         `json:"more"`
}

// ListUsers handles GET /api/user. The full seeded list comes back with
// more:false; pagination query params are accepted and ignored.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.store.Users.List()
	out := make([]store.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	twin.JSON(w, http.StatusOK, listUsersResponse{Users: out, More: false})
}

// UpdateUser handles PUT /api/user/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, ok := h.store.Users.Get(id)
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown user")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	h.store.Users.Set(id, user)

	// Keep the session in step when the logged-in user edited themselves.
	if cur, ok := h.store.CurrentUser(); ok && cur.ID == id {
		h.store.SetCurrentUser(user)
	}

	twin.JSON(w, http.StatusOK, authResponse{User: user, Token: h.store.AuthToken})
}

// DeleteUser handles DELETE /api/user/{id}. Removal is idempotent: deleting
// an absent id is a no-op that still answers 200.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.Users.Delete(id)
	twin.JSON(w, http.StatusOK, map[string]any{})
}
