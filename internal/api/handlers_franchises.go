package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// createFranchiseRequest is the JSON body for POST /api/franchise.
type createFranchiseRequest struct {
	Name   string `json:"name"`
	Admins []struct {
		Email string `json:"email"`
	} `json:"admins,omitempty"`
}

// createStoreRequest is the JSON body for POST /api/franchise/{id}/store.
type createStoreRequest struct {
	Name string `json:"name"`
}

// listFranchisesResponse is the body of GET /api/franchise.
type listFranchisesResponse struct {
	Franchises []store.Franchise `json:"franchises"`
	More       bool              `json:"more"`
}

// franchiseID parses the {id} path parameter. The bool result is false for
// anything that is not a well-formed id.
func franchiseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil
}

// ListFranchises handles GET /api/franchise. The catalog comes back whole
// with more:false; filter and pagination query params are ignored.
func (h *Handler) ListFranchises(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, listFranchisesResponse{
		Franchises: h.store.Franchises.List(),
		More:       false,
	})
}

// CreateFranchise handles POST /api/franchise. The supplied admin emails
// are resolved against known users where possible and synthesized
// otherwise.
func (h *Handler) CreateFranchise(w http.ResponseWriter, r *http.Request) {
	var req createFranchiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		twin.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	admins := make([]store.AdminRef, 0, len(req.Admins))
	for _, a := range req.Admins {
		if u, ok := h.store.FindUserByEmail(a.Email); ok {
			admins = append(admins, store.AdminRef{ID: u.ID, Name: u.Name, Email: a.Email})
			continue
		}
		admins = append(admins, store.AdminRef{
			ID:    h.store.NextUserID(),
			Name:  "pizza franchisee",
			Email: a.Email,
		})
	}

	franchise := store.Franchise{
		ID:     h.store.NextFranchiseID(),
		Name:   req.Name,
		Admins: admins,
		Stores: []store.Store{},
	}
	h.store.Franchises.Set(franchise.ID, franchise)

	twin.JSON(w, http.StatusOK, franchise)
}

// UserFranchises handles GET /api/franchise/{id}, where {id} is a user id.
// This route authorizes by identity: only the logged-in user may list their
// own franchises, and anyone else gets an empty list rather than an error.
func (h *Handler) UserFranchises(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	cur, ok := h.store.CurrentUser()
	if !ok || cur.ID != userID {
		twin.JSON(w, http.StatusOK, []store.Franchise{})
		return
	}

	owned := h.store.Franchises.Filter(func(_ int64, f store.Franchise) bool {
		return f.HasAdmin(cur.ID)
	})
	twin.JSON(w, http.StatusOK, owned)
}

// DeleteFranchise handles DELETE /api/franchise/{id}. Existence is checked
// before authorization: an unknown id is 404 even for an admin caller.
func (h *Handler) DeleteFranchise(w http.ResponseWriter, r *http.Request) {
	id, ok := franchiseID(r, "id")
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}

	franchise, ok := h.store.Franchises.Get(id)
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}
	if !h.authorized(franchise) {
		twin.Error(w, http.StatusForbidden, "unable to delete a franchise")
		return
	}

	h.store.Franchises.Delete(id)
	twin.Message(w, http.StatusOK, "franchise deleted")
}

// CreateStore handles POST /api/franchise/{id}/store.
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := franchiseID(r, "id")
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}

	franchise, ok := h.store.Franchises.Get(id)
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}
	if !h.authorized(franchise) {
		twin.Error(w, http.StatusForbidden, "unable to create a store")
		return
	}

	var req createStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		twin.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	st := store.Store{
		ID:           h.store.NextStoreID(),
		Name:         req.Name,
		TotalRevenue: 0,
	}
	franchise.Stores = append(franchise.Stores, st)
	h.store.Franchises.Set(id, franchise)

	twin.JSON(w, http.StatusOK, st)
}

// DeleteStore handles DELETE /api/franchise/{id}/store/{storeID}. Removing
// a store id the franchise does not hold is a silent no-op success.
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := franchiseID(r, "id")
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}

	franchise, ok := h.store.Franchises.Get(id)
	if !ok {
		twin.Error(w, http.StatusNotFound, "unknown franchise")
		return
	}
	if !h.authorized(franchise) {
		twin.Error(w, http.StatusForbidden, "unable to delete a store")
		return
	}

	storeID, _ := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	kept := franchise.Stores[:0:0]
	for _, st := range franchise.Stores {
		if st.ID != storeID {
			kept = append(kept, st)
		}
	}
	if kept == nil {
		kept = []store.Store{}
	}
	franchise.Stores = kept
	h.store.Franchises.Set(id, franchise)

	twin.Message(w, http.StatusOK, "store deleted")
}
