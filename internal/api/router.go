// Package api implements the JWT Pizza-compatible HTTP handlers for the
// simulator.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// Handler holds all API handler state.
type Handler struct {
	store  *store.MemoryStore
	mw     *twin.Middleware
	signer *OrderSigner
}

// NewHandler creates a new API handler.
func NewHandler(s *store.MemoryStore, mw *twin.Middleware, signer *OrderSigner) *Handler {
	return &Handler{store: s, mw: mw, signer: signer}
}

// Routes mounts the pizza API route table. The table is declarative and
// exhaustive: any request that matches no entry falls through to the strict
// rejection handler instead of a fabricated response.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.mw.FaultInjection)

		// Auth
		r.Put("/auth", h.Login)
		r.Post("/auth", h.Register)
		r.Delete("/auth", h.Logout)

		// Users
		r.Get("/user/me", h.Me)
		r.Get("/user", h.ListUsers)
		r.Put("/user/{id}", h.UpdateUser)
		r.Delete("/user/{id}", h.DeleteUser)

		// Franchises and stores
		r.Get("/franchise", h.ListFranchises)
		r.Post("/franchise", h.CreateFranchise)
		r.Get("/franchise/{id}", h.UserFranchises)
		r.Delete("/franchise/{id}", h.DeleteFranchise)
		r.Post("/franchise/{id}/store", h.CreateStore)
		r.Delete("/franchise/{id}/store/{storeID}", h.DeleteStore)

		// Orders
		r.Get("/order/menu", h.Menu)
		r.Post("/order", h.CreateOrder)
	})

	r.NotFound(h.mw.RejectUnmatched())
	r.MethodNotAllowed(h.mw.RejectUnmatched())
}

// authorized reports whether the session user may mutate the given
// franchise: listed in its admin list by id, or holding the admin role.
// Existence checks always run before this, so a missing franchise is 404
// even for an admin caller.
func (h *Handler) authorized(f store.Franchise) bool {
	cur, ok := h.store.CurrentUser()
	if !ok {
		return false
	}
	return f.HasAdmin(cur.ID) || cur.HasRole(store.RoleAdmin)
}
