// twin-pizza simulates the JWT Pizza backend API for browser test suites.
// It serves the /api/* routes the storefront calls (auth, users, franchises,
// stores, orders) from in-memory state seeded by persona or YAML fixture,
// plus an /admin/* control plane for seeding, inspection, and reset.
//
// Default port: 12180
package main

import (
	"fmt"
	"log"

	"github.com/jwt-pizza/twin-pizza/internal/admin"
	"github.com/jwt-pizza/twin-pizza/internal/api"
	"github.com/jwt-pizza/twin-pizza/internal/store"
	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

func main() {
	cfg := twin.ParseFlags("twin-pizza")
	if cfg.Port == 0 {
		cfg.Port = 12180
	}

	memStore, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("failed to build state: %v", err)
	}

	srv := twin.New(cfg)

	apiHandler := api.NewHandler(memStore, srv.Middleware(), api.NewOrderSigner())
	apiHandler.Routes(srv.Router)

	adminHandler := admin.NewHandler(memStore, srv.Middleware())
	adminHandler.Routes(srv.Router)

	srv.Logger.Info("twin-pizza ready",
		"port", cfg.Port,
		"persona", cfg.Persona,
		"seed_file", cfg.SeedFile,
	)

	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildStore(cfg *twin.Config) (*store.MemoryStore, error) {
	if cfg.SeedFile != "" {
		return store.LoadFixture(cfg.SeedFile)
	}
	switch cfg.Persona {
	case "diner":
		return store.NewDiner(), nil
	case "admin":
		return store.NewAdmin(), nil
	case "franchisee":
		return store.NewFranchisee(), nil
	case "", "empty":
		return store.New(), nil
	}
	return nil, fmt.Errorf("unknown persona %q", cfg.Persona)
}
