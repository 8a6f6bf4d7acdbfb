package store

// Seed personas. Each constructor returns a fresh, independent MemoryStore;
// tests must never share one across test boundaries.

// DefaultMenu returns the static two-item catalog.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"},
		{ID: 2, Title: "Pepperoni", Image: "pizza2.png", Price: 0.0042, Description: "Spicy treat"},
	}
}

// standardFranchises is the three-franchise, four-store catalog shared by
// the diner and franchisee personas. withAdmins attaches ownership of
// LotaPizza to the franchisee seed user.
func standardFranchises(withAdmins bool) []Franchise {
	lota := Franchise{
		ID:   2,
		Name: "LotaPizza",
		Stores: []Store{
			{ID: 4, Name: "Lehi"},
			{ID: 5, Name: "Springville"},
			{ID: 6, Name: "American Fork"},
		},
	}
	if withAdmins {
		lota.Admins = []AdminRef{{ID: "1", Name: "Franchisee", Email: "f@jwt.com"}}
	}
	return []Franchise{
		lota,
		{ID: 3, Name: "PizzaCorp", Stores: []Store{{ID: 7, Name: "Spanish Fork"}}},
		{ID: 4, Name: "topSpot", Stores: []Store{}},
	}
}

// NewDiner seeds one diner account and the standard franchise catalog and
// menu, for ordering flows.
func NewDiner() *MemoryStore {
	s := New()
	s.AuthToken = "abcdef"
	s.Menu = DefaultMenu()
	s.SeedUser(User{
		ID:       "3",
		Name:     "Kai Chen",
		Email:    "d@jwt.com",
		Password: "a",
		Roles:    []RoleRef{{Role: RoleDiner}},
	})
	for _, f := range standardFranchises(false) {
		s.SeedFranchise(f)
	}
	return s
}

// NewAdmin seeds one admin account, an empty franchise catalog, and a small
// user list for the user-management flows. /api/user/me without a session
// answers 401 under this persona.
func NewAdmin() *MemoryStore {
	s := New()
	s.AuthToken = "admin-token"
	s.MeRequiresSession = true
	s.SeedUser(User{
		ID:       "1",
		Name:     "Alice Admin",
		Email:    "a@jwt.com",
		Password: "admin",
		Roles:    []RoleRef{{Role: RoleAdmin}},
	})
	s.SeedUser(User{
		ID:    "3",
		Name:  "Bob Baker",
		Email: "bob@jwt.com",
		Roles: []RoleRef{{Role: RoleDiner}},
	})
	s.SeedUser(User{
		ID:    "4",
		Name:  "Carol Cook",
		Email: "carol@jwt.com",
		Roles: []RoleRef{{Role: RoleFranchisee}},
	})
	return s
}

// NewFranchisee seeds a franchisee who owns LotaPizza but not PizzaCorp or
// topSpot, so flows exercise the owner-or-admin authorization checks both
// ways. Fresh franchise and store ids start at 100.
func NewFranchisee() *MemoryStore {
	s := New()
	s.AuthToken = "admin-token"
	s.SeedUser(User{
		ID:       "1",
		Name:     "Franchisee",
		Email:    "f@jwt.com",
		Password: "franchisee",
		Roles:    []RoleRef{{Role: RoleFranchisee}},
	})
	for _, f := range standardFranchises(true) {
		s.SeedFranchise(f)
	}
	s.FranchiseIDs.Bump(99)
	return s
}
