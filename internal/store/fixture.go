package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML shape of a seed file. It lets an out-of-process test
// suite define its own persona without recompiling the simulator.
type Fixture struct {
	AuthToken         string      `yaml:"auth_token"`
	MeRequiresSession bool        `yaml:"me_requires_session"`
	Menu              []MenuItem  `yaml:"menu"`
	Users             []User      `yaml:"users"`
	Franchises        []Franchise `yaml:"franchises"`
	// Session is the email of the user logged in at startup, if any.
	Session string `yaml:"session"`
}

// ParseFixture builds a MemoryStore from YAML fixture data.
func ParseFixture(data []byte) (*MemoryStore, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	s := New()
	if fx.AuthToken != "" {
		s.AuthToken = fx.AuthToken
	}
	s.MeRequiresSession = fx.MeRequiresSession
	if fx.Menu != nil {
		s.Menu = fx.Menu
	}

	for i, u := range fx.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("fixture user %d: email is required", i)
		}
		if u.ID == "" {
			u.ID = s.NextUserID()
		}
		s.SeedUser(u)
	}
	for i, f := range fx.Franchises {
		if f.Name == "" {
			return nil, fmt.Errorf("fixture franchise %d: name is required", i)
		}
		if f.ID == 0 {
			f.ID = s.NextFranchiseID()
		}
		if f.Stores == nil {
			f.Stores = []Store{}
		}
		s.SeedFranchise(f)
	}

	if fx.Session != "" {
		u, ok := s.FindUserByEmail(fx.Session)
		if !ok {
			return nil, fmt.Errorf("fixture session user %q not found", fx.Session)
		}
		s.SetCurrentUser(u)
	}
	return s, nil
}

// LoadFixture reads and parses a YAML fixture file.
func LoadFixture(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return ParseFixture(data)
}
