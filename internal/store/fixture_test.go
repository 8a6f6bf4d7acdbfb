package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `
auth_token: fixture-token
me_requires_session: true
menu:
  - id: 1
    title: Veggie
    price: 0.0038
users:
  - id: "3"
    name: Kai Chen
    email: d@jwt.com
    password: a
    roles:
      - role: diner
  - name: No Id
    email: noid@jwt.com
franchises:
  - id: 2
    name: LotaPizza
    admins:
      - id: "3"
        name: Kai Chen
        email: d@jwt.com
    stores:
      - id: 4
        name: Lehi
  - name: FreshChain
session: d@jwt.com
`

func TestParseFixture(t *testing.T) {
	s, err := ParseFixture([]byte(sampleFixture))
	require.NoError(t, err)

	assert.Equal(t, "fixture-token", s.AuthToken)
	assert.True(t, s.MeRequiresSession)
	require.Len(t, s.Menu, 1)
	assert.Equal(t, "Veggie", s.Menu[0].Title)

	kai, ok := s.Users.Get("3")
	require.True(t, ok)
	assert.True(t, kai.HasRole(RoleDiner))

	// Missing user id gets allocated.
	noid, ok := s.FindUserByEmail("noid@jwt.com")
	require.True(t, ok)
	assert.NotEmpty(t, noid.ID)

	lota, ok := s.Franchises.Get(2)
	require.True(t, ok)
	assert.True(t, lota.HasAdmin("3"))

	// Missing franchise id gets allocated past the seeded range.
	fresh, ok := s.Franchises.Find(func(_ int64, f Franchise) bool {
		return f.Name == "FreshChain"
	})
	require.True(t, ok)
	assert.Greater(t, fresh.ID, int64(4))
	assert.NotNil(t, fresh.Stores)

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "d@jwt.com", cur.Email)
}

func TestParseFixtureUserEmailRequired(t *testing.T) {
	_, err := ParseFixture([]byte("users:\n  - name: Ghost\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
}

func TestParseFixtureFranchiseNameRequired(t *testing.T) {
	_, err := ParseFixture([]byte("franchises:\n  - id: 9\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParseFixtureUnknownSessionEmail(t *testing.T) {
	_, err := ParseFixture([]byte("session: ghost@jwt.com\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseFixtureBadYAML(t *testing.T) {
	_, err := ParseFixture([]byte("users: [}"))
	assert.Error(t, err)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFixture), 0o644))

	s, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, "fixture-token", s.AuthToken)
}

func TestLoadFixtureMissingFile(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
