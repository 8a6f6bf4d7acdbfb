package store

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/jwt-pizza/twin-pizza/internal/memstore"
)

// MemoryStore holds all simulated backend state for one test. It is the
// mutable handle a test keeps: the collections and the session slot may be
// read and written directly when a test wants to rig or assert on server
// state without going through the API. A MemoryStore must never be shared
// across tests; each test constructs its own.
type MemoryStore struct {
	mu sync.RWMutex

	Users      *memstore.Collection[string, User]
	Franchises *memstore.Collection[int64, Franchise]
	Menu       []MenuItem

	// session is the single logged-in-user slot. At most one session is
	// active per instance, mirroring a single browser context.
	session *User

	// AuthToken is returned verbatim by login, register, and user-update
	// responses. The simulator never validates it.
	AuthToken string

	// MeRequiresSession controls GET /api/user/me with no session:
	// 401 when set, 200 with an empty body otherwise.
	MeRequiresSession bool

	// FranchiseIDs allocates franchise and store identifiers from one
	// shared sequence, so both stay unique and monotonic together.
	FranchiseIDs *memstore.Sequence
	UserIDs      *memstore.Sequence
}

// DefaultAuthToken is returned by personas that do not pin their own token.
const DefaultAuthToken = "tttttt"

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		Users:        memstore.NewCollection[string, User](),
		Franchises:   memstore.NewCollection[int64, Franchise](),
		Menu:         []MenuItem{},
		AuthToken:    DefaultAuthToken,
		FranchiseIDs: memstore.NewSequence(1),
		UserIDs:      memstore.NewSequence(1),
	}
}

// CurrentUser returns a copy of the session user, if any.
func (s *MemoryStore) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return User{}, false
	}
	return *s.session, true
}

// SetCurrentUser fills the session slot with a copy of u.
func (s *MemoryStore) SetCurrentUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &u
}

// ClearSession empties the session slot.
func (s *MemoryStore) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// FindUserByEmail looks a user up by their authentication key.
func (s *MemoryStore) FindUserByEmail(email string) (User, bool) {
	return s.Users.Find(func(_ string, u User) bool {
		return u.Email == email
	})
}

// SeedUser inserts a user and keeps the user ID sequence ahead of any
// numeric id the seed carries.
func (s *MemoryStore) SeedUser(u User) {
	s.Users.Set(u.ID, u)
	if n, err := strconv.ParseInt(u.ID, 10, 64); err == nil {
		s.UserIDs.Bump(n)
	}
}

// SeedFranchise inserts a franchise and keeps the shared ID sequence ahead
// of the franchise's own id and all of its store ids.
func (s *MemoryStore) SeedFranchise(f Franchise) {
	s.Franchises.Set(f.ID, f)
	s.FranchiseIDs.Bump(f.ID)
	for _, st := range f.Stores {
		s.FranchiseIDs.Bump(st.ID)
	}
}

// NextUserID allocates a fresh user id.
func (s *MemoryStore) NextUserID() string {
	return strconv.FormatInt(s.UserIDs.Next(), 10)
}

// NextFranchiseID allocates a fresh franchise id.
func (s *MemoryStore) NextFranchiseID() int64 {
	return s.FranchiseIDs.Next()
}

// NextStoreID allocates a fresh store id from the shared sequence.
func (s *MemoryStore) NextStoreID() int64 {
	return s.FranchiseIDs.Next()
}

// stateSnapshot is the JSON-serializable state for the admin plane.
type stateSnapshot struct {
	Users             map[string]User     `json:"users"`
	Franchises        map[int64]Franchise `json:"franchises"`
	Menu              []MenuItem          `json:"menu"`
	Session           *User               `json:"session,omitempty"`
	AuthToken         string              `json:"auth_token,omitempty"`
	MeRequiresSession bool                `json:"me_requires_session,omitempty"`
}

// Snapshot returns the full state as a JSON-serializable value.
func (s *MemoryStore) Snapshot() any {
	s.mu.RLock()
	session := s.session
	token := s.AuthToken
	strict := s.MeRequiresSession
	menu := s.Menu
	s.mu.RUnlock()

	return stateSnapshot{
		Users:             s.Users.Snapshot(),
		Franchises:        s.Franchises.Snapshot(),
		Menu:              menu,
		Session:           session,
		AuthToken:         token,
		MeRequiresSession: strict,
	}
}

// LoadState replaces the full state from a JSON body. ID sequences are
// re-seeded past the highest identifiers in the snapshot.
func (s *MemoryStore) LoadState(data []byte) error {
	var snap stateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	s.Users.LoadSnapshot(snap.Users, func(a, b string) bool { return a < b })
	s.Franchises.LoadSnapshot(snap.Franchises, func(a, b int64) bool { return a < b })

	s.UserIDs.Reset(1)
	for id := range snap.Users {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			s.UserIDs.Bump(n)
		}
	}
	s.FranchiseIDs.Reset(1)
	for id, f := range snap.Franchises {
		s.FranchiseIDs.Bump(id)
		for _, st := range f.Stores {
			s.FranchiseIDs.Bump(st.ID)
		}
	}

	s.mu.Lock()
	s.session = snap.Session
	if snap.AuthToken != "" {
		s.AuthToken = snap.AuthToken
	}
	s.MeRequiresSession = snap.MeRequiresSession
	if snap.Menu != nil {
		s.Menu = snap.Menu
	}
	s.mu.Unlock()
	return nil
}

// Reset clears all state, including the session and ID sequences.
func (s *MemoryStore) Reset() {
	s.Users.Reset()
	s.Franchises.Reset()
	s.UserIDs.Reset(1)
	s.FranchiseIDs.Reset(1)
	s.mu.Lock()
	s.session = nil
	s.Menu = []MenuItem{}
	s.mu.Unlock()
}
