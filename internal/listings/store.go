package listings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// DefaultSearchLimit caps user search results.
const DefaultSearchLimit = 25

type dataFile struct {
	Listings []Listing `toml:"listings"`
	Users    []User    `toml:"users"`
}

// Store is the in-memory view of the data file. It is safe for concurrent
// use.
type Store struct {
	mu       sync.RWMutex
	path     string
	listings []Listing
	users    []User
}

// Open loads the data file at path. When the file does not exist the store
// is seeded with sample data and written out, so a first run has something
// to browse.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		seed := sampleData()
		s.listings, s.users = seed.Listings, seed.Users
		s.assignIDs()
		if err := s.Save(); err != nil {
			return nil, err
		}
		log.Info("seeded data file", "path", path, "listings", len(s.listings), "users", len(s.users))
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var df dataFile
	if _, err := toml.Decode(string(data), &df); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	s.listings, s.users = df.Listings, df.Users
	for i := range s.users {
		s.users[i].Email = normalizeEmail(s.users[i].Email)
	}
	for i := range s.listings {
		s.listings[i].Owner = normalizeEmail(s.listings[i].Owner)
	}
	if s.assignIDs() {
		if err := s.Save(); err != nil {
			return nil, err
		}
	}
	log.Debug("loaded data file", "path", path, "listings", len(s.listings), "users", len(s.users))
	return s, nil
}

// NewMemoryStore returns a store that is never written to disk.
func NewMemoryStore(listings []Listing, users []User) *Store {
	s := &Store{
		listings: slices.Clone(listings),
		users:    slices.Clone(users),
	}
	s.assignIDs()
	return s
}

// assignIDs gives every listing without an ID a fresh one and reports
// whether anything changed.
func (s *Store) assignIDs() bool {
	changed := false
	for i := range s.listings {
		if strings.TrimSpace(s.listings[i].ID) == "" {
			s.listings[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}

// Save writes the store back to its data file. Memory stores ignore it.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	df := dataFile{Listings: s.listings, Users: s.users}
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(df); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write data file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Path returns the backing data file, empty for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Listings returns a copy of every listing in file order.
func (s *Store) Listings() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.listings)
}

// Listing returns the listing with the given ID.
func (s *Store) Listing(id string) (Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}

// Users returns a copy of every user.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// User looks a user up by email, case-insensitively.
func (s *Store) User(email string) (User, bool) {
	email = normalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// SearchUsers returns users whose email or name contains query,
// case-insensitively, sorted by email and capped at limit (a non-positive
// limit means DefaultSearchLimit). An empty query matches nothing.
func (s *Store) SearchUsers(query string, limit int) []User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	s.mu.RLock()
	var out []User
	for _, u := range s.users {
		if strings.Contains(u.Email, query) || strings.Contains(strings.ToLower(u.Name), query) {
			out = append(out, u)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.Email, b.Email) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
