package credstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tulipbilling/invoicing-api/internal/config"
	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
)

// Syncer pushes the serialized credential file to its remote copy after a
// local mutation. A nil Syncer disables remote persistence.
type Syncer interface {
	Push(ctx context.Context, content []byte) error
}

// fileConfig mirrors the credential YAML layout:
//
//	cookie:
//	  name: ...
//	credentials:
//	  usernames:
//	    alice: {name, password, role, location}
type fileConfig struct {
	Cookie      map[string]interface{} `yaml:"cookie,omitempty"`
	Credentials struct {
		Usernames map[string]entity.User `yaml:"usernames"`
	} `yaml:"credentials"`
}

// Store is a YAML-file credential store. Reads serve from memory; every
// mutation rewrites the file and, when a Syncer is configured, commits the
// new content to the remote copy.
type Store struct {
	path   string
	syncer Syncer
	logger interface {
		Warnf(format string, args ...interface{})
	}

	mu  sync.RWMutex
	cfg fileConfig
}

// NewStore loads the credential file from disk. A missing file starts an
// empty store; the first persisted mutation creates it.
func NewStore(cfg *config.CredStoreConfig, syncer Syncer) (*Store, error) {
	s := &Store{
		path:   cfg.Path,
		syncer: syncer,
		logger: config.GetLogger(),
	}
	s.cfg.Credentials.Usernames = make(map[string]entity.User)

	data, err := os.ReadFile(cfg.Path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.cfg); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	if s.cfg.Credentials.Usernames == nil {
		s.cfg.Credentials.Usernames = make(map[string]entity.User)
	}
	return s, nil
}

// Get returns the user with the given username.
func (s *Store) Get(ctx context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.cfg.Credentials.Usernames[username]
	if !ok {
		return nil, apperror.NewNotFoundError("User")
	}
	user.Username = username
	return &user, nil
}

// List returns every user sorted by username.
func (s *Store) List(ctx context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entity.User, 0, len(s.cfg.Credentials.Usernames))
	for username, user := range s.cfg.Credentials.Usernames {
		user.Username = username
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Create adds a new user and persists the file.
func (s *Store) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cfg.Credentials.Usernames[user.Username]; exists {
		return apperror.NewConflictError("Username already exists")
	}
	s.cfg.Credentials.Usernames[user.Username] = *user
	return s.persistLocked(ctx)
}

// Delete removes a user and persists the file. Master accounts cannot be
// deleted.
func (s *Store) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.cfg.Credentials.Usernames[username]
	if !ok {
		return apperror.NewNotFoundError("User")
	}
	if user.Role.CanManageUsers() {
		return apperror.NewBadRequestError("Master accounts cannot be deleted")
	}
	delete(s.cfg.Credentials.Usernames, username)
	return s.persistLocked(ctx)
}

// UpdatePassword replaces a user's password hash and persists the file.
func (s *Store) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.cfg.Credentials.Usernames[username]
	if !ok {
		return apperror.NewNotFoundError("User")
	}
	user.PasswordHash = passwordHash
	s.cfg.Credentials.Usernames[username] = user
	return s.persistLocked(ctx)
}

// UpdateLocation assigns a user's billing location and persists the file.
func (s *Store) UpdateLocation(ctx context.Context, username, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.cfg.Credentials.Usernames[username]
	if !ok {
		return apperror.NewNotFoundError("User")
	}
	user.Location = location
	s.cfg.Credentials.Usernames[username] = user
	return s.persistLocked(ctx)
}

// persistLocked writes the file locally and pushes it to the remote copy.
// A failed push keeps the local change; the remote catches up on the next
// successful mutation.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := yaml.Marshal(&s.cfg)
	if err != nil {
		return fmt.Errorf("marshal credential file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}

	if s.syncer != nil {
		if err := s.syncer.Push(ctx, data); err != nil {
			s.logger.Warnf("failed to sync credential file to remote: %v", err)
		}
	}
	return nil
}
