package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

// memoryUserStore keeps accounts in a map for service tests.
type memoryUserStore struct {
	users map[string]entity.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]entity.User{}}
}

func (m *memoryUserStore) Get(ctx context.Context, username string) (*entity.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, apperror.NewNotFoundError("User")
	}
	return &user, nil
}

func (m *memoryUserStore) List(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *memoryUserStore) Create(ctx context.Context, user *entity.User) error {
	if _, ok := m.users[user.Username]; ok {
		return apperror.NewConflictError("Username already exists")
	}
	m.users[user.Username] = *user
	return nil
}

func (m *memoryUserStore) Delete(ctx context.Context, username string) error {
	if _, ok := m.users[username]; !ok {
		return apperror.NewNotFoundError("User")
	}
	delete(m.users, username)
	return nil
}

func (m *memoryUserStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	user, ok := m.users[username]
	if !ok {
		return apperror.NewNotFoundError("User")
	}
	user.PasswordHash = passwordHash
	m.users[username] = user
	return nil
}

func (m *memoryUserStore) UpdateLocation(ctx context.Context, username, location string) error {
	user, ok := m.users[username]
	if !ok {
		return apperror.NewNotFoundError("User")
	}
	user.Location = location
	m.users[username] = user
	return nil
}

func seededStore(t *testing.T) *memoryUserStore {
	t.Helper()
	store := newMemoryUserStore()
	hash, err := utils.HashPassword("counter-pass")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	store.users["counter1"] = entity.User{
		Username:     "counter1",
		Name:         "Counter One",
		PasswordHash: hash,
		Role:         enum.RoleUser,
		Location:     "Jaipur",
	}
	return store
}

func newTestAuthService(t *testing.T) (*AuthService, *memoryUserStore) {
	t.Helper()
	store := seededStore(t)
	manager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(store, manager, testLogger()), store
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t)

	out, err := svc.Login(context.Background(), "counter1", "counter-pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if out.User.Username != "counter1" || out.User.Location != "Jaipur" {
		t.Errorf("unexpected user in login output: %+v", out.User)
	}
	if out.User.PasswordHash == "" {
		// The hash never serializes, but the service returns the full entity.
		t.Error("expected the stored entity")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Login(context.Background(), "counter1", "wrong"); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "counter-pass"); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshReflectsProfileChanges(t *testing.T) {
	svc, store := newTestAuthService(t)

	out, err := svc.Login(context.Background(), "counter1", "counter-pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Move the user before refreshing; the new access token must carry the
	// updated location.
	if err := store.UpdateLocation(context.Background(), "counter1", "Udaipur"); err != nil {
		t.Fatalf("UpdateLocation failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), out.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.User.Location != "Udaipur" {
		t.Errorf("refreshed location = %q, want Udaipur", refreshed.User.Location)
	}
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	svc, store := newTestAuthService(t)

	out, err := svc.Login(context.Background(), "counter1", "counter-pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := store.Delete(context.Background(), "counter1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), out.RefreshToken); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after deletion, got %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
