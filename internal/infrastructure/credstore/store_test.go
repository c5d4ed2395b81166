package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tulipbilling/invoicing-api/internal/config"
	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

type recordingSyncer struct {
	pushes int
	last   []byte
}

func (s *recordingSyncer) Push(ctx context.Context, content []byte) error {
	s.pushes++
	s.last = content
	return nil
}

func newTestStore(t *testing.T, syncer Syncer) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := NewStore(&config.CredStoreConfig{Path: path}, syncer)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestCreateGetRoundTrip(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	user := &entity.User{
		Username:     "asha",
		Name:         "Asha Verma",
		PasswordHash: "$2a$10$hash",
		Role:         enum.RoleUser,
		Location:     "Delhi Haat",
	}
	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, "asha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.Location != "Delhi Haat" || got.Role != enum.RoleUser {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestCreateDuplicateRejected(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	user := &entity.User{Username: "asha", Role: enum.RoleUser}
	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, user); err == nil {
		t.Error("expected conflict on duplicate username")
	}
}

func TestDeleteMasterForbidden(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	if err := store.Create(ctx, &entity.User{Username: "boss", Role: enum.RoleMaster}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, "boss"); err == nil {
		t.Error("expected delete of master account to be rejected")
	}
	if err := store.Delete(ctx, "ghost"); err == nil {
		t.Error("expected delete of unknown user to fail")
	}
}

func TestPersistenceSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx := context.Background()

	store, err := NewStore(&config.CredStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Create(ctx, &entity.User{Username: "asha", Role: enum.RoleAdmin, Location: "Surajkund"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.UpdateLocation(ctx, "asha", "Dilli Haat"); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}

	reloaded, err := NewStore(&config.CredStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.Get(ctx, "asha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Location != "Dilli Haat" {
		t.Errorf("reloaded user = %+v, want location Dilli Haat", got)
	}
}

func TestMutationsPushToSyncer(t *testing.T) {
	syncer := &recordingSyncer{}
	store := newTestStore(t, syncer)
	ctx := context.Background()

	if err := store.Create(ctx, &entity.User{Username: "asha", Role: enum.RoleUser}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.UpdatePassword(ctx, "asha", "$2a$10$newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if syncer.pushes != 2 {
		t.Errorf("expected 2 pushes, got %d", syncer.pushes)
	}
	if len(syncer.last) == 0 {
		t.Error("expected pushed content")
	}
}

func TestMissingFileStartsEmpty(t *testing.T) {
	store := newTestStore(t, nil)
	users, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty store, got %d users", len(users))
	}
	if _, err := os.Stat(store.path); !os.IsNotExist(err) {
		t.Error("store should not create the file before the first mutation")
	}
}
