package repository

import (
	"context"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
)

// UserStore is the credential store backing authentication and user
// management. The concrete store is a YAML config file kept in sync with a
// remote copy; reads are cheap, writes persist the whole file.
type UserStore interface {
	Get(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	UpdateLocation(ctx context.Context, username, location string) error
}
