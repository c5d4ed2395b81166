package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

const minPasswordLength = 6

// UserService manages accounts in the credential store. Every operation here
// is master-only; the route guard enforces that before the service runs.
type UserService struct {
	users  repository.UserStore
	logger *logrus.Logger
}

// NewUserService creates a new user management service
func NewUserService(users repository.UserStore, logger *logrus.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns every stored account.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

// CreateUserInput represents a new account request.
type CreateUserInput struct {
	Username string
	Name     string
	Password string
	Role     enum.Role
	Location string
}

// Create adds an account. Only admin and user roles can be created; the
// master account exists solely through the seeded config file.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(input.Username)

	var fieldErrors []apperror.FieldError
	if input.Username == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "username", Message: "Username is required"})
	}
	if len(input.Password) < minPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if input.Role != enum.RoleAdmin && input.Role != enum.RoleUser {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "Role must be admin or user"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	user := &entity.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		Location:     input.Location,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("user created")
	return user, nil
}

// Delete removes an account. The store refuses to delete master accounts.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.WithField("username", username).Info("user deleted")
	return nil
}

// ResetPassword sets a new password for the account. Resetting a master
// account additionally requires that account's current password.
func (s *UserService) ResetPassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "new_password", Message: "Password must be at least 6 characters"},
		})
	}

	user, err := s.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if user.Role == enum.RoleMaster && !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperror.NewAppError(http.StatusForbidden, "Current master password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperror.ErrInternalServer
	}
	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("password reset")
	return nil
}

// AssignLocation sets the billing location stamped onto the user's future
// ledger rows.
func (s *UserService) AssignLocation(ctx context.Context, username, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "location", Message: "Location is required"},
		})
	}
	if err := s.users.UpdateLocation(ctx, username, location); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"username": username,
		"location": location,
	}).Info("location assigned")
	return nil
}
