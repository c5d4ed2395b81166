package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
	"github.com/tulipbilling/invoicing-api/pkg/apperror"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

// AuthService handles login and token refresh against the credential store.
type AuthService struct {
	users      repository.UserStore
	jwtManager *utils.JWTManager
	logger     *logrus.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users repository.UserStore, jwtManager *utils.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginOutput carries the issued token pair plus the authenticated profile.
type LoginOutput struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         entity.User `json:"user"`
}

// Login verifies the credentials and issues a token pair. Unknown usernames
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.WithField("username", username).Warn("failed login attempt")
		return nil, apperror.ErrInvalidCredentials
	}

	output, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"username": username,
		"role":     user.Role,
	}).Info("user logged in")
	return output, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The profile is
// re-read so role or location changes take effect on the next access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	username, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.users.Get(ctx, username)
	if err != nil {
		// The account was deleted since the token was issued.
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// Profile returns the stored account for the authenticated username.
func (s *AuthService) Profile(ctx context.Context, username string) (*entity.User, error) {
	return s.users.Get(ctx, username)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.Identity())
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.Username)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}
