package auth

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// EmailDomain is appended to the username to form the account email,
// matching the directory's registration convention.
const EmailDomain = "@codecraft.com"

// UserRepository is the persistence surface the auth service needs.
type UserRepository interface {
	GetAccountByUsername(username string) (*Account, error)
	GetAccountByID(id int64) (*Account, error)
	CreateAccount(a *Account, roleNames []string) error
	RotateUniquifier(userID int64, uniquifier string) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Register creates a new account with the User role. A taken username is a
// field-level error and writes nothing.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetAccountByUsername(dto.Username); err == nil && existing != nil {
		s.logger.Warn("registration rejected: username taken", "username", dto.Username)
		return nil, FieldErrors{{Field: "username", Msg: "Username already exists"}}
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	uniquifier, err := GenerateRandomToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &Account{
		Email:        dto.Username + EmailDomain,
		Username:     dto.Username,
		PasswordHash: hash,
		Active:       true,
		Uniquifier:   uniquifier,
		ConfirmedAt:  &now,
	}

	if err := s.userRepo.CreateAccount(account, []string{RoleUser}); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", account.ID, "username", account.Username)
	return account.ToUser(), nil
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.userRepo.GetAccountByUsername(dto.Username)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if !account.Active {
		return AuthTokens{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// RefreshTokens validates a refresh token and rotates the token pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	account, err := s.userRepo.GetAccountByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}

	// A rotated uniquifier kills outstanding refresh tokens too.
	if account.Uniquifier != claims.Uniquifier {
		return AuthTokens{}, ErrInvalidToken
	}

	if !account.Active {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(account)
}

// ValidateAccessToken validates the token signature and expiry, then checks
// the uniquifier claim against the stored one so logout takes effect
// immediately for every outstanding token.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	account, err := s.userRepo.GetAccountByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if account.Uniquifier != claims.Uniquifier {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUserWithRoles loads the current user and role names for the request context.
func (s *Service) GetUserWithRoles(userID int64) (*User, error) {
	account, err := s.userRepo.GetAccountByID(userID)
	if err != nil {
		return nil, err
	}
	return account.ToUser(), nil
}

// Logout rotates the user's uniquifier, invalidating every token issued so far.
func (s *Service) Logout(userID int64) error {
	uniquifier, err := GenerateRandomToken()
	if err != nil {
		return err
	}
	if err := s.userRepo.RotateUniquifier(userID, uniquifier); err != nil {
		s.logger.Error("failed to rotate uniquifier", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) issueTokens(account *Account) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(account.ID, account.Username, account.Uniquifier)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(account.ID, account.Username, account.Uniquifier)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
