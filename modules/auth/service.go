package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	domain "github.com/example/enoma/domain/user"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrWrongPassword is returned when the current password does not verify.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrInvalidResetToken is returned when a reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// Mailer delivers transactional email. Delivery failures are logged by the
// service and never fail the primary operation.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
	SendPasswordChangeNotice(ctx context.Context, to string) error
}

// ServiceConfig carries the environment-derived knobs of the auth service.
type ServiceConfig struct {
	// BaseURL is the public origin used to build reset links.
	BaseURL string
	// DevMode gates logging of reset links to server output.
	DevMode bool
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	mailer Mailer
	config ServiceConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, mailer Mailer, config ServiceConfig) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		mailer: mailer,
		config: config,
	}
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

// Register creates a new user account with the USER role.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Display name defaults to the local part of the email address.
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns the user and a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.SignToken(domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return user, token, nil
}

// ChangePassword verifies the current password and stores a new hash,
// then best-effort notifies the account owner by email.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordChangeNotice(ctx, user.Email); err != nil {
			log.Printf("[auth] Failed to send password change notification to %s: %v", user.Email, err)
		}
	}

	return nil
}

// ForgotPassword issues a password-reset token when the account exists and
// best-effort sends the reset link. It deliberately reveals nothing about
// account existence to its caller: the only non-nil errors are store
// failures.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Anti-enumeration: behave exactly as in the success path.
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, expiry, err := GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.BaseURL, "/"), token)

	if s.config.DevMode {
		log.Printf("[auth] Password reset link for %s: %s", user.Email, resetURL)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
			log.Printf("[auth] Failed to send password reset email to %s: %v", user.Email, err)
		}
	}

	return nil
}

// ResetPassword consumes a reset token: it verifies the token is stored and
// unexpired, stores the new password hash, and clears both token fields.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.ResetPassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// VerifyToken validates a session token and returns the identity it names.
func (s *AuthService) VerifyToken(_ context.Context, token string) (*domain.Claims, error) {
	return s.jwt.VerifyToken(token)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// CountUsers returns the total number of accounts.
func (s *AuthService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.CountUsers(ctx)
}
