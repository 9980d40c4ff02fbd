package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/enoma/domain/user"
)

// Options configures the AuthModule.
type Options struct {
	DBPath    string
	JWTSecret string
	BaseURL   string
	DevMode   bool
	Mailer    Mailer
}

// AuthModule provides authentication services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	opts    Options
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(opts Options) *AuthModule {
	return &AuthModule{
		opts: opts,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(_ context.Context) error {
	if m.opts.JWTSecret == "" {
		return errors.New("auth: JWT secret is required")
	}

	db, err := gorm.Open(sqlite.Open(m.opts.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()

	jwtConfig := DefaultJWTConfig()
	jwtConfig.SecretKey = m.opts.JWTSecret
	jwtManager := NewJWTManager(jwtConfig)

	m.service = NewAuthService(repo, hasher, jwtManager, m.opts.Mailer, ServiceConfig{
		BaseURL: m.opts.BaseURL,
		DevMode: m.opts.DevMode,
	})

	log.Printf("[auth] Module started (database: %s)", m.opts.DBPath)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.opts.DBPath,
		},
	}
}

// GetService returns the auth service.
func (m *AuthModule) GetService() *AuthService {
	return m.service
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"register", func() error {
			return helper.RegisterTypedRequestReplyService(container, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		}},
		{"login", func() error {
			return helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		}},
		{"change-password", func() error {
			return helper.RegisterTypedRequestReplyService(container, "change-password", json.Unmarshal, json.Marshal, m.handleChangePassword)
		}},
		{"forgot-password", func() error {
			return helper.RegisterTypedRequestReplyService(container, "forgot-password", json.Unmarshal, json.Marshal, m.handleForgotPassword)
		}},
		{"reset-password", func() error {
			return helper.RegisterTypedRequestReplyService(container, "reset-password", json.Unmarshal, json.Marshal, m.handleResetPassword)
		}},
		{"validate-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		}},
		{"get-user", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, change-password, forgot-password, reset-password, validate-token, get-user")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	user, token, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token: token,
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// handleChangePassword handles a password change for an authenticated user.
func (m *AuthModule) handleChangePassword(ctx context.Context, req ChangePasswordRequest, _ *mono.Msg) (ChangePasswordResponse, error) {
	if err := m.service.ChangePassword(ctx, req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return ChangePasswordResponse{}, err
	}
	return ChangePasswordResponse{Changed: true}, nil
}

// handleForgotPassword handles a password-reset request.
func (m *AuthModule) handleForgotPassword(ctx context.Context, req ForgotPasswordRequest, _ *mono.Msg) (ForgotPasswordResponse, error) {
	if err := m.service.ForgotPassword(ctx, req.Email); err != nil {
		return ForgotPasswordResponse{}, err
	}
	return ForgotPasswordResponse{}, nil
}

// handleResetPassword handles a reset-token redemption.
func (m *AuthModule) handleResetPassword(ctx context.Context, req ResetPasswordRequest, _ *mono.Msg) (ResetPasswordResponse, error) {
	if err := m.service.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return ResetPasswordResponse{}, err
	}
	return ResetPasswordResponse{Reset: true}, nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.VerifyToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		// Return a response, not an error, for validation failures.
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil
	}

	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// handleGetUser handles get user requests.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}
