package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/example/enoma/modules/admin"
	"github.com/example/enoma/modules/auth"
	"github.com/example/enoma/modules/content"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	content       *content.Service
	admin         *admin.Service
	isProduction  bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, contentSvc *content.Service, adminSvc *admin.Service, isProduction bool) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		content:       contentSvc,
		admin:         adminSvc,
		isProduction:  isProduction,
	}
}

// callAuth invokes a named auth service through the service container.
func callAuth[T1, T2 any](h *Handlers, c *fiber.Ctx, service string, req T1, resp *T2) error {
	return helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Email and password are required",
		})
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	var resp auth.RegisterResponse

	if err := callAuth(h, c, "register", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		User: UserResponse{
			ID:    resp.ID,
			Email: resp.Email,
			Name:  resp.Name,
		},
	})
}

// Login handles user login and sets the session cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Email and password are required",
		})
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := callAuth(h, c, "login", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	h.setAuthCookie(c, resp.Token)

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		User: UserResponse{
			ID:    resp.ID,
			Email: resp.Email,
			Name:  resp.Name,
		},
	})
}

// Logout clears the session cookie. Safe to call without a session.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.isProduction,
		SameSite: "Strict",
	})

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Logged out successfully",
	})
}

// ChangePassword handles a password change for the authenticated user.
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Authentication required",
		})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Current password and new password are required",
		})
	}

	authReq := auth.ChangePasswordRequest{
		UserID:          claims.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	var resp auth.ChangePasswordResponse

	if err := callAuth(h, c, "change-password", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Password changed successfully",
	})
}

// ForgotPassword starts the password-reset flow. The response never reveals
// whether the account exists.
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Email is required",
		})
	}

	authReq := auth.ForgotPasswordRequest{Email: req.Email}
	var resp auth.ForgotPasswordResponse

	if err := callAuth(h, c, "forgot-password", &authReq, &resp); err != nil {
		if strings.Contains(err.Error(), "invalid email format") {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid email format",
			})
		}
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

// ResetPassword redeems a reset token for a new password.
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Token == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Token and new password are required",
		})
	}

	authReq := auth.ResetPasswordRequest{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}
	var resp auth.ResetPasswordResponse

	if err := callAuth(h, c, "reset-password", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Password has been reset successfully",
	})
}

// Me returns the authenticated user's account.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Authentication required",
		})
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "User not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

// setAuthCookie writes the week-long http-only session cookie.
func (h *Handlers) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTokenDuration.Seconds()),
		HTTPOnly: true,
		Secure:   h.isProduction,
		SameSite: "Strict",
	})
}

// handleAuthError maps auth service errors onto the HTTP error taxonomy by
// matching known error messages so internals never leak.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid credentials"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Invalid credentials",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid email format",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Password must be at least 6 characters",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Password is too long",
		})
	case strings.Contains(errStr, "current password is incorrect"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Current password is incorrect",
		})
	case strings.Contains(errStr, "invalid or expired reset token"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid or expired reset token",
		})
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "User not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}
}
