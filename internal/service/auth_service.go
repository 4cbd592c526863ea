package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/navid-fn/hotelradar/config"
	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/repository"
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords
// alike, so login responses do not leak which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles login, session tokens and account management.
type AuthService struct {
	users  repository.UserRepository
	logger *logrus.Logger
	cfg    config.AuthConfig
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{users: users, logger: logger, cfg: cfg}
}

// Login checks credentials and issues a signed session token. Every
// attempt, successful or not, lands in the audit trail.
func (as *AuthService) Login(ctx context.Context, username, password, remoteAddr string) (string, error) {
	user, err := as.users.GetUser(ctx, username)
	if err != nil {
		as.audit(ctx, username, "denied", remoteAddr)
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		as.audit(ctx, username, "denied", remoteAddr)
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(as.cfg.TokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	as.audit(ctx, username, "success", remoteAddr)
	return token, nil
}

// ParseToken validates a session token and returns the username and role.
func (as *AuthService) ParseToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return username, role, nil
}

// CreateUser registers an account with a bcrypt-hashed password.
func (as *AuthService) CreateUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if role != model.RoleAdmin && role != model.RoleViewer {
		return fmt.Errorf("unknown role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return as.users.SaveUser(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// UpdateUser replaces the password and/or role of an existing account.
func (as *AuthService) UpdateUser(ctx context.Context, username, password, role string) error {
	user, err := as.users.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if role != "" {
		if role != model.RoleAdmin && role != model.RoleViewer {
			return fmt.Errorf("unknown role %q", role)
		}
		user.Role = role
	}
	return as.users.SaveUser(ctx, user)
}

func (as *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return as.users.ListUsers(ctx)
}

func (as *AuthService) DeleteUser(ctx context.Context, username string) error {
	return as.users.DeleteUser(ctx, username)
}

// EnsureAdmin bootstraps the configured admin account when it does not
// exist yet. No-op when the config leaves it unset.
func (as *AuthService) EnsureAdmin(ctx context.Context) error {
	if as.cfg.AdminUser == "" || as.cfg.AdminPassword == "" {
		return nil
	}
	_, err := as.users.GetUser(ctx, as.cfg.AdminUser)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	as.logger.Infof("Bootstrapping admin account %s", as.cfg.AdminUser)
	return as.CreateUser(ctx, as.cfg.AdminUser, as.cfg.AdminPassword, model.RoleAdmin)
}

func (as *AuthService) audit(ctx context.Context, username, outcome, remoteAddr string) {
	if err := as.users.AppendLoginAudit(ctx, username, outcome, remoteAddr); err != nil {
		as.logger.Errorf("Login audit write failed: %v", err)
	}
}
