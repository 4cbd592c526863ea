package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/config"
	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/repository"
)

type auditEntry struct {
	username string
	outcome  string
}

type fakeUserRepository struct {
	users map[string]model.User
	audit []auditEntry
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]model.User)}
}

func (f *fakeUserRepository) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepository) SaveUser(ctx context.Context, user *model.User) error {
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepository) DeleteUser(ctx context.Context, username string) error {
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepository) AppendLoginAudit(ctx context.Context, username, outcome, remoteAddr string) error {
	f.audit = append(f.audit, auditEntry{username: username, outcome: outcome})
	return nil
}

func testAuthService(repo repository.UserRepository) *AuthService {
	return NewAuthService(repo, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, logrus.New())
}

func TestLoginAndParseToken(t *testing.T) {
	repo := newFakeUserRepository()
	as := testAuthService(repo)
	ctx := context.Background()

	if err := as.CreateUser(ctx, "alice", "s3cret", model.RoleAdmin); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	token, err := as.Login(ctx, "alice", "s3cret", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	username, role, err := as.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if username != "alice" || role != model.RoleAdmin {
		t.Errorf("Expected alice/admin, got %s/%s", username, role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	as := testAuthService(repo)
	ctx := context.Background()

	if err := as.CreateUser(ctx, "alice", "s3cret", model.RoleViewer); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := as.Login(ctx, "alice", "wrong", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := as.Login(ctx, "nobody", "s3cret", "127.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginAuditTrail(t *testing.T) {
	repo := newFakeUserRepository()
	as := testAuthService(repo)
	ctx := context.Background()

	_ = as.CreateUser(ctx, "alice", "s3cret", model.RoleViewer)
	_, _ = as.Login(ctx, "alice", "wrong", "127.0.0.1")
	_, _ = as.Login(ctx, "alice", "s3cret", "127.0.0.1")

	if len(repo.audit) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(repo.audit))
	}
	if repo.audit[0].outcome != "denied" {
		t.Errorf("Expected first attempt denied, got %q", repo.audit[0].outcome)
	}
	if repo.audit[1].outcome != "success" {
		t.Errorf("Expected second attempt success, got %q", repo.audit[1].outcome)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	repo := newFakeUserRepository()
	as := testAuthService(repo)
	ctx := context.Background()

	_ = as.CreateUser(ctx, "alice", "s3cret", model.RoleViewer)
	token, err := as.Login(ctx, "alice", "s3cret", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, _, err := as.ParseToken(token + "x"); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
	if _, _, err := as.ParseToken(""); err == nil {
		t.Error("Expected empty token to be rejected")
	}
}

func TestCreateUserValidation(t *testing.T) {
	repo := newFakeUserRepository()
	as := testAuthService(repo)
	ctx := context.Background()

	if err := as.CreateUser(ctx, "", "pw", model.RoleViewer); err == nil {
		t.Error("Expected error for empty username")
	}
	if err := as.CreateUser(ctx, "bob", "pw", "superuser"); err == nil {
		t.Error("Expected error for unknown role")
	}
}
