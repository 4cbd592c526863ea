package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/navid-fn/hotelradar/internal/model"
)

// ErrUserNotFound is returned when a username has no account.
var ErrUserNotFound = errors.New("user not found")

// UserRepository manages dashboard accounts and the login audit trail.
type UserRepository interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, username string) error

	// AppendLoginAudit records one login attempt in the audit stream.
	AppendLoginAudit(ctx context.Context, username, outcome, remoteAddr string) error
}

type redisUserRepository struct {
	rdb *redis.Client
}

// NewRedisUserRepository creates a user repository over Redis. Accounts
// live in one hash per user plus a registry set for listing; the audit
// trail is a Redis stream.
func NewRedisUserRepository(rdb *redis.Client) UserRepository {
	return &redisUserRepository{rdb: rdb}
}

const (
	userKeyPrefix = "users:"
	userRegistry  = "users"
	auditStream   = "audit:logins"
)

func (r *redisUserRepository) GetUser(ctx context.Context, username string) (*model.User, error) {
	fields, err := r.rdb.HGetAll(ctx, userKeyPrefix+username).Result()
	if err != nil {
		return nil, fmt.Errorf("user store get %s: %w", username, err)
	}
	if len(fields) == 0 {
		return nil, ErrUserNotFound
	}
	user := &model.User{
		Username:     username,
		PasswordHash: fields["password_hash"],
		Role:         fields["role"],
	}
	if ts, ok := fields["created_at"]; ok {
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			user.CreatedAt = t
		}
	}
	return user, nil
}

func (r *redisUserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	names, err := r.rdb.SMembers(ctx, userRegistry).Result()
	if err != nil {
		return nil, fmt.Errorf("user store list: %w", err)
	}
	users := make([]model.User, 0, len(names))
	for _, name := range names {
		user, err := r.GetUser(ctx, name)
		if errors.Is(err, ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *redisUserRepository) SaveUser(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := r.rdb.HSet(ctx, userKeyPrefix+user.Username, map[string]interface{}{
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"created_at":    user.CreatedAt.Format(time.RFC3339),
	}).Err()
	if err != nil {
		return fmt.Errorf("user store save %s: %w", user.Username, err)
	}
	if err := r.rdb.SAdd(ctx, userRegistry, user.Username).Err(); err != nil {
		return fmt.Errorf("user store register %s: %w", user.Username, err)
	}
	return nil
}

func (r *redisUserRepository) DeleteUser(ctx context.Context, username string) error {
	if err := r.rdb.Del(ctx, userKeyPrefix+username).Err(); err != nil {
		return fmt.Errorf("user store delete %s: %w", username, err)
	}
	if err := r.rdb.SRem(ctx, userRegistry, username).Err(); err != nil {
		return fmt.Errorf("user store unregister %s: %w", username, err)
	}
	return nil
}

func (r *redisUserRepository) AppendLoginAudit(ctx context.Context, username, outcome, remoteAddr string) error {
	err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: auditStream,
		Values: map[string]interface{}{
			"username": username,
			"outcome":  outcome,
			"remote":   remoteAddr,
			"ts":       time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("login audit append: %w", err)
	}
	return nil
}
