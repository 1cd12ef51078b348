package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

// UseCase issues tokens and sessions for verified credentials. The workflow
// engine never sees credentials; it receives the resolved identity only.
type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtSecret  []byte
	jwtIssuer  string
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(secret),
		jwtIssuer:  issuer,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// LoginResult bundles the signed token with the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	SessionID string       `json:"session_id"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login verifies the email/password pair and issues a JWT plus a session
// record. Unknown email and wrong password are indistinguishable.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(uc.sessionTTL)

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(user, expiresAt)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return &LoginResult{
		Token:     token,
		User:      user,
		SessionID: session.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Register creates a citizen account with a hashed credential. Roles other
// than citizen are provisioned through seeding, never self-service.
func (uc *UseCase) Register(ctx context.Context, email, password, language string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         domain.RoleCitizen,
		Language:     language,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RevokeSession drops a session; the JWT itself stays valid until expiry.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iss":     uc.jwtIssuer,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}
