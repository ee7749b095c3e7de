package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
)

const redisRevokedSet = "stream:revoked_tokens"

type (
	principalKey struct{}

	// Principal is the caller behind a verified bearer token.
	Principal struct {
		Subject   string
		TokenId   string
		ExpiresAt time.Time
	}

	// RedisPool hands out connections to the revocation store. *redis.Pool
	// satisfies it.
	RedisPool interface {
		Get() redis.Conn
	}

	Manager struct {
		secret []byte
		redis  RedisPool
	}
)

var (
	ErrNoAuth        = errors.New("sessions: no credentials")
	ErrBadToken      = errors.New("sessions: invalid token")
	ErrRevoked       = errors.New("sessions: token has been revoked")
	ErrNoRevocations = errors.New("sessions: revocation store is not configured")
)

// NewManager verifies HS256 tokens signed with secret. pool may be nil, in
// which case tokens cannot be revoked.
func NewManager(secret string, pool RedisPool) *Manager {
	return &Manager{
		secret: []byte(secret),
		redis:  pool,
	}
}

// Authenticate checks an Authorization header of the form "Bearer <jwt>".
func (m *Manager) Authenticate(authHeader string) (*Principal, error) {
	if authHeader == "" {
		return nil, ErrNoAuth
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return nil, fmt.Errorf("%w: expected a bearer token", ErrBadToken)
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if !token.Valid {
		return nil, ErrBadToken
	}

	if claims.Id != "" && m.redis != nil {
		revoked, err := m.IsRevoked(claims.Id)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrRevoked
		}
	}

	p := &Principal{
		Subject: claims.Subject,
		TokenId: claims.Id,
	}
	if claims.ExpiresAt != 0 {
		p.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return p, nil
}

// CreateToken mints a signed token for subject valid for ttl.
func (m *Manager) CreateToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
		Id:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sessions: failed signing token: %w", err)
	}
	return token, nil
}

func (m *Manager) Revoke(tokenId string) error {
	if m.redis == nil {
		return ErrNoRevocations
	}
	conn := m.redis.Get()
	defer conn.Close()

	if _, err := conn.Do("SADD", redisRevokedSet, tokenId); err != nil {
		return fmt.Errorf("sessions: failed SADD to Redis: %w", err)
	}
	return nil
}

func (m *Manager) IsRevoked(tokenId string) (bool, error) {
	if m.redis == nil {
		return false, nil
	}
	conn := m.redis.Get()
	defer conn.Close()

	revoked, err := redis.Bool(conn.Do("SISMEMBER", redisRevokedSet, tokenId))
	if err != nil {
		return false, fmt.Errorf("sessions: failed SISMEMBER on Redis: %w", err)
	}
	return revoked, nil
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func GetPrincipal(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || p == nil {
		return nil, ErrNoAuth
	}
	return p, nil
}
