package sessions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-key"

// fakeConn keeps a single Redis set in memory.
type fakeConn struct {
	members map[string]bool
	err     error
}

func newFakeConn() *fakeConn {
	return &fakeConn{members: map[string]bool{}}
}

func (c *fakeConn) Get() redis.Conn { return c }

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }
func (c *fakeConn) Flush() error { return nil }

func (c *fakeConn) Send(string, ...interface{}) error { return nil }
func (c *fakeConn) Receive() (interface{}, error)     { return nil, nil }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}
	switch cmd {
	case "SADD":
		c.members[args[1].(string)] = true
		return int64(1), nil
	case "SISMEMBER":
		if c.members[args[1].(string)] {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return nil, fmt.Errorf("unexpected command %s", cmd)
}

func TestAuthenticate(t *testing.T) {
	sm := NewManager(testSecret, nil)

	t.Run("should accept a fresh token", func(t *testing.T) {
		token, err := sm.CreateToken("user-1", time.Hour)
		require.NoError(t, err)

		p, err := sm.Authenticate("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", p.Subject)
		assert.NotEmpty(t, p.TokenId)
		assert.True(t, p.ExpiresAt.After(time.Now()))
	})

	t.Run("should reject a missing header", func(t *testing.T) {
		_, err := sm.Authenticate("")
		assert.True(t, errors.Is(err, ErrNoAuth))
	})

	t.Run("should reject a non-bearer scheme", func(t *testing.T) {
		token, _ := sm.CreateToken("user-1", time.Hour)
		_, err := sm.Authenticate("Basic " + token)
		assert.True(t, errors.Is(err, ErrBadToken))
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token, err := sm.CreateToken("user-1", -time.Minute)
		require.NoError(t, err)
		_, err = sm.Authenticate("Bearer " + token)
		assert.True(t, errors.Is(err, ErrBadToken))
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		token, err := NewManager("other", nil).CreateToken("user-1", time.Hour)
		require.NoError(t, err)
		_, err = sm.Authenticate("Bearer " + token)
		assert.True(t, errors.Is(err, ErrBadToken))
	})

	t.Run("should reject other algorithms", func(t *testing.T) {
		claims := jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = sm.Authenticate("Bearer " + token)
		assert.True(t, errors.Is(err, ErrBadToken))
	})
}

func TestRevoke(t *testing.T) {
	t.Run("should reject a revoked token", func(t *testing.T) {
		conn := newFakeConn()
		sm := NewManager(testSecret, conn)

		token, err := sm.CreateToken("user-1", time.Hour)
		require.NoError(t, err)
		p, err := sm.Authenticate("Bearer " + token)
		require.NoError(t, err)

		require.NoError(t, sm.Revoke(p.TokenId))
		_, err = sm.Authenticate("Bearer " + token)
		assert.True(t, errors.Is(err, ErrRevoked))
	})

	t.Run("should fail closed when Redis errors", func(t *testing.T) {
		conn := newFakeConn()
		conn.err = fmt.Errorf("connection refused")
		sm := NewManager(testSecret, conn)

		token, _ := sm.CreateToken("user-1", time.Hour)
		_, err := sm.Authenticate("Bearer " + token)
		assert.Error(t, err)
	})

	t.Run("should need a store to revoke", func(t *testing.T) {
		sm := NewManager(testSecret, nil)
		assert.Equal(t, ErrNoRevocations, sm.Revoke("abc"))
	})
}

func TestPrincipalContext(t *testing.T) {
	_, err := GetPrincipal(context.Background())
	assert.Equal(t, ErrNoAuth, err)

	p := &Principal{Subject: "user-1"}
	got, err := GetPrincipal(WithPrincipal(context.Background(), p))
	assert.NoError(t, err)
	assert.Equal(t, p, got)
}
