package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	// the client never verifies signatures, so any key works here
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestFromTokenReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signToken(t, jwt.MapClaims{
		"employee_id": "e42",
		"name":        "Maya Chen",
		"role":        "admin",
		"exp":         exp.Unix(),
	})

	sess, err := FromToken(raw)
	require.NoError(t, err)
	require.Equal(t, "e42", sess.EmployeeID)
	require.Equal(t, "Maya Chen", sess.EmployeeName)
	require.True(t, sess.IsAdmin)
	require.Equal(t, raw, sess.Token)
	require.WithinDuration(t, exp, sess.ExpiresAt, time.Second)
}

func TestFromTokenStripsBearerPrefix(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"employee_id": "e1", "role": "employee"})
	sess, err := FromToken("  Bearer " + raw + "  ")
	require.NoError(t, err)
	require.Equal(t, raw, sess.Token)
	require.False(t, sess.IsAdmin)
}

func TestFromTokenFallsBackToSubject(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "e7"})
	sess, err := FromToken(raw)
	require.NoError(t, err)
	require.Equal(t, "e7", sess.EmployeeID)
}

func TestFromTokenRejectsBadInput(t *testing.T) {
	_, err := FromToken("")
	require.Error(t, err)

	_, err = FromToken("not.a.jwt")
	require.Error(t, err)

	// well-formed token with no identity at all
	raw := signToken(t, jwt.MapClaims{"role": "employee"})
	_, err = FromToken(raw)
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	require.False(t, Context{}.Expired(now))
	require.False(t, Context{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	require.True(t, Context{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}
