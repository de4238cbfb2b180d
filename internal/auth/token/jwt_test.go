package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse_RoundTrip(t *testing.T) {
	m := New("test-secret", "dave-backend", time.Hour)
	uid := uuid.New()

	raw, issued, err := m.Issue(context.Background(), uid, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.NotEmpty(t, issued.JTI)

	parsed, err := m.Parse(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, uid, parsed.UserID)
	assert.Equal(t, "alice@example.com", parsed.Login)
	assert.Equal(t, issued.JTI, parsed.JTI)
	assert.WithinDuration(t, issued.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	m := New("secret-a", "dave-backend", time.Hour)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "alice@example.com")
	require.NoError(t, err)

	other := New("secret-b", "dave-backend", time.Hour)
	_, err = other.Parse(context.Background(), raw)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	m := New("test-secret", "dave-backend", -time.Minute)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), raw)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	m := New("test-secret", "dave-backend", time.Hour)
	_, err := m.Parse(context.Background(), "not.a.jwt")
	assert.Error(t, err)
}

func TestIssue_UniqueJTI(t *testing.T) {
	m := New("test-secret", "dave-backend", time.Hour)
	_, a, err := m.Issue(context.Background(), uuid.New(), "alice@example.com")
	require.NoError(t, err)
	_, b, err := m.Issue(context.Background(), uuid.New(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}
