package session

import (
	"testing"

	"github.com/saferide/saferide/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSession_Lifecycle tests init and clear
func TestSession_Lifecycle(t *testing.T) {
	s := New()

	assert.False(t, s.Active())
	_, err := s.Token()
	assert.ErrorIs(t, err, errors.ErrNoSession)

	s.Init("tok_1", User{ID: "u1", Name: "Amina", Role: "passenger"})

	assert.True(t, s.Active())
	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok_1", token)
	assert.Equal(t, "Amina", s.User().Name)

	s.Clear()

	assert.False(t, s.Active())
	_, err = s.Token()
	assert.ErrorIs(t, err, errors.ErrNoSession)
	assert.Empty(t, s.User().ID)
}

// TestSession_Reinit tests replacing a session in place
func TestSession_Reinit(t *testing.T) {
	s := New()
	s.Init("tok_1", User{ID: "u1"})
	s.Init("tok_2", User{ID: "u2"})

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok_2", token)
	assert.Equal(t, "u2", s.User().ID)
}
