package authenticator_test

import (
	"testing"
	"time"

	"github.com/questforge/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type mockClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func TestTokenEngine(t *testing.T) {
	engine := authenticator.NewTokenEngine[mockClaims]("secret", time.Minute)

	token, err := engine.Generate("user1", mockClaims{ID: "user1", Role: "admin"})
	require.NoError(t, err)

	got, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", got.ID)
	require.Equal(t, "admin", got.Role)
}

func TestTokenEngineExpired(t *testing.T) {
	engine := authenticator.NewTokenEngine[mockClaims]("secret", -time.Minute)

	token, err := engine.Generate("user1", mockClaims{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
