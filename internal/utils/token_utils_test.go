package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	id := domain.Identity{UserID: "google-sub-1", Verified: true}

	token, err := utils.GenerateJWT(id, "secret", time.Hour, "six-jars-app")
	require.NoError(t, err)

	got, err := utils.ParseIdentityJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseIdentityJWT_Rejects(t *testing.T) {
	expired, err := utils.GenerateJWT(domain.Identity{UserID: "u1"}, "secret", -time.Minute, "six-jars-app")
	require.NoError(t, err)
	_, err = utils.ParseIdentityJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noSubject, err := utils.GenerateJWT(domain.Identity{}, "secret", time.Hour, "six-jars-app")
	require.NoError(t, err)
	_, err = utils.ParseIdentityJWT(noSubject, "secret")
	assert.Error(t, err)

	_, err = utils.ParseIdentityJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPINHash(t *testing.T) {
	hash, err := utils.HashPIN("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)
	assert.True(t, utils.CheckPINHash("1234", hash))
	assert.False(t, utils.CheckPINHash("4321", hash))
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, "4", utils.DisplayAmount(decimal.NewFromInt(100000), "USD"))
	assert.Equal(t, "100000", utils.DisplayAmount(decimal.NewFromInt(100000), "GBP"))
}

func TestNewOAuthState(t *testing.T) {
	a, err := utils.NewOAuthState()
	require.NoError(t, err)
	b, err := utils.NewOAuthState()
	require.NoError(t, err)

	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}
