package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/config"
	"sportify/internal/model"
)

var secret = []byte("test-secret")

func TestCreateAndParse(t *testing.T) {
	token, err := createToken(Payload{UserID: 7, Username: "alice", Role: model.RoleAdmin}, secret, time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin())
}

func TestParseExpired(t *testing.T) {
	token, err := createToken(Payload{UserID: 1, Role: model.RoleUser}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = parseToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseInvalid(t *testing.T) {
	token, err := createToken(Payload{UserID: 1, Role: model.RoleUser}, secret, time.Hour)
	require.NoError(t, err)

	_, err = parseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = parseToken("not-a-token", secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{Payload: Payload{UserID: 1}}).
		SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = parseToken(none, secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCreateTokenUsesConfig(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWT{AccessSecret: "cfg-secret", AccessExpire: 60}})

	token, err := CreateToken(Payload{UserID: 3, Role: model.RoleUser})
	require.NoError(t, err)
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.InDelta(t, time.Now().Add(time.Minute).Unix(), claims.ExpiresAt, 2)
}
