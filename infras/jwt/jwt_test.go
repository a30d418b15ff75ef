package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/config"
	"studiodesk/infras/jwt"
)

func newService(secret string) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "studiodesk"
	cfg.JWT.SessionSecret = secret

	return jwt.New(cfg)
}

func TestSignAndParseSession(t *testing.T) {
	svc := newService("s3cret")

	token, err := svc.SignSession("0b7c9d7e-session", "admin", time.Now())
	require.NoError(t, err)

	claims, err := svc.ParseSession(token)
	require.NoError(t, err)

	assert.Equal(t, "0b7c9d7e-session", claims.SessionID())
	assert.Equal(t, "admin", claims.Subject)
}

func TestParseSession_WrongSecret(t *testing.T) {
	token, err := newService("one").SignSession("sid", "admin", time.Now())
	require.NoError(t, err)

	_, err = newService("two").ParseSession(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParseSession_Garbage(t *testing.T) {
	_, err := newService("s3cret").ParseSession("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestSignSession_RequiresID(t *testing.T) {
	_, err := newService("s3cret").SignSession("", "admin", time.Now())
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}
