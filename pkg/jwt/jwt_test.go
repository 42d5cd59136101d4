package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Farmadist-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testIssuer    = "farmadist-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSessionID = "00000000-0000-0000-0000-0000000000aa"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, testSessionID, "manager", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testSessionID, claims.SessionID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, testSessionID, "admin", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, testSessionID, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, testUserID, testSessionID, "admin", time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestParse_SinSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testUserID, "", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token sin session_id no identifica ninguna sesión")
}
