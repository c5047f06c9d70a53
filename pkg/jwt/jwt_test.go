package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", Username: "taller", Role: "incharge"}
	token, err := jwt.Generate("secret", id, "test", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", jwt.Identity{UserID: "u-1", Role: "owner"}, "test", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", jwt.Identity{UserID: "u-1", Role: "owner"}, "test", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "u-1"}, "test", 5)
	assert.Error(t, err)
}
