package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", Email: "vendedor@huevoskikes.co", Role: "vendedor"}
	tok, err := jwt.Generate("secreto", id, "huevos-kikes", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "huevos-kikes", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "huevos-kikes", -5)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestParse_SinUserID(t *testing.T) {
	tok, err := jwt.Generate("secreto", jwt.Identity{Email: "x@y.co"}, "huevos-kikes", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "u-1"}, "", 5)
	assert.Error(t, err)
}
